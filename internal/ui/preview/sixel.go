package preview

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-sixel"
)

// Sixel draws images with DEC sixel graphics. The encoded image is cached
// and written in full on every placement.
type Sixel struct {
	mu           sync.RWMutex
	images       map[uint32]string
	cellW, cellH int
	placed       atomic.Uint64
}

// NewSixel queries the terminal cell size once.
func NewSixel() *Sixel {
	w, h := cellSize()
	return &Sixel{images: make(map[uint32]string), cellW: w, cellH: h}
}

func (s *Sixel) Name() string { return "sixel" }

func (s *Sixel) Prepare(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	enc.Dither = true
	if err := enc.Encode(img); err != nil {
		return "", fmt.Errorf("encode sixel: %w", err)
	}

	s.mu.Lock()
	s.images[id] = buf.String()
	s.mu.Unlock()
	return "", nil
}

// Place embeds a counter in a no-op SGR so every frame differs and the
// renderer does not skip rewriting the image.
func (s *Sixel) Place(id uint32, row, col, _, _ int) string {
	s.mu.RLock()
	data, ok := s.images[id]
	s.mu.RUnlock()
	if !ok {
		return ""
	}

	seq := s.placed.Add(1)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	sb.WriteString(data)
	fmt.Fprintf(&sb, "\x1b[u\x1b[%dm\x1b[0m", seq%255+1)
	return sb.String()
}

func (s *Sixel) Delete(id uint32) string {
	s.mu.Lock()
	delete(s.images, id)
	s.mu.Unlock()
	return ""
}

// TargetPixelSize leaves one row free so the image never scrolls the screen.
func (s *Sixel) TargetPixelSize(width, height int) (pw, ph int) {
	return width * s.cellW, max(height-1, 1) * s.cellH
}
