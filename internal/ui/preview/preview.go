// Package preview renders media thumbnails inside the terminal.
package preview

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/nfnt/resize"
	"github.com/rs/zerolog/log"
)

var nextID atomic.Uint32

// Renderer holds the thumbnail of the displayed item. Output strings it
// returns are raw terminal sequences to be written with the next frame.
type Renderer struct {
	proto Protocol

	mu      sync.Mutex
	width   int // cells
	height  int
	mediaID string
	source  image.Image
	id      uint32
	info    string
}

// New creates a renderer drawing with p. p must not be nil.
func New(p Protocol) *Renderer {
	return &Renderer{proto: p}
}

// Protocol returns the protocol name.
func (r *Renderer) Protocol() string {
	return r.proto.Name()
}

// SetSize sets the thumbnail box in cells and returns the output that
// re-encodes the current image at the new size.
func (r *Renderer) SetSize(width, height int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.width == width && r.height == height {
		return ""
	}
	r.width, r.height = width, height
	if r.source == nil {
		return ""
	}
	out, err := r.prepare()
	if err != nil {
		log.Warn().Err(err).Str("media", r.mediaID).Msg("resize preview")
	}
	return out
}

// Load decodes data as the preview of mediaID and returns the output that
// replaces the previous image.
func (r *Renderer) Load(mediaID string, data []byte) (string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode preview: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.mediaID = mediaID
	r.source = img
	b := img.Bounds()
	r.info = fmt.Sprintf("%s · %d×%d · %s", format, b.Dx(), b.Dy(), humanize.IBytes(uint64(len(data))))
	return r.prepare()
}

// prepare requires r.mu.
func (r *Renderer) prepare() (string, error) {
	out := r.release()
	if r.width <= 0 || r.height <= 0 {
		return out, nil
	}

	pw, ph := r.proto.TargetPixelSize(r.width, r.height)
	//nolint:gosec // cell boxes are small
	thumb := resize.Thumbnail(uint(max(pw, 1)), uint(max(ph, 1)), r.source, resize.Lanczos3)

	id := nextID.Add(1)
	sent, err := r.proto.Prepare(thumb, id)
	if err != nil {
		return out, err
	}
	r.id = id
	return out + sent, nil
}

// release requires r.mu.
func (r *Renderer) release() string {
	if r.id == 0 {
		return ""
	}
	out := r.proto.Delete(r.id)
	r.id = 0
	return out
}

// Shows reports whether the loaded image belongs to mediaID.
func (r *Renderer) Shows(mediaID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.id != 0 && r.mediaID == mediaID
}

// Info describes the loaded image, e.g. "jpeg · 1600×900 · 412 KiB".
func (r *Renderer) Info() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.info
}

// Placement returns the output drawing the image with its top-left cell at
// the 1-based (row, col), or "" when nothing is loaded.
func (r *Renderer) Placement(row, col int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.id == 0 {
		return ""
	}
	return r.proto.Place(r.id, row, col, r.width, r.height)
}

// Placeholder returns blank cells reserving the image box in the layout.
func (r *Renderer) Placeholder() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.width <= 0 || r.height <= 0 {
		return ""
	}
	line := strings.Repeat(" ", r.width)
	return strings.TrimSuffix(strings.Repeat(line+"\n", r.height), "\n")
}

// Clear drops the image and returns the output freeing it.
func (r *Renderer) Clear() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mediaID = ""
	r.source = nil
	r.info = ""
	return r.release()
}
