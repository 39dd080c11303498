package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

const (
	kittyStart = "\x1b_G"
	kittyEnd   = "\x1b\\"

	// Payload bytes per escape sequence.
	kittyChunk = 4096
)

// Kitty draws images with the Kitty graphics protocol. Images are
// transmitted once and placed by id on every frame.
type Kitty struct{}

func (Kitty) Name() string { return "kitty" }

func (Kitty) Prepare(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return kittyTransmit(buf.Bytes(), id), nil
}

// kittyTransmit builds the a=t (store, don't show) sequence for PNG data,
// split into chunks with m=1 on all but the last.
func kittyTransmit(pngData []byte, id uint32) string {
	encoded := base64.StdEncoding.EncodeToString(pngData)

	var sb strings.Builder
	for i := 0; i < len(encoded); i += kittyChunk {
		end := min(i+kittyChunk, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}
		sb.WriteString(kittyStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(kittyEnd)
	}
	return sb.String()
}

// Place uses the fixed placement id 1 so a new placement replaces the last.
func (Kitty) Place(id uint32, row, col, width, height int) string {
	return fmt.Sprintf("\x1b[s\x1b[%d;%dH%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s\x1b[u",
		row, col, kittyStart, id, width, height, kittyEnd)
}

func (Kitty) Delete(id uint32) string {
	return fmt.Sprintf("%sa=d,d=I,i=%d,q=2;%s", kittyStart, id, kittyEnd)
}

func (Kitty) TargetPixelSize(width, height int) (pw, ph int) {
	return width * 8, height * 16
}
