package preview

import "image"

// Protocol is a terminal image protocol.
type Protocol interface {
	Name() string

	// Prepare encodes img under id and returns any one-time terminal output.
	Prepare(img image.Image, id uint32) (string, error)

	// Place returns the output drawing image id at the 1-based (row, col)
	// cell, sized width x height cells.
	Place(id uint32, row, col, width, height int) string

	// Delete returns the output freeing image id.
	Delete(id uint32) string

	// TargetPixelSize returns the pixel box for a width x height cell area.
	TargetPixelSize(width, height int) (pw, ph int)
}
