//go:build !unix

package preview

func cellSize() (w, h int) {
	return 8, 16
}
