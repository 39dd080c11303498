// Package icons holds the glyphs shown next to media kinds and shortcut
// destinations.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Photo string
	Video string
	Trash string
	Album string
}

var (
	nerdIcons = Icons{
		Photo: " ", // nf-fa-image
		Video: " ", // nf-fa-video_camera
		Trash: " ", // nf-fa-trash
		Album: " ", // nf-fa-folder_open
	}

	unicodeIcons = Icons{
		Photo: "📷 ",
		Video: "🎬 ",
		Trash: "🗑 ",
		Album: "🖼 ",
	}

	noneIcons = Icons{}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// Valid reports whether style names a known icon style.
func Valid(style string) bool {
	switch Style(style) {
	case StyleNerd, StyleUnicode, StyleNone:
		return true
	}
	return false
}

// FormatMedia prefixes label with the photo or video icon.
func FormatMedia(isVideo bool, label string) string {
	if isVideo {
		return current.Video + label
	}
	return current.Photo + label
}

// FormatTrash prefixes a trash destination label.
func FormatTrash(label string) string {
	return current.Trash + label
}

// FormatAlbum prefixes an album name.
func FormatAlbum(name string) string {
	return current.Album + name
}
