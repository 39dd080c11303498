package preview

import (
	"os"
	"strings"
)

// envOverride forces a protocol regardless of the configured mode.
const envOverride = "PHOTOTRIAGE_IMAGE_PROTOCOL"

// Detect returns the protocol for a display.preview mode ("auto", "kitty",
// "sixel" or "none"), or nil when previews are off or unsupported.
func Detect(mode string) Protocol {
	if v := os.Getenv(envOverride); v != "" {
		mode = v
	}
	switch mode {
	case "kitty":
		return Kitty{}
	case "sixel":
		return NewSixel()
	case "auto":
		if kittySupported() {
			return Kitty{}
		}
		if sixelSupported() {
			return NewSixel()
		}
	}
	return nil
}

func kittySupported() bool {
	// Contour inherits the parent terminal's variables but lacks Kitty graphics.
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return false
	}
	term := os.Getenv("TERM")
	switch {
	case os.Getenv("KITTY_WINDOW_ID") != "",
		os.Getenv("TERM_PROGRAM") == "WezTerm",
		os.Getenv("GHOSTTY_RESOURCES_DIR") != "",
		strings.Contains(term, "kitty"):
		return true
	}
	// Konsole 22.04+, reported as e.g. "220401".
	v := os.Getenv("KONSOLE_VERSION")
	return len(v) >= 4 && v[:4] >= "2204"
}

func sixelSupported() bool {
	term := os.Getenv("TERM")
	switch os.Getenv("TERM_PROGRAM") {
	case "vscode", "mintty", "iTerm.app", "contour":
		return true
	}
	return term == "foot" || term == "foot-extra" || os.Getenv("CONTOUR_PROFILE") != ""
}
