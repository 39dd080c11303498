// Package popup draws bordered modal boxes over a base view.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/phototriage/internal/ui/styles"
)

// SizeConfig defines how a popup is sized.
type SizeConfig struct {
	WidthPct  int // percentage of screen width (0 = fit content)
	HeightPct int // percentage of screen height (0 = fit content)
	MaxWidth  int // 0 = no limit
}

var (
	SizeForm = SizeConfig{MaxWidth: 64}
	SizeAuto = SizeConfig{}
)

// RenderBordered wraps content in a rounded border and centers it.
func RenderBordered(content string, screenW, screenH int, size SizeConfig) string {
	width, height := dimensions(content, screenW, screenH, size)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Width(width-2).
		Height(height-2).
		Padding(1, 2).
		Render(content)
	return Center(box, screenW, screenH)
}

func dimensions(content string, screenW, screenH int, size SizeConfig) (width, height int) {
	if size.WidthPct > 0 {
		return screenW * size.WidthPct / 100, screenH * size.HeightPct / 100
	}

	width = maxLineWidth(content) + 6 // padding + border
	if size.MaxWidth > 0 {
		width = min(width, size.MaxWidth)
	}
	height = strings.Count(content, "\n") + 1 + 4
	return max(min(width, screenW-4), 8), max(min(height, screenH-2), 5)
}

func maxLineWidth(s string) int {
	w := 0
	for line := range strings.SplitSeq(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

// Center centers pre-rendered content on a screen of the given size.
func Center(content string, screenW, screenH int) string {
	lines := strings.Split(content, "\n")
	boxW := 0
	for _, line := range lines {
		boxW = max(boxW, lipgloss.Width(line))
	}
	padTop := max((screenH-len(lines))/2, 0)
	padLeft := strings.Repeat(" ", max((screenW-boxW)/2, 0))

	var b strings.Builder
	for range padTop {
		b.WriteString("\n")
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(padLeft + line)
	}
	return b.String()
}

// Compose overlays popupView on base. Each overlay line replaces the base
// columns between its first and last visible character; blank overlay lines
// leave the base untouched. ANSI sequences on both sides are preserved.
func Compose(base, popupView string, width int) string {
	baseLines := strings.Split(base, "\n")

	for i, line := range strings.Split(popupView, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		trimmed := strings.TrimLeft(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		start := len(plain) - len(trimmed)
		end := ansi.StringWidth(strings.TrimRight(plain, " "))

		under := baseLines[i]
		if w := ansi.StringWidth(under); w < width {
			under += strings.Repeat(" ", width-w)
		}

		// A wide rune cut in half leaves the prefix short; pad it back.
		prefix := ansi.Truncate(under, start, "")
		if w := ansi.StringWidth(prefix); w < start {
			prefix += strings.Repeat(" ", start-w)
		}
		out := prefix + ansi.Cut(line, start, end)
		if end < width {
			suffix := ansi.TruncateLeft(under, end, "")
			if w, want := ansi.StringWidth(suffix), width-end; w < want {
				suffix = strings.Repeat(" ", want-w) + suffix
			}
			out += suffix
		}
		baseLines[i] = out
	}
	return strings.Join(baseLines, "\n")
}
