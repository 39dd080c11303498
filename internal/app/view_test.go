// internal/app/view_test.go
package app

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/phototriage/internal/session"
	"github.com/llehouerou/phototriage/internal/shortcut"
	"github.com/llehouerou/phototriage/internal/ui/preview"
	"github.com/llehouerou/phototriage/internal/ui/testutil"
)

// markerProtocol renders image output as readable markers.
type markerProtocol struct{}

func (markerProtocol) Name() string { return "marker" }

func (markerProtocol) Prepare(_ image.Image, id uint32) (string, error) {
	return fmt.Sprintf("<tx %d>", id), nil
}

func (markerProtocol) Place(_ uint32, row, col, width, height int) string {
	return fmt.Sprintf("<place %d,%d %dx%d>", row, col, width, height)
}

func (markerProtocol) Delete(id uint32) string {
	return fmt.Sprintf("<del %d>", id)
}

func (markerProtocol) TargetPixelSize(width, height int) (pw, ph int) {
	return width, height
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))))
	return buf.Bytes()
}

func TestView_EmptyBeforeSize(t *testing.T) {
	env := newTestEnv()
	m := New(Deps{Media: env.media, Registry: shortcut.NewRegistry(env.backend)}, Options{})

	assert.Empty(t, m.View())
}

func TestView_Settings(t *testing.T) {
	m := newTestEnv().model(t, Options{})

	view := testutil.StripANSI(m.View())
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 30)
	assert.Contains(t, lines[0], "phototriage")
	assert.Contains(t, view, "Kısayollar")
	assert.Contains(t, view, "x → Çöp Kutusu")
	assert.Contains(t, view, "Tatil")
}

func TestView_SessionShowsItemAndLegend(t *testing.T) {
	m := newTestEnv().model(t, Options{Mode: session.Sequential, IDs: []string{"a", "b"}})

	view := testutil.StripANSI(m.View())
	assert.Contains(t, view, "a.jpg")
	assert.Contains(t, view, "İlerleme: 1 / 2")
	assert.Contains(t, view, "sıralı")
	assert.Contains(t, view, "çöp 0 · albüm 0")
	assert.Len(t, strings.Split(view, "\n"), 30)
}

func TestView_PreviewTransmittedOnceAndPlaced(t *testing.T) {
	env := newTestEnv()
	env.media.preview = pngBytes(t)
	m := New(Deps{
		Media:    env.media,
		Registry: shortcut.NewRegistry(env.backend),
		Preview:  preview.New(markerProtocol{}),
		Rand:     fixedRand{},
	}, Options{Mode: session.Sequential, IDs: []string{"a", "b"}, ToastDuration: time.Hour})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = run(t, m, m.Init())

	require.Equal(t, "a", currentID(m))
	view := m.View()
	assert.True(t, strings.HasPrefix(view, "<tx "), "view starts with %q", view[:min(len(view), 20)])
	// Header row, panel border and the caption block sit above the image.
	assert.True(t, strings.HasSuffix(view, "<place 8,2 98x17>"))

	m = update(t, m, ImageFlushedMsg{Seq: m.imageSeq})
	view = m.View()
	assert.False(t, strings.HasPrefix(view, "<tx "))
	assert.True(t, strings.HasSuffix(view, "<place 8,2 98x17>"))

	// b is a video: the image is freed and nothing is placed.
	m = press(t, m, "x")
	require.Equal(t, "b", currentID(m))
	view = m.View()
	assert.True(t, strings.HasPrefix(view, "<del "))
	assert.NotContains(t, view, "<place")
}

func TestView_StaleFlushKeepsNewerOutput(t *testing.T) {
	m := newTestEnv().model(t, Options{})
	m.imageOut = "<tx 1>"
	m.imageSeq = 2

	m = update(t, m, ImageFlushedMsg{Seq: 1})
	assert.Equal(t, "<tx 1>", m.imageOut)
}

func TestEnforceHeight(t *testing.T) {
	tests := []struct {
		name   string
		view   string
		height int
		want   string
	}{
		{"exact", "a\nb", 2, "a\nb"},
		{"pads", "a", 3, "a\n\n"},
		{"truncates", "a\nb\nc", 2, "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, enforceHeight(tt.view, tt.height))
		})
	}
}
