package render

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"Canvasticker/internal/state"
)

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a >> 8
}

func countOpaque(img image.Image, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if alphaAt(img, x, y) > 0 {
				n++
			}
		}
	}
	return n
}

func snapshot(control int) state.ToolSnapshot {
	ts := state.NewToolState(state.ThinMarker, state.ThickMarker, nil, control)
	return ts.Snapshot()
}

func TestRasterSegment(t *testing.T) {
	r := NewRaster(16, 16, 1, nil)
	s := state.NewStroke(state.Pt(0, 0), snapshot(0))
	s.Extend(state.Pt(10, 10))
	s.Render(r)

	img := r.Image()
	assert.NotZero(t, alphaAt(img, 5, 5))
	assert.Zero(t, alphaAt(img, 10, 2))
	assert.Zero(t, alphaAt(img, 14, 14))
}

func TestRasterSinglePointIsBlank(t *testing.T) {
	r := NewRaster(16, 16, 1, nil)
	state.NewStroke(state.Pt(8, 8), snapshot(0)).Render(r)
	assert.Zero(t, countOpaque(r.Image(), r.Bounds()))
}

func TestExportScalesDrawCalls(t *testing.T) {
	h := state.NewHistory()
	s := state.NewStroke(state.Pt(0, 0), snapshot(0))
	s.Extend(state.Pt(10, 10))
	h.Commit(s)

	data, err := h.Export(Factory{}, 256, 256, 4)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1024, 1024), img.Bounds())

	assert.NotZero(t, alphaAt(img, 20, 20))
	assert.NotZero(t, alphaAt(img, 36, 36))
	assert.Zero(t, alphaAt(img, 60, 60))
	assert.Zero(t, alphaAt(img, 40, 2))
}

func TestReplayIsPixelIdentical(t *testing.T) {
	r := NewRaster(64, 64, 1, nil)
	ts := state.NewToolState(state.ThinMarker, state.ThickMarker, nil, 30)
	sess := state.NewSession(r, ts, state.Options{Width: 64, Height: 64})

	sess.PointerDown(state.Pt(5, 5))
	sess.PointerMove(state.Pt(40, 12))
	sess.PointerMove(state.Pt(50, 50))
	sess.PointerUp(state.Pt(50, 50))
	sess.PointerMove(state.Pt(20, 40))

	sess.Replay()
	first := append([]byte(nil), r.Image().Pix...)
	sess.Replay()
	assert.Equal(t, first, r.Image().Pix)
}

func TestPreviewIsTranslucent(t *testing.T) {
	r := NewRaster(32, 32, 1, nil)
	ts := state.NewToolState(state.ThinMarker, state.ThickMarker, nil, 50)
	sess := state.NewSession(r, ts, state.Options{Width: 32, Height: 32})
	sess.SelectTool(1)
	sess.PointerEnter(state.Pt(16, 16))

	a := alphaAt(r.Image(), 16, 16)
	assert.NotZero(t, a)
	assert.Less(t, a, uint32(200))

	sess.PointerLeave()
	assert.Zero(t, countOpaque(r.Image(), r.Bounds()))
}

func TestDrawTextRotation(t *testing.T) {
	font, err := LoadFont("", 0)
	require.NoError(t, err)
	defer func() { _ = font.Close() }()
	assert.Equal(t, float64(DefaultGlyphSize), font.Size())

	above := image.Rect(0, 0, 64, 32)
	below := image.Rect(0, 33, 64, 64)

	upright := NewRaster(64, 64, 1, font)
	upright.SetColor(state.HueColor(0))
	upright.DrawText("X", state.Pt(32, 32), 0)
	img := upright.Image()
	assert.Greater(t, countOpaque(img, above), countOpaque(img, below))

	flipped := NewRaster(64, 64, 1, font)
	flipped.SetColor(state.HueColor(0))
	flipped.DrawText("X", state.Pt(32, 32), 180)
	img = flipped.Image()
	assert.Greater(t, countOpaque(img, below), countOpaque(img, above))
}

func TestDrawTextSkipsUnmappedRunes(t *testing.T) {
	font, err := LoadFont("", 0)
	require.NoError(t, err)
	defer func() { _ = font.Close() }()

	for _, glyph := range []string{"😎", "🍏", "😂", "\u200d\ufe0f"} {
		r := NewRaster(64, 64, 1, font)
		r.SetColor(state.HueColor(0))
		r.DrawText(glyph, state.Pt(20, 40), 0)
		assert.Zero(t, countOpaque(r.Image(), r.Bounds()), "glyph %q", glyph)
	}

	mixed := NewRaster(96, 64, 1, font)
	mixed.SetColor(state.HueColor(0))
	mixed.DrawText("( ͡👁️ ͜ʖ ͡👁️)", state.Pt(4, 40), 0)
	assert.NotZero(t, countOpaque(mixed.Image(), mixed.Bounds()))
}

func TestLoadFontWithFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))

	font, err := LoadFont("", 12, path)
	require.NoError(t, err)
	defer func() { _ = font.Close() }()
	assert.NotNil(t, font.outline('X'))
	assert.Nil(t, font.outline('😎'))
}

func TestLoadFontMissingFile(t *testing.T) {
	_, err := LoadFont("/nonexistent/font.ttf", 12)
	assert.Error(t, err)

	_, err = LoadFont("", 12, "/nonexistent/fallback.ttf")
	assert.Error(t, err)
}

func TestFactoryRejectsEmptySize(t *testing.T) {
	_, err := Factory{}.NewSurface(0, 10, 1)
	assert.Error(t, err)
}
