package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Canvasticker/internal/state"
)

func TestPDFExport(t *testing.T) {
	ts := state.NewToolState(state.ThinMarker, state.ThickMarker, []string{"^o^"}, 25)
	h := state.NewHistory()

	s := state.NewStroke(state.Pt(0, 0), ts.Snapshot())
	s.Extend(state.Pt(10, 10))
	s.Extend(state.Pt(20, 5))
	h.Commit(s)

	ts.Select(2)
	snap := ts.Snapshot()
	h.Commit(state.NewSticker(state.Pt(100, 100), snap.Tool.Glyph, snap))

	data, err := h.Export(PDFFactory{}, 256, 256, 4)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.True(t, bytes.Contains(data, []byte("%%EOF")))
	assert.Equal(t, 2, h.Len())
}

func TestPDFExportDefaultStickers(t *testing.T) {
	ts := state.NewToolState(state.ThinMarker, state.ThickMarker, state.DefaultStickers, 50)
	h := state.NewHistory()
	for i := range state.DefaultStickers {
		require.True(t, ts.Select(i+2))
		snap := ts.Snapshot()
		h.Commit(state.NewSticker(state.Pt(float64(20+i*20), 100), snap.Tool.Glyph, snap))
	}

	data, err := h.Export(PDFFactory{}, 256, 256, 4)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, len(state.DefaultStickers), h.Len())
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"^o^", "^o^"},
		{"😎", ""},
		{"🍏😂", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, printable(tt.in), "input %q", tt.in)
	}

	face := printable("( ͡👁️ ͜ʖ ͡👁️)")
	assert.True(t, strings.HasPrefix(face, "("))
	assert.True(t, strings.HasSuffix(face, ")"))
	for _, r := range face {
		assert.LessOrEqual(t, r, rune(0xFFFF))
	}
}

func TestPDFOpacityStack(t *testing.T) {
	surf := NewPDFSurface(64, 64, 1, 18)
	surf.PushOpacity(0.5)
	surf.PushOpacity(0.25)
	surf.PopOpacity()
	assert.Equal(t, []float64{0.5}, surf.alphas)
	surf.PopOpacity()
	surf.PopOpacity()
	assert.Empty(t, surf.alphas)

	_, err := surf.Encode()
	require.NoError(t, err)
}

func TestPDFFactoryRejectsEmptySize(t *testing.T) {
	_, err := PDFFactory{}.NewSurface(10, 0, 1)
	assert.Error(t, err)
}
