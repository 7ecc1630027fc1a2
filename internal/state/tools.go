package state

import (
	"errors"
	"strings"
)

var (
	ErrEmptySticker     = errors.New("no sticker added due to lack of text")
	ErrDuplicateSticker = errors.New("sticker already exists")
)

// ToolKind distinguishes freehand markers from sticker tools.
type ToolKind int

const (
	ToolMarker ToolKind = iota
	ToolSticker
)

// Tool is one selectable entry of the tool palette.
type Tool struct {
	Kind      ToolKind
	Label     string
	Thickness float64 // markers only
	Glyph     string  // stickers only
}

// ToolSnapshot is the tool state captured when a command is created.
type ToolSnapshot struct {
	Tool     Tool
	Hue      float64 // degrees, 0-360
	Rotation float64 // degrees, 0-360
}

// DefaultStickers is the sticker set available at startup.
var DefaultStickers = []string{
	"🍏", "😬", "( ͡👁️ ͜ʖ ͡👁️)", "😎", "😂", "😘", "😍", "😉", "😄", "😜",
}

// ToolState holds the palette, the selected tool and the shared 0-100
// control value that drives stroke hue and sticker rotation.
// Exactly one tool is selected at any time.
type ToolState struct {
	tools    []Tool
	selected int
	control  int
}

// NewToolState returns a palette with thin and thick markers followed by
// one sticker tool per glyph. The thin marker starts selected.
func NewToolState(thin, thick float64, stickers []string, control int) *ToolState {
	ts := &ToolState{
		tools: []Tool{
			{Kind: ToolMarker, Label: "Thin", Thickness: thin},
			{Kind: ToolMarker, Label: "Thick", Thickness: thick},
		},
	}
	for _, g := range stickers {
		// Config validation already rejects bad entries; skip them here too.
		_ = ts.AddSticker(g)
	}
	ts.SetControl(control)
	return ts
}

// Tools returns the palette in display order.
func (ts *ToolState) Tools() []Tool {
	out := make([]Tool, len(ts.tools))
	copy(out, ts.tools)
	return out
}

// Select makes tool i the only selected tool. Out of range indexes are
// ignored and report false.
func (ts *ToolState) Select(i int) bool {
	if i < 0 || i >= len(ts.tools) {
		return false
	}
	ts.selected = i
	return true
}

func (ts *ToolState) Selected() int { return ts.selected }

func (ts *ToolState) IsSelected(i int) bool { return ts.selected == i }

// Active returns the selected tool.
func (ts *ToolState) Active() Tool { return ts.tools[ts.selected] }

// Placing reports whether a sticker tool is selected.
func (ts *ToolState) Placing() bool { return ts.Active().Kind == ToolSticker }

// Thickness returns the line width of the selected marker, or of the thin
// marker while a sticker tool is selected.
func (ts *ToolState) Thickness() float64 {
	if t := ts.Active(); t.Kind == ToolMarker {
		return t.Thickness
	}
	return ts.tools[0].Thickness
}

// SetControl stores the slider value clamped to 0-100.
func (ts *ToolState) SetControl(v int) {
	ts.control = min(max(v, 0), 100)
}

func (ts *ToolState) Control() int { return ts.control }

// AddSticker appends a sticker tool for glyph. Empty and duplicate glyphs
// are rejected.
func (ts *ToolState) AddSticker(glyph string) error {
	if strings.TrimSpace(glyph) == "" {
		return ErrEmptySticker
	}
	for _, t := range ts.tools {
		if t.Kind == ToolSticker && t.Glyph == glyph {
			return ErrDuplicateSticker
		}
	}
	ts.tools = append(ts.tools, Tool{Kind: ToolSticker, Label: glyph, Glyph: glyph})
	return nil
}

// Snapshot captures the current tool and control values.
func (ts *ToolState) Snapshot() ToolSnapshot {
	deg := float64(ts.control) * 360 / 100
	return ToolSnapshot{
		Tool:     ts.Active(),
		Hue:      deg,
		Rotation: deg,
	}
}
