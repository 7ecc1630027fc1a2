package state

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gg"
)

// Command is a self-contained unit of drawn content.
type Command interface {
	// ID returns the identifier assigned at creation.
	ID() string
	// Render draws the command using only its own attributes.
	Render(s Surface)
	// Description returns a short human-readable summary.
	Description() string
}

// Stroke is a freehand polyline.
type Stroke struct {
	id        string
	points    []Point
	thickness float64
	color     color.Color
}

// NewStroke starts a stroke at p. Thickness and color are taken from snap
// and never reread.
func NewStroke(p Point, snap ToolSnapshot) *Stroke {
	return &Stroke{
		id:        newCommandID(),
		points:    []Point{p},
		thickness: snap.Tool.Thickness,
		color:     HueColor(snap.Hue),
	}
}

func (s *Stroke) ID() string { return s.id }

// Extend appends p. Callers only extend the stroke that is being drawn.
func (s *Stroke) Extend(p Point) {
	s.points = append(s.points, p)
}

// Points returns a copy of the recorded points.
func (s *Stroke) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

func (s *Stroke) Thickness() float64 { return s.thickness }

func (s *Stroke) Color() color.Color { return s.color }

// Render draws one segment per consecutive pair of points.
// A stroke with a single point draws nothing.
func (s *Stroke) Render(surf Surface) {
	if len(s.points) < 2 {
		return
	}
	surf.SetColor(s.color)
	surf.SetLineWidth(s.thickness)
	surf.MoveTo(s.points[0])
	for _, p := range s.points[1:] {
		surf.LineTo(p)
	}
	surf.Stroke()
}

func (s *Stroke) Description() string {
	return fmt.Sprintf("stroke(%d points, width %g)", len(s.points), s.thickness)
}

// Sticker placement puts the glyph roughly centered under the pointer.
const (
	stickerOffsetX = -20
	stickerOffsetY = 10
)

// StickerAnchor returns the glyph origin for a sticker dropped at p.
func StickerAnchor(p Point) Point {
	return Point{X: p.X + stickerOffsetX, Y: p.Y + stickerOffsetY}
}

// Sticker is a glyph placed at an anchor point.
type Sticker struct {
	id       string
	anchor   Point
	glyph    string
	rotation float64 // degrees
}

// NewSticker places glyph for a pointer at p. The rotation comes from snap.
func NewSticker(p Point, glyph string, snap ToolSnapshot) *Sticker {
	return &Sticker{
		id:       newCommandID(),
		anchor:   StickerAnchor(p),
		glyph:    glyph,
		rotation: snap.Rotation,
	}
}

func (s *Sticker) ID() string { return s.id }

// Reposition overwrites the anchor.
func (s *Sticker) Reposition(p Point) {
	s.anchor = p
}

func (s *Sticker) Anchor() Point { return s.anchor }

func (s *Sticker) Glyph() string { return s.glyph }

func (s *Sticker) Rotation() float64 { return s.rotation }

func (s *Sticker) Render(surf Surface) {
	surf.SetColor(color.Black)
	surf.DrawText(s.glyph, s.anchor, s.rotation)
}

func (s *Sticker) Description() string {
	return fmt.Sprintf("sticker(%q, %g°)", s.glyph, s.rotation)
}

// CursorPreview marks where the next stroke would start. It is never
// committed.
type CursorPreview struct {
	At     Point
	Radius float64
}

// NewCursorPreview sizes the ring after the active thickness: one unit for
// the thin marker, two otherwise.
func NewCursorPreview(p Point, thickness float64) *CursorPreview {
	r := 2.0
	if thickness == ThinMarker {
		r = ThinMarker
	}
	return &CursorPreview{At: p, Radius: r}
}

func (c *CursorPreview) ID() string { return "" }

func (c *CursorPreview) Render(surf Surface) {
	surf.SetColor(color.Black)
	surf.FillCircle(c.At, c.Radius+ThinMarker/2)
}

func (c *CursorPreview) Description() string {
	return fmt.Sprintf("cursor(%g,%g)", c.At.X, c.At.Y)
}

// HueColor maps a hue in degrees to a fully saturated color at half
// lightness.
func HueColor(hue float64) color.Color {
	return gg.HSL(hue, 1, 0.5).Color()
}
