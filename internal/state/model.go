package state

import (
	"image/color"
)

// Point is a position in surface-local coordinates.
type Point struct{ X, Y float64 }

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

const (
	ThinMarker  = 1.0
	ThickMarker = 4.0
)

// Surface is the drawing target commands render onto.
// Coordinates are always given in canvas units; a surface created with a
// scale factor maps them to device pixels itself.
type Surface interface {
	// Clear erases the whole surface to transparent.
	Clear()
	SetColor(c color.Color)
	SetLineWidth(w float64)
	MoveTo(p Point)
	LineTo(p Point)
	// Stroke strokes the current path with the current color and width
	// and starts a new path.
	Stroke()
	FillCircle(center Point, radius float64)
	// DrawText draws glyph with its baseline origin at at, rotated
	// clockwise by rotation degrees around that origin.
	DrawText(glyph string, at Point, rotation float64)
	// PushOpacity starts a group whose content is composited at alpha
	// when the matching PopOpacity is called.
	PushOpacity(alpha float64)
	PopOpacity()
}

// OffscreenSurface is a Surface whose content can be encoded to bytes.
type OffscreenSurface interface {
	Surface
	Encode() ([]byte, error)
}

// SurfaceFactory creates offscreen surfaces for export.
type SurfaceFactory interface {
	// NewSurface returns a surface covering a width x height canvas whose
	// draw calls are scaled by scale.
	NewSurface(width, height int, scale float64) (OffscreenSurface, error)
}
