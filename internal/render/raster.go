// Package render implements the raster drawing surface on top of gg.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"Canvasticker/internal/state"
)

// Raster is a pixel surface. Draw calls are given in canvas units and
// scaled by the factor the raster was created with, so a 256 unit canvas
// at scale 4 fills a 1024 pixel image with vector-sharp strokes.
type Raster struct {
	dc     *gg.Context
	font   *Font
	scale  float64
	layers int
}

var _ state.OffscreenSurface = (*Raster)(nil)

// NewRaster creates a transparent raster for a width x height canvas.
// font may be nil, in which case text is not drawn.
func NewRaster(width, height int, scale float64, font *Font) *Raster {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(float64(width) * scale))
	h := int(math.Ceil(float64(height) * scale))
	dc := gg.NewContext(w, h)
	dc.Scale(scale, scale)
	return &Raster{dc: dc, font: font, scale: scale}
}

func (r *Raster) Scale() float64 { return r.scale }

// Bounds returns the pixel size of the raster.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.dc.Width(), r.dc.Height())
}

func (r *Raster) Clear() {
	r.dc.Clear()
}

func (r *Raster) SetColor(c color.Color) {
	r.dc.SetColor(c)
}

func (r *Raster) SetLineWidth(w float64) {
	r.dc.SetLineWidth(w)
}

func (r *Raster) MoveTo(p state.Point) {
	r.dc.MoveTo(p.X, p.Y)
}

func (r *Raster) LineTo(p state.Point) {
	r.dc.LineTo(p.X, p.Y)
}

func (r *Raster) Stroke() {
	if err := r.dc.Stroke(); err != nil {
		state.Logger().Warn("stroke failed", slog.Any("err", err))
	}
}

func (r *Raster) FillCircle(center state.Point, radius float64) {
	r.dc.DrawCircle(center.X, center.Y, radius)
	if err := r.dc.Fill(); err != nil {
		state.Logger().Warn("fill failed", slog.Any("err", err))
	}
}

// DrawText fills the outlines of glyph laid out left to right from at.
// Outlines go through the transform, so rotation and export scale apply.
func (r *Raster) DrawText(glyph string, at state.Point, rotation float64) {
	if r.font == nil || glyph == "" {
		return
	}
	r.dc.Push()
	defer r.dc.Pop()
	r.dc.Translate(at.X, at.Y)
	r.dc.Rotate(rotation * math.Pi / 180)

	pen := 0.0
	for _, ch := range glyph {
		o := r.font.outline(ch)
		if o == nil {
			continue
		}
		r.tracePath(o, pen)
		pen += float64(o.Advance)
	}
	if err := r.dc.Fill(); err != nil {
		state.Logger().Warn("text fill failed", slog.String("glyph", glyph), slog.Any("err", err))
	}
}

func (r *Raster) tracePath(o *text.GlyphOutline, dx float64) {
	pt := func(p text.OutlinePoint) (float64, float64) {
		return float64(p.X) + dx, float64(p.Y)
	}
	for _, seg := range o.Segments {
		switch seg.Op {
		case text.OutlineOpMoveTo:
			x, y := pt(seg.Points[0])
			r.dc.MoveTo(x, y)
		case text.OutlineOpLineTo:
			x, y := pt(seg.Points[0])
			r.dc.LineTo(x, y)
		case text.OutlineOpQuadTo:
			cx, cy := pt(seg.Points[0])
			x, y := pt(seg.Points[1])
			r.dc.QuadraticTo(cx, cy, x, y)
		case text.OutlineOpCubicTo:
			c1x, c1y := pt(seg.Points[0])
			c2x, c2y := pt(seg.Points[1])
			x, y := pt(seg.Points[2])
			r.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
}

// PushOpacity redirects drawing into a layer composited at alpha.
func (r *Raster) PushOpacity(alpha float64) {
	r.dc.PushLayer(gg.BlendNormal, alpha)
	r.layers++
}

func (r *Raster) PopOpacity() {
	if r.layers == 0 {
		return
	}
	r.dc.PopLayer()
	r.layers--
}

// Image returns a snapshot of the current pixels.
func (r *Raster) Image() *image.RGBA {
	_ = r.dc.FlushGPU()
	return r.dc.Image().(*image.RGBA)
}

// Encode returns the pixels as PNG.
func (r *Raster) Encode() ([]byte, error) {
	_ = r.dc.FlushGPU()
	var buf bytes.Buffer
	if err := r.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Raster) Close() error {
	return r.dc.Close()
}

// Factory creates scaled rasters for export.
type Factory struct {
	Font *Font
}

func (f Factory) NewSurface(width, height int, scale float64) (state.OffscreenSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	return NewRaster(width, height, scale, f.Font), nil
}
