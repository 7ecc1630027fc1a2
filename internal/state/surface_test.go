package state

import (
	"errors"
	"fmt"
	"image/color"
)

// recorder is a Surface that logs every call.
type recorder struct {
	ops     []string
	scale   float64
	encoded int
	closed  bool
}

func (r *recorder) log(format string, args ...any) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
}

func (r *recorder) Clear()                 { r.log("clear") }
func (r *recorder) SetColor(c color.Color) { r.log("color %v", color.NRGBAModel.Convert(c)) }
func (r *recorder) SetLineWidth(w float64) { r.log("width %g", w) }
func (r *recorder) MoveTo(p Point)         { r.log("move %g,%g", p.X, p.Y) }
func (r *recorder) LineTo(p Point)         { r.log("line %g,%g", p.X, p.Y) }
func (r *recorder) Stroke()                { r.log("stroke") }
func (r *recorder) FillCircle(c Point, radius float64) {
	r.log("circle %g,%g r%g", c.X, c.Y, radius)
}
func (r *recorder) DrawText(g string, at Point, rot float64) {
	r.log("text %s %g,%g %g", g, at.X, at.Y, rot)
}
func (r *recorder) PushOpacity(a float64) { r.log("push %g", a) }
func (r *recorder) PopOpacity()           { r.log("pop") }

func (r *recorder) Encode() ([]byte, error) {
	r.encoded++
	return []byte(fmt.Sprint(r.ops)), nil
}

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

func (r *recorder) reset() { r.ops = nil }

// recorderFactory hands out recorders and remembers them.
type recorderFactory struct {
	made []*recorder
	err  error
}

func (f *recorderFactory) NewSurface(width, height int, scale float64) (OffscreenSurface, error) {
	if f.err != nil {
		return nil, f.err
	}
	r := &recorder{scale: scale}
	f.made = append(f.made, r)
	return r, nil
}

var errNoSurface = errors.New("no surface")
