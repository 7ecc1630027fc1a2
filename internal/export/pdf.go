// Package export renders a drawing onto a vector PDF page.
package export

import (
	"bytes"
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"sync"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"Canvasticker/internal/state"
)

const fontFamily = "goregular"

var embeddedFont = sync.OnceValues(func() (*sfnt.Font, error) {
	return sfnt.Parse(goregular.TTF)
})

// printable keeps the runes of glyph that the embedded font maps to a real
// glyph. gofpdf's subsetter only addresses the Basic Multilingual Plane,
// so anything above it is dropped too.
func printable(glyph string) string {
	f, err := embeddedFont()
	if err != nil {
		return ""
	}
	var (
		buf sfnt.Buffer
		out strings.Builder
	)
	for _, r := range glyph {
		if r > 0xFFFF {
			continue
		}
		if idx, err := f.GlyphIndex(&buf, r); err != nil || idx == 0 {
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// PDFSurface draws onto a single PDF page sized to the scaled canvas.
// Coordinates are multiplied by the scale before they reach gofpdf.
type PDFSurface struct {
	pdf      *gofpdf.Fpdf
	scale    float64
	fontSize float64
	alphas   []float64
}

var _ state.OffscreenSurface = (*PDFSurface)(nil)

// NewPDFSurface starts a width x height point page scaled by scale.
// Sticker glyphs are set at fontSize canvas units.
func NewPDFSurface(width, height int, scale, fontSize float64) *PDFSurface {
	if scale <= 0 {
		scale = 1
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(width) * scale, Ht: float64(height) * scale},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddUTF8FontFromBytes(fontFamily, "", goregular.TTF)
	p.AddPage()
	p.SetFont(fontFamily, "", fontSize*scale)
	p.SetLineCapStyle("butt")
	return &PDFSurface{pdf: p, scale: scale, fontSize: fontSize}
}

// Clear is a no-op: a new page is already blank and PDF content cannot be
// erased.
func (s *PDFSurface) Clear() {}

func (s *PDFSurface) SetColor(c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	s.pdf.SetDrawColor(int(n.R), int(n.G), int(n.B))
	s.pdf.SetFillColor(int(n.R), int(n.G), int(n.B))
	s.pdf.SetTextColor(int(n.R), int(n.G), int(n.B))
}

func (s *PDFSurface) SetLineWidth(w float64) {
	s.pdf.SetLineWidth(w * s.scale)
}

func (s *PDFSurface) MoveTo(p state.Point) {
	s.pdf.MoveTo(p.X*s.scale, p.Y*s.scale)
}

func (s *PDFSurface) LineTo(p state.Point) {
	s.pdf.LineTo(p.X*s.scale, p.Y*s.scale)
}

func (s *PDFSurface) Stroke() {
	s.pdf.DrawPath("D")
}

func (s *PDFSurface) FillCircle(center state.Point, radius float64) {
	s.pdf.Circle(center.X*s.scale, center.Y*s.scale, radius*s.scale, "F")
}

// DrawText sets glyph on its baseline. gofpdf rotates counter-clockwise,
// so the angle is negated to match the raster surface. Runes the embedded
// font cannot show are dropped.
func (s *PDFSurface) DrawText(glyph string, at state.Point, rotation float64) {
	glyph = printable(glyph)
	if glyph == "" {
		return
	}
	x, y := at.X*s.scale, at.Y*s.scale
	s.pdf.TransformBegin()
	s.pdf.TransformRotate(-rotation, x, y)
	s.pdf.Text(x, y, glyph)
	s.pdf.TransformEnd()
}

func (s *PDFSurface) PushOpacity(alpha float64) {
	s.alphas = append(s.alphas, alpha)
	s.pdf.SetAlpha(alpha, "Normal")
}

func (s *PDFSurface) PopOpacity() {
	if len(s.alphas) == 0 {
		return
	}
	s.alphas = s.alphas[:len(s.alphas)-1]
	alpha := 1.0
	if n := len(s.alphas); n > 0 {
		alpha = s.alphas[n-1]
	}
	s.pdf.SetAlpha(alpha, "Normal")
}

// Encode closes the document and returns its bytes. A panic inside
// gofpdf is returned as an error.
func (s *PDFSurface) Encode() (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			state.Logger().Error("pdf output panicked", slog.Any("panic", r))
			data, err = nil, fmt.Errorf("write pdf: %v", r)
		}
	}()
	var buf bytes.Buffer
	if err := s.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// PDFFactory creates PDF export surfaces.
type PDFFactory struct {
	FontSize float64
}

func (f PDFFactory) NewSurface(width, height int, scale float64) (state.OffscreenSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid page size %dx%d", width, height)
	}
	size := f.FontSize
	if size <= 0 {
		size = 18
	}
	s := NewPDFSurface(width, height, scale, size)
	if err := s.pdf.Error(); err != nil {
		return nil, fmt.Errorf("start pdf: %w", err)
	}
	return s, nil
}
