package ui

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"Canvasticker/internal/render"
	"Canvasticker/internal/state"
)

// BoardWidget shows the live raster and forwards pointer events to the
// session. The raster is redrawn by the session after every change and
// copied into the image here.
type BoardWidget struct {
	widget.BaseWidget
	session   *state.Session
	raster    *render.Raster
	image     *canvas.Image
	statusBar *widget.Label
	size      fyne.Size

	// OnChanged runs after the displayed image has been refreshed.
	OnChanged func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(session *state.Session, raster *render.Raster) *BoardWidget {
	w, h := session.Size()
	b := &BoardWidget{
		session:   session,
		raster:    raster,
		statusBar: widget.NewLabel("Ready"),
		size:      fyne.NewSize(float32(w), float32(h)),
	}
	b.image = canvas.NewImageFromImage(raster.Image())
	b.image.FillMode = canvas.ImageFillStretch
	b.image.ScaleMode = canvas.ImageScaleFastest
	b.image.SetMinSize(b.size)
	session.OnChanged = b.sync
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) Session() *state.Session { return b.session }

func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

func (b *BoardWidget) SetStatus(text string) {
	b.statusBar.SetText(text)
}

// sync copies the freshly replayed raster into the displayed image.
func (b *BoardWidget) sync() {
	b.image.Image = b.raster.Image()
	b.image.Refresh()
	if b.OnChanged != nil {
		b.OnChanged()
	}
}

func toPoint(p fyne.Position) state.Point {
	return state.Pt(float64(p.X), float64(p.Y))
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.session.PointerDown(toPoint(e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.session.PointerUp(toPoint(e.Position))
	state.Logger().Debug("pointer up",
		slog.String("mode", b.session.Mode().String()),
		slog.Int("commands", b.session.History().Len()),
	)
}

func (b *BoardWidget) MouseIn(e *desktop.MouseEvent) {
	b.session.PointerEnter(toPoint(e.Position))
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.session.PointerMove(toPoint(e.Position))
}

func (b *BoardWidget) MouseOut() {
	b.session.PointerLeave()
}

// Dragged is delivered instead of MouseMoved while the button is held.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.session.PointerMove(toPoint(e.Position))
}

// DragEnd is followed by MouseUp, which finishes the gesture.
func (b *BoardWidget) DragEnd() {}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	r.border = canvas.NewRectangle(color.Transparent)
	r.border.StrokeColor = color.Gray{Y: 150}
	r.border.StrokeWidth = 1
	return r
}
