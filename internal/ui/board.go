package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// boardWidgetRenderer lays the raster over a white page at canvas size.
// Canvas units map one to one onto fyne units, so pointer positions need
// no conversion.
type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	border     *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.board.image, r.border}
}

func (r *boardWidgetRenderer) Layout(fyne.Size) {
	for _, o := range r.Objects() {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(r.board.size)
	}
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return r.board.size
}

func (r *boardWidgetRenderer) Refresh() {
	r.board.image.Refresh()
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}
