package ui

import (
	"errors"
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"Canvasticker/internal/state"
)

// DefaultStickerText prefills the "Add Sticker" dialog.
const DefaultStickerText = "^o^"

// --- Swatch showing the colour new strokes will get ---
type colorSwatch struct {
	widget.BaseWidget
	rect *canvas.Rectangle
}

func newColorSwatch(c color.Color) *colorSwatch {
	s := &colorSwatch{rect: canvas.NewRectangle(c)}
	s.rect.SetMinSize(fyne.NewSize(32, 32))
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) SetColor(c color.Color) {
	s.rect.FillColor = c
	s.rect.Refresh()
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1
	return widget.NewSimpleRenderer(container.NewStack(s.rect, border))
}

// Toolbar holds the action buttons, one button per tool and the shared
// hue/rotation slider.
type Toolbar struct {
	board   *BoardWidget
	window  fyne.Window
	formats []ExportFormat

	undo, redo *widget.Button
	tools      []*widget.Button
	toolBox    *fyne.Container
	slider     *widget.Slider
	swatch     *colorSwatch
	content    fyne.CanvasObject
}

// NewToolbar builds the toolbar. Dialogs are shown on window.
func NewToolbar(board *BoardWidget, window fyne.Window, formats []ExportFormat) *Toolbar {
	t := &Toolbar{board: board, window: window, formats: formats}
	session := board.Session()

	clearBtn := widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), session.Clear)
	t.undo = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), func() { session.Undo() })
	t.redo = widget.NewButtonWithIcon("Redo", theme.ContentRedoIcon(), func() { session.Redo() })
	actions := container.NewHBox(clearBtn, t.undo, t.redo, widget.NewSeparator())
	for _, f := range formats {
		actions.Add(widget.NewButtonWithIcon("Export "+f.Label, theme.DocumentSaveIcon(), func() {
			showExportDialog(window, board, f)
		}))
	}

	t.toolBox = container.NewHBox()
	t.rebuildTools()
	add := widget.NewButtonWithIcon("Add Sticker", theme.ContentAddIcon(), t.showAddSticker)

	t.slider = widget.NewSlider(0, 100)
	t.slider.Step = 1
	t.slider.SetValue(float64(session.Tools().Control()))
	t.swatch = newColorSwatch(state.HueColor(session.Tools().Snapshot().Hue))
	t.slider.OnChanged = func(v float64) {
		session.SetControl(int(v))
		t.swatch.SetColor(state.HueColor(session.Tools().Snapshot().Hue))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(200, 35)), t.slider)

	t.content = container.NewVBox(
		actions,
		container.NewHBox(
			widget.NewLabel("Tool:"),
			container.NewHScroll(t.toolBox),
			add,
		),
		container.NewHBox(
			widget.NewLabel("Hue / Rotation:"),
			sliderContainer,
			t.swatch,
			layout.NewSpacer(),
		),
	)

	prev := board.OnChanged
	board.OnChanged = func() {
		if prev != nil {
			prev()
		}
		t.update()
	}
	t.update()
	return t
}

func (t *Toolbar) CanvasObject() fyne.CanvasObject { return t.content }

// rebuildTools recreates the tool buttons, e.g. after a sticker is added.
func (t *Toolbar) rebuildTools() {
	session := t.board.Session()
	tools := session.Tools().Tools()
	t.tools = make([]*widget.Button, len(tools))
	t.toolBox.RemoveAll()
	for i, tool := range tools {
		btn := widget.NewButton(tool.Label, func() { session.SelectTool(i) })
		t.tools[i] = btn
		t.toolBox.Add(btn)
	}
	t.update()
}

// update highlights the selected tool and enables undo/redo as allowed.
func (t *Toolbar) update() {
	session := t.board.Session()
	for i, btn := range t.tools {
		want := widget.MediumImportance
		if session.Tools().IsSelected(i) {
			want = widget.HighImportance
		}
		if btn.Importance != want {
			btn.Importance = want
			btn.Refresh()
		}
	}
	if t.undo == nil {
		return
	}
	setEnabled(t.undo, session.History().CanUndo())
	setEnabled(t.redo, session.History().CanRedo())
}

func setEnabled(btn *widget.Button, on bool) {
	if on {
		btn.Enable()
	} else {
		btn.Disable()
	}
}

func (t *Toolbar) showAddSticker() {
	entry := widget.NewEntry()
	entry.SetText(DefaultStickerText)
	items := []*widget.FormItem{widget.NewFormItem("Sticker", entry)}
	dialog.ShowForm("Add Sticker", "Add", "Cancel", items, func(ok bool) {
		if ok {
			t.AddSticker(entry.Text)
		}
	}, t.window)
}

// AddSticker adds a sticker tool and reports rejected input to the user.
func (t *Toolbar) AddSticker(glyph string) {
	err := t.board.Session().AddSticker(glyph)
	switch {
	case errors.Is(err, state.ErrEmptySticker):
		dialog.ShowInformation("Add Sticker", "Stickers can't be blank.", t.window)
	case errors.Is(err, state.ErrDuplicateSticker):
		dialog.ShowInformation("Add Sticker", fmt.Sprintf("%q is already a sticker.", glyph), t.window)
	case err != nil:
		dialog.ShowError(err, t.window)
	default:
		t.rebuildTools()
		t.board.SetStatus(fmt.Sprintf("Added sticker %s", glyph))
	}
}
