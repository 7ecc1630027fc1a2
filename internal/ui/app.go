package ui

import (
	"fmt"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"Canvasticker/internal/config"
	"Canvasticker/internal/export"
	"Canvasticker/internal/render"
	"Canvasticker/internal/state"
)

// NewBoard builds a session drawing onto a live raster sized from cfg.
func NewBoard(cfg config.Config, font *render.Font) *BoardWidget {
	size := cfg.Canvas.Size
	raster := render.NewRaster(size, size, 1, font)
	tools := state.NewToolState(cfg.Tools.Thin, cfg.Tools.Thick, cfg.Tools.Stickers, cfg.Tools.Control)
	session := state.NewSession(raster, tools, state.Options{
		Width:          size,
		Height:         size,
		PreviewOpacity: cfg.Canvas.PreviewOpacity,
	})
	b := NewBoardWidget(session, raster)
	session.Replay()
	b.sync()
	return b
}

// ExportFormats returns the PNG and PDF exports configured in cfg.
func ExportFormats(cfg config.Config, font *render.Font) []ExportFormat {
	return []ExportFormat{
		{
			Label:    "PNG",
			Filename: cfg.Export.PNGFilename,
			Factory:  render.Factory{Font: font},
			Scale:    cfg.Export.Scale,
		},
		{
			Label:    "PDF",
			Filename: cfg.Export.PDFFilename,
			Factory:  export.PDFFactory{FontSize: cfg.Tools.GlyphSize},
			Scale:    cfg.Export.Scale,
		},
	}
}

// RunApp opens the sketchpad window and blocks until it is closed.
func RunApp(cfg config.Config) error {
	fallbacks := slices.Clone(cfg.Tools.FallbackFonts)
	if cfg.Tools.SystemFallbacks {
		fallbacks = append(fallbacks, render.SystemFallbackFonts()...)
	}
	font, err := render.LoadFont(cfg.Tools.FontPath, cfg.Tools.GlyphSize, fallbacks...)
	if err != nil {
		return fmt.Errorf("loading sticker font: %w", err)
	}
	defer func() { _ = font.Close() }()

	myApp := app.New()
	myWindow := myApp.NewWindow(cfg.Title)

	board := NewBoard(cfg, font)
	defer func() { _ = board.raster.Close() }()

	toolbar := NewToolbar(board, myWindow, ExportFormats(cfg, font))

	content := container.NewBorder(toolbar.CanvasObject(), board.StatusBar(), nil, nil, container.NewCenter(board))
	myWindow.SetContent(content)
	side := float32(cfg.Canvas.Size)
	myWindow.Resize(fyne.NewSize(side+400, side+200))
	myWindow.ShowAndRun()
	return nil
}
