package ui

import (
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"Canvasticker/internal/state"
)

// ExportFormat is one "Export" button: a surface factory plus the file
// name offered in the save dialog.
type ExportFormat struct {
	Label    string
	Filename string
	Factory  state.SurfaceFactory
	Scale    float64
}

// Export renders the committed drawing in format f.
func (b *BoardWidget) Export(f ExportFormat) ([]byte, error) {
	data, err := b.session.Export(f.Factory, f.Scale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Label, err)
	}
	return data, nil
}

// SaveToFile exports in format f and writes the result to writer, which
// is always closed.
func (b *BoardWidget) SaveToFile(writer io.WriteCloser, f ExportFormat) error {
	defer func() {
		if err := writer.Close(); err != nil {
			state.Logger().Warn("closing export file", slog.Any("err", err))
		}
	}()

	data, err := b.Export(f)
	if err != nil {
		b.SetStatus("Export failed")
		return err
	}
	if _, err := writer.Write(data); err != nil {
		b.SetStatus("Error writing file")
		return fmt.Errorf("write %s: %w", f.Label, err)
	}
	b.SetStatus(fmt.Sprintf("Exported %d drawings as %s", b.session.History().Len(), f.Label))
	state.Logger().Info("saved export",
		slog.String("format", f.Label),
		slog.Int("bytes", len(data)),
	)
	return nil
}

// showExportDialog asks where to save and then writes the export there.
func showExportDialog(win fyne.Window, board *BoardWidget, f ExportFormat) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		if err := board.SaveToFile(writer, f); err != nil {
			dialog.ShowError(err, win)
		}
	}, win)
	d.SetFileName(f.Filename)
	d.Show()
}
