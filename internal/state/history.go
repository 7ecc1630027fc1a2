package state

import (
	"fmt"
	"io"
	"log/slog"
)

// History is the ordered log of committed commands plus the redo buffer.
// A command is held by exactly one of the two at a time.
//
// History is not safe for concurrent use; all calls are expected from the
// UI goroutine.
type History struct {
	committed []Command
	redo      []Command // most recently undone last
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Commit appends cmd and discards every pending redo.
func (h *History) Commit(cmd Command) {
	h.committed = append(h.committed, cmd)
	h.redo = nil
	Logger().Debug("commit",
		slog.String("id", cmd.ID()),
		slog.String("cmd", cmd.Description()),
		slog.Uint64("seq", nextSequence()),
	)
}

// Undo moves the last committed command onto the redo buffer.
// It reports false and does nothing when there is nothing to undo.
func (h *History) Undo() bool {
	if len(h.committed) == 0 {
		return false
	}
	last := h.committed[len(h.committed)-1]
	h.committed = h.committed[:len(h.committed)-1]
	h.redo = append(h.redo, last)
	Logger().Debug("undo", slog.String("id", last.ID()))
	return true
}

// Redo moves the most recently undone command back onto the log.
// It reports false and does nothing when the redo buffer is empty.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.committed = append(h.committed, last)
	Logger().Debug("redo", slog.String("id", last.ID()))
	return true
}

// Clear drops every command from both the log and the redo buffer.
func (h *History) Clear() {
	h.committed = nil
	h.redo = nil
	Logger().Debug("clear")
}

// Committed returns the visible commands in draw order.
func (h *History) Committed() []Command {
	out := make([]Command, len(h.committed))
	copy(out, h.committed)
	return out
}

// Redoable returns the redo buffer, most recently undone last.
func (h *History) Redoable() []Command {
	out := make([]Command, len(h.redo))
	copy(out, h.redo)
	return out
}

// Last returns the most recently committed command, or nil.
func (h *History) Last() Command {
	if len(h.committed) == 0 {
		return nil
	}
	return h.committed[len(h.committed)-1]
}

func (h *History) Len() int { return len(h.committed) }

func (h *History) CanUndo() bool { return len(h.committed) > 0 }

func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Render draws every committed command onto s in commit order.
func (h *History) Render(s Surface) {
	for _, cmd := range h.committed {
		cmd.Render(s)
	}
}

// Export renders the log onto a fresh width x height surface scaled by
// scale and returns the encoded result. Neither the history nor any live
// surface is touched. A surface implementing io.Closer is closed
// once encoded.
func (h *History) Export(f SurfaceFactory, width, height int, scale float64) ([]byte, error) {
	surf, err := f.NewSurface(width, height, scale)
	if err != nil {
		return nil, fmt.Errorf("create export surface: %w", err)
	}
	if c, ok := surf.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				Logger().Warn("close export surface", slog.Any("err", err))
			}
		}()
	}
	surf.Clear()
	h.Render(surf)
	data, err := surf.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	Logger().Info("export",
		slog.Int("commands", len(h.committed)),
		slog.Float64("scale", scale),
		slog.Int("bytes", len(data)),
	)
	return data, nil
}
