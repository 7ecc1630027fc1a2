package state

import (
	"log/slog"
)

// Mode is the pointer interaction state of a Session.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModePlacing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDrawing:
		return "drawing"
	case ModePlacing:
		return "placing"
	default:
		return "unknown"
	}
}

// DefaultPreviewOpacity is the blend factor for preview commands.
const DefaultPreviewOpacity = 0.5

// Options configures a Session.
type Options struct {
	Width, Height  int
	PreviewOpacity float64
}

// Session ties the history, the tool state and the live surface together.
// It turns pointer and button events into history mutations and redraws
// the live surface from scratch after each one, so the displayed image is
// always a function of the committed log and the active preview.
//
// Session is not safe for concurrent use.
type Session struct {
	history *History
	tools   *ToolState
	surface Surface

	width, height int
	opacity       float64

	mode    Mode
	active  *Stroke
	preview Command
	pointer Point
	inside  bool

	// OnChanged is called after every replay.
	OnChanged func()
}

// NewSession returns a session drawing onto surface.
func NewSession(surface Surface, tools *ToolState, opts Options) *Session {
	if opts.PreviewOpacity <= 0 || opts.PreviewOpacity > 1 {
		opts.PreviewOpacity = DefaultPreviewOpacity
	}
	s := &Session{
		history: NewHistory(),
		tools:   tools,
		surface: surface,
		width:   opts.Width,
		height:  opts.Height,
		opacity: opts.PreviewOpacity,
	}
	s.mode = s.restingMode()
	Logger().Info("session started",
		slog.String("session", SessionID()),
		slog.Int("width", opts.Width),
		slog.Int("height", opts.Height),
	)
	return s
}

func (s *Session) History() *History { return s.history }

func (s *Session) Tools() *ToolState { return s.tools }

func (s *Session) Mode() Mode { return s.mode }

// Preview returns the uncommitted command shown at reduced opacity, or nil.
func (s *Session) Preview() Command { return s.preview }

func (s *Session) Size() (width, height int) { return s.width, s.height }

func (s *Session) restingMode() Mode {
	if s.tools.Placing() {
		return ModePlacing
	}
	return ModeIdle
}

// PointerDown starts a stroke when a marker is selected. The stroke is
// committed right away so that a click without drag can be undone.
// A stroke left open by a release outside the surface stays committed as
// it is and is no longer extended; the new stroke replaces it as active.
func (s *Session) PointerDown(p Point) {
	s.pointer = p
	if s.mode == ModePlacing {
		return
	}
	stroke := NewStroke(p, s.tools.Snapshot())
	s.history.Commit(stroke)
	s.active = stroke
	s.preview = nil
	s.mode = ModeDrawing
	s.changed()
}

func (s *Session) PointerMove(p Point) {
	s.pointer = p
	s.inside = true
	switch s.mode {
	case ModeDrawing:
		s.active.Extend(p)
	case ModePlacing:
		s.placePreview(p)
	default:
		s.preview = NewCursorPreview(p, s.tools.Thickness())
	}
	s.changed()
}

// PointerUp finishes the active stroke, or drops a sticker while placing.
func (s *Session) PointerUp(p Point) {
	s.pointer = p
	switch s.mode {
	case ModeDrawing:
		s.active = nil
		s.mode = s.restingMode()
	case ModePlacing:
		snap := s.tools.Snapshot()
		s.history.Commit(NewSticker(p, snap.Tool.Glyph, snap))
	default:
		return
	}
	s.changed()
}

func (s *Session) PointerEnter(p Point) {
	s.pointer = p
	s.inside = true
	s.refreshPreview()
	s.changed()
}

func (s *Session) PointerLeave() {
	s.inside = false
	s.preview = nil
	s.changed()
}

// SelectTool selects tool i, switching between idle and placing.
func (s *Session) SelectTool(i int) bool {
	if !s.tools.Select(i) {
		return false
	}
	s.active = nil
	s.mode = s.restingMode()
	s.refreshPreview()
	Logger().Debug("tool selected",
		slog.Int("index", i),
		slog.String("tool", s.tools.Active().Label),
		slog.String("mode", s.mode.String()),
	)
	s.changed()
	return true
}

// SetControl updates the shared hue/rotation control. Commands that
// already exist keep the values they were created with.
func (s *Session) SetControl(v int) {
	s.tools.SetControl(v)
	if s.mode == ModePlacing && s.inside {
		s.refreshPreview()
		s.changed()
	}
}

// AddSticker registers a new sticker tool.
func (s *Session) AddSticker(glyph string) error {
	if err := s.tools.AddSticker(glyph); err != nil {
		Logger().Warn("sticker rejected", slog.String("glyph", glyph), slog.Any("err", err))
		return err
	}
	Logger().Debug("sticker added", slog.String("glyph", glyph))
	return nil
}

func (s *Session) Undo() bool {
	if !s.history.Undo() {
		return false
	}
	s.endStroke()
	s.changed()
	return true
}

func (s *Session) Redo() bool {
	if !s.history.Redo() {
		return false
	}
	s.endStroke()
	s.changed()
	return true
}

func (s *Session) Clear() {
	s.history.Clear()
	s.endStroke()
	s.changed()
}

// Export encodes the committed drawing on a surface from f scaled by scale.
func (s *Session) Export(f SurfaceFactory, scale float64) ([]byte, error) {
	return s.history.Export(f, s.width, s.height, scale)
}

// Replay redraws the live surface from the committed log, then the
// preview at reduced opacity.
func (s *Session) Replay() {
	s.surface.Clear()
	s.history.Render(s.surface)
	if s.preview != nil {
		s.surface.PushOpacity(s.opacity)
		s.preview.Render(s.surface)
		s.surface.PopOpacity()
	}
}

func (s *Session) endStroke() {
	if s.active == nil {
		return
	}
	s.active = nil
	s.mode = s.restingMode()
}

func (s *Session) refreshPreview() {
	if !s.inside {
		s.preview = nil
		return
	}
	switch s.mode {
	case ModePlacing:
		s.preview = nil
		s.placePreview(s.pointer)
	case ModeIdle:
		s.preview = NewCursorPreview(s.pointer, s.tools.Thickness())
	default:
		s.preview = nil
	}
}

// placePreview moves the ghost sticker to p, creating it if the glyph or
// rotation no longer match the selected tool.
func (s *Session) placePreview(p Point) {
	snap := s.tools.Snapshot()
	if g, ok := s.preview.(*Sticker); ok && g.glyph == snap.Tool.Glyph && g.rotation == snap.Rotation {
		g.Reposition(StickerAnchor(p))
		return
	}
	s.preview = NewSticker(p, snap.Tool.Glyph, snap)
}

func (s *Session) changed() {
	s.Replay()
	if s.OnChanged != nil {
		s.OnChanged()
	}
}
