// Package config loads the sketchpad settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"Canvasticker/internal/state"
)

// Config holds every tunable of the application. Zero values are never
// used directly: Load starts from Default and overlays the file.
type Config struct {
	Title string `toml:"title"`

	Canvas CanvasConfig `toml:"canvas"`
	Tools  ToolsConfig  `toml:"tools"`
	Export ExportConfig `toml:"export"`

	LogLevel string `toml:"log_level"`
}

type CanvasConfig struct {
	Size           int     `toml:"size"`
	PreviewOpacity float64 `toml:"preview_opacity"`
}

type ToolsConfig struct {
	Thin     float64  `toml:"thin"`
	Thick    float64  `toml:"thick"`
	Control  int      `toml:"control"`
	Stickers []string `toml:"stickers"`
	FontPath string   `toml:"font_path"`
	// FallbackFonts are searched, in order, for runes FontPath lacks.
	FallbackFonts []string `toml:"fallback_fonts"`
	// SystemFallbacks adds installed emoji/symbol outline fonts after
	// FallbackFonts.
	SystemFallbacks bool    `toml:"system_fallbacks"`
	GlyphSize       float64 `toml:"glyph_size"`
}

type ExportConfig struct {
	Scale       float64 `toml:"scale"`
	PNGFilename string  `toml:"png_filename"`
	PDFFilename string  `toml:"pdf_filename"`
}

// Default returns the built-in configuration.
func Default() Config {
	stickers := append([]string(nil), state.DefaultStickers...)
	return Config{
		Title: "Canvasticker",
		Canvas: CanvasConfig{
			Size:           256,
			PreviewOpacity: 0.5,
		},
		Tools: ToolsConfig{
			Thin:            1,
			Thick:           4,
			Control:         50,
			Stickers:        stickers,
			SystemFallbacks: true,
			GlyphSize:       18,
		},
		Export: ExportConfig{
			Scale:       4,
			PNGFilename: "sketchpad.png",
			PDFFilename: "sketchpad.pdf",
		},
		LogLevel: "info",
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "canvasticker", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse overlays TOML data onto cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return cfg.Validate()
}

var (
	ErrInvalidSize    = errors.New("sizes must be positive")
	ErrInvalidOpacity = errors.New("preview opacity must be in (0, 1]")
	ErrInvalidSticker = errors.New("stickers must be non-empty and unique")
	ErrInvalidControl = errors.New("tools.control must be in [0, 100]")
)

// Validate checks ranges and the sticker list.
func (c Config) Validate() error {
	if c.Canvas.Size <= 0 || c.Export.Scale <= 0 || c.Tools.Thin <= 0 || c.Tools.Thick <= 0 || c.Tools.GlyphSize <= 0 {
		return ErrInvalidSize
	}
	if c.Canvas.PreviewOpacity <= 0 || c.Canvas.PreviewOpacity > 1 {
		return ErrInvalidOpacity
	}
	if c.Tools.Control < 0 || c.Tools.Control > 100 {
		return ErrInvalidControl
	}
	seen := make(map[string]bool, len(c.Tools.Stickers))
	for _, s := range c.Tools.Stickers {
		if strings.TrimSpace(s) == "" || seen[s] {
			return fmt.Errorf("%w: %q", ErrInvalidSticker, s)
		}
		seen[s] = true
	}
	return nil
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
