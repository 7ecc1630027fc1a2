package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 256, cfg.Canvas.Size)
	assert.Equal(t, 4.0, cfg.Export.Scale)
	assert.Equal(t, "sketchpad.png", cfg.Export.PNGFilename)
	assert.Len(t, cfg.Tools.Stickers, 10)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
log_level = "debug"

[canvas]
size = 128

[tools]
thick = 6
stickers = ["^o^", "★"]

[export]
scale = 2
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Canvas.Size)
	assert.Equal(t, 0.5, cfg.Canvas.PreviewOpacity)
	assert.Equal(t, 6.0, cfg.Tools.Thick)
	assert.Equal(t, 1.0, cfg.Tools.Thin)
	assert.Equal(t, []string{"^o^", "★"}, cfg.Tools.Stickers)
	assert.Equal(t, 2.0, cfg.Export.Scale)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"zero size", "[canvas]\nsize = 0", ErrInvalidSize},
		{"negative scale", "[export]\nscale = -1", ErrInvalidSize},
		{"opacity", "[canvas]\npreview_opacity = 1.5", ErrInvalidOpacity},
		{"control below range", "[tools]\ncontrol = -1", ErrInvalidControl},
		{"control above range", "[tools]\ncontrol = 101", ErrInvalidControl},
		{"empty sticker", "[tools]\nstickers = [\"\"]", ErrInvalidSticker},
		{"duplicate sticker", "[tools]\nstickers = [\"a\", \"a\"]", ErrInvalidSticker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			assert.ErrorIs(t, Parse([]byte(tt.data), &cfg), tt.want)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	cfg := Default()
	assert.Error(t, Parse([]byte("[canvas\nsize = "), &cfg))
}
