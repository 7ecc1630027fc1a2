package render

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg/text"
	"github.com/gogpu/gg/text/emoji"
	"golang.org/x/image/font/gofont/goregular"

	"Canvasticker/internal/state"
)

// DefaultGlyphSize is the sticker glyph size in canvas units.
const DefaultGlyphSize = 18

// systemFallbacks are outline fonts with emoji or symbol coverage that
// are commonly installed. Colour bitmap fonts are left out since they
// carry no outlines.
var systemFallbacks = []string{
	"/usr/share/fonts/truetype/noto/NotoEmoji-Regular.ttf",
	"/usr/share/fonts/noto/NotoEmoji-Regular.ttf",
	"/usr/share/fonts/google-noto-emoji/NotoEmoji-Regular.ttf",
	"/usr/share/fonts/truetype/ancient-scripts/Symbola_hint.ttf",
	"/usr/share/fonts/TTF/Symbola.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Apple Symbols.ttf",
}

// SystemFallbackFonts returns the installed fonts from systemFallbacks.
func SystemFallbackFonts() []string {
	var found []string
	for _, p := range systemFallbacks {
		if _, err := os.Stat(p); err == nil {
			found = append(found, p)
		}
	}
	return found
}

// Font turns sticker text into glyph outlines at a fixed size. Runes are
// looked up in the primary source first, then in each fallback; a rune
// none of them maps is skipped. Outlines are cached per rune.
// A Font is not safe for concurrent use.
type Font struct {
	sources   []*text.FontSource
	size      float64
	extractor *text.OutlineExtractor
	outlines  map[rune]*text.GlyphOutline
}

// LoadFont loads the TTF/OTF file at path, or the built-in Go Regular face
// when path is empty, followed by the given fallback files.
func LoadFont(path string, size float64, fallbacks ...string) (*Font, error) {
	if size <= 0 {
		size = DefaultGlyphSize
	}
	var (
		src *text.FontSource
		err error
	)
	if path == "" {
		src, err = text.NewFontSource(goregular.TTF)
	} else {
		src, err = text.NewFontSourceFromFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", path, err)
	}
	f := &Font{
		sources:   []*text.FontSource{src},
		size:      size,
		extractor: text.NewOutlineExtractor(),
		outlines:  make(map[rune]*text.GlyphOutline),
	}
	for _, fb := range fallbacks {
		s, err := text.NewFontSourceFromFile(fb)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("load fallback font %q: %w", fb, err)
		}
		f.sources = append(f.sources, s)
	}
	state.Logger().Debug("font loaded",
		slog.String("name", src.Name()),
		slog.Int("fallbacks", len(fallbacks)),
		slog.Float64("size", size),
	)
	return f, nil
}

func (f *Font) Size() float64 { return f.size }

// outline returns the outline of r, or nil if no source maps it.
// Glyph index 0 is the missing-glyph box and counts as unmapped.
func (f *Font) outline(r rune) *text.GlyphOutline {
	if o, ok := f.outlines[r]; ok {
		return o
	}
	var o *text.GlyphOutline
	if !emoji.IsVariationSelector(r) && !emoji.IsZWJ(r) {
		o = f.lookup(r)
	}
	f.outlines[r] = o
	return o
}

func (f *Font) lookup(r rune) *text.GlyphOutline {
	for _, src := range f.sources {
		parsed := src.Parsed()
		gid := parsed.GlyphIndex(r)
		if gid == 0 {
			continue
		}
		o, err := f.extractor.ExtractOutline(parsed, text.GlyphID(gid), f.size)
		if err != nil {
			state.Logger().Debug("no outline", slog.String("rune", string(r)), slog.Any("err", err))
			continue
		}
		return o
	}
	state.Logger().Debug("glyph not in any font",
		slog.String("rune", string(r)),
		slog.Bool("emoji", emoji.IsEmoji(r)),
	)
	return nil
}

func (f *Font) Close() error {
	var errs []error
	for _, src := range f.sources {
		errs = append(errs, src.Close())
	}
	return errors.Join(errs...)
}
