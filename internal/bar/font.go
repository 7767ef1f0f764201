// Font loading and text metrics for the bar renderer: TTF rasterization
// via golang/freetype with golang.org/x/image/font metrics, so there is
// no Xft dependency and the bar stays on the same xgb stack as the rest
// of oxwm.
package bar

import (
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Font wraps either a parsed TTF (via freetype) or the stdlib basicfont
// fallback used when the configured fontconfig pattern can't be resolved
// to a file.
type Font struct {
	ttf      *truetype.Font
	size     float64
	fallback font.Face
}

// DefaultFontPath is loaded when no font path is configured; a configured
// path that fails to load falls back to basicfont, not to this file.
var DefaultFontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"

// LoadFont loads a TTF from path at the given point size, falling back to
// basicfont.Face7x13 on any error.
func LoadFont(path string, size float64) *Font {
	f := &Font{size: size}
	if path == "" {
		path = DefaultFontPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		f.fallback = basicfont.Face7x13
		return f
	}
	ttf, err := freetype.ParseFont(data)
	if err != nil {
		f.fallback = basicfont.Face7x13
		return f
	}
	f.ttf = ttf
	return f
}

// Face returns a font.Face sized for rasterization. Used by the text
// layout pass to measure runes before drawing.
func (f *Font) Face() font.Face {
	if f.fallback != nil {
		return f.fallback
	}
	return truetype.NewFace(f.ttf, &truetype.Options{
		Size: f.size,
		DPI:  72,
	})
}

// Height returns the recommended line height in pixels, used to size the
// bar window.
func (f *Font) Height() uint32 {
	m := f.Face().Metrics()
	return uint32(m.Height.Ceil()) + 6 // vertical padding
}

// MeasureString returns the pixel width s would occupy.
func (f *Font) MeasureString(s string) int {
	face := f.Face()
	var width fixed.Int26_6
	for _, r := range s {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		width += adv
	}
	return width.Round()
}
