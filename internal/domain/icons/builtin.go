package icons

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/GriffinCanCode/vcbot/internal/domain/palette"
)

// BuiltinSize is the edge length of the built-in glyphs.
const BuiltinSize = 16

// labels are drawn on the built-in glyphs; at most two characters fit.
var labels = map[string]string{
	"and":        "&",
	"breakpoint": "B",
	"buffer":     ">",
	"bus":        "=",
	"clock":      "C",
	"cross":      "+",
	"latchOff":   "L0",
	"latchOn":    "L1",
	"led":        "*",
	"mesh":       "#",
	"nand":       "!&",
	"nor":        "!|",
	"not":        "!",
	"or":         "|",
	"random":     "?",
	"read":       "R",
	"timer":      "T",
	"tunnel":     "@",
	"wireless1":  "W1",
	"wireless2":  "W2",
	"wireless3":  "W3",
	"wireless4":  "W4",
	"write":      "W",
	"xnor":       "!^",
	"xor":        "^",
}

var (
	builtinOnce  sync.Once
	builtinAtlas *Atlas
)

// Builtin returns an atlas of generated glyphs: a frame around a short
// label. It is used when no glyph directory is configured.
func Builtin() *Atlas {
	builtinOnce.Do(func() {
		glyphs := make(map[string]*image.NRGBA, len(palette.GlyphNames))
		for _, name := range palette.GlyphNames {
			glyphs[name] = drawGlyph(labels[name])
		}
		builtinAtlas = newAtlas(glyphs)
	})
	return builtinAtlas
}

func drawGlyph(label string) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, BuiltinSize, BuiltinSize))
	ink := color.NRGBA{A: 255}

	for i := 0; i < BuiltinSize; i++ {
		img.SetNRGBA(i, 0, ink)
		img.SetNRGBA(i, BuiltinSize-1, ink)
		img.SetNRGBA(0, i, ink)
		img.SetNRGBA(BuiltinSize-1, i, ink)
	}

	face := basicfont.Face7x13
	width := font.MeasureString(face, label).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.P((BuiltinSize-width)/2, (BuiltinSize-face.Height)/2+face.Ascent),
	}
	d.DrawString(label)
	return img
}
