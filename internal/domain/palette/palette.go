package palette

import (
	"image/color"
	"strings"
)

// Group aggregates several ink channels under one report line.
type Group string

const (
	GroupNone  Group = ""
	GroupBus   Group = "Bus"
	GroupTrace Group = "Trace"
)

// Category is one classified ink.
type Category struct {
	Name  string     // report name, e.g. "And" or "Trace7"
	Color color.RGBA // exact colour as stored in the logic layer
	Group Group
}

// Key returns the 24-bit RGB key of the category colour.
func (c Category) Key() uint32 {
	return RGB(c.Color.R, c.Color.G, c.Color.B)
}

// RGB packs three channels into a 24-bit key.
func RGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// categories lists every known ink in report order.
var categories = []Category{
	cat("Cross", 102, 120, 142),
	cat("Tunnel", 83, 85, 114),
	cat("Mesh", 100, 106, 87),
	cat("Bus1", 122, 47, 36),
	cat("Bus2", 62, 122, 36),
	cat("Bus3", 36, 65, 122),
	cat("Bus4", 37, 98, 122),
	cat("Bus5", 122, 45, 102),
	cat("Bus6", 122, 112, 36),
	cat("Write", 77, 56, 62),
	cat("Read", 46, 71, 93),
	cat("Trace1", 42, 53, 65),
	cat("Trace2", 159, 168, 174),
	cat("Trace3", 161, 85, 94),
	cat("Trace4", 161, 108, 86),
	cat("Trace5", 161, 133, 86),
	cat("Trace6", 161, 152, 86),
	cat("Trace7", 153, 161, 86),
	cat("Trace8", 136, 161, 86),
	cat("Trace9", 108, 161, 86),
	cat("Trace10", 86, 161, 141),
	cat("Trace11", 86, 147, 161),
	cat("Trace12", 86, 123, 161),
	cat("Trace13", 86, 98, 161),
	cat("Trace14", 102, 86, 161),
	cat("Trace15", 135, 86, 161),
	cat("Trace16", 161, 85, 151),
	cat("Buffer", 146, 255, 99),
	cat("And", 255, 198, 99),
	cat("Or", 99, 242, 255),
	cat("Xor", 174, 116, 255),
	cat("Not", 255, 98, 138),
	cat("Nand", 255, 162, 0),
	cat("Nor", 48, 217, 255),
	cat("Xnor", 166, 0, 255),
	cat("LatchOn", 99, 255, 159),
	cat("LatchOff", 56, 77, 71),
	cat("Clock", 255, 0, 65),
	cat("LED", 255, 255, 255),
	cat("Timer", 255, 103, 0),
	cat("Random", 229, 255, 0),
	cat("Break", 224, 0, 0),
	cat("Wifi0", 255, 0, 191),
	cat("Wifi1", 255, 0, 175),
	cat("Wifi2", 255, 0, 159),
	cat("Wifi3", 255, 0, 143),
	cat("Annotation", 58, 69, 81),
	cat("Filler", 140, 171, 161),
}

// glyphs maps icon-bearing inks to the glyph drawn over them. Several bus
// channels share one glyph.
var glyphs = map[uint32]string{
	0xFFC663: "and",
	0xE00000: "breakpoint",
	0x92FF63: "buffer",
	0x7A7024: "bus",
	0x24417A: "bus",
	0x25627A: "bus",
	0x3E7A24: "bus",
	0x7A2D66: "bus",
	0x7A2F24: "bus",
	0xFF0041: "clock",
	0x66788E: "cross",
	0x384D47: "latchOff",
	0x63FF9F: "latchOn",
	0xFFFFFF: "led",
	0x646A57: "mesh",
	0xFFA200: "nand",
	0x30D9FF: "nor",
	0xFF628A: "not",
	0x63F2FF: "or",
	0xE5FF00: "random",
	0x2E475D: "read",
	0xFF6700: "timer",
	0x535572: "tunnel",
	0xFF00BF: "wireless1",
	0xFF00AF: "wireless2",
	0xFF009F: "wireless3",
	0xFF008F: "wireless4",
	0x4D383E: "write",
	0xA600FF: "xnor",
	0xAE74FF: "xor",
}

// GlyphNames lists every glyph an icon atlas must provide.
var GlyphNames = []string{
	"and", "breakpoint", "buffer", "bus", "clock", "cross", "latchOff", "latchOn",
	"led", "mesh", "nand", "nor", "not", "or", "random", "read", "timer", "tunnel",
	"wireless1", "wireless2", "wireless3", "wireless4", "write", "xnor", "xor",
}

var byColor map[color.RGBA]int

func init() {
	byColor = make(map[color.RGBA]int, len(categories))
	for i, c := range categories {
		byColor[c.Color] = i
	}
}

func cat(name string, r, g, b uint8) Category {
	c := Category{Name: name, Color: color.RGBA{R: r, G: g, B: b, A: 255}}
	switch {
	case strings.HasPrefix(name, string(GroupBus)):
		c.Group = GroupBus
	case strings.HasPrefix(name, string(GroupTrace)):
		c.Group = GroupTrace
	}
	return c
}

// Classify returns the category whose colour equals c exactly. Pixels that
// are not fully opaque never classify.
func Classify(c color.RGBA) (Category, bool) {
	i, ok := byColor[c]
	if !ok {
		return Category{}, false
	}
	return categories[i], true
}

// Index returns the declaration position of the category with colour c, or -1.
func Index(c color.RGBA) int {
	if i, ok := byColor[c]; ok {
		return i
	}
	return -1
}

// Categories returns a copy of the category table in report order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Len reports the number of known categories.
func Len() int {
	return len(categories)
}

// Glyph returns the icon glyph name for a 24-bit RGB key.
func Glyph(rgb uint32) (string, bool) {
	name, ok := glyphs[rgb]
	return name, ok
}

// GlyphColors returns every RGB key that carries an icon.
func GlyphColors() map[uint32]string {
	out := make(map[uint32]string, len(glyphs))
	for k, v := range glyphs {
		out[k] = v
	}
	return out
}
