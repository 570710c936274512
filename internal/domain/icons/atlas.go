package icons

import (
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"strconv"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/GriffinCanCode/vcbot/internal/domain/palette"
)

const maxCachedSheets = 32

// FileName returns the asset file name of a glyph.
func FileName(glyph string) string {
	return "LogicIcons-" + glyph + ".png"
}

// Atlas holds one glyph per component kind and its ink-tinted variants.
// Sheets produced by Prepare are immutable, so an Atlas may be shared by
// concurrent renders.
type Atlas struct {
	glyphs map[string]*image.NRGBA
	tinted map[uint32]*image.NRGBA

	mu     sync.Mutex
	sheets map[int]*Sheet
	group  singleflight.Group
}

// Load reads every glyph from fsys. A missing or undecodable glyph is an
// error.
func Load(fsys fs.FS) (*Atlas, error) {
	images := make([]*image.NRGBA, len(palette.GlyphNames))

	var g errgroup.Group
	for i, name := range palette.GlyphNames {
		i, name := i, name
		g.Go(func() error {
			img, err := loadGlyph(fsys, FileName(name))
			if err != nil {
				return fmt.Errorf("load glyph %q: %w", name, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	glyphs := make(map[string]*image.NRGBA, len(images))
	for i, name := range palette.GlyphNames {
		glyphs[name] = images[i]
	}
	return newAtlas(glyphs), nil
}

func loadGlyph(fsys fs.FS, path string) (*image.NRGBA, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	return toNRGBA(img), nil
}

func newAtlas(glyphs map[string]*image.NRGBA) *Atlas {
	a := &Atlas{
		glyphs: glyphs,
		tinted: make(map[uint32]*image.NRGBA),
		sheets: make(map[int]*Sheet),
	}
	for rgb, name := range palette.GlyphColors() {
		a.tinted[rgb] = tint(glyphs[name], rgb)
	}
	return a
}

// Glyph returns the untinted glyph for a component kind.
func (a *Atlas) Glyph(name string) (*image.NRGBA, bool) {
	img, ok := a.glyphs[name]
	return img, ok
}

// Tinted returns the glyph blended with the ink colour rgb.
func (a *Atlas) Tinted(rgb uint32) (*image.NRGBA, bool) {
	img, ok := a.tinted[rgb]
	return img, ok
}

// Prepare returns the icons resized to zoom x zoom pixels. Sheets are built
// once per zoom and reused afterwards.
func (a *Atlas) Prepare(zoom int) *Sheet {
	if zoom < 1 {
		zoom = 1
	}

	a.mu.Lock()
	s, ok := a.sheets[zoom]
	a.mu.Unlock()
	if ok {
		return s
	}

	v, _, _ := a.group.Do(strconv.Itoa(zoom), func() (interface{}, error) {
		s := a.buildSheet(zoom)

		a.mu.Lock()
		if len(a.sheets) >= maxCachedSheets {
			a.sheets = make(map[int]*Sheet)
		}
		a.sheets[zoom] = s
		a.mu.Unlock()
		return s, nil
	})
	return v.(*Sheet)
}

func (a *Atlas) buildSheet(zoom int) *Sheet {
	s := &Sheet{
		zoom:  zoom,
		icons: make(map[uint32]*image.NRGBA, len(a.tinted)),
	}
	for rgb, src := range a.tinted {
		dst := image.NewNRGBA(image.Rect(0, 0, zoom, zoom))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		s.icons[rgb] = dst
	}
	return s
}

// tint blends rgb into the visible pixels of glyph. Transparent pixels stay
// transparent and alpha is preserved.
func tint(glyph *image.NRGBA, rgb uint32) *image.NRGBA {
	out := image.NewNRGBA(glyph.Bounds())
	copy(out.Pix, glyph.Pix)

	tr, tg, tb := uint8(rgb>>16), uint8(rgb>>8), uint8(rgb)
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i+3] == 0 {
			continue
		}
		out.Pix[i] = blend(out.Pix[i], tr)
		out.Pix[i+1] = blend(out.Pix[i+1], tg)
		out.Pix[i+2] = blend(out.Pix[i+2], tb)
	}
	return out
}

// blend mixes 60% of c with 40% of t, rounding to nearest.
func blend(c, t uint8) uint8 {
	return uint8((uint32(c)*6 + uint32(t)*4 + 5) / 10)
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}
