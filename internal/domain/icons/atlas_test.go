package icons

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/vcbot/internal/domain/palette"
)

// glyphFS returns a file system with a glyph for every name: a white 8x8
// square with a transparent left half.
func glyphFS(t *testing.T, skip string) fstest.MapFS {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	fsys := fstest.MapFS{}
	for _, name := range palette.GlyphNames {
		if name == skip {
			continue
		}
		fsys[FileName(name)] = &fstest.MapFile{Data: buf.Bytes()}
	}
	return fsys
}

func TestLoad(t *testing.T) {
	atlas, err := Load(glyphFS(t, ""))
	require.NoError(t, err)

	for _, name := range palette.GlyphNames {
		g, ok := atlas.Glyph(name)
		require.True(t, ok, name)
		assert.Equal(t, image.Rect(0, 0, 8, 8), g.Bounds())
	}
	for rgb := range palette.GlyphColors() {
		_, ok := atlas.Tinted(rgb)
		assert.True(t, ok, "%06x", rgb)
	}
}

func TestLoadMissingGlyph(t *testing.T) {
	_, err := Load(glyphFS(t, "xnor"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xnor")
}

func TestLoadUndecodableGlyph(t *testing.T) {
	fsys := glyphFS(t, "")
	fsys[FileName("and")] = &fstest.MapFile{Data: []byte("not a png")}

	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "and")
}

func TestTint(t *testing.T) {
	atlas, err := Load(glyphFS(t, ""))
	require.NoError(t, err)

	and := palette.RGB(255, 198, 99)
	tinted, ok := atlas.Tinted(and)
	require.True(t, ok)

	// Transparent half stays transparent.
	assert.Equal(t, color.NRGBA{}, tinted.NRGBAAt(0, 0))
	// White blended 40% towards (255,198,99).
	assert.Equal(t, color.NRGBA{255, 232, 193, 255}, tinted.NRGBAAt(5, 5))

	// The source glyph is untouched.
	g, _ := atlas.Glyph("and")
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, g.NRGBAAt(5, 5))
}

func TestBlend(t *testing.T) {
	assert.Equal(t, uint8(0), blend(0, 0))
	assert.Equal(t, uint8(255), blend(255, 255))
	assert.Equal(t, uint8(102), blend(0, 255))
	assert.Equal(t, uint8(153), blend(255, 0))
}

func TestPrepare(t *testing.T) {
	atlas := Builtin()

	s8 := atlas.Prepare(8)
	assert.Equal(t, 8, s8.Zoom())
	icon, ok := s8.Icon(palette.RGB(255, 198, 99))
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 8, 8), icon.Bounds())

	assert.Same(t, s8, atlas.Prepare(8))

	s12 := atlas.Prepare(12)
	assert.NotSame(t, s8, s12)
	icon, ok = s12.Icon(palette.RGB(255, 198, 99))
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 12, 12), icon.Bounds())

	// The 8x sheet is still valid after preparing another zoom.
	icon, _ = s8.Icon(palette.RGB(255, 198, 99))
	assert.Equal(t, 8, icon.Bounds().Dx())
}

func TestPrepareConcurrent(t *testing.T) {
	atlas, err := Load(glyphFS(t, ""))
	require.NoError(t, err)

	var wg sync.WaitGroup
	sheets := make([]*Sheet, 16)
	for i := range sheets {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			sheets[i] = atlas.Prepare(6 + i%4)
		}()
	}
	wg.Wait()

	for i, s := range sheets {
		assert.Equal(t, 6+i%4, s.Zoom())
		assert.Same(t, atlas.Prepare(s.Zoom()), s)
	}
}

func TestBuiltinGlyphs(t *testing.T) {
	atlas := Builtin()
	assert.Same(t, atlas, Builtin())

	for _, name := range palette.GlyphNames {
		g, ok := atlas.Glyph(name)
		require.True(t, ok, name)
		assert.Equal(t, BuiltinSize, g.Bounds().Dx())
		// Frame corner is opaque, centre has some label ink.
		assert.Equal(t, uint8(255), g.NRGBAAt(0, 0).A, name)

		inked := false
		for y := 2; y < BuiltinSize-2; y++ {
			for x := 2; x < BuiltinSize-2; x++ {
				if g.NRGBAAt(x, y).A != 0 {
					inked = true
				}
			}
		}
		assert.True(t, inked, "glyph %s has no label", name)
	}
}

func TestComposite(t *testing.T) {
	const zoom = 6
	sheet := Builtin().Prepare(zoom)

	and := []byte{255, 198, 99, 255}
	unknown := []byte{1, 2, 3, 255}
	hiddenAnd := []byte{255, 198, 99, 0}
	row := append(append(append([]byte{}, and...), unknown...), hiddenAnd...)

	canvas := image.NewRGBA(image.Rect(0, 0, 3*zoom, zoom))
	fill := color.RGBA{9, 9, 9, 255}
	for y := 0; y < zoom; y++ {
		for x := 0; x < 3*zoom; x++ {
			canvas.SetRGBA(x, y, fill)
		}
	}

	n := sheet.Composite([][]byte{row}, canvas)
	assert.Equal(t, 1, n)

	changed := func(x0 int) bool {
		for y := 0; y < zoom; y++ {
			for x := x0; x < x0+zoom; x++ {
				if canvas.RGBAAt(x, y) != fill {
					return true
				}
			}
		}
		return false
	}
	assert.True(t, changed(0), "and gate block should carry an icon")
	assert.False(t, changed(zoom), "unknown ink must not get an icon")
	assert.False(t, changed(2*zoom), "empty pixel must not get an icon")
}
