package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/vcbot/internal/domain/blueprint"
	"github.com/GriffinCanCode/vcbot/internal/domain/blueprint/blueprinttest"
	"github.com/GriffinCanCode/vcbot/internal/domain/icons"
)

var (
	andGate = color.RGBA{255, 198, 99, 255}
	odd     = color.RGBA{1, 2, 3, 255}
)

func decode(t *testing.T, w, h int, fill func(x, y int) color.RGBA) *blueprint.Blueprint {
	t.Helper()
	bp, err := blueprint.Decode(blueprinttest.Blueprint(w, h, blueprinttest.Image(w, h, fill)))
	require.NoError(t, err)
	return bp
}

// at reads a canvas pixel without alpha conversion.
func at(img *image.NRGBA, x, y int) color.RGBA {
	c := img.NRGBAAt(x, y)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func TestZoom(t *testing.T) {
	r := New(nil, DefaultOptions())

	tests := []struct {
		width uint32
		want  int
	}{
		{0, 1},
		{1, 24},
		{58, 24},
		{59, 23},
		{100, 14},
		{700, 2},
		{1400, 1},
		{1401, 1},
		{1 << 31, 1},
	}
	for _, tt := range tests {
		z := r.Zoom(tt.width)
		assert.Equal(t, tt.want, z, "width %d", tt.width)
		assert.GreaterOrEqual(t, z, 1)
		assert.LessOrEqual(t, z, DefaultMaxZoom)
	}
}

func TestZoomCustomOptions(t *testing.T) {
	r := New(nil, Options{TargetWidth: 800, MaxZoom: 16})
	assert.Equal(t, 16, r.Zoom(1))
	assert.Equal(t, 8, r.Zoom(100))
	assert.Equal(t, DefaultIconThreshold, r.Options().IconThreshold)
}

func TestCanvasPixels(t *testing.T) {
	assert.Equal(t, uint64(24*24*100000), CanvasPixels(1, 100000, 24))
	assert.Equal(t, uint64(6), CanvasPixels(2, 3, 1))
	assert.Equal(t, uint64(6), CanvasPixels(2, 3, 0))
	// No overflow at the decoder's largest area and zoom.
	assert.Equal(t, uint64(1<<26)*576, CanvasPixels(1, 1<<26, 24))
}

func TestFillBackground(t *testing.T) {
	logic := []byte{
		0, 0, 0, 0,
		255, 198, 99, 255,
		7, 7, 7, 0,
		1, 2, 3, 128,
	}
	out := FillBackground(logic)

	assert.Equal(t, []byte{
		30, 36, 49, 255,
		255, 198, 99, 255,
		30, 36, 49, 255,
		1, 2, 3, 128,
	}, out)
	// Input is not modified.
	assert.Equal(t, byte(0), logic[3])
}

func TestUpscale(t *testing.T) {
	pix := []byte{
		1, 1, 1, 255, 2, 2, 2, 255,
		3, 3, 3, 255, 4, 4, 4, 255,
	}
	img := Upscale(pix, 2, 2, 3)
	require.Equal(t, image.Rect(0, 0, 6, 6), img.Bounds())

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := uint8(1 + x/3 + 2*(y/3))
			assert.Equal(t, color.RGBA{want, want, want, 255}, at(img, x, y), "(%d,%d)", x, y)
		}
	}

	same := Upscale(pix, 2, 2, 1)
	assert.Equal(t, pix, same.Pix)
}

func TestImageBelowIconThreshold(t *testing.T) {
	bp := decode(t, 2, 2, func(int, int) color.RGBA { return andGate })
	r := New(icons.Builtin(), DefaultOptions())

	img, res := r.ImageAt(bp, DefaultIconThreshold-1)
	assert.False(t, res.Icons)
	assert.Equal(t, 10, res.Width)

	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			require.Equal(t, andGate, at(img, x, y))
		}
	}
}

func TestImageAboveIconThreshold(t *testing.T) {
	bp := decode(t, 2, 1, func(x, _ int) color.RGBA {
		if x == 0 {
			return andGate
		}
		return odd
	})
	r := New(icons.Builtin(), DefaultOptions())

	const zoom = DefaultIconThreshold
	img, res := r.ImageAt(bp, zoom)
	assert.True(t, res.Icons)

	iconPixels := 0
	for y := 0; y < zoom; y++ {
		for x := 0; x < zoom; x++ {
			if at(img, x, y) != andGate {
				iconPixels++
			}
			// The unknown ink is left as a plain block.
			assert.Equal(t, odd, at(img, zoom+x, y))
		}
	}
	assert.Greater(t, iconPixels, 0)
}

func TestImageWithoutAtlas(t *testing.T) {
	bp := decode(t, 1, 1, func(int, int) color.RGBA { return andGate })
	img, res := New(nil, DefaultOptions()).Image(bp)

	assert.Equal(t, DefaultMaxZoom, res.Zoom)
	assert.False(t, res.Icons)
	assert.Equal(t, andGate, at(img, DefaultMaxZoom/2, DefaultMaxZoom/2))
}

func TestImageFillsBackground(t *testing.T) {
	bp := decode(t, 3, 1, func(x, _ int) color.RGBA {
		if x == 1 {
			return andGate
		}
		return color.RGBA{}
	})
	img, res := New(nil, Options{TargetWidth: 3}).Image(bp)

	require.Equal(t, 1, res.Zoom)
	assert.Equal(t, Background, at(img, 0, 0))
	assert.Equal(t, andGate, at(img, 1, 0))
	assert.Equal(t, Background, at(img, 2, 0))
}

func TestRender(t *testing.T) {
	text := blueprinttest.Blueprint(10, 5, blueprinttest.Solid(10, 5, andGate))
	r := New(icons.Builtin(), DefaultOptions())

	var buf bytes.Buffer
	res, err := r.Render(text, &buf)
	require.NoError(t, err)
	assert.Equal(t, Result{Width: 240, Height: 120, Zoom: 24, Icons: true}, res)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 240, 120), img.Bounds())
}

func TestRenderInvalid(t *testing.T) {
	r := New(nil, DefaultOptions())

	var buf bytes.Buffer
	_, err := r.Render("XYZ+AAAA", &buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, blueprint.ErrHeader)
	assert.Zero(t, buf.Len())
}
