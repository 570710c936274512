package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/GriffinCanCode/vcbot/internal/domain/blueprint"
	"github.com/GriffinCanCode/vcbot/internal/domain/icons"
)

const (
	// DefaultTargetWidth is the rendered width the zoom factor aims for.
	DefaultTargetWidth = 1400
	// DefaultMaxZoom caps the zoom factor for tiny blueprints.
	DefaultMaxZoom = 24
	// DefaultIconThreshold is the smallest zoom at which icons are legible.
	DefaultIconThreshold = 6
)

// Background replaces empty logic pixels.
var Background = color.RGBA{R: 30, G: 36, B: 49, A: 255}

// Options tunes the zoom policy.
type Options struct {
	TargetWidth   int
	MaxZoom       int
	IconThreshold int
}

// DefaultOptions returns the canonical zoom policy.
func DefaultOptions() Options {
	return Options{
		TargetWidth:   DefaultTargetWidth,
		MaxZoom:       DefaultMaxZoom,
		IconThreshold: DefaultIconThreshold,
	}
}

// Result describes a finished render.
type Result struct {
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Zoom   int  `json:"zoom"`
	Icons  bool `json:"icons"`
}

// Renderer turns blueprints into images.
type Renderer struct {
	atlas *icons.Atlas
	opts  Options
}

// New creates a renderer. A nil atlas disables icons; zero options take
// their defaults.
func New(atlas *icons.Atlas, opts Options) *Renderer {
	def := DefaultOptions()
	if opts.TargetWidth <= 0 {
		opts.TargetWidth = def.TargetWidth
	}
	if opts.MaxZoom <= 0 {
		opts.MaxZoom = def.MaxZoom
	}
	if opts.IconThreshold <= 0 {
		opts.IconThreshold = def.IconThreshold
	}
	return &Renderer{atlas: atlas, opts: opts}
}

// Options returns the effective options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Zoom returns the integer upscale factor for a blueprint width, always in
// [1, MaxZoom].
func (r *Renderer) Zoom(width uint32) int {
	if width == 0 {
		return 1
	}
	zoom := 1
	if uint64(width) <= uint64(r.opts.TargetWidth) {
		zoom = r.opts.TargetWidth / int(width)
	}
	if zoom < 1 {
		zoom = 1
	}
	if zoom > r.opts.MaxZoom {
		zoom = r.opts.MaxZoom
	}
	return zoom
}

// CanvasPixels is the pixel count of a width x height blueprint drawn at zoom.
func CanvasPixels(width, height uint32, zoom int) uint64 {
	z := uint64(max(zoom, 1))
	return uint64(width) * z * uint64(height) * z
}

// Image renders bp at its automatic zoom.
func (r *Renderer) Image(bp *blueprint.Blueprint) (*image.NRGBA, Result) {
	return r.ImageAt(bp, r.Zoom(bp.Width))
}

// ImageAt renders bp at an explicit zoom factor.
func (r *Renderer) ImageAt(bp *blueprint.Blueprint, zoom int) (*image.NRGBA, Result) {
	if zoom < 1 {
		zoom = 1
	}
	w, h := int(bp.Width), int(bp.Height)

	canvas := Upscale(FillBackground(bp.Logic), w, h, zoom)

	res := Result{Width: w * zoom, Height: h * zoom, Zoom: zoom}
	if r.atlas != nil && zoom >= r.opts.IconThreshold {
		r.atlas.Prepare(zoom).Composite(bp.Rows(), canvas)
		res.Icons = true
	}
	return canvas, res
}

// Render decodes text and writes the image to w as PNG.
func (r *Renderer) Render(text string, w io.Writer) (Result, error) {
	bp, err := blueprint.Decode(text)
	if err != nil {
		return Result{}, err
	}
	img, res := r.Image(bp)
	if err := Encode(w, img); err != nil {
		return Result{}, err
	}
	return res, nil
}

var encoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Encode writes img to w as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := encoder.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// FillBackground returns a copy of logic with every fully transparent
// pixel replaced by Background.
func FillBackground(logic []byte) []byte {
	out := make([]byte, len(logic))
	copy(out, logic)
	for i := 0; i+3 < len(out); i += 4 {
		if out[i+3] == 0 {
			out[i] = Background.R
			out[i+1] = Background.G
			out[i+2] = Background.B
			out[i+3] = Background.A
		}
	}
	return out
}

// Upscale replicates every pixel of a w x h RGBA8 buffer into a zoom x zoom
// block. No filtering is applied.
func Upscale(pix []byte, w, h, zoom int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w*zoom, h*zoom))
	if zoom == 1 {
		copy(img.Pix, pix)
		return img
	}

	srcStride := w * 4
	for y := 0; y < h; y++ {
		src := pix[y*srcStride : (y+1)*srcStride]
		// Build the first destination row of this block, then copy it down.
		first := img.Pix[y*zoom*img.Stride : y*zoom*img.Stride+img.Stride]
		for x := 0; x < w; x++ {
			p := src[x*4 : x*4+4]
			block := first[x*zoom*4 : (x+1)*zoom*4]
			for dx := 0; dx < zoom; dx++ {
				copy(block[dx*4:dx*4+4], p)
			}
		}
		for dy := 1; dy < zoom; dy++ {
			o := (y*zoom + dy) * img.Stride
			copy(img.Pix[o:o+img.Stride], first)
		}
	}
	return img
}
