// Package blueprinttest builds blueprint strings for tests.
package blueprinttest

import (
	"encoding/base64"
	"encoding/binary"
	"image/color"

	"github.com/klauspost/compress/zstd"
)

var encoder, _ = zstd.NewWriter(nil)

// Compress zstd-compresses data.
func Compress(data []byte) []byte {
	return encoder.EncodeAll(data, nil)
}

// Builder assembles a blueprint body block by block.
type Builder struct {
	Version  uint32
	Checksum [6]byte
	Width    uint32
	Height   uint32

	blocks [][]byte
}

// New returns a version 0 builder for a width x height blueprint.
func New(width, height uint32) *Builder {
	return &Builder{
		Checksum: [6]byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02},
		Width:    width,
		Height:   height,
	}
}

// Logic appends a logic layer block holding pix.
func (b *Builder) Logic(pix []byte) *Builder {
	return b.Layer(0, uint32(len(pix)), Compress(pix))
}

// Layer appends a well-formed block with an arbitrary payload.
func (b *Builder) Layer(id, imageSize uint32, payload []byte) *Builder {
	return b.Block(uint32(len(payload)+12), id, imageSize, payload)
}

// Block appends a block with an explicit size field, which may disagree
// with the payload length.
func (b *Builder) Block(size, id, imageSize uint32, payload []byte) *Builder {
	blk := make([]byte, 12, 12+len(payload))
	binary.BigEndian.PutUint32(blk[0:], size)
	binary.BigEndian.PutUint32(blk[4:], id)
	binary.BigEndian.PutUint32(blk[8:], imageSize)
	b.blocks = append(b.blocks, append(blk, payload...))
	return b
}

// Bytes returns the binary body.
func (b *Builder) Bytes() []byte {
	out := make([]byte, 17)
	out[0] = byte(b.Version >> 16)
	out[1] = byte(b.Version >> 8)
	out[2] = byte(b.Version)
	copy(out[3:9], b.Checksum[:])
	binary.BigEndian.PutUint32(out[9:], b.Width)
	binary.BigEndian.PutUint32(out[13:], b.Height)
	for _, blk := range b.blocks {
		out = append(out, blk...)
	}
	return out
}

// String returns the blueprint as the game exports it.
func (b *Builder) String() string {
	return "VCB+" + base64.StdEncoding.EncodeToString(b.Bytes())
}

// Image returns width*height RGBA8 pixels produced by fill.
func Image(width, height int, fill func(x, y int) color.RGBA) []byte {
	pix := make([]byte, 0, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := fill(x, y)
			pix = append(pix, c.R, c.G, c.B, c.A)
		}
	}
	return pix
}

// Solid returns width*height pixels of colour c.
func Solid(width, height int, c color.RGBA) []byte {
	return Image(width, height, func(int, int) color.RGBA { return c })
}

// Blueprint returns a blueprint string whose logic layer is pix.
func Blueprint(width, height int, pix []byte) string {
	return New(uint32(width), uint32(height)).Logic(pix).String()
}
