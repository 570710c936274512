package blueprint

import (
	"encoding/hex"
	"image/color"
)

// Blueprint is a decoded VCB blueprint. It is never modified after Decode
// returns it.
type Blueprint struct {
	Version  uint32
	Checksum [6]byte
	Width    uint32
	Height   uint32

	// Logic is the logic layer as RGBA8, row-major, top-left origin.
	// len(Logic) == Width*Height*4.
	Logic []byte
}

// ChecksumHex returns the checksum as lowercase hex.
func (b *Blueprint) ChecksumHex() string {
	return hex.EncodeToString(b.Checksum[:])
}

// Area returns the number of pixels in every layer.
func (b *Blueprint) Area() int {
	return int(b.Width) * int(b.Height)
}

// Stride returns the byte length of one logic row.
func (b *Blueprint) Stride() int {
	return int(b.Width) * 4
}

// At returns the logic pixel at (x, y).
func (b *Blueprint) At(x, y int) color.RGBA {
	o := y*b.Stride() + x*4
	p := b.Logic[o : o+4 : o+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Rows splits the logic layer into rows. The rows share Logic's backing
// array and must not be written to.
func (b *Blueprint) Rows() [][]byte {
	stride := b.Stride()
	rows := make([][]byte, b.Height)
	for y := range rows {
		rows[y] = b.Logic[y*stride : (y+1)*stride : (y+1)*stride]
	}
	return rows
}
