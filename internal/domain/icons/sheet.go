package icons

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/GriffinCanCode/vcbot/internal/domain/palette"
)

// Sheet is the set of tinted icons at one zoom level.
type Sheet struct {
	zoom  int
	icons map[uint32]*image.NRGBA
}

// Zoom returns the icon edge length in pixels.
func (s *Sheet) Zoom() int {
	return s.zoom
}

// Icon returns the icon for ink rgb.
func (s *Sheet) Icon(rgb uint32) (*image.NRGBA, bool) {
	icon, ok := s.icons[rgb]
	return icon, ok
}

// Composite draws an icon over every logic pixel whose ink has one. rows
// are the unzoomed RGBA8 logic rows; canvas is the logic layer already
// upscaled by the sheet's zoom. It returns the number of icons drawn.
func (s *Sheet) Composite(rows [][]byte, canvas xdraw.Image) int {
	z := s.zoom
	drawn := 0
	for y, row := range rows {
		for x := 0; x*4+3 < len(row); x++ {
			p := row[x*4 : x*4+4]
			if p[3] == 0 {
				continue
			}
			icon, ok := s.icons[palette.RGB(p[0], p[1], p[2])]
			if !ok {
				continue
			}
			r := image.Rect(x*z, y*z, (x+1)*z, (y+1)*z)
			xdraw.Draw(canvas, r, icon, image.Point{}, xdraw.Over)
			drawn++
		}
	}
	return drawn
}
