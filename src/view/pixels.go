package view

import (
	"image/color"

	"gameoflife/src/generation"
)

//fillBinaryRGBA converts the grid into RGBA pixels in buf, one pixel per cell
func fillBinaryRGBA(buf []byte, g generation.Grid, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	cols := g.Cols()
	for y, row := range g {
		for x, c := range row {
			base := (y*cols + x) * 4
			if c == generation.Alive {
				buf[base+0] = uint8(rOn >> 8)
				buf[base+1] = uint8(gOn >> 8)
				buf[base+2] = uint8(bOn >> 8)
				buf[base+3] = uint8(aOn >> 8)
				continue
			}
			buf[base+0] = uint8(rOff >> 8)
			buf[base+1] = uint8(gOff >> 8)
			buf[base+2] = uint8(bOff >> 8)
			buf[base+3] = uint8(aOff >> 8)
		}
	}
}

//cellAt maps a window position to the grid cell under it
func cellAt(px int, py int, scale int) (row int, col int) {
	if scale < 1 {
		scale = 1
	}
	return py / scale, px / scale
}
