package main

import (
	"image/color"

	"github.com/plus3/pixitris/tetris"
)

var shapeColors = [tetris.NumShapes]color.RGBA{
	tetris.ShapeI: {0x4f, 0xc3, 0xf7, 0xff},
	tetris.ShapeZ: {0xef, 0x53, 0x50, 0xff},
	tetris.ShapeS: {0x66, 0xbb, 0x6a, 0xff},
	tetris.ShapeO: {0xff, 0xee, 0x58, 0xff},
	tetris.ShapeJ: {0x42, 0x6f, 0xd6, 0xff},
	tetris.ShapeL: {0xff, 0xa7, 0x26, 0xff},
	tetris.ShapeT: {0xab, 0x47, 0xbc, 0xff},
}

var (
	wallColor  = color.RGBA{0x45, 0x45, 0x55, 0xff}
	emptyColor = color.RGBA{0x14, 0x14, 0x1c, 0xff}
	ghostColor = color.RGBA{0xff, 0xff, 0xff, 0x60}
	faceColor  = color.RGBA{0x20, 0x20, 0x20, 0xff}
	dimColor   = color.RGBA{0, 0, 0, 0xa0}
)

// cellColor picks the fill for one field cell.
func cellColor(c tetris.Cell) color.RGBA {
	switch {
	case c.IsWall():
		return wallColor
	case c.IsEmpty():
		return emptyColor
	}
	shape, _ := c.Shape()
	return shapeColors[shape]
}
