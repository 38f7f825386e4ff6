package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/pixitris/game"
	"github.com/plus3/pixitris/message"
	"github.com/plus3/pixitris/tetris"
)

const (
	cellSize   = 28
	margin     = 16
	panelWidth = 200
	// debugGlyph is the size of one ebitenutil.DebugPrint character.
	debugGlyphW = 6
	debugGlyphH = 16
)

func screenSize(rules tetris.Config) (int, int) {
	return rules.Width*cellSize + panelWidth + 3*margin, rules.Height*cellSize + 2*margin
}

func drawBlock(dst *ebiten.Image, x, y, size float32, c color.RGBA, decorated bool) {
	vector.DrawFilledRect(dst, x+1, y+1, size-2, size-2, c, false)
	if !decorated {
		return
	}
	// The marker cell gets a small face.
	eye := size / 10
	vector.DrawFilledCircle(dst, x+size*0.33, y+size*0.38, eye, faceColor, false)
	vector.DrawFilledCircle(dst, x+size*0.67, y+size*0.38, eye, faceColor, false)
	vector.DrawFilledRect(dst, x+size*0.3, y+size*0.66, size*0.4, eye, faceColor, false)
}

func drawField(dst *ebiten.Image, snap game.Snapshot) {
	for y := range snap.Height {
		for x := range snap.Width {
			c := snap.At(x, y)
			px := float32(margin + x*cellSize)
			py := float32(margin + y*cellSize)
			drawBlock(dst, px, py, cellSize, cellColor(c), c.Decorated())
		}
	}

	if !snap.HasPiece || snap.State == game.StateTitle {
		return
	}

	for _, c := range snap.Ghost.Cells() {
		if c.Y < 0 {
			continue
		}
		px := float32(margin + c.X*cellSize)
		py := float32(margin + c.Y*cellSize)
		vector.StrokeRect(dst, px+2, py+2, cellSize-4, cellSize-4, 2, ghostColor, false)
	}

	fill := shapeColors[snap.Active.Shape]
	for _, c := range snap.ActiveCells {
		if c.Y < 0 {
			continue
		}
		drawBlock(dst, float32(margin+c.X*cellSize), float32(margin+c.Y*cellSize), cellSize, fill, c.Decorated)
	}
}

// drawPreview draws shape at rotation 0 inside a 4x4 box of small cells.
func drawPreview(dst *ebiten.Image, shape tetris.ShapeID, x, y int) {
	const size = cellSize / 2
	for _, c := range (tetris.Piece{Shape: shape}).Cells() {
		drawBlock(dst, float32(x+c.X*size), float32(y+c.Y*size), size, shapeColors[shape], c.Decorated)
	}
}

func drawPanel(dst *ebiten.Image, snap game.Snapshot) {
	x := margin*2 + snap.Width*cellSize
	y := margin

	lines := []string{
		fmt.Sprintf("SCORE  %d", snap.Score),
		fmt.Sprintf("HIGH   %d", snap.HighScore),
		fmt.Sprintf("LINES  %d", snap.Lines),
		fmt.Sprintf("PIECES %d", snap.Pieces),
		fmt.Sprintf("SPEED  %d", snap.GravityInterval),
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(dst, line, x, y+i*debugGlyphH)
	}

	y += len(lines)*debugGlyphH + margin
	label := "HOLD"
	if snap.StashUsed {
		label = "HOLD (used)"
	}
	ebitenutil.DebugPrintAt(dst, label, x, y)
	if snap.HasStash {
		drawPreview(dst, snap.Stash, x, y+debugGlyphH)
	}

	y += debugGlyphH + 2*cellSize + margin
	ebitenutil.DebugPrintAt(dst, "NEXT", x, y)
	for i, shape := range snap.Next {
		drawPreview(dst, shape, x, y+debugGlyphH+i*(2*cellSize+margin/2))
	}
}

// drawMessage draws one overlay, scaling the debug font to the requested size.
func drawMessage(dst *ebiten.Image, v message.View) {
	if v.Alpha <= 0 || v.Text == "" {
		return
	}

	w, h := len(v.Text)*debugGlyphW, debugGlyphH
	img := ebiten.NewImage(w, h)
	defer img.Deallocate()
	ebitenutil.DebugPrint(img, v.Text)

	scale := v.Size / debugGlyphH
	sw, sh := float64(w)*scale, float64(h)*scale
	bounds := dst.Bounds()
	cx := float64(bounds.Dx()) * v.X
	cy := float64(bounds.Dy()) * v.Y

	if v.Background {
		bg := v.BackgroundColor
		bg.A = uint8(float64(bg.A) * v.Alpha)
		pad := v.Size / 3
		vector.DrawFilledRect(dst,
			float32(cx-sw/2-pad), float32(cy-sh/2-pad),
			float32(sw+2*pad), float32(sh+2*pad), bg, false)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-sw/2, cy-sh/2)
	op.ColorScale.ScaleWithColor(v.Color)
	op.ColorScale.ScaleAlpha(float32(v.Alpha))
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(img, op)
}

// drawScreenText centres a block of lines over a dimmed screen.
func drawScreenText(dst *ebiten.Image, lines ...string) {
	bounds := dst.Bounds()
	vector.DrawFilledRect(dst, 0, 0, float32(bounds.Dx()), float32(bounds.Dy()), dimColor, false)

	top := bounds.Dy()/2 - len(lines)*debugGlyphH/2
	for i, line := range lines {
		x := bounds.Dx()/2 - len(line)*debugGlyphW/2
		ebitenutil.DebugPrintAt(dst, line, x, top+i*debugGlyphH)
	}
}
