package tui

import "github.com/verte-zerg/tuiaim/internal/model"

// drawCrosshair overlays the resolved crosshair centered on cell (col, row).
// Cells are about twice as tall as wide, so vertical arms are half as long.
func drawCrosshair(c *canvas, col, row int, ch model.Crosshair) {
	c.crosshairColor = ch.Color
	horiz, vert := '─', '│'
	if ch.Thickness > 1 {
		horiz, vert = '━', '┃'
	}
	if ch.Preset == "circle" {
		reach := ch.Gap + ch.Size
		c.set(col-reach, row, '(', inkCrosshair)
		c.set(col+reach, row, ')', inkCrosshair)
	} else if ch.Size > 0 {
		for i := 1; i <= ch.Size; i++ {
			c.set(col-ch.Gap-i, row, horiz, inkCrosshair)
			c.set(col+ch.Gap+i, row, horiz, inkCrosshair)
		}
		for i := 1; i <= (ch.Size+1)/2; i++ {
			c.set(col, row-ch.Gap/2-i, vert, inkCrosshair)
			c.set(col, row+ch.Gap/2+i, vert, inkCrosshair)
		}
	}
	switch {
	case ch.Dot:
		c.set(col, row, '•', inkCrosshair)
	case ch.Size > 0 && ch.Gap == 0:
		c.set(col, row, '┼', inkCrosshair)
	}
}
