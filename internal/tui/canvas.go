package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuiaim/internal/engine"
)

type ink uint8

const (
	inkBlank ink = iota
	inkStatic
	inkDrifting
	inkWandering
	inkHit
	inkCrosshair
)

var palette = []lipgloss.Style{
	inkBlank:     lipgloss.NewStyle(),
	inkStatic:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
	inkDrifting:  lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
	inkWandering: lipgloss.NewStyle().Foreground(lipgloss.Color("#3AB7C8")),
	inkHit:       lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")),
	inkCrosshair: lipgloss.NewStyle().Foreground(lipgloss.Color("#7CFC00")).Bold(true),
}

type cell struct {
	r   rune
	ink ink
}

// canvas maps the engine surface onto a grid of terminal cells. Every cell
// covers surface.Width/cols by surface.Height/rows surface units.
type canvas struct {
	cols    int
	rows    int
	surface engine.Surface
	cells   []cell
	// crosshairColor overrides the palette entry for inkCrosshair when set.
	crosshairColor string
}

func newCanvas(cols, rows int, surface engine.Surface) *canvas {
	cols = max(cols, 1)
	rows = max(rows, 1)
	c := &canvas{cols: cols, rows: rows, surface: surface, cells: make([]cell, cols*rows)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *canvas) cellWidth() float64 { return c.surface.Width / float64(c.cols) }
func (c *canvas) cellHeight() float64 { return c.surface.Height / float64(c.rows) }

// toSurface returns the surface point at the center of cell (col, row).
func (c *canvas) toSurface(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * c.cellWidth(), (float64(row) + 0.5) * c.cellHeight()
}

// toCell returns the cell containing surface point (x, y), clamped to the grid.
func (c *canvas) toCell(x, y float64) (int, int) {
	col := int(math.Floor(x / c.cellWidth()))
	row := int(math.Floor(y / c.cellHeight()))
	return min(max(col, 0), c.cols-1), min(max(row, 0), c.rows-1)
}

func (c *canvas) inside(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

func (c *canvas) set(col, row int, r rune, k ink) {
	if !c.inside(col, row) {
		return
	}
	c.cells[row*c.cols+col] = cell{r: r, ink: k}
}

// fillCircle paints every cell whose center lies within radius of (cx, cy).
// The cell holding the center is always painted so tiny targets stay visible.
func (c *canvas) fillCircle(cx, cy, radius float64, r rune, k ink) {
	minCol, minRow := c.toCell(cx-radius, cy-radius)
	maxCol, maxRow := c.toCell(cx+radius, cy+radius)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			x, y := c.toSurface(col, row)
			if math.Hypot(x-cx, y-cy) <= radius {
				c.set(col, row, r, k)
			}
		}
	}
	col, row := c.toCell(cx, cy)
	c.set(col, row, r, k)
}

func (c *canvas) drawTargets(targets []engine.Target) {
	for _, t := range targets {
		radius := t.Radius * t.Scale
		if t.Hit {
			c.fillCircle(t.X, t.Y, t.Radius, '▒', inkHit)
			continue
		}
		k := inkStatic
		switch t.Kind {
		case engine.KindDrifting:
			k = inkDrifting
		case engine.KindWandering:
			k = inkWandering
		}
		c.fillCircle(t.X, t.Y, radius, '█', k)
	}
}

// render emits one line per row, grouping runs of equal ink into a single styled span.
func (c *canvas) render() string {
	var b strings.Builder
	run := make([]rune, 0, c.cols)
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		current := inkBlank
		run = run[:0]
		flush := func() {
			if len(run) == 0 {
				return
			}
			switch {
			case current == inkBlank:
				b.WriteString(string(run))
			case current == inkCrosshair && c.crosshairColor != "":
				style := palette[current].Foreground(lipgloss.Color(c.crosshairColor))
				b.WriteString(style.Render(string(run)))
			default:
				b.WriteString(palette[current].Render(string(run)))
			}
			run = run[:0]
		}
		for col := 0; col < c.cols; col++ {
			item := c.cells[row*c.cols+col]
			if item.ink != current {
				flush()
				current = item.ink
			}
			if runewidth.RuneWidth(item.r) != 1 {
				item.r = '?'
			}
			run = append(run, item.r)
		}
		flush()
	}
	return b.String()
}
