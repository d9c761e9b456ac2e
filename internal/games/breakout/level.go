// Package breakout implements a Breakout brick breaker steered by a click
// wheel. The game owns all state (ball, paddle, bricks, lifecycle) and is
// driven one frame at a time by its host.
package breakout

import (
	"github.com/vovakirdan/tui-ipod/internal/config"
	"github.com/vovakirdan/tui-ipod/internal/core"
)

// Brick represents a single brick in the grid.
type Brick struct {
	Row, Col   int
	X, Y, W, H float64
	Tier       int  // Hit points at spawn, set by row
	HP         int  // Hit points remaining
	Alive      bool // Whether brick is still present
}

// Bounds returns the brick's box on the surface.
func (b *Brick) Bounds() core.RectF {
	return core.RectF{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Hit removes one hit point and kills the brick at zero.
func (b *Brick) Hit() {
	b.HP--
	if b.HP <= 0 {
		b.HP = 0
		b.Alive = false
	}
}

// Grid is the brick field. Bricks are stored row by row, top row first.
type Grid struct {
	Rows   int
	Bricks []Brick
}

// NewPyramid lays out a pyramid of bricks for a surface of the given size.
// Row r holds MaxColumns-r bricks. Every row spans the same width between
// the side margins, so brick width grows as the count shrinks and each row
// stays centered. The top row spawns with Rows hit points, the bottom row
// with one.
func NewPyramid(width, height float64, cfg config.BreakoutBricks) *Grid {
	margin := cfg.SideMargin * width
	padding := cfg.Padding * width
	brickH := cfg.Height * height
	top := cfg.TopOffset * height
	span := width - 2*margin

	grid := &Grid{Rows: cfg.Rows}
	for row := range cfg.Rows {
		count := cfg.MaxColumns - row
		if count <= 0 {
			break
		}

		brickW := (span - float64(count-1)*padding) / float64(count)
		y := top + float64(row)*(brickH+padding)
		tier := cfg.Rows - row

		for col := range count {
			grid.Bricks = append(grid.Bricks, Brick{
				Row:   row,
				Col:   col,
				X:     margin + float64(col)*(brickW+padding),
				Y:     y,
				W:     brickW,
				H:     brickH,
				Tier:  tier,
				HP:    tier,
				Alive: true,
			})
		}
	}
	return grid
}

// CountAlive returns the number of remaining bricks.
func (g *Grid) CountAlive() int {
	count := 0
	for _, b := range g.Bricks {
		if b.Alive {
			count++
		}
	}
	return count
}

// Row returns the bricks of one row.
func (g *Grid) Row(r int) []Brick {
	var row []Brick
	for _, b := range g.Bricks {
		if b.Row == r {
			row = append(row, b)
		}
	}
	return row
}
