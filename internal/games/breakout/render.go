package breakout

import "github.com/vovakirdan/tui-ipod/internal/core"

// Colors by remaining hit points
var brickColors = map[int][2]core.Color{
	3: {core.ColorNavy, core.ColorDeepBlue},
	2: {core.ColorOcean, core.ColorSteelBlue},
	1: {core.ColorCerulean, core.ColorOcean},
}

// brickColor returns the gradient for a hit point count. Counts above the
// highest tier share its color.
func brickColor(hp int) (from, to core.Color) {
	if hp > 3 {
		hp = 3
	}
	c, ok := brickColors[hp]
	if !ok {
		c = brickColors[1]
	}
	return c[0], c[1]
}

// Render draws the background, bricks, paddle and ball.
func (g *Game) Render(dst core.Canvas) {
	if !g.usable() {
		return
	}
	l := g.layout

	dst.FillGradient(0, 0, l.Width, l.Height, core.ColorLightBlue, core.ColorSkyBlue)

	for _, b := range g.grid.Bricks {
		if !b.Alive {
			continue
		}
		from, to := brickColor(b.HP)
		dst.FillGradient(b.X, b.Y, b.W, b.H, from, to)
	}

	dst.FillRect(g.paddle.X, g.paddle.Y, g.paddle.Width, g.paddle.Height, core.ColorWhite)
	dst.FillCircle(g.ball.X, g.ball.Y, g.ball.Radius, core.ColorWhite)
}
