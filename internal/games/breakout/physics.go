package breakout

import (
	"math"

	"github.com/vovakirdan/tui-ipod/internal/core"
)

// Ball represents the ball state in surface pixels.
type Ball struct {
	X, Y   float64 // Position (center)
	DX, DY float64 // Velocity per frame
	Radius float64
}

// Move updates ball position by velocity.
func (b *Ball) Move() {
	b.X += b.DX
	b.Y += b.DY
}

// Bottom returns the y-coordinate of the ball's lowest point.
func (b *Ball) Bottom() float64 {
	return b.Y + b.Radius
}

// Paddle represents the player's paddle. Only X changes during a session.
type Paddle struct {
	X      float64 // Left edge
	Y      float64 // Top edge
	Width  float64
	Height float64
}

// Right returns the x-coordinate of the right edge.
func (p *Paddle) Right() float64 {
	return p.X + p.Width
}

// ClampTo keeps the paddle inside [0, surfaceWidth-Width].
func (p *Paddle) ClampTo(surfaceWidth float64) {
	p.X = core.Clamp(p.X, 0, math.Max(0, surfaceWidth-p.Width))
}

// BounceWalls reflects the ball off the left, right and top edges of a
// surface. Each reflection points the velocity back into the surface, so a
// ball overlapping a wall for several frames is reflected once.
// Returns true if any wall was touched.
func BounceWalls(ball *Ball, width float64) bool {
	hit := false

	if ball.X-ball.Radius < 0 {
		ball.DX = math.Abs(ball.DX)
		hit = true
	} else if ball.X+ball.Radius > width {
		ball.DX = -math.Abs(ball.DX)
		hit = true
	}

	if ball.Y-ball.Radius < 0 {
		ball.DY = math.Abs(ball.DY)
		hit = true
	}

	return hit
}

// BouncePaddle sends the ball upward when its bottom edge has reached the
// paddle's top edge and its center is over the paddle. Touching an edge
// exactly counts. The bounce is flat: paddle motion adds no spin.
// Returns true if a collision occurred.
func BouncePaddle(ball *Ball, paddle *Paddle) bool {
	if ball.Bottom() < paddle.Y {
		return false
	}
	if ball.X < paddle.X || ball.X > paddle.Right() {
		return false
	}

	ball.DY = -math.Abs(ball.DY)
	return true
}

// HitBricks damages every alive brick whose bounds contain the ball center
// and flips the vertical velocity once if any brick was hit. There is no
// swept test: a fast enough ball can pass through a thin brick.
// Returns the number of bricks hit.
func HitBricks(ball *Ball, grid *Grid) int {
	hits := 0
	for i := range grid.Bricks {
		brick := &grid.Bricks[i]
		if !brick.Alive || !brick.Bounds().Contains(ball.X, ball.Y) {
			continue
		}
		brick.Hit()
		hits++
	}

	if hits > 0 {
		ball.DY = -ball.DY
	}
	return hits
}
