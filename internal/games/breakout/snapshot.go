package breakout

import "math"

// Snapshot contains the observable game state for determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Frame   uint64
	State   string
	Drops   int
	PaddleX float64

	// Ball as X, Y, DX, DY
	Ball [4]float64

	// Brick states in grid order, 2 ints each: Alive, HP
	BricksRemaining int
	BrickData       []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:   g.frame,
		State:   string(g.state),
		Drops:   g.drops,
		PaddleX: g.paddle.X,
		Ball:    [4]float64{g.ball.X, g.ball.Y, g.ball.DX, g.ball.DY},
	}

	if g.grid == nil {
		return snap
	}

	snap.BricksRemaining = g.grid.CountAlive()
	snap.BrickData = make([]int, len(g.grid.Bricks)*2)
	for i, brick := range g.grid.Bricks {
		if brick.Alive {
			snap.BrickData[i*2] = 1
		}
		snap.BrickData[i*2+1] = brick.HP
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frame
	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.Drops) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.PaddleX)

	for _, v := range snap.Ball {
		h = h*31 + math.Float64bits(v)
	}

	h = h*31 + uint64(snap.BricksRemaining) //#nosec G115 -- hash computation
	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}
