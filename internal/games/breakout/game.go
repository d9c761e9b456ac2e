package breakout

import (
	"errors"
	"math"

	"github.com/vovakirdan/tui-ipod/internal/config"
	"github.com/vovakirdan/tui-ipod/internal/core"
	"github.com/vovakirdan/tui-ipod/internal/registry"
)

// State is the game lifecycle state.
type State string

// Lifecycle states
const (
	StateIdle    State = "idle"    // Configured, never started
	StateRunning State = "running" // Ball in play
	StatePaused  State = "paused"  // Waiting for start (after reset or a dropped ball)
	StateWon     State = "won"     // Every brick cleared; terminal until Reset
)

var (
	// ErrInvalidSurface is returned by Configure for non-positive dimensions.
	ErrInvalidSurface = errors.New("breakout: surface dimensions must be positive")

	// ErrTornDown is returned by Configure after Teardown.
	ErrTornDown = errors.New("breakout: game has been torn down")
)

// Layout holds the size-relative constants derived by Configure.
type Layout struct {
	Width, Height float64
	PaddleWidth   float64
	PaddleHeight  float64
	PaddleY       float64 // Top edge of the paddle
	BallRadius    float64
	BallSpeed     float64 // Per-axis speed, fixed for the session
	ServeY        float64 // Ball center when served
	Sensitivity   float64 // Paddle pixels per radian of wheel rotation
}

// Game implements the Breakout game logic.
type Game struct {
	cfg config.BreakoutConfig

	// Game objects
	paddle Paddle
	ball   Ball
	grid   *Grid

	// Game state
	state      State
	frame      uint64
	drops      int
	layout     Layout
	configured bool
	tornDown   bool

	unsubscribe []func()
}

// New creates a game subscribed to the given input port. Select starts or
// resumes play and rotation moves the paddle. A nil port leaves the game
// driven only by direct calls.
func New(cfg config.BreakoutConfig, port *core.InputPort) *Game {
	g := &Game{cfg: cfg, state: StateIdle}
	if port != nil {
		g.unsubscribe = append(g.unsubscribe,
			port.OnButton(g.handleButton),
			port.OnRotate(g.MovePaddleBy),
		)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// handleButton reacts to the buttons the game owns.
func (g *Game) handleButton(b core.Button) {
	if b == core.ButtonSelect {
		g.Start()
	}
}

// usable reports whether operations other than Configure may run.
func (g *Game) usable() bool {
	return g.configured && !g.tornDown
}

// Configure derives every size-relative constant from the surface size,
// lays out a fresh brick grid and serves the ball. The game is left Idle.
// Invalid sizes leave the game as it was.
func (g *Game) Configure(width, height float64) error {
	if g.tornDown {
		return ErrTornDown
	}
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return ErrInvalidSurface
	}

	p, b := g.cfg.Paddle, g.cfg.Ball
	g.layout = Layout{
		Width:        width,
		Height:       height,
		PaddleWidth:  width * p.Width,
		PaddleHeight: height * p.Height,
		BallRadius:   width * b.Radius,
		BallSpeed:    width * b.Speed,
		Sensitivity:  width * g.cfg.Control.Sensitivity,
	}
	g.layout.PaddleY = height - g.layout.PaddleHeight - p.BottomGap
	g.layout.ServeY = height - g.layout.PaddleHeight - g.layout.BallRadius - b.ServeGap

	g.configured = true
	g.frame = 0
	g.drops = 0
	g.grid = NewPyramid(width, height, g.cfg.Bricks)
	g.serve()
	g.state = StateIdle
	return nil
}

// Layout returns the derived constants. Zero before Configure.
func (g *Game) Layout() Layout {
	return g.layout
}

// serve centers paddle and ball and restores the launch velocity:
// rightward and upward at the base speed.
func (g *Game) serve() {
	l := g.layout
	g.paddle = Paddle{
		X:      (l.Width - l.PaddleWidth) / 2,
		Y:      l.PaddleY,
		Width:  l.PaddleWidth,
		Height: l.PaddleHeight,
	}
	g.ball = Ball{
		X:      l.Width / 2,
		Y:      l.ServeY,
		DX:     l.BallSpeed,
		DY:     -l.BallSpeed,
		Radius: l.BallRadius,
	}
}

// Reset rebuilds the brick grid, serves the ball and pauses.
func (g *Game) Reset() {
	if !g.usable() {
		return
	}
	g.grid = NewPyramid(g.layout.Width, g.layout.Height, g.cfg.Bricks)
	g.serve()
	g.state = StatePaused
}

// Start begins or resumes play. An Idle game is reset first. Running and
// Won games are unaffected; only Reset leaves Won.
func (g *Game) Start() {
	if !g.usable() {
		return
	}

	switch g.state {
	case StateIdle:
		g.Reset()
		g.state = StateRunning
	case StatePaused:
		g.state = StateRunning
	}
}

// MovePaddleBy shifts the paddle by a wheel rotation in radians and clamps
// it to the surface. Ignored unless running.
func (g *Game) MovePaddleBy(delta float64) {
	if !g.usable() || g.state != StateRunning {
		return
	}
	g.paddle.X += delta * g.layout.Sensitivity
	g.paddle.ClampTo(g.layout.Width)
}

// AdvanceFrame runs one frame: physics when running, then a render into dst
// whatever the state. A nil dst skips rendering.
func (g *Game) AdvanceFrame(dst core.Canvas) {
	if !g.usable() {
		return
	}

	if g.state == StateRunning {
		g.step()
	}
	g.frame++

	if dst != nil {
		g.Render(dst)
	}
}

// step integrates the ball and resolves collisions for one frame.
func (g *Game) step() {
	g.ball.Move()

	BounceWalls(&g.ball, g.layout.Width)
	BouncePaddle(&g.ball, &g.paddle)
	HitBricks(&g.ball, g.grid)

	if g.grid.CountAlive() == 0 {
		g.state = StateWon
		return
	}

	if g.ball.Bottom() > g.layout.Height {
		g.handleMiss()
	}
}

// handleMiss re-serves after the ball leaves the bottom edge. Bricks keep
// their damage; there is no life counter.
func (g *Game) handleMiss() {
	g.drops++
	g.serve()
	g.state = StatePaused
}

// Teardown releases the input subscriptions. The game ignores every call
// afterwards.
func (g *Game) Teardown() {
	if g.tornDown {
		return
	}
	for _, cancel := range g.unsubscribe {
		cancel()
	}
	g.unsubscribe = nil
	g.tornDown = true
	g.grid = nil
}

// CurrentState returns the lifecycle state.
func (g *Game) CurrentState() State {
	return g.state
}

// Status reports the lifecycle to the shell.
func (g *Game) Status() core.GameState {
	return core.GameState{
		State:   string(g.state),
		Running: g.state == StateRunning,
		Won:     g.state == StateWon,
		Drops:   g.drops,
		Hint:    stateHints[g.state],
	}
}

// stateHints prompt the player while the ball is not in play.
var stateHints = map[State]string{
	StateIdle:   "Press select to start",
	StatePaused: "Press select to serve",
	StateWon:    "Cleared! Press menu",
}

// Register the game with the registry
func init() {
	registry.Register("breakout", "Breakout", func(cfg *config.Config, port *core.InputPort) registry.Game {
		return New(cfg.Breakout, port)
	})
}
