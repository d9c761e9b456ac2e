// Package config provides YAML-based configuration loading for the device
// shell: runtime timing, Breakout tuning, wheel thresholds and the menu.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the complete shell configuration.
type Config struct {
	Runtime  RuntimeConfig  `yaml:"runtime"`
	Breakout BreakoutConfig `yaml:"breakout"`
	Wheel    WheelConfig    `yaml:"wheel"`
	Menu     MenuConfig     `yaml:"menu"`
}

// RuntimeConfig defines frame timing and the virtual pixel density of a
// terminal cell.
type RuntimeConfig struct {
	TickRate   int     `yaml:"tick_rate"`   // Frames per second
	CellWidth  float64 `yaml:"cell_width"`  // Surface pixels per column
	CellHeight float64 `yaml:"cell_height"` // Surface pixels per row
}

// BreakoutConfig contains all configuration for the Breakout game.
// Fractions are relative to the surface width (W) or height (H).
type BreakoutConfig struct {
	Paddle  BreakoutPaddle  `yaml:"paddle"`
	Ball    BreakoutBall    `yaml:"ball"`
	Control BreakoutControl `yaml:"control"`
	Bricks  BreakoutBricks  `yaml:"bricks"`
}

// BreakoutPaddle defines paddle geometry.
type BreakoutPaddle struct {
	Width     float64 `yaml:"width"`      // Fraction of W
	Height    float64 `yaml:"height"`     // Fraction of H
	BottomGap float64 `yaml:"bottom_gap"` // Pixels between paddle and bottom edge
}

// BreakoutBall defines ball geometry and speed.
type BreakoutBall struct {
	Radius   float64 `yaml:"radius"`    // Fraction of W
	Speed    float64 `yaml:"speed"`     // Fraction of W per frame, per axis
	ServeGap float64 `yaml:"serve_gap"` // Pixels between ball and paddle on serve
}

// BreakoutControl defines how wheel rotation maps to paddle motion.
type BreakoutControl struct {
	Sensitivity float64 `yaml:"sensitivity"` // Fraction of W per radian
}

// BreakoutBricks defines the pyramid layout.
type BreakoutBricks struct {
	Rows       int     `yaml:"rows"`
	MaxColumns int     `yaml:"max_columns"` // Bricks in the top row
	SideMargin float64 `yaml:"side_margin"` // Fraction of W
	Padding    float64 `yaml:"padding"`     // Fraction of W
	Height     float64 `yaml:"height"`      // Fraction of H
	TopOffset  float64 `yaml:"top_offset"`  // Fraction of H
}

// WheelConfig defines the click wheel.
type WheelConfig struct {
	StepThreshold float64 `yaml:"step_threshold"` // Radians per discrete step
	KeyStep       float64 `yaml:"key_step"`       // Radians per arrow key press
}

// EntryKind selects what a menu entry opens.
type EntryKind string

const (
	KindGame    EntryKind = "game"    // Launch a registered app
	KindLink    EntryKind = "link"    // Show an "Opening" page for a URL
	KindPage    EntryKind = "page"    // Placeholder page
	KindHistory EntryKind = "history" // Session journal table
)

// MenuEntry is one line of the main menu.
type MenuEntry struct {
	Title   string    `yaml:"title"`
	Kind    EntryKind `yaml:"kind"`
	Target  string    `yaml:"target"`  // App ID or URL
	Preview string    `yaml:"preview"` // Text beside the list when selected
}

// MenuConfig defines the main menu.
type MenuConfig struct {
	Title   string      `yaml:"title"`
	Entries []MenuEntry `yaml:"entries"`
}

// Validate checks every section and joins all failures.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	fraction := func(name string, v float64) {
		if !(v > 0) || v > 1 {
			invalid("%s must be in (0, 1], got %v", name, v)
		}
	}
	nonNegative := func(name string, v float64) {
		if !(v >= 0) || math.IsInf(v, 0) {
			invalid("%s must be non-negative, got %v", name, v)
		}
	}

	if c.Runtime.TickRate <= 0 {
		invalid("runtime.tick_rate must be positive, got %d", c.Runtime.TickRate)
	}
	if !(c.Runtime.CellWidth > 0) || !(c.Runtime.CellHeight > 0) {
		invalid("runtime cell size must be positive, got %vx%v", c.Runtime.CellWidth, c.Runtime.CellHeight)
	}

	b := c.Breakout
	fraction("breakout.paddle.width", b.Paddle.Width)
	fraction("breakout.paddle.height", b.Paddle.Height)
	nonNegative("breakout.paddle.bottom_gap", b.Paddle.BottomGap)
	fraction("breakout.ball.radius", b.Ball.Radius)
	fraction("breakout.ball.speed", b.Ball.Speed)
	nonNegative("breakout.ball.serve_gap", b.Ball.ServeGap)
	if !(b.Ball.ServeGap > b.Paddle.BottomGap) {
		invalid("breakout.ball.serve_gap (%v) must exceed breakout.paddle.bottom_gap (%v)", b.Ball.ServeGap, b.Paddle.BottomGap)
	}
	if !(b.Control.Sensitivity > 0) {
		invalid("breakout.control.sensitivity must be positive, got %v", b.Control.Sensitivity)
	}
	if b.Bricks.Rows <= 0 || b.Bricks.MaxColumns <= 0 {
		invalid("breakout.bricks rows and max_columns must be positive, got %d and %d",
			b.Bricks.Rows, b.Bricks.MaxColumns)
	} else if b.Bricks.Rows > b.Bricks.MaxColumns {
		invalid("breakout.bricks.rows (%d) exceeds max_columns (%d)", b.Bricks.Rows, b.Bricks.MaxColumns)
	}
	nonNegative("breakout.bricks.side_margin", b.Bricks.SideMargin)
	nonNegative("breakout.bricks.padding", b.Bricks.Padding)
	fraction("breakout.bricks.height", b.Bricks.Height)
	nonNegative("breakout.bricks.top_offset", b.Bricks.TopOffset)
	if b.Bricks.SideMargin >= 0.5 {
		invalid("breakout.bricks.side_margin must leave room for bricks, got %v", b.Bricks.SideMargin)
	}

	if !(c.Wheel.StepThreshold > 0) || c.Wheel.StepThreshold >= math.Pi {
		invalid("wheel.step_threshold must be in (0, pi), got %v", c.Wheel.StepThreshold)
	}
	if !(c.Wheel.KeyStep > 0) || c.Wheel.KeyStep >= math.Pi {
		invalid("wheel.key_step must be in (0, pi), got %v", c.Wheel.KeyStep)
	}

	if len(c.Menu.Entries) == 0 {
		invalid("menu.entries must not be empty")
	}
	for i, e := range c.Menu.Entries {
		if e.Title == "" {
			invalid("menu.entries[%d].title is empty", i)
		}
		switch e.Kind {
		case KindGame, KindLink:
			if e.Target == "" {
				invalid("menu.entries[%d] (%s) needs a target", i, e.Kind)
			}
		case KindPage, KindHistory:
		default:
			invalid("menu.entries[%d].kind %q is unknown", i, e.Kind)
		}
	}

	return errors.Join(errs...)
}
