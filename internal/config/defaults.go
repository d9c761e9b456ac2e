package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/ipod.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// Default returns the hardcoded default configuration.
// Kept in sync with defaults/ipod.yaml.
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			TickRate:   60,
			CellWidth:  4,
			CellHeight: 8,
		},
		Breakout: DefaultBreakoutConfig(),
		Wheel: WheelConfig{
			StepThreshold: math.Pi / 8,
			KeyStep:       math.Pi / 7,
		},
		Menu: MenuConfig{
			Title: "iPod",
			Entries: []MenuEntry{
				{Title: "Music", Kind: KindPage, Preview: "Now playing nothing"},
				{Title: "Photos", Kind: KindPage, Preview: "No photos yet"},
				{Title: "Games", Kind: KindGame, Target: "breakout", Preview: "Breakout. Turn the wheel to move the paddle"},
				{Title: "LinkedIn", Kind: KindLink, Target: "https://www.linkedin.com", Preview: "Professional profile"},
				{Title: "Behance", Kind: KindLink, Target: "https://www.behance.net", Preview: "Portfolio"},
				{Title: "Mail", Kind: KindLink, Target: "mailto:hello@example.com", Preview: "Get in touch"},
				{Title: "History", Kind: KindHistory, Preview: "Recent sessions"},
			},
		},
	}
}

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Paddle: BreakoutPaddle{
			Width:     0.25,
			Height:    0.03,
			BottomGap: 2,
		},
		Ball: BreakoutBall{
			Radius:   0.02,
			Speed:    0.003,
			ServeGap: 5,
		},
		Control: BreakoutControl{
			Sensitivity: 0.15,
		},
		Bricks: BreakoutBricks{
			Rows:       3,
			MaxColumns: 5,
			SideMargin: 0.11,
			Padding:    0.02,
			Height:     0.04,
			TopOffset:  0.15,
		},
	}
}
