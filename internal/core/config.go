package core

// RuntimeConfig contains the host parameters the shell runs with.
type RuntimeConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	TickRate int     // Frames per second (default 60)
	CellW    float64 // Surface pixels per terminal column
	CellH    float64 // Surface pixels per terminal row
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		CellW:    4,
		CellH:    8, // Terminal glyphs are about twice as tall as wide
	}
}

// GameState reports an app's status to the shell.
type GameState struct {
	State   string // App-specific state name
	Running bool   // Simulation is advancing
	Won     bool   // Terminal win state reached
	Drops   int    // Balls lost this session
	Hint    string // Short prompt the shell shows over the display, if any
}
