package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ipod/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <app>",
	Short: "Open an app directly",
	Long: `Start the device shell with the specified app already open.
Pressing menu leaves the app for the main menu as usual.

Controls:
  Left/Right, h/l   - Turn the wheel (moves the paddle)
  Mouse drag        - Drag around the wheel ring
  Enter/Space       - Select (start or resume)
  Esc/m             - Menu (leave the app)
  Q/Ctrl+C          - Quit

Examples:
  ipod play breakout
  ipod play breakout --config ./my-ipod.yaml`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	appID := args[0]

	// Check if app exists
	if !registry.Exists(appID) {
		return fmt.Errorf("unknown app %q (run 'ipod list' to see available apps)", appID)
	}

	return runShell(appID)
}
