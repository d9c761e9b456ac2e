// ipod is a click wheel device shell for the terminal.
//
// Usage:
//
//	ipod                  - Start the device shell
//	ipod play <app>       - Open an app directly
//	ipod list             - List available apps
//	ipod serve            - Start SSH server for remote sessions
//	ipod history          - Show recent sessions
//
// Global flags:
//
//	--config <path>     - Custom shell config YAML
//	--db <path>         - Session journal (default: ~/.ipod/journal.db)
//	--log-level <lvl>   - debug, info, warn or error (default: info)
//	--log-file <path>   - Write logs to a file while the shell runs
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import apps to register them
	_ "github.com/vovakirdan/tui-ipod/internal/games/breakout"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ipod",
	Short: "iPod - a click wheel device in your terminal",
	Long: `iPod renders a click wheel device in the terminal: a menu on the
display, a wheel you can drag with the mouse, and Breakout to play.

Available commands:
  play     - Open an app directly
  list     - Show all available apps
  serve    - Start SSH server for remote sessions
  history  - View recent sessions

Examples:
  ipod
  ipod play breakout
  ipod serve --ssh :2222
  ipod history --limit 20`,
	SilenceUsage: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runShell("")
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom shell config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ipod/journal.db", "Path to session journal")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}
