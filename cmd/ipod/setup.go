package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ipod/internal/config"
	"github.com/vovakirdan/tui-ipod/internal/platform/tui"
	"github.com/vovakirdan/tui-ipod/internal/storage"
)

// newLogger builds the logger for a command. The shell owns the terminal,
// so without --log-file its logs go nowhere; other commands log to stderr.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		out = f
		closeFn = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "ipod",
	})
	return logger, closeFn, nil
}

// loadConfig loads the shell config, honoring --config.
func loadConfig(logger *log.Logger) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", "entries", len(cfg.Menu.Entries), "tick_rate", cfg.Runtime.TickRate)
	return cfg, nil
}

// runShell opens the journal and runs the device shell, optionally
// starting an app right away.
func runShell(appID string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	// Open the journal; the shell still works without one
	var journal tui.Journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session journal: %v\n", err)
		logger.Warn("journal unavailable", "path", flagDBPath, "err", err)
	} else {
		defer store.Close()
		journal = store
	}

	if err := tui.Run(cfg, journal, logger, appID); err != nil {
		return fmt.Errorf("error running shell: %w", err)
	}
	return nil
}
