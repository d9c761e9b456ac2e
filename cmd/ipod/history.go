package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-ipod/internal/registry"
	"github.com/vovakirdan/tui-ipod/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryApp   string
	flagHistoryStats bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions",
	Long: `Display the most recent app sessions from the journal.

Examples:
  ipod history
  ipod history --limit 50
  ipod history --app breakout --stats
  ipod history --app breakout --clear`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to show")
	historyCmd.Flags().StringVar(&flagHistoryApp, "app", "", "Only show sessions of this app")
	historyCmd.Flags().BoolVar(&flagHistoryStats, "stats", false, "Show per-app totals instead of sessions")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the sessions of --app")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if flagHistoryApp != "" && !registry.Exists(flagHistoryApp) {
		return fmt.Errorf("unknown app %q (run 'ipod list' to see available apps)", flagHistoryApp)
	}
	if flagHistoryClear && flagHistoryApp == "" {
		return fmt.Errorf("--clear needs --app")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening session journal: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	switch {
	case flagHistoryClear:
		if err := store.ClearSessions(flagHistoryApp); err != nil {
			return fmt.Errorf("error clearing sessions: %w", err)
		}
		fmt.Fprintf(out, "Cleared sessions of %s.\n", registry.Title(flagHistoryApp))
		return nil

	case flagHistoryStats:
		return printStats(out, store, flagHistoryApp)
	}

	var sessions []storage.Session
	if flagHistoryApp != "" {
		sessions, err = store.AppSessions(flagHistoryApp, flagHistoryLimit)
	} else {
		sessions, err = store.RecentSessions(flagHistoryLimit)
	}
	if err != nil {
		return fmt.Errorf("error retrieving sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions yet.")
		return nil
	}

	printSessions(out, sessions, outputWidth())
	return nil
}

// outputWidth returns the terminal width, or 80 when stdout is not a terminal.
func outputWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	if w, _, err := term.GetSize(fd); err == nil {
		return w
	}
	return 80
}

// printSessions writes one line per session, dropping the date column on
// narrow terminals.
func printSessions(out io.Writer, sessions []storage.Session, width int) {
	wide := width >= 60

	if wide {
		fmt.Fprintf(out, "%-4s  %-16s  %-12s  %-7s  %5s  %s\n", "#", "When", "App", "Result", "Drops", "Time")
		fmt.Fprintf(out, "%-4s  %-16s  %-12s  %-7s  %5s  %s\n", "--", "----", "---", "------", "-----", "----")
	} else {
		fmt.Fprintf(out, "%-12s  %-7s  %s\n", "App", "Result", "Time")
		fmt.Fprintf(out, "%-12s  %-7s  %s\n", "---", "------", "----")
	}

	for i, s := range sessions {
		title := registry.Title(s.AppID)
		dur := s.Duration.Round(time.Second).String()
		if !wide {
			fmt.Fprintf(out, "%-12s  %-7s  %s\n", title, s.Outcome, dur)
			continue
		}
		fmt.Fprintf(out, "%-4d  %-16s  %-12s  %-7s  %5d  %s\n",
			i+1,
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			title,
			s.Outcome,
			s.Drops,
			dur,
		)
	}
}

// printStats writes the per-app totals, only for appID when it is set.
func printStats(out io.Writer, store *storage.Store, appID string) error {
	var stats map[string]*storage.AppStats
	if appID != "" {
		st, err := store.GetAppStats(appID)
		if err != nil {
			return fmt.Errorf("error retrieving stats: %w", err)
		}
		if st.Sessions > 0 {
			stats = map[string]*storage.AppStats{appID: st}
		}
	} else {
		all, err := store.GetAllAppStats()
		if err != nil {
			return fmt.Errorf("error retrieving stats: %w", err)
		}
		stats = all
	}
	if len(stats) == 0 {
		fmt.Fprintln(out, "No sessions yet.")
		return nil
	}

	fmt.Fprintf(out, "%-12s  %8s  %4s  %5s  %10s  %s\n", "App", "Sessions", "Wins", "Drops", "Time", "Last played")
	for _, info := range registry.List() {
		st, ok := stats[info.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "%-12s  %8d  %4d  %5d  %10s  %s\n",
			info.Title,
			st.Sessions,
			st.Wins,
			st.TotalDrops,
			st.TotalTime.Round(time.Second),
			st.LastPlayed.Local().Format("2006-01-02 15:04"),
		)
	}
	return nil
}
