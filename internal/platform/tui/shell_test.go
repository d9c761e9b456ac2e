package tui

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ipod/internal/config"
	"github.com/vovakirdan/tui-ipod/internal/core"
	"github.com/vovakirdan/tui-ipod/internal/games/breakout"
	"github.com/vovakirdan/tui-ipod/internal/registry"
	"github.com/vovakirdan/tui-ipod/internal/rotary"
	"github.com/vovakirdan/tui-ipod/internal/storage"
)

// Menu indexes in the default configuration
const (
	entryMusic    = 0
	entryGames    = 2
	entryLinkedIn = 3
	entryHistory  = 6
)

// recorderApp is a hosted app that records what the shell sends it.
type recorderApp struct {
	cancel   []func()
	buttons  []core.Button
	rotation float64
	width    float64
	height   float64
	frames   int
	won      bool
	drops    int
	torn     bool
}

var lastRecorder *recorderApp

func init() {
	registry.Register("recorder", "Recorder", func(_ *config.Config, port *core.InputPort) registry.Game {
		r := &recorderApp{}
		r.cancel = append(r.cancel,
			port.OnButton(func(b core.Button) { r.buttons = append(r.buttons, b) }),
			port.OnRotate(func(d float64) { r.rotation += d }),
		)
		lastRecorder = r
		return r
	})
}

func (r *recorderApp) ID() string    { return "recorder" }
func (r *recorderApp) Title() string { return "Recorder" }

func (r *recorderApp) Configure(w, h float64) error {
	r.width, r.height = w, h
	return nil
}

func (r *recorderApp) AdvanceFrame(dst core.Canvas) {
	r.frames++
	if dst != nil {
		dst.FillRect(0, 0, 8, 8, core.ColorWhite)
	}
}

func (r *recorderApp) Teardown() {
	for _, c := range r.cancel {
		c()
	}
	r.torn = true
}

func (r *recorderApp) Status() core.GameState {
	return core.GameState{State: "recording", Running: !r.torn, Won: r.won, Drops: r.drops}
}

// fakeJournal keeps sessions in memory.
type fakeJournal struct {
	sessions []storage.Session
	err      error
}

func (j *fakeJournal) SaveSession(s storage.Session) (int64, error) {
	if j.err != nil {
		return 0, j.err
	}
	j.sessions = append(j.sessions, s)
	return int64(len(j.sessions)), nil
}

func (j *fakeJournal) RecentSessions(limit int) ([]storage.Session, error) {
	if j.err != nil {
		return nil, j.err
	}
	return j.sessions[:min(limit, len(j.sessions))], nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func update(t *testing.T, m ShellModel, msg tea.Msg) (ShellModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(ShellModel), cmd
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func click(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

// launch starts an app the way Init's launch message does.
func launch(t *testing.T, m ShellModel, appID string) (ShellModel, tea.Cmd) {
	t.Helper()
	m, cmd := update(t, m, launchMsg{appID: appID})
	if m.view != viewGame {
		t.Fatalf("got view %v after launching %q, expected game", m.view, appID)
	}
	return m, cmd
}

func TestShellStartsAtMenu(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)

	if m.view != viewMenu || m.cursor != 0 {
		t.Errorf("got view %v cursor %d, expected menu at 0", m.view, m.cursor)
	}
	if m.wheel.Mode() != rotary.ModeDiscrete {
		t.Errorf("got wheel mode %v, expected discrete", m.wheel.Mode())
	}
	if !strings.Contains(m.View(), "iPod") {
		t.Error("menu view should show the title")
	}
	if m.Init() == nil {
		t.Error("Init should set the window title")
	}
}

func TestShellMenuNavigationClamps(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)
	last := len(m.cfg.Menu.Entries) - 1

	for range last + 5 {
		m, _ = update(t, m, keyMsg(tea.KeyDown))
	}
	if m.cursor != last {
		t.Errorf("got cursor %d, expected %d", m.cursor, last)
	}

	for range last + 5 {
		m, _ = update(t, m, keyMsg(tea.KeyUp))
	}
	if m.cursor != 0 {
		t.Errorf("got cursor %d, expected 0", m.cursor)
	}
}

func TestShellKeyTurnSteps(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)

	m, _ = update(t, m, keyMsg(tea.KeyRight))
	m, _ = update(t, m, keyMsg(tea.KeyRight))
	if m.cursor != 2 {
		t.Errorf("got cursor %d after two clockwise turns, expected 2", m.cursor)
	}

	m, _ = update(t, m, keyMsg(tea.KeyLeft))
	if m.cursor != 1 {
		t.Errorf("got cursor %d after a counter-clockwise turn, expected 1", m.cursor)
	}
}

func TestShellScrollWheelSteps(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m.cursor != 1 {
		t.Errorf("got cursor %d, expected 1", m.cursor)
	}
}

func TestShellLaunchGame(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)
	m.cursor = entryGames

	m, cmd := update(t, m, keyMsg(tea.KeyEnter))
	if m.view != viewGame {
		t.Fatalf("got view %v, expected game", m.view)
	}
	if cmd == nil {
		t.Error("launch should schedule a tick")
	}
	if m.appID != "breakout" {
		t.Errorf("got app %q, expected breakout", m.appID)
	}
	if m.wheel.Mode() != rotary.ModeContinuous {
		t.Errorf("got wheel mode %v, expected continuous", m.wheel.Mode())
	}
	if got := m.port.Subscribers(); got != 2 {
		t.Errorf("got %d subscribers, expected 2", got)
	}

	g := m.game.(*breakout.Game)
	if g.CurrentState() != breakout.StateIdle {
		t.Errorf("got state %v, expected idle", g.CurrentState())
	}
	if l := g.Layout(); l.Width != 232 || l.Height != 96 {
		t.Errorf("got surface %vx%v, expected 232x96", l.Width, l.Height)
	}
}

func TestShellLaunchUnknownApp(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)

	m, cmd := update(t, m, launchMsg{appID: "nope"})
	if cmd != nil {
		t.Error("failed launch should not schedule ticks")
	}
	if m.view != viewPage || m.page.title != "Error" {
		t.Errorf("got view %v page %q, expected error page", m.view, m.page.title)
	}
	if len(m.page.lines) != 1 || m.page.lines[0] != "Cannot open nope" {
		t.Errorf("got lines %q", m.page.lines)
	}
}

func TestShellTicks(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)
	m, _ = launch(t, m, "recorder")
	rec := lastRecorder

	_, cmd := update(t, m, TickMsg{Gen: m.gen - 1, Time: time.Now()})
	if cmd != nil || rec.frames != 0 {
		t.Errorf("stale tick ran a frame: frames %d, cmd %v", rec.frames, cmd != nil)
	}

	m, cmd = update(t, m, TickMsg{Gen: m.gen, Time: time.Now()})
	if cmd == nil {
		t.Error("current tick should schedule the next one")
	}
	if rec.frames != 1 {
		t.Errorf("got %d frames, expected 1", rec.frames)
	}
	if c := m.screen.GetCell(0, 0); c.Bg != core.ColorWhite {
		t.Errorf("frame not drawn to the display, got cell %+v", c)
	}

	// A tick from the finished session is ignored
	gen := m.gen
	m, _ = update(t, m, keyMsg(tea.KeyEsc))
	_, cmd = update(t, m, TickMsg{Gen: gen})
	if cmd != nil || rec.frames != 1 {
		t.Errorf("tick after exit ran a frame: frames %d", rec.frames)
	}
}

func TestShellTickWithoutApp(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)

	if _, cmd := update(t, m, TickMsg{Gen: m.gen}); cmd != nil {
		t.Error("menu should not schedule ticks")
	}
}

func TestShellMenuExitsApp(t *testing.T) {
	j := &fakeJournal{}
	m := NewShellModel(config.Default(), j, nil)
	m, _ = launch(t, m, "recorder")
	rec := lastRecorder
	rec.drops = 2

	m.cursor = 4
	m, _ = update(t, m, keyMsg(tea.KeyEsc))

	if m.view != viewMenu || m.cursor != 0 {
		t.Errorf("got view %v cursor %d, expected fresh menu", m.view, m.cursor)
	}
	if !rec.torn {
		t.Error("app was not torn down")
	}
	if got := m.port.Subscribers(); got != 0 {
		t.Errorf("got %d subscribers after exit, expected 0", got)
	}
	if m.wheel.Mode() != rotary.ModeDiscrete {
		t.Errorf("got wheel mode %v, expected discrete", m.wheel.Mode())
	}

	if len(j.sessions) != 1 {
		t.Fatalf("got %d sessions, expected 1", len(j.sessions))
	}
	s := j.sessions[0]
	if s.AppID != "recorder" || s.Outcome != storage.OutcomeExited || s.Drops != 2 {
		t.Errorf("got session %+v", s)
	}
}

func TestShellRecordsWin(t *testing.T) {
	j := &fakeJournal{}
	m := NewShellModel(config.Default(), j, nil)
	m, _ = launch(t, m, "recorder")
	lastRecorder.won = true

	m, _ = update(t, m, TickMsg{Gen: m.gen})
	if !m.won {
		t.Error("win was not noticed on tick")
	}
	update(t, m, keyMsg(tea.KeyEsc))

	if len(j.sessions) != 1 || j.sessions[0].Outcome != storage.OutcomeWon {
		t.Errorf("got sessions %+v, expected one win", j.sessions)
	}
}

func TestShellJournalErrorIgnored(t *testing.T) {
	j := &fakeJournal{err: errors.New("disk full")}
	m := NewShellModel(config.Default(), j, nil)
	m, _ = launch(t, m, "recorder")

	m, _ = update(t, m, keyMsg(tea.KeyEsc))
	if m.view != viewMenu {
		t.Errorf("got view %v, expected menu", m.view)
	}
}

func TestShellForwardsButtonsToApp(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)
	m, _ = launch(t, m, "recorder")
	rec := lastRecorder

	m, _ = update(t, m, runes("p"))
	m, _ = update(t, m, keyMsg(tea.KeyEnter))
	m, _ = update(t, m, keyMsg(tea.KeyDown))
	update(t, m, keyMsg(tea.KeyUp))

	expected := []core.Button{core.ButtonPlayPause, core.ButtonSelect, core.ButtonForward, core.ButtonBack}
	if len(rec.buttons) != len(expected) {
		t.Fatalf("got buttons %v, expected %v", rec.buttons, expected)
	}
	for i := range expected {
		if rec.buttons[i] != expected[i] {
			t.Errorf("button %d: got %v, expected %v", i, rec.buttons[i], expected[i])
		}
	}
}

func TestShellKeyTurnRotatesApp(t *testing.T) {
	cfg := config.Default()
	m := NewShellModel(cfg, nil, nil)
	m, _ = launch(t, m, "recorder")
	rec := lastRecorder

	m, _ = update(t, m, keyMsg(tea.KeyRight))
	if math.Abs(rec.rotation-cfg.Wheel.KeyStep) > 1e-9 {
		t.Errorf("got rotation %v, expected %v", rec.rotation, cfg.Wheel.KeyStep)
	}

	update(t, m, keyMsg(tea.KeyLeft))
	if math.Abs(rec.rotation) > 1e-9 {
		t.Errorf("got rotation %v, expected 0", rec.rotation)
	}
}

func TestShellHubStartsGame(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)
	m, _ = launch(t, m, "breakout")

	m, _ = update(t, m, click(tea.MouseActionPress, 40, 18))
	g := m.game.(*breakout.Game)
	if g.CurrentState() != breakout.StateRunning {
		t.Errorf("got state %v, expected running", g.CurrentState())
	}
}

func TestShellDragMovesPaddle(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)
	m, _ = launch(t, m, "breakout")
	m, _ = update(t, m, keyMsg(tea.KeyEnter))
	g := m.game.(*breakout.Game)
	before := g.Snapshot().PaddleX

	m, _ = update(t, m, click(tea.MouseActionPress, 45, 18))
	m, _ = update(t, m, click(tea.MouseActionMotion, 44, 21))
	update(t, m, click(tea.MouseActionRelease, 44, 21))

	if after := g.Snapshot().PaddleX; after <= before {
		t.Errorf("clockwise drag should move the paddle right, got %v then %v", before, after)
	}
}

func TestShellRingTapPressesButton(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)

	m, _ = update(t, m, click(tea.MouseActionPress, 45, 18))
	if m.cursor != 0 {
		t.Errorf("press alone moved the cursor to %d", m.cursor)
	}
	m, _ = update(t, m, click(tea.MouseActionRelease, 45, 18))
	if m.cursor != 1 {
		t.Errorf("got cursor %d after tapping forward, expected 1", m.cursor)
	}
	if m.dragging {
		t.Error("drag still active after release")
	}
}

func TestShellRingDragSteps(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)

	m, _ = update(t, m, click(tea.MouseActionPress, 45, 18))
	m, _ = update(t, m, click(tea.MouseActionMotion, 44, 21))
	if m.cursor != 1 {
		t.Errorf("got cursor %d after dragging clockwise, expected 1", m.cursor)
	}

	m, _ = update(t, m, click(tea.MouseActionRelease, 44, 21))
	if m.cursor != 1 {
		t.Errorf("release after a drag pressed a button, cursor %d", m.cursor)
	}
}

func TestShellShortDragIsNotTap(t *testing.T) {
	tests := []struct {
		name string
		open func(t *testing.T, m ShellModel) ShellModel
	}{
		{"menu", func(_ *testing.T, m ShellModel) ShellModel { return m }},
		{"history", func(t *testing.T, m ShellModel) ShellModel {
			m.cursor = entryHistory
			m, _ = update(t, m, keyMsg(tea.KeyEnter))
			return m
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := &fakeJournal{sessions: []storage.Session{{AppID: "breakout"}, {AppID: "breakout"}}}
			m := tt.open(t, NewShellModel(config.Default(), j, nil))
			cursor, historyCursor := m.cursor, m.history.Cursor()

			// About 0.35 rad: below the step threshold, above the tap slop
			m, _ = update(t, m, click(tea.MouseActionPress, 45, 18))
			m, _ = update(t, m, click(tea.MouseActionMotion, 45, 17))
			if m.dragTravel < tapSlop {
				t.Fatalf("got drag travel %v, expected at least %v", m.dragTravel, tapSlop)
			}
			m, _ = update(t, m, click(tea.MouseActionRelease, 45, 17))

			if m.cursor != cursor || m.history.Cursor() != historyCursor {
				t.Errorf("short drag pressed a button: cursor %d -> %d, history %d -> %d",
					cursor, m.cursor, historyCursor, m.history.Cursor())
			}
		})
	}
}

func TestShellDragBackToStartIsNotTap(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)

	m, _ = update(t, m, click(tea.MouseActionPress, 45, 18))
	m, _ = update(t, m, click(tea.MouseActionMotion, 45, 17))
	m, _ = update(t, m, click(tea.MouseActionMotion, 45, 18))
	m, _ = update(t, m, click(tea.MouseActionRelease, 45, 18))

	if m.cursor != 0 {
		t.Errorf("drag out and back pressed forward, cursor %d", m.cursor)
	}
}

func TestShellMenuTapLeavesPage(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)
	m, _ = update(t, m, keyMsg(tea.KeyEnter))
	if m.view != viewPage {
		t.Fatalf("got view %v, expected page", m.view)
	}

	m, _ = update(t, m, click(tea.MouseActionPress, 40, 15))
	m, _ = update(t, m, click(tea.MouseActionRelease, 40, 15))
	if m.view != viewMenu {
		t.Errorf("got view %v after tapping menu, expected menu", m.view)
	}
}

func TestShellEntryPages(t *testing.T) {
	tests := []struct {
		name     string
		entry    int
		title    string
		expected []string
	}{
		{"page", entryMusic, "Music", []string{"Music", "Opening..."}},
		{"link", entryLinkedIn, "LinkedIn", []string{"Opening https://www.linkedin.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewShellModel(config.Default(), nil, nil)
			m.cursor = tt.entry

			m, _ = update(t, m, keyMsg(tea.KeyEnter))
			if m.view != viewPage || m.page.title != tt.title {
				t.Fatalf("got view %v page %q, expected page %q", m.view, m.page.title, tt.title)
			}
			if strings.Join(m.page.lines, "|") != strings.Join(tt.expected, "|") {
				t.Errorf("got lines %q, expected %q", m.page.lines, tt.expected)
			}
			if !strings.Contains(m.View(), tt.expected[0]) {
				t.Error("page text missing from view")
			}

			// Select does nothing on a page
			m, _ = update(t, m, keyMsg(tea.KeyEnter))
			if m.view != viewPage {
				t.Errorf("got view %v after select on page", m.view)
			}
		})
	}
}

func TestShellHistory(t *testing.T) {
	j := &fakeJournal{sessions: []storage.Session{
		{ID: 2, AppID: "breakout", Outcome: storage.OutcomeWon, Drops: 1, Duration: 90 * time.Second},
		{ID: 1, AppID: "breakout", Outcome: storage.OutcomeExited, Duration: 5 * time.Second},
	}}
	m := NewShellModel(config.Default(), j, nil)
	m.cursor = entryHistory

	m, _ = update(t, m, keyMsg(tea.KeyEnter))
	if m.view != viewHistory {
		t.Fatalf("got view %v, expected history", m.view)
	}

	rows := m.history.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, expected 2", len(rows))
	}
	if rows[0][1] != "Breakout" || rows[0][2] != "won" || rows[0][4] != "1m30s" {
		t.Errorf("got row %v", rows[0])
	}

	m, _ = update(t, m, keyMsg(tea.KeyDown))
	if m.history.Cursor() != 1 {
		t.Errorf("got history cursor %d, expected 1", m.history.Cursor())
	}
	if !strings.Contains(m.View(), "Breakout") {
		t.Error("history view missing sessions")
	}
}

func TestShellHistoryWithoutJournal(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)
	m.cursor = entryHistory

	m, _ = update(t, m, keyMsg(tea.KeyEnter))
	if !strings.Contains(m.View(), "History unavailable") {
		t.Error("expected unavailable message")
	}
}

func TestShellHistoryNarrow(t *testing.T) {
	j := &fakeJournal{sessions: []storage.Session{{AppID: "breakout", Outcome: storage.OutcomeExited}}}
	m := NewShellModel(config.Default(), j, nil)
	m.cursor = entryHistory
	m, _ = update(t, m, keyMsg(tea.KeyEnter))

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 24})
	if got := len(m.history.Columns()); got != 3 {
		t.Fatalf("got %d columns, expected 3", got)
	}
	rows := m.history.Rows()
	if len(rows) != 1 || len(rows[0]) != 3 {
		t.Errorf("got rows %v, expected one three-column row", rows)
	}
}

func TestShellResizeReconfiguresGame(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)
	m, _ = launch(t, m, "breakout")
	m, _ = update(t, m, keyMsg(tea.KeyEnter))

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	g := m.game.(*breakout.Game)
	if g.CurrentState() != breakout.StateIdle {
		t.Errorf("got state %v after resize, expected idle", g.CurrentState())
	}
	if l := g.Layout(); l.Width != 232 || l.Height != 144 {
		t.Errorf("got surface %vx%v, expected 232x144", l.Width, l.Height)
	}
	if m.screen.Height() != 18 {
		t.Errorf("got display height %d, expected 18", m.screen.Height())
	}
}

func TestShellResizeLogsRestart(t *testing.T) {
	var buf bytes.Buffer
	m := NewShellModel(config.Default(), nil, log.New(&buf))
	m, _ = launch(t, m, "breakout")

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if !strings.Contains(buf.String(), "app restarted for new display size") {
		t.Errorf("restart not logged at info, got %q", buf.String())
	}
}

func TestShellTooSmall(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})

	if !strings.Contains(m.View(), "Terminal too small") {
		t.Errorf("got view %q", m.View())
	}

	m, _ = update(t, m, launchMsg{appID: "breakout"})
	if m.view != viewPage || m.page.lines[0] != "Screen too small" {
		t.Errorf("got view %v page %q", m.view, m.page.lines)
	}
}

func TestShellQuitClosesApp(t *testing.T) {
	j := &fakeJournal{}
	m := NewShellModel(config.Default(), j, nil)
	m, _ = launch(t, m, "recorder")

	m, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
	if len(j.sessions) != 1 || j.sessions[0].Outcome != storage.OutcomeExited {
		t.Errorf("got sessions %+v, expected one exit", j.sessions)
	}
}

func TestShellHelpToggle(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)

	m, _ = update(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Error("help should expand")
	}
	m, _ = update(t, m, runes("?"))
	if m.help.ShowAll {
		t.Error("help should collapse")
	}
}

func TestShellDrawsAppHint(t *testing.T) {
	m := NewShellModel(config.Default(), nil, nil)
	m, _ = launch(t, m, "breakout")

	m, _ = update(t, m, TickMsg{Gen: m.gen})
	row := m.screen.Height() * 2 / 3
	if !strings.Contains(m.screen.Row(row), "Press select to start") {
		t.Errorf("idle hint missing, row %d = %q", row, m.screen.Row(row))
	}

	m, _ = update(t, m, keyMsg(tea.KeyEnter))
	m, _ = update(t, m, TickMsg{Gen: m.gen})
	if strings.Contains(m.screen.Row(row), "Press select") {
		t.Errorf("hint shown while running, row %d = %q", row, m.screen.Row(row))
	}
}
