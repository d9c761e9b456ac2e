package tui

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ipod/internal/config"
	"github.com/vovakirdan/tui-ipod/internal/core"
	"github.com/vovakirdan/tui-ipod/internal/registry"
	"github.com/vovakirdan/tui-ipod/internal/rotary"
	"github.com/vovakirdan/tui-ipod/internal/storage"
)

// tapSlop is the rotation (radians) below which a ring drag counts as a tap.
const tapSlop = 0.1

// historyLimit caps the sessions loaded into the history table.
const historyLimit = 50

// Journal records finished app sessions.
type Journal interface {
	SaveSession(sess storage.Session) (int64, error)
	RecentSessions(limit int) ([]storage.Session, error)
}

// view is the screen the shell is showing.
type view int

const (
	viewMenu view = iota
	viewPage
	viewHistory
	viewGame
)

// String returns a human-readable name for the view.
func (v view) String() string {
	switch v {
	case viewMenu:
		return "menu"
	case viewPage:
		return "page"
	case viewHistory:
		return "history"
	case viewGame:
		return "game"
	default:
		return "unknown"
	}
}

// page is the content of a sub page.
type page struct {
	title string
	lines []string
}

// launchMsg asks the shell to start an app, as if picked from the menu.
type launchMsg struct {
	appID string
}

// ShellModel is the Bubble Tea model for the device: a menu of entries,
// sub pages, the session history and a hosted app, all driven by the click
// wheel or its keyboard stand-ins.
type ShellModel struct {
	cfg     *config.Config
	runtime core.RuntimeConfig
	journal Journal
	logger  *log.Logger
	keys    KeyMap
	help    help.Model
	layout  Layout

	port  *core.InputPort
	wheel *rotary.Wheel

	view   view
	cursor int
	page   page

	// Ring drag in progress
	dragging   bool
	dragButton core.Button
	dragAngle  float64 // Last sampled finger angle
	dragTravel float64 // Total rotation since the press, either direction
	dragSteps  int

	// Hosted app session
	game    registry.Game
	appID   string
	screen  *core.Screen
	raster  *core.Raster
	gen     uint64
	started time.Time
	won     bool

	history table.Model
	launch  string // App started by Init

	quitting bool
}

// NewShellModel creates the shell. A nil journal disables history and a
// nil logger discards log output.
func NewShellModel(cfg *config.Config, journal Journal, logger *log.Logger) ShellModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	runtime := core.DefaultConfig()
	runtime.TickRate = cfg.Runtime.TickRate
	runtime.CellW = cfg.Runtime.CellWidth
	runtime.CellH = cfg.Runtime.CellHeight

	h := help.New()
	h.ShowAll = false

	m := ShellModel{
		cfg:     cfg,
		runtime: runtime,
		journal: journal,
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    h,
		port:    core.NewInputPort(),
		wheel:   rotary.NewWheel(cfg.Wheel.StepThreshold),
		history: newHistoryTable(),
	}
	m.resize(runtime.ScreenW, runtime.ScreenH)
	return m
}

// WithApp makes the shell start an app as soon as it runs.
func (m ShellModel) WithApp(appID string) ShellModel {
	m.launch = appID
	return m
}

// Init starts the shell. Frames are only scheduled while an app runs.
func (m ShellModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.cfg.Menu.Title)}
	if m.launch != "" {
		id := m.launch
		cmds = append(cmds, func() tea.Msg { return launchMsg{appID: id} })
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m ShellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case launchMsg:
		return m.launchApp(msg.appID)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m ShellModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	act := m.keys.MapKey(msg)

	switch {
	case act.Quit:
		return m.quit()
	case act.Help:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case act.Turn != 0:
		out := m.wheel.Turn(float64(act.Turn) * m.cfg.Wheel.KeyStep)
		return m.applyWheel(out)
	case act.Button != core.ButtonNone:
		return m.press(act.Button)
	}

	return m, nil
}

// handleMouse turns mouse events on the wheel into touches and buttons.
func (m ShellModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.layout.TooSmall {
		return m, nil
	}
	wg := m.layout.Wheel

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.applyWheel(m.wheel.Turn(-m.cfg.Wheel.KeyStep))
		case tea.MouseButtonWheelDown:
			return m.applyWheel(m.wheel.Turn(m.cfg.Wheel.KeyStep))
		case tea.MouseButtonLeft:
		default:
			return m, nil
		}

		switch wg.Hit(msg.X, msg.Y) {
		case RegionHub:
			return m.press(core.ButtonSelect)
		case RegionRing:
			m.dragging = true
			m.dragButton = wg.ButtonAt(msg.X, msg.Y)
			m.dragAngle = wg.Angle(msg.X, msg.Y)
			m.dragTravel = 0
			m.dragSteps = 0
			m.wheel.Begin(m.dragAngle)
		}

	case tea.MouseActionMotion:
		if m.dragging {
			angle := wg.Angle(msg.X, msg.Y)
			m.dragTravel += math.Abs(rotary.Normalize(angle - m.dragAngle))
			m.dragAngle = angle
			return m.applyWheel(m.wheel.Move(angle))
		}

	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		tapped := m.dragSteps == 0 && m.dragTravel < tapSlop
		button := m.dragButton
		m.endDrag()
		if tapped && button != core.ButtonNone {
			return m.press(button)
		}
	}

	return m, nil
}

// endDrag releases any touch in progress.
func (m *ShellModel) endDrag() {
	m.dragging = false
	m.dragButton = core.ButtonNone
	m.dragAngle = 0
	m.dragTravel = 0
	m.dragSteps = 0
	m.wheel.End()
}

// applyWheel routes one wheel output to the current view.
func (m ShellModel) applyWheel(out rotary.Output) (tea.Model, tea.Cmd) {
	if out.Step != rotary.StepNone {
		m.dragSteps++
	}

	switch m.view {
	case viewGame:
		if out.HasDelta && out.Delta != 0 {
			m.port.Rotate(out.Delta)
		}
	case viewMenu:
		switch out.Step {
		case rotary.StepNext:
			m.moveCursor(1)
		case rotary.StepPrev:
			m.moveCursor(-1)
		}
	case viewHistory:
		switch out.Step {
		case rotary.StepNext:
			m.history.MoveDown(1)
		case rotary.StepPrev:
			m.history.MoveUp(1)
		}
	}

	return m, nil
}

// press handles a wheel button. While an app runs only menu belongs to the
// shell; every other button goes to the app through the input port.
func (m ShellModel) press(b core.Button) (tea.Model, tea.Cmd) {
	m.logger.Debug("button", "button", b, "view", m.view)

	if m.view == viewGame {
		if b == core.ButtonMenu {
			m.exitApp()
			m.openMenu()
			return m, nil
		}
		m.port.Press(b)
		return m, nil
	}

	switch b {
	case core.ButtonMenu:
		if m.view == viewMenu {
			m.logger.Debug("already at menu")
			return m, nil
		}
		m.openMenu()

	case core.ButtonForward:
		switch m.view {
		case viewMenu:
			m.moveCursor(1)
		case viewHistory:
			m.history.MoveDown(1)
		}

	case core.ButtonBack:
		switch m.view {
		case viewMenu:
			m.moveCursor(-1)
		case viewHistory:
			m.history.MoveUp(1)
		}

	case core.ButtonSelect:
		if m.view == viewMenu {
			return m.activate(m.cursor)
		}

	case core.ButtonPlayPause:
		m.logger.Debug("play/pause has no action here", "view", m.view)
	}

	return m, nil
}

// moveCursor moves the menu selection, stopping at both ends.
func (m *ShellModel) moveCursor(delta int) {
	m.cursor = core.Clamp(m.cursor+delta, 0, len(m.cfg.Menu.Entries)-1)
}

// openMenu shows a freshly built menu with the first entry selected.
func (m *ShellModel) openMenu() {
	m.endDrag()
	m.view = viewMenu
	m.cursor = 0
	m.page = page{}
	m.wheel.SetMode(rotary.ModeDiscrete)
}

// openPage shows a sub page.
func (m *ShellModel) openPage(title string, lines ...string) {
	m.endDrag()
	m.view = viewPage
	m.page = page{title: title, lines: lines}
}

// activate opens the menu entry at index i.
func (m ShellModel) activate(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.cfg.Menu.Entries) {
		return m, nil
	}
	entry := m.cfg.Menu.Entries[i]
	m.logger.Info("open", "entry", entry.Title, "kind", entry.Kind)

	switch entry.Kind {
	case config.KindGame:
		return m.launchApp(entry.Target)
	case config.KindLink:
		m.openPage(entry.Title, "Opening "+entry.Target)
	case config.KindPage:
		m.openPage(entry.Title, entry.Title, "Opening...")
	case config.KindHistory:
		m.openHistory()
	}
	return m, nil
}

// launchApp creates an app bound to the display area and starts its frames.
func (m ShellModel) launchApp(appID string) (tea.Model, tea.Cmd) {
	if m.game != nil {
		m.exitApp()
	}
	if m.layout.TooSmall {
		m.openPage("Error", "Screen too small")
		return m, nil
	}

	game, err := registry.Create(appID, m.cfg, m.port)
	if err != nil {
		m.logger.Error("cannot launch app", "app", appID, "err", err)
		m.openPage("Error", "Cannot open "+appID)
		return m, nil
	}

	d := m.layout.Display
	m.screen = core.NewScreen(d.W, d.H)
	m.raster = core.NewRaster(m.screen, m.screen.Bounds(), m.runtime.CellW, m.runtime.CellH)
	w, h := m.raster.Size()
	if err := game.Configure(w, h); err != nil {
		game.Teardown()
		m.logger.Error("cannot configure app", "app", appID, "err", err)
		m.openPage("Error", "Cannot open "+appID)
		return m, nil
	}

	m.endDrag()
	m.game = game
	m.appID = appID
	m.gen++
	m.started = time.Now()
	m.won = false
	m.view = viewGame
	m.wheel.SetMode(rotary.ModeContinuous)

	m.logger.Info("app started", "app", appID, "surface", fmt.Sprintf("%.0fx%.0f", w, h), "gen", m.gen)
	return m, tickCmd(m.runtime.TickRate, m.gen)
}

// exitApp tears the running app down and journals the session. Bumping the
// generation drops any tick already in flight.
func (m *ShellModel) exitApp() {
	if m.game == nil {
		return
	}

	status := m.game.Status()
	m.game.Teardown()

	sess := storage.Session{
		AppID:    m.appID,
		Outcome:  storage.OutcomeExited,
		Drops:    status.Drops,
		Duration: time.Since(m.started),
	}
	if status.Won {
		sess.Outcome = storage.OutcomeWon
	}
	m.record(sess)

	m.logger.Info("app ended", "app", m.appID, "outcome", sess.Outcome, "drops", sess.Drops)

	m.game = nil
	m.appID = ""
	m.screen = nil
	m.raster = nil
	m.gen++
}

// record writes a session to the journal, if there is one.
func (m *ShellModel) record(sess storage.Session) {
	if m.journal == nil {
		return
	}
	if _, err := m.journal.SaveSession(sess); err != nil {
		m.logger.Warn("cannot save session", "app", sess.AppID, "err", err)
	}
}

// handleTick advances the running app by one frame and schedules the next.
func (m ShellModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if m.game == nil || msg.Gen != m.gen {
		return m, nil
	}

	m.screen.Clear()
	m.game.AdvanceFrame(m.raster)

	status := m.game.Status()
	if status.Won && !m.won {
		m.won = true
		m.logger.Info("app won", "app", m.appID, "drops", status.Drops)
	}
	if status.Hint != "" {
		m.screen.DrawTextCentered(m.screen.Bounds(), m.screen.Height()*2/3, status.Hint, core.ColorNavy)
	}

	return m, tickCmd(m.runtime.TickRate, m.gen)
}

// resize recomputes the layout and rebinds a running app to the new display.
func (m *ShellModel) resize(width, height int) {
	m.runtime.ScreenW = width
	m.runtime.ScreenH = height
	m.layout = ComputeLayout(width, height)
	m.help.Width = width

	if m.layout.TooSmall {
		return
	}
	d := m.layout.Display
	m.sizeHistory(d.W, d.H-1)

	if m.game == nil {
		return
	}
	m.screen.Resize(d.W, d.H)
	m.raster = core.NewRaster(m.screen, m.screen.Bounds(), m.runtime.CellW, m.runtime.CellH)
	w, h := m.raster.Size()
	if err := m.game.Configure(w, h); err != nil {
		m.logger.Warn("cannot reconfigure app", "app", m.appID, "err", err)
		return
	}
	m.logger.Info("app restarted for new display size", "app", m.appID, "surface", fmt.Sprintf("%.0fx%.0f", w, h))
}

// quit ends the program, closing any running app session first.
func (m ShellModel) quit() (tea.Model, tea.Cmd) {
	m.exitApp()
	m.quitting = true
	return m, tea.Quit
}

// Run starts the Bubble Tea program with a shell model. A non-empty appID
// opens that app directly.
func Run(cfg *config.Config, journal Journal, logger *log.Logger, appID string) error {
	model := NewShellModel(cfg, journal, logger).WithApp(appID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag on the wheel
	)

	_, err := p.Run()
	return err
}
