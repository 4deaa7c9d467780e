package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/pinball"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

// Options configures one table session.
type Options struct {
	Context context.Context // parent of the simulation goroutine; nil means Background
	Table   config.PinballConfig
	Preset  config.DifficultyPreset
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil disables high scores
	Logger  *log.Logger
}

// Model is the Bubble Tea model for one pinball table.
type Model struct {
	sim      *pinball.Simulation
	ctx      context.Context
	cancel   context.CancelFunc
	renderer pinball.Renderer
	screen   *core.Screen
	keys     *KeyMapper
	help     help.Model
	store    *storage.Store
	logger   *log.Logger

	board       string
	player      string
	physPeriod  time.Duration
	framePeriod time.Duration
	hold        time.Duration
	heldUntil   [2]time.Time // indexed by pinball.Side; zero when released
	now         func() time.Time

	width    int
	height   int
	helpRows int // rows kept for the help bar, sized for the full help
	tooSmall bool

	gamesSaved uint64 // finished games already handed to the store
	quitting   bool
}

// NewModel creates the simulation for a session and lays it out for the
// runtime screen size. The simulation starts ticking in Init.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	h := help.New()
	h.ShowAll = false

	m := Model{
		sim:         pinball.NewSimulation(opts.Table, cfg.Seed, logger.WithPrefix("sim")),
		ctx:         ctx,
		cancel:      cancel,
		renderer:    pinball.NewRenderer(opts.Table.Render),
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:        NewKeyMapper(),
		help:        h,
		store:       opts.Store,
		logger:      logger,
		board:       config.ScoreBoardID(opts.Preset),
		player:      cfg.Player,
		physPeriod:  cfg.TickPeriod(opts.Table.Timing.PhysicsPeriod()),
		framePeriod: opts.Table.Timing.RenderPeriod(),
		hold:        time.Duration(opts.Table.Controls.FlipperHoldMs) * time.Millisecond,
		now:         time.Now,
		width:       cfg.ScreenW,
		height:      cfg.ScreenH,
	}
	if m.player == "" {
		m.player = "player"
	}
	m.helpRows = fullHelpHeight(m.help, m.keys.Keys())
	m.layout()
	return m
}

// Simulation exposes the running table, e.g. for a spectator feed.
func (m Model) Simulation() *pinball.Simulation {
	return m.sim
}

// Close stops the simulation goroutine.
func (m Model) Close() {
	m.cancel()
}

// Init starts the physics loop and the redraw loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.runSimulation(), frameCmd(m.framePeriod))
}

func (m Model) runSimulation() tea.Cmd {
	sim, ctx, period := m.sim, m.ctx, m.physPeriod
	return func() tea.Msg {
		sim.Run(ctx, period)
		return simStoppedMsg{}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.apply(m.keys.MapMouse(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case FrameMsg:
		return m.handleFrame(time.Time(msg))

	case simStoppedMsg:
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	}
	m.apply(action)
	return m, nil
}

// apply forwards an action to the simulation.
func (m *Model) apply(action core.Action) {
	switch action {
	case core.ActionFlipLeft:
		m.press(pinball.Left)
	case core.ActionFlipRight:
		m.press(pinball.Right)
	case core.ActionStart:
		m.sim.Start()
	case core.ActionLaunch:
		m.sim.Launch()
	case core.ActionReset:
		m.sim.Reset()
	case core.ActionScreenshot:
		m.saveScreenshot()
	}
}

// press raises a flipper and (re)arms its release deadline. Terminals only
// report presses, so key auto-repeat is what keeps a held flipper up.
func (m *Model) press(side pinball.Side) {
	m.sim.SetFlipper(side, true)
	m.heldUntil[side] = m.now().Add(m.hold)
}

// releaseFlippers drops every flipper whose hold deadline has passed.
func (m *Model) releaseFlippers(now time.Time) {
	for _, side := range []pinball.Side{pinball.Left, pinball.Right} {
		until := m.heldUntil[side]
		if until.IsZero() || now.Before(until) {
			continue
		}
		m.sim.SetFlipper(side, false)
		m.heldUntil[side] = time.Time{}
	}
}

// handleFrame runs once per redraw.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	m.releaseFlippers(now)
	m.recordGames(m.sim.Snapshot())
	return m, frameCmd(m.framePeriod)
}

// recordGames saves the game the simulation finished since the last frame.
// Frames may miss the game over phase entirely when the next game starts
// within one frame, so the simulation's own record is used.
func (m *Model) recordGames(s *pinball.Snapshot) {
	if s.GamesOver == m.gamesSaved {
		return
	}
	m.gamesSaved = s.GamesOver
	m.saveScore(s.LastGame)
}

func (m *Model) saveScore(g pinball.GameRecord) {
	if m.store == nil || g.Score <= 0 {
		return
	}
	entry := storage.ScoreEntry{
		Board:  m.board,
		Player: m.player,
		Score:  g.Score,
		Ticks:  int(g.Ticks),
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.logger.Error("could not save score", "board", m.board, "score", g.Score, "err", err)
		return
	}
	m.logger.Info("score saved", "board", m.board, "player", m.player, "score", g.Score, "ticks", entry.Ticks)
}

// layout sizes the screen to the window minus the help bar and resizes the
// table to match. Toggling the help never changes the table size.
func (m *Model) layout() {
	rows := max(m.height-m.helpRows, 0)
	m.screen.Resize(m.width, rows)

	w, h := m.renderer.WorldSize(m.width, rows)
	m.tooSmall = m.sim.Resize(w, h) != nil
}

func (m Model) helpView() string {
	return m.help.View(m.keys.Keys())
}

func fullHelpHeight(h help.Model, keys KeyMap) int {
	h.ShowAll = true
	return lipgloss.Height(h.View(keys))
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.renderer.Render(m.screen, m.sim.Snapshot())

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("pinball_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.tooSmall {
		m.screen.Clear()
		m.screen.DrawTextCentered(m.screen.Height()/2, "Window too small", core.ColorRed)
	} else {
		m.renderer.Render(m.screen, m.sim.Snapshot())
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Height(m.helpRows)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.helpView())
}

// Run starts the Bubble Tea program with a new table session and blocks
// until the player quits. onStart, when set, runs once the simulation
// exists, before the first frame.
func Run(opts Options, onStart func(*pinball.Simulation)) error {
	model := NewModel(opts)
	defer model.Close()

	if onStart != nil {
		onStart(model.Simulation())
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks launch the ball
	)

	_, err := p.Run()
	return err
}
