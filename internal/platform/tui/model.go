package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cookie-crunch/internal/core"
	"github.com/vovakirdan/cookie-crunch/internal/registry"
	"github.com/vovakirdan/cookie-crunch/internal/storage"
)

// Resizer is implemented by games that can follow a terminal resize
// without restarting.
type Resizer interface {
	Resize(width, height int)
}

// Options tune a game model.
type Options struct {
	Source string      // recorded with each result ("local", "ssh")
	Logger *log.Logger // optional
	// Embedded models run inside another program and never send tea.Quit
	// when the player goes back.
	Embedded bool
}

// Model is the Bubble Tea model for running one level.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	goingBack  bool
	scoreSaved bool // Whether the result has been saved for current game over
	lastRunID  string
	tickLoop   uint64
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Source == "" {
		opts.Source = "local"
	}

	// Reset here: Init has a value receiver and cannot keep state.
	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		tickLoop:   newTickLoop(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.tickLoop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.tickLoop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the level when it is over or paused; during play it
	// clears the selection.
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.goingBack = true
		if !m.scoreSaved {
			m.saveResult()
		}
		if m.opts.Embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		if !m.gameState.GameOver {
			m.saveResult() // abandoned run
		}
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.tickLoop)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveResult()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.tickLoop)
}

// saveResult records the current run once.
func (m *Model) saveResult() {
	m.scoreSaved = true
	if m.store == nil || m.gameState.MovesUsed == 0 {
		return
	}
	runID, err := m.store.SaveResult(storage.Result{
		LevelID:   m.game.ID(),
		Score:     m.gameState.Score,
		MovesUsed: m.gameState.MovesUsed,
		Won:       m.gameState.Won,
		Seed:      m.config.Seed,
		Source:    m.opts.Source,
	})
	if err != nil {
		if m.opts.Logger != nil {
			m.opts.Logger.Error("could not save result", "level", m.game.ID(), "err", err)
		}
		return
	}
	m.lastRunID = runID
	if m.opts.Logger != nil {
		m.opts.Logger.Debug("result saved", "level", m.game.ID(), "run", runID, "score", m.gameState.Score)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".crunch", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// GoingBack reports whether the player asked to return to the menu.
func (m Model) GoingBack() bool {
	return m.goingBack
}

// LastRunID returns the run ID of the last saved result.
func (m Model) LastRunID() string {
	return m.lastRunID
}

// Run starts the Bubble Tea program with the given model.
// It returns true if the player went back to the menu instead of quitting.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) (bool, error) {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		// quitting mid-game still records the run
		if !fm.scoreSaved {
			fm.saveResult()
		}
		return fm.GoingBack(), nil
	}
	return false, nil
}
