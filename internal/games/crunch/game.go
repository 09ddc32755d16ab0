// Package crunch is the terminal presenter for Cookie Crunch. Each level is a
// registry.Game that drives a session.Session and replays its events over a
// few ticks each so the platform can animate swaps, matches and falls.
package crunch

import (
	"errors"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cookie-crunch/internal/config"
	"github.com/vovakirdan/cookie-crunch/internal/core"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/levels"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/session"
	"github.com/vovakirdan/cookie-crunch/internal/registry"
)

// messageTicks is how long a status line stays on screen.
const messageTicks = 45

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// LoadConfig returns the config the games will use, with the preset applied.
// A broken config file falls back to the defaults.
func LoadConfig() config.CrunchConfig {
	cfg, err := config.LoadCrunch(configPath)
	if err != nil {
		cfg = config.DefaultCrunchConfig()
	}
	if difficultyPreset != "" {
		config.ApplyCrunchPreset(&cfg, difficultyPreset)
	}
	return cfg
}

func init() {
	all, err := levels.Embedded().LoadAll()
	if err != nil {
		panic(err)
	}
	for _, lvl := range all {
		lvl := lvl
		registry.Register(lvl.ID, lvl.Title(), func() registry.Game {
			return New(lvl)
		})
	}
}

// RegisterLevels adds every level under loader that is not registered yet.
// It returns the IDs that were added.
func RegisterLevels(loader *levels.Loader, logger *log.Logger) ([]string, error) {
	all, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	var added []string
	for _, lvl := range all {
		lvl := lvl
		if err := registry.TryRegister(lvl.ID, lvl.Title(), func() registry.Game {
			return New(lvl)
		}); err != nil {
			if logger != nil {
				logger.Warn("level not registered", "id", lvl.ID, "file", lvl.FilePath, "err", err)
			}
			continue
		}
		added = append(added, lvl.ID)
	}
	return added, nil
}

// Game presents one level.
type Game struct {
	level levels.Level
	cfg   config.CrunchConfig
	rng   *rand.Rand
	sess  *session.Session
	tick  uint64

	// What is on screen. It trails the session while events replay.
	view    view
	shown   session.State
	queue   []session.Event
	current *transition

	cursor   engine.Coord
	selected bool
	anchor   engine.Coord
	hint     *engine.Swap

	message      string
	messageTicks int
	bestCombo    int
	failure      error

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a game for lvl.
func New(lvl levels.Level) *Game {
	return &Game{level: lvl}
}

// ID returns the level identifier.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.level.Title()
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.ResetWithConfig(cfg, LoadConfig())
}

// ResetWithConfig restarts the game with an explicit game config.
func (g *Game) ResetWithConfig(rc core.RuntimeConfig, cfg config.CrunchConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.queue = nil
	g.current = nil
	g.selected = false
	g.hint = nil
	g.message = ""
	g.messageTicks = 0
	g.bestCombo = 0
	g.failure = nil
	g.paused = false
	g.shown = session.State{}

	board, err := g.level.NewBoard(cfg, g.rng)
	if err != nil {
		g.fail(err)
		return
	}
	g.sess = session.New(board)
	g.view = newView(board.Columns(), board.Rows())
	g.cursor = g.firstPlayable()

	ev, err := g.sess.Begin()
	if err != nil {
		g.fail(err)
		return
	}
	g.enqueue([]session.Event{ev})
	g.checkScreenSize()
}

// fail stops the game with an error shown instead of the board.
func (g *Game) fail(err error) {
	g.failure = err
	g.sess = nil
}

// Err returns the error that stopped the game, if any.
func (g *Game) Err() error {
	return g.failure
}

func (g *Game) firstPlayable() engine.Coord {
	for row := 0; row < g.sess.Rows(); row++ {
		for col := 0; col < g.sess.Columns(); col++ {
			if g.sess.TileAt(col, row) {
				return engine.C(col, row)
			}
		}
	}
	return engine.C(0, 0)
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	if g.sess == nil {
		g.tooSmall = false
		return
	}
	w, h := g.minScreenSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Resize follows a terminal resize without restarting the level.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}

	if g.sess == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.shown.Over {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.updateAnimation() {
		return core.StepResult{State: g.State(), Busy: true}
	}

	if g.shown.Over {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return core.StepResult{State: g.State(), Busy: g.animating()}
}

func (g *Game) handleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionHint):
		g.showHint()
		return
	case in.Has(core.ActionShuffle):
		g.selected = false
		g.hint = nil
		events, err := g.sess.Reshuffle()
		g.apply(events, err)
		return
	case in.Has(core.ActionBack):
		g.selected = false
		return
	case in.Has(core.ActionSelect), in.Has(core.ActionConfirm):
		g.toggleSelect()
		return
	}

	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if !in.Has(a) {
			continue
		}
		dx, dy, _ := a.Direction()
		next := engine.C(g.cursor.Column+dx, g.cursor.Row+dy)
		if g.selected {
			g.selected = false
			g.trySwap(engine.NewSwap(g.anchor, next))
			return
		}
		g.moveCursor(dx, dy)
		return
	}
}

// moveCursor moves one cell, stepping over holes in the mask.
func (g *Game) moveCursor(dx, dy int) {
	grid := core.NewRect(0, 0, g.sess.Columns(), g.sess.Rows())
	c := g.cursor
	for {
		c = engine.C(c.Column+dx, c.Row+dy)
		if !grid.Contains(c.Column, c.Row) {
			return
		}
		if g.sess.TileAt(c.Column, c.Row) {
			g.cursor = c
			return
		}
	}
}

func (g *Game) toggleSelect() {
	if !g.sess.TileAt(g.cursor.Column, g.cursor.Row) {
		return
	}
	if g.selected && g.anchor != g.cursor {
		g.selected = false
		g.trySwap(engine.NewSwap(g.anchor, g.cursor))
		return
	}
	g.selected = !g.selected
	g.anchor = g.cursor
}

func (g *Game) trySwap(sw engine.Swap) {
	g.hint = nil
	events, err := g.sess.Play(sw)
	var swapErr *engine.SwapError
	if errors.As(err, &swapErr) {
		g.say("Pick two neighbouring cookies")
		return
	}
	if len(events) > 0 && events[0].Kind == session.EventSwap {
		g.cursor = swapTarget(sw, g.anchor)
	}
	g.apply(events, err)
}

// swapTarget returns the cell of sw that is not from.
func swapTarget(sw engine.Swap, from engine.Coord) engine.Coord {
	if sw.A == from {
		return sw.B
	}
	return sw.A
}

func (g *Game) showHint() {
	sw, ok := g.sess.Hint()
	if !ok {
		g.say("No possible swaps")
		return
	}
	g.hint = &sw
	g.cursor = sw.A
}

func (g *Game) apply(events []session.Event, err error) {
	g.enqueue(events)
	if err != nil {
		g.failure = err
		g.say(err.Error())
	}
}

func (g *Game) say(msg string) {
	g.message = msg
	g.messageTicks = messageTicks
}

// State returns the current game state as shown on screen.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.shown.Score,
		MovesUsed: g.shown.MovesUsed,
		GameOver:  g.shown.Over || (g.sess == nil && g.failure != nil),
		Won:       g.shown.Won,
		Paused:    g.paused || g.tooSmall,
	}
}
