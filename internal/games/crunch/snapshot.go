package crunch

import (
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/session"
)

// GameStateType represents the current presenter state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StateWon         GameStateType = "won"
	StateOutOfMoves  GameStateType = "out_of_moves"
	StateFailed      GameStateType = "failed"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the presenter state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Level     string
	Session   session.State
	Board     engine.Snapshot // what is on screen
	Cursor    engine.Coord
	Selected  bool
	Pending   int // events not yet shown
	BestCombo int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.sess == nil:
		state = StateFailed
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.animating():
		state = StateAnimating
	case g.shown.Won:
		state = StateWon
	case g.shown.Over:
		state = StateOutOfMoves
	}

	pending := len(g.queue)
	if g.current != nil {
		pending++
	}

	return Snapshot{
		Tick:    g.tick,
		Level:   g.level.ID,
		Session: g.shown,
		Board: engine.Snapshot{
			Columns: g.view.columns,
			Rows:    g.view.rows,
			Types:   append([]engine.CookieType(nil), g.view.types...),
		},
		Cursor:    g.cursor,
		Selected:  g.selected,
		Pending:   pending,
		BestCombo: g.bestCombo,
		State:     state,
	}
}
