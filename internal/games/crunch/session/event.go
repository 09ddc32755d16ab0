// Package session drives a Board through one game: it keeps score and moves,
// resolves cascades after every swap and reports each state transition as an
// Event a presenter can replay.
package session

import "github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine"

// EventKind names a state transition.
type EventKind string

const (
	EventBegin            EventKind = "begin"
	EventInvalidSwap      EventKind = "invalid_swap"
	EventSwap             EventKind = "swap"
	EventMatch            EventKind = "match"
	EventFall             EventKind = "fall"
	EventSpawn            EventKind = "spawn"
	EventNoMoves          EventKind = "no_moves"
	EventShuffle          EventKind = "shuffle"
	EventObjectiveReached EventKind = "objective_reached"
	EventMovesExhausted   EventKind = "moves_exhausted"
)

// Event describes one transition. Only the fields relevant to Kind are set.
// Every slice is a copy owned by the receiver.
type Event struct {
	Kind EventKind `json:"kind"`

	// Swap is set for EventSwap and EventInvalidSwap.
	Swap *engine.Swap `json:"swap,omitempty"`
	// Cookies holds the whole grid for EventBegin and EventShuffle.
	Cookies []engine.Cookie `json:"cookies,omitempty"`
	// Chains, Points and Combo are set for EventMatch. Combo is the
	// multiplier the chains were scored with.
	Chains []engine.Chain `json:"chains,omitempty"`
	Points int            `json:"points,omitempty"`
	Combo  int            `json:"combo,omitempty"`
	// Falls is set for EventFall, one entry per column.
	Falls [][]engine.Fall `json:"falls,omitempty"`
	// Spawns is set for EventSpawn, one entry per column.
	Spawns [][]engine.Cookie `json:"spawns,omitempty"`

	// State is the session state after the transition.
	State State `json:"state"`
}

// State is the score and move bookkeeping of a session.
type State struct {
	Score       int  `json:"score"`
	TargetScore int  `json:"target_score"`
	MovesLeft   int  `json:"moves_left"`
	MovesUsed   int  `json:"moves_used"`
	Won         bool `json:"won"`
	Over        bool `json:"over"`
}

// Limited reports whether the session has a move limit.
func (s State) Limited() bool {
	return s.MovesLeft >= 0
}
