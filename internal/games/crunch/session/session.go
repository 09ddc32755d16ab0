package session

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine"
)

var (
	ErrNotStarted   = errors.New("session: not started")
	ErrFinished     = errors.New("session: game is over")
	ErrCascadeLimit = errors.New("session: cascade did not settle")
)

// MaxCascadeSteps bounds the removal passes of one turn.
const MaxCascadeSteps = 1000

// Session owns a Board for the length of one game. A zero TargetScore means
// there is no score objective and a zero MaxMoves means moves are unlimited.
// Session is not safe for concurrent use.
type Session struct {
	board *engine.Board

	score     int
	movesLeft int
	movesUsed int
	won       bool
	over      bool
	started   bool
}

// New wraps board. Call Begin before playing.
func New(board *engine.Board) *Session {
	return &Session{board: board}
}

// Begin resets score and moves and fills the board.
func (s *Session) Begin() (Event, error) {
	obj := s.board.Objective()
	s.score = 0
	s.movesUsed = 0
	s.movesLeft = obj.MaxMoves
	if obj.MaxMoves == 0 {
		s.movesLeft = -1
	}
	s.won = false
	s.over = false
	s.board.ResetComboMultiplier()

	cookies, err := s.board.Shuffle()
	if err != nil {
		s.started = false
		return Event{}, fmt.Errorf("session: begin: %w", err)
	}
	s.started = true
	return Event{Kind: EventBegin, Cookies: cookies, State: s.State()}, nil
}

// Play applies a player swap. A malformed swap returns an error and changes
// nothing. A swap that forms no chain yields a single EventInvalidSwap and
// costs no move. Otherwise the returned events describe the swap, every
// cascade step and any end-of-turn signal.
func (s *Session) Play(sw engine.Swap) ([]Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	sw = sw.Normalized()
	if err := s.board.CheckSwap(sw); err != nil {
		return nil, err
	}
	if !s.board.IsPossibleSwap(sw) {
		return []Event{{Kind: EventInvalidSwap, Swap: &sw, State: s.State()}}, nil
	}

	if err := s.board.PerformSwap(sw); err != nil {
		return nil, err
	}
	s.consumeMove()
	s.board.ResetComboMultiplier()

	events := []Event{{Kind: EventSwap, Swap: &sw, State: s.State()}}
	events, err := s.cascade(events)
	if err != nil {
		return events, err
	}
	return s.endTurn(events)
}

// Reshuffle refills the board at the player's request. It costs one move.
func (s *Session) Reshuffle() ([]Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	cookies, err := s.board.Shuffle()
	if err != nil {
		return nil, fmt.Errorf("session: reshuffle: %w", err)
	}
	s.consumeMove()
	s.board.ResetComboMultiplier()

	events := []Event{{Kind: EventShuffle, Cookies: cookies, State: s.State()}}
	if s.movesLeft == 0 {
		s.over = true
		events = append(events, Event{Kind: EventMovesExhausted, State: s.State()})
	}
	return events, nil
}

// Hint returns a legal swap, if any.
func (s *Session) Hint() (engine.Swap, bool) {
	if !s.started {
		return engine.Swap{}, false
	}
	swaps := s.board.PossibleSwaps()
	if swaps == nil {
		swaps = s.board.DetectPossibleSwaps()
	}
	if len(swaps) == 0 {
		return engine.Swap{}, false
	}
	return swaps[0], true
}

// State returns the current bookkeeping.
func (s *Session) State() State {
	return State{
		Score:       s.score,
		TargetScore: s.board.Objective().TargetScore,
		MovesLeft:   s.movesLeft,
		MovesUsed:   s.movesUsed,
		Won:         s.won,
		Over:        s.over,
	}
}

// Started reports whether Begin succeeded.
func (s *Session) Started() bool {
	return s.started
}

// Columns returns the board width.
func (s *Session) Columns() int {
	return s.board.Columns()
}

// Rows returns the board height.
func (s *Session) Rows() int {
	return s.board.Rows()
}

// TileAt reports whether (column, row) is playable.
func (s *Session) TileAt(column, row int) bool {
	return s.board.TileAt(column, row)
}

// CookieAt returns the cookie at (column, row), if any.
func (s *Session) CookieAt(column, row int) (engine.Cookie, bool) {
	return s.board.CookieAt(column, row)
}

// Snapshot returns a value copy of the grid.
func (s *Session) Snapshot() engine.Snapshot {
	return s.board.Snapshot()
}

func (s *Session) ready() error {
	if !s.started {
		return ErrNotStarted
	}
	if s.over {
		return ErrFinished
	}
	return nil
}

func (s *Session) consumeMove() {
	s.movesUsed++
	if s.movesLeft > 0 {
		s.movesLeft--
	}
}

func (s *Session) cascade(events []Event) ([]Event, error) {
	for step := 0; step < MaxCascadeSteps; step++ {
		combo := s.board.ComboMultiplier()
		chains := s.board.RemoveMatches()
		if len(chains) == 0 {
			return events, nil
		}

		points := 0
		for _, ch := range chains {
			points += ch.Score
		}
		s.score += points
		events = append(events, Event{Kind: EventMatch, Chains: chains, Points: points, Combo: combo, State: s.State()})
		events = append(events, Event{Kind: EventFall, Falls: s.board.FillHoles(), State: s.State()})
		events = append(events, Event{Kind: EventSpawn, Spawns: s.board.TopUpCookies(), State: s.State()})
	}
	return events, ErrCascadeLimit
}

func (s *Session) endTurn(events []Event) ([]Event, error) {
	target := s.board.Objective().TargetScore
	switch {
	case target > 0 && s.score >= target:
		s.won = true
		s.over = true
		events = append(events, Event{Kind: EventObjectiveReached, State: s.State()})
	case s.movesLeft == 0:
		s.over = true
		events = append(events, Event{Kind: EventMovesExhausted, State: s.State()})
	default:
		if len(s.board.DetectPossibleSwaps()) > 0 {
			return events, nil
		}
		events = append(events, Event{Kind: EventNoMoves, State: s.State()})
		cookies, err := s.board.Shuffle()
		if err != nil {
			return events, fmt.Errorf("session: reshuffle: %w", err)
		}
		events = append(events, Event{Kind: EventShuffle, Cookies: cookies, State: s.State()})
	}
	return events, nil
}
