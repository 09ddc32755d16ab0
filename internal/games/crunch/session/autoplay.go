package session

import "github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine"

// Picker chooses one of the legal swaps. swaps is never empty.
type Picker func(swaps []engine.Swap) engine.Swap

// FirstPicker always takes the first legal swap, which is also the hint.
func FirstPicker(swaps []engine.Swap) engine.Swap {
	return swaps[0]
}

// RandomPicker chooses uniformly using src.
func RandomPicker(src engine.Source) Picker {
	return func(swaps []engine.Swap) engine.Swap {
		return swaps[src.Intn(len(swaps))]
	}
}

// Summary is the outcome of an automatic game.
type Summary struct {
	Turns      int
	Score      int
	MovesUsed  int
	Cascades   int
	Reshuffles int
	BestCombo  int
	Won        bool
	Over       bool
}

// Autoplay plays until the game is over or maxTurns swaps have been made.
// A nil pick uses FirstPicker. observe, if set, receives the events of every
// turn.
func Autoplay(s *Session, maxTurns int, pick Picker, observe func(turn int, events []Event)) (Summary, error) {
	if pick == nil {
		pick = FirstPicker
	}
	var sum Summary

	for turn := 0; turn < maxTurns && !s.over; turn++ {
		swaps := s.board.PossibleSwaps()
		if len(swaps) == 0 {
			swaps = s.board.DetectPossibleSwaps()
		}
		var (
			events []Event
			err    error
		)
		if len(swaps) == 0 {
			events, err = s.Reshuffle()
		} else {
			events, err = s.Play(pick(swaps))
		}
		if err != nil {
			return sum, err
		}

		sum.Turns++
		for _, ev := range events {
			switch ev.Kind {
			case EventMatch:
				sum.Cascades++
				if ev.Combo > sum.BestCombo {
					sum.BestCombo = ev.Combo
				}
			case EventShuffle:
				sum.Reshuffles++
			}
		}
		if observe != nil {
			observe(turn, events)
		}
	}

	st := s.State()
	sum.Score = st.Score
	sum.MovesUsed = st.MovesUsed
	sum.Won = st.Won
	sum.Over = st.Over
	return sum, nil
}
