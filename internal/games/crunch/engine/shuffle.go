package engine

import "fmt"

// Shuffle replaces the contents of every playable cell with a fresh fill that
// contains no chain and at least one possible swap. Fills without a possible
// swap are discarded and retried up to the configured number of attempts.
// On ErrShuffleExhausted the previous grid is left untouched.
func (b *Board) Shuffle() ([]Cookie, error) {
	prev := b.cells
	prevPossible := b.possible

	for attempt := 0; attempt < b.shuffleAttempts; attempt++ {
		b.cells = b.createInitialCookies()
		if len(b.DetectPossibleSwaps()) > 0 {
			return b.Cookies(), nil
		}
	}

	b.cells = prev
	b.possible = prevPossible
	return nil, fmt.Errorf("%w after %d attempts (%d cookie types, %d tiles)",
		ErrShuffleExhausted, b.shuffleAttempts, b.numTypes, b.mask.Count())
}

// createInitialCookies fills a new cell slice in row-major order so that no
// cookie completes a run of three with its two left or two upper neighbours.
func (b *Board) createInitialCookies() []CookieType {
	cells := make([]CookieType, len(b.cells))
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.columns; col++ {
			if !b.mask.Has(col, row) {
				continue
			}
			cells[b.index(col, row)] = b.safeType(cells, col, row)
		}
	}
	return cells
}

func (b *Board) safeType(cells []CookieType, col, row int) CookieType {
	at := func(c, r int) CookieType {
		if c < 0 || r < 0 {
			return NoCookie
		}
		return cells[b.index(c, r)]
	}
	completesRun := func(t CookieType) bool {
		if at(col-1, row) == t && at(col-2, row) == t {
			return true
		}
		return at(col, row-1) == t && at(col, row-2) == t
	}

	for i := 0; i < b.numTypes; i++ {
		t := b.randomType()
		if !completesRun(t) {
			return t
		}
	}
	// At most two types are blocked, and K >= 3.
	for t := CookieType(1); int(t) <= b.numTypes; t++ {
		if !completesRun(t) {
			return t
		}
	}
	return CookieType(1)
}
