package engine

import "fmt"

// Swap is an unordered pair of adjacent cells. A always precedes B in
// row-major order, so two swaps naming the same cells compare equal with ==.
type Swap struct {
	A Coord `json:"a"`
	B Coord `json:"b"`
}

// NewSwap returns the normalized swap between a and b.
func NewSwap(a, b Coord) Swap {
	if b.before(a) {
		a, b = b, a
	}
	return Swap{A: a, B: b}
}

// Normalized returns s with its cells in row-major order.
func (s Swap) Normalized() Swap {
	return NewSwap(s.A, s.B)
}

// Horizontal reports whether both cells share a row.
func (s Swap) Horizontal() bool {
	return s.A.Row == s.B.Row
}

func (s Swap) String() string {
	return fmt.Sprintf("%s<->%s", s.A, s.B)
}

// CheckSwap validates the shape of s against the board: both cells in range,
// playable, occupied, distinct and adjacent. It does not test whether the
// exchange would form a chain; see IsPossibleSwap.
func (b *Board) CheckSwap(s Swap) error {
	for _, c := range [2]Coord{s.A, s.B} {
		if !b.mask.InBounds(c.Column, c.Row) {
			return &SwapError{Swap: s, Err: ErrOutOfRange}
		}
		if !b.mask.Has(c.Column, c.Row) {
			return &SwapError{Swap: s, Err: ErrNotPlayable}
		}
	}
	if s.A == s.B {
		return &SwapError{Swap: s, Err: ErrSameCell}
	}
	if !s.A.Adjacent(s.B) {
		return &SwapError{Swap: s, Err: ErrNotAdjacent}
	}
	if b.typeAt(s.A.Column, s.A.Row) == NoCookie || b.typeAt(s.B.Column, s.B.Row) == NoCookie {
		return &SwapError{Swap: s, Err: ErrEmptyCell}
	}
	return nil
}

// PerformSwap exchanges the two cookies named by s. Legality is the caller's
// responsibility; only the shape of the swap is checked.
func (b *Board) PerformSwap(s Swap) error {
	if err := b.CheckSwap(s); err != nil {
		return err
	}
	b.exchange(s)
	b.possible = nil
	return nil
}

// IsPossibleSwap reports whether exchanging the two cookies of s would form at
// least one chain through either swapped cell. The board is left unchanged.
// Malformed swaps and swaps between two cookies of the same type are never
// possible.
func (b *Board) IsPossibleSwap(s Swap) bool {
	if b.CheckSwap(s) != nil {
		return false
	}
	if b.typeAt(s.A.Column, s.A.Row) == b.typeAt(s.B.Column, s.B.Row) {
		return false
	}

	b.exchange(s)
	ok := b.hasChainAt(s.A) || b.hasChainAt(s.B)
	b.exchange(s)
	return ok
}

// DetectPossibleSwaps enumerates every legal swap on the current grid. Each
// adjacent pair is tried once, rightward then downward, in row-major order of
// its first cell. The result is cached for PossibleSwaps.
func (b *Board) DetectPossibleSwaps() []Swap {
	var swaps []Swap
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.columns; col++ {
			if b.typeAt(col, row) == NoCookie {
				continue
			}
			if col+1 < b.columns {
				s := Swap{A: C(col, row), B: C(col+1, row)}
				if b.IsPossibleSwap(s) {
					swaps = append(swaps, s)
				}
			}
			if row+1 < b.rows {
				s := Swap{A: C(col, row), B: C(col, row+1)}
				if b.IsPossibleSwap(s) {
					swaps = append(swaps, s)
				}
			}
		}
	}
	b.possible = swaps
	if swaps == nil {
		b.possible = []Swap{}
	}
	return append([]Swap(nil), swaps...)
}

// PossibleSwaps returns the swaps found by the last DetectPossibleSwaps, or
// nil if the grid changed since then.
func (b *Board) PossibleSwaps() []Swap {
	if b.possible == nil {
		return nil
	}
	return append([]Swap(nil), b.possible...)
}

func (b *Board) exchange(s Swap) {
	i := b.index(s.A.Column, s.A.Row)
	j := b.index(s.B.Column, s.B.Row)
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}

// hasChainAt reports whether the cookie at c is part of a run of three or
// more along either axis.
func (b *Board) hasChainAt(c Coord) bool {
	t := b.typeAt(c.Column, c.Row)
	if t == NoCookie {
		return false
	}

	n := 1
	for x := c.Column - 1; b.typeAt(x, c.Row) == t; x-- {
		n++
	}
	for x := c.Column + 1; b.typeAt(x, c.Row) == t; x++ {
		n++
	}
	if n >= 3 {
		return true
	}

	n = 1
	for y := c.Row - 1; b.typeAt(c.Column, y) == t; y-- {
		n++
	}
	for y := c.Row + 1; b.typeAt(c.Column, y) == t; y++ {
		n++
	}
	return n >= 3
}
