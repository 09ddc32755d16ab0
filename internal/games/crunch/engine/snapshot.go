package engine

import (
	"fmt"
	"strings"
)

// Snapshot is a value copy of the board contents. Types is row-major;
// NoCookie marks empty and unplayable cells.
type Snapshot struct {
	Columns int          `json:"columns"`
	Rows    int          `json:"rows"`
	Types   []CookieType `json:"types"`
	Combo   int          `json:"combo"`
}

// Snapshot captures the current grid and combo multiplier.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Columns: b.columns,
		Rows:    b.rows,
		Types:   append([]CookieType(nil), b.cells...),
		Combo:   b.combo,
	}
}

// At returns the cookie type stored at (column, row).
func (s Snapshot) At(column, row int) CookieType {
	if column < 0 || column >= s.Columns || row < 0 || row >= s.Rows {
		return NoCookie
	}
	return s.Types[row*s.Columns+column]
}

// String renders the grid one row per line, '.' for empty cells.
func (s Snapshot) String() string {
	var sb strings.Builder
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Columns; col++ {
			t := s.At(col, row)
			if t == NoCookie {
				sb.WriteByte('.')
				continue
			}
			fmt.Fprintf(&sb, "%d", int(t))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Restore loads s into the board. The snapshot must match the board size and
// may only place valid cookie types on playable cells. A zero combo restores
// as 1. The board is unchanged when an error is returned.
func (b *Board) Restore(s Snapshot) error {
	if s.Columns != b.columns || s.Rows != b.rows || len(s.Types) != len(b.cells) {
		return fmt.Errorf("%w: snapshot is %dx%d, board is %dx%d",
			ErrSnapshotMismatch, s.Columns, s.Rows, b.columns, b.rows)
	}
	for i, t := range s.Types {
		if t == NoCookie {
			continue
		}
		col, row := i%b.columns, i/b.columns
		if !b.mask.Has(col, row) {
			return fmt.Errorf("%w: cookie on unplayable cell %s", ErrSnapshotMismatch, C(col, row))
		}
		if !t.Valid(b.numTypes) {
			return fmt.Errorf("%w: invalid cookie type %d at %s", ErrSnapshotMismatch, int(t), C(col, row))
		}
	}

	copy(b.cells, s.Types)
	b.combo = s.Combo
	if b.combo < 1 {
		b.combo = 1
	}
	b.possible = nil
	return nil
}
