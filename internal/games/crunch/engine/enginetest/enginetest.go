// Package enginetest provides helpers for building boards from text layouts
// in tests.
package enginetest

import (
	"fmt"
	"testing"

	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine"
)

// Parse reads a layout where each line is one row (row 0 first). Digits 1-8
// are cookie types, '.' is an empty playable cell and '#' is an unplayable
// cell.
func Parse(lines []string) (*engine.Mask, engine.Snapshot, error) {
	if len(lines) == 0 {
		return nil, engine.Snapshot{}, fmt.Errorf("enginetest: empty layout")
	}
	columns := len(lines[0])
	tiles := make([][]bool, len(lines))
	snap := engine.Snapshot{
		Columns: columns,
		Rows:    len(lines),
		Types:   make([]engine.CookieType, columns*len(lines)),
		Combo:   1,
	}

	for row, line := range lines {
		if len(line) != columns {
			return nil, engine.Snapshot{}, fmt.Errorf("enginetest: row %d has %d cells, want %d", row, len(line), columns)
		}
		tiles[row] = make([]bool, columns)
		for col, ch := range line {
			switch {
			case ch == '#':
			case ch == '.':
				tiles[row][col] = true
			case ch >= '1' && ch <= '8':
				tiles[row][col] = true
				snap.Types[row*columns+col] = engine.CookieType(ch - '0')
			default:
				return nil, engine.Snapshot{}, fmt.Errorf("enginetest: bad cell %q at (%d,%d)", ch, col, row)
			}
		}
	}

	mask, err := engine.NewMask(tiles)
	if err != nil {
		return nil, engine.Snapshot{}, err
	}
	return mask, snap, nil
}

// Board builds a board holding the given layout. It allows all eight cookie
// types unless opts say otherwise.
func Board(tb testing.TB, lines []string, opts ...engine.Option) *engine.Board {
	tb.Helper()

	mask, snap, err := Parse(lines)
	if err != nil {
		tb.Fatalf("parse layout: %v", err)
	}
	opts = append([]engine.Option{engine.WithCookieTypes(engine.MaxCookieTypes)}, opts...)
	b, err := engine.New(mask, engine.Objective{}, opts...)
	if err != nil {
		tb.Fatalf("new board: %v", err)
	}
	if err := b.Restore(snap); err != nil {
		tb.Fatalf("restore layout: %v", err)
	}
	return b
}

// Sequence is a Source that replays fixed values, cycling when exhausted.
// Each value is reduced modulo the requested bound.
type Sequence struct {
	Values []int
	pos    int
}

// Intn returns the next value modulo n.
func (s *Sequence) Intn(n int) int {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v % n
}
