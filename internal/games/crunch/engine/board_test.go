package engine_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine/enginetest"
)

// patternLayout returns a layout with no runs and no possible swaps:
// type = (column + 2*row) mod 6 + 1.
func patternLayout(columns, rows int) []string {
	lines := make([]string, rows)
	for r := range lines {
		b := make([]byte, columns)
		for c := range b {
			b[c] = byte('1' + (c+2*r)%6)
		}
		lines[r] = string(b)
	}
	return lines
}

func setCell(lines []string, column, row int, ch byte) {
	b := []byte(lines[row])
	b[column] = ch
	lines[row] = string(b)
}

func diamondMask(t *testing.T) *engine.Mask {
	t.Helper()
	tiles := make([][]bool, engine.NumRows)
	for r := range tiles {
		tiles[r] = make([]bool, engine.NumColumns)
		for c := range tiles[r] {
			dc, dr := c-4, r-4
			if dc < 0 {
				dc = -dc
			}
			if dr < 0 {
				dr = -dr
			}
			tiles[r][c] = dc+dr <= 5
		}
	}
	m, err := engine.NewMask(tiles)
	if err != nil {
		t.Fatalf("NewMask: %v", err)
	}
	return m
}

func newBoard(t *testing.T, mask *engine.Mask, seed int64, opts ...engine.Option) *engine.Board {
	t.Helper()
	opts = append([]engine.Option{engine.WithSource(rand.New(rand.NewSource(seed)))}, opts...)
	b, err := engine.New(mask, engine.Objective{TargetScore: 1000, MaxMoves: 15}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

// hasRun reports whether the snapshot holds three equal cookies in a line.
func hasRun(s engine.Snapshot) bool {
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Columns; col++ {
			t := s.At(col, row)
			if t == engine.NoCookie {
				continue
			}
			if s.At(col+1, row) == t && s.At(col+2, row) == t {
				return true
			}
			if s.At(col, row+1) == t && s.At(col, row+2) == t {
				return true
			}
		}
	}
	return false
}

func TestNewRejectsBadConfig(t *testing.T) {
	mask := engine.FullMask(engine.NumColumns, engine.NumRows)
	tests := []struct {
		name string
		opts []engine.Option
		want error
	}{
		{"too few types", []engine.Option{engine.WithCookieTypes(2)}, engine.ErrBadConfig},
		{"too many types", []engine.Option{engine.WithCookieTypes(9)}, engine.ErrBadConfig},
		{"no shuffle attempts", []engine.Option{engine.WithShuffleAttempts(0)}, engine.ErrBadConfig},
		{"negative base", []engine.Option{engine.WithScoring(engine.Scoring{ChainBase: -1})}, engine.ErrBadConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.New(mask, engine.Objective{}, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, expected %v", err, tt.want)
			}
		})
	}

	if _, err := engine.New(nil, engine.Objective{}); !errors.Is(err, engine.ErrBadMask) {
		t.Errorf("New(nil) error = %v, expected %v", err, engine.ErrBadMask)
	}
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := newBoard(t, engine.FullMask(engine.NumColumns, engine.NumRows), 1)

	if n := len(b.Cookies()); n != 0 {
		t.Errorf("Cookies() = %d, expected 0", n)
	}
	if b.ComboMultiplier() != 1 {
		t.Errorf("ComboMultiplier() = %d, expected 1", b.ComboMultiplier())
	}
	if b.Objective().MaxMoves != 15 {
		t.Errorf("Objective().MaxMoves = %d, expected 15", b.Objective().MaxMoves)
	}
}

func TestShuffleProducesPlayableGrid(t *testing.T) {
	masks := map[string]*engine.Mask{
		"full":    engine.FullMask(engine.NumColumns, engine.NumRows),
		"diamond": diamondMask(t),
	}

	for name, mask := range masks {
		for _, k := range []int{3, engine.DefaultCookieTypes, engine.MaxCookieTypes} {
			for seed := int64(1); seed <= 30; seed++ {
				b := newBoard(t, mask, seed, engine.WithCookieTypes(k))
				cookies, err := b.Shuffle()
				if err != nil {
					t.Fatalf("%s k=%d seed=%d: Shuffle() error = %v", name, k, seed, err)
				}
				if len(cookies) != mask.Count() {
					t.Errorf("%s k=%d seed=%d: Shuffle() placed %d cookies, expected %d", name, k, seed, len(cookies), mask.Count())
				}
				for _, c := range cookies {
					if !b.TileAt(c.Column, c.Row) {
						t.Errorf("%s: cookie %v on unplayable tile", name, c)
					}
					if !c.Type.Valid(k) {
						t.Errorf("%s: cookie %v has type outside [1,%d]", name, c, k)
					}
				}

				snap := b.Snapshot()
				if hasRun(snap) {
					t.Errorf("%s k=%d seed=%d: shuffled grid has a run:\n%s", name, k, seed, snap)
				}
				if len(b.DetectPossibleSwaps()) == 0 {
					t.Errorf("%s k=%d seed=%d: shuffled grid has no possible swaps", name, k, seed)
				}
				if !b.Full() {
					t.Errorf("%s k=%d seed=%d: shuffled grid is not full", name, k, seed)
				}
			}
		}
	}
}

func TestShuffleDeterministic(t *testing.T) {
	mask := diamondMask(t)

	b1 := newBoard(t, mask, 42)
	b2 := newBoard(t, mask, 42)
	c1, err := b1.Shuffle()
	if err != nil {
		t.Fatal(err)
	}
	c2, err := b2.Shuffle()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(c1, c2); diff != "" {
		t.Errorf("same seed produced different fills (-first +second):\n%s", diff)
	}
}

func TestShuffleExhaustedLeavesGrid(t *testing.T) {
	// Two tiles can never form a run of three.
	b := enginetest.Board(t, []string{"12"}, engine.WithShuffleAttempts(5))
	before := b.Snapshot()

	_, err := b.Shuffle()
	if !errors.Is(err, engine.ErrShuffleExhausted) {
		t.Fatalf("Shuffle() error = %v, expected %v", err, engine.ErrShuffleExhausted)
	}
	if diff := cmp.Diff(before, b.Snapshot()); diff != "" {
		t.Errorf("failed shuffle changed the grid (-before +after):\n%s", diff)
	}
}

func TestShuffleAfterNoMoves(t *testing.T) {
	b := enginetest.Board(t, patternLayout(engine.NumColumns, engine.NumRows), engine.WithCookieTypes(6))

	if swaps := b.DetectPossibleSwaps(); len(swaps) != 0 {
		t.Fatalf("DetectPossibleSwaps() = %v, expected none", swaps)
	}
	if swaps := b.PossibleSwaps(); len(swaps) != 0 {
		t.Errorf("PossibleSwaps() = %v, expected none", swaps)
	}

	if _, err := b.Shuffle(); err != nil {
		t.Fatalf("Shuffle() error = %v", err)
	}
	if len(b.DetectPossibleSwaps()) == 0 {
		t.Error("reshuffled grid has no possible swaps")
	}
	if hasRun(b.Snapshot()) {
		t.Error("reshuffled grid has a run")
	}
}

func TestCookieAtAndTileAt(t *testing.T) {
	b := enginetest.Board(t, []string{
		"1#2",
		".34",
	})

	tests := []struct {
		col, row int
		tile     bool
		cookie   bool
		typ      engine.CookieType
	}{
		{0, 0, true, true, engine.Croissant},
		{1, 0, false, false, engine.NoCookie},
		{2, 0, true, true, engine.Cupcake},
		{0, 1, true, false, engine.NoCookie},
		{2, 1, true, true, engine.Donut},
		{-1, 0, false, false, engine.NoCookie},
		{3, 1, false, false, engine.NoCookie},
		{0, 2, false, false, engine.NoCookie},
	}

	for _, tt := range tests {
		if got := b.TileAt(tt.col, tt.row); got != tt.tile {
			t.Errorf("TileAt(%d,%d) = %v, expected %v", tt.col, tt.row, got, tt.tile)
		}
		c, ok := b.CookieAt(tt.col, tt.row)
		if ok != tt.cookie {
			t.Errorf("CookieAt(%d,%d) ok = %v, expected %v", tt.col, tt.row, ok, tt.cookie)
		}
		if ok && c.Type != tt.typ {
			t.Errorf("CookieAt(%d,%d) = %v, expected type %v", tt.col, tt.row, c, tt.typ)
		}
	}
}

func TestRestoreRejectsMismatch(t *testing.T) {
	b := enginetest.Board(t, []string{"1#2"}, engine.WithCookieTypes(6))

	tests := []struct {
		name string
		snap engine.Snapshot
	}{
		{"wrong size", engine.Snapshot{Columns: 2, Rows: 1, Types: []engine.CookieType{1, 2}}},
		{"unplayable", engine.Snapshot{Columns: 3, Rows: 1, Types: []engine.CookieType{1, 1, 2}}},
		{"bad type", engine.Snapshot{Columns: 3, Rows: 1, Types: []engine.CookieType{7, 0, 2}}},
	}
	for _, tt := range tests {
		if err := b.Restore(tt.snap); !errors.Is(err, engine.ErrSnapshotMismatch) {
			t.Errorf("%s: Restore() error = %v, expected %v", tt.name, err, engine.ErrSnapshotMismatch)
		}
	}
}
