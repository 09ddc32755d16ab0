package engine_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine/enginetest"
)

func TestNewSwapNormalizes(t *testing.T) {
	a, b := engine.C(3, 4), engine.C(3, 3)

	s1 := engine.NewSwap(a, b)
	s2 := engine.NewSwap(b, a)
	if s1 != s2 {
		t.Errorf("NewSwap(a,b) = %v, NewSwap(b,a) = %v, expected equal", s1, s2)
	}
	if s1.A != b {
		t.Errorf("NewSwap().A = %v, expected %v", s1.A, b)
	}
	if s1.Horizontal() {
		t.Error("vertical swap reported as horizontal")
	}
	if !engine.NewSwap(engine.C(1, 0), engine.C(0, 0)).Horizontal() {
		t.Error("horizontal swap reported as vertical")
	}
}

func TestCheckSwapErrors(t *testing.T) {
	b := enginetest.Board(t, []string{
		"12#",
		"3.4",
	})

	tests := []struct {
		name string
		swap engine.Swap
		want error
	}{
		{"out of range", engine.Swap{A: engine.C(1, 1), B: engine.C(1, 2)}, engine.ErrOutOfRange},
		{"negative", engine.Swap{A: engine.C(-1, 0), B: engine.C(0, 0)}, engine.ErrOutOfRange},
		{"unplayable", engine.Swap{A: engine.C(1, 0), B: engine.C(2, 0)}, engine.ErrNotPlayable},
		{"same cell", engine.Swap{A: engine.C(0, 0), B: engine.C(0, 0)}, engine.ErrSameCell},
		{"diagonal", engine.Swap{A: engine.C(0, 0), B: engine.C(1, 1)}, engine.ErrNotAdjacent},
		{"empty", engine.Swap{A: engine.C(1, 0), B: engine.C(1, 1)}, engine.ErrEmptyCell},
		{"valid", engine.Swap{A: engine.C(0, 0), B: engine.C(1, 0)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.CheckSwap(tt.swap)
			if !errors.Is(err, tt.want) {
				t.Errorf("CheckSwap(%v) = %v, expected %v", tt.swap, err, tt.want)
			}
			if tt.want != nil {
				var se *engine.SwapError
				if !errors.As(err, &se) || se.Swap != tt.swap {
					t.Errorf("CheckSwap(%v) = %v, expected *SwapError carrying the swap", tt.swap, err)
				}
				if b.IsPossibleSwap(tt.swap) {
					t.Errorf("IsPossibleSwap(%v) = true for malformed swap", tt.swap)
				}
			}
		})
	}
}

func TestPerformSwapRejectsMalformed(t *testing.T) {
	b := enginetest.Board(t, []string{"123"})
	before := b.Snapshot()

	if err := b.PerformSwap(engine.Swap{A: engine.C(0, 0), B: engine.C(2, 0)}); !errors.Is(err, engine.ErrNotAdjacent) {
		t.Errorf("PerformSwap() error = %v, expected %v", err, engine.ErrNotAdjacent)
	}
	if diff := cmp.Diff(before, b.Snapshot()); diff != "" {
		t.Errorf("rejected swap changed the grid (-before +after):\n%s", diff)
	}
}

func TestPerformSwapIsInvolution(t *testing.T) {
	mask := diamondMask(t)
	for seed := int64(1); seed <= 10; seed++ {
		b := newBoard(t, mask, seed)
		if _, err := b.Shuffle(); err != nil {
			t.Fatal(err)
		}
		before := b.Snapshot()

		for _, s := range b.DetectPossibleSwaps() {
			if err := b.PerformSwap(s); err != nil {
				t.Fatalf("PerformSwap(%v) error = %v", s, err)
			}
			first, _ := b.CookieAt(s.A.Column, s.A.Row)
			if want := before.At(s.B.Column, s.B.Row); first.Type != want {
				t.Errorf("after PerformSwap(%v) A holds %v, expected %v", s, first.Type, want)
			}
			if err := b.PerformSwap(s); err != nil {
				t.Fatalf("PerformSwap(%v) error = %v", s, err)
			}
			if diff := cmp.Diff(before, b.Snapshot()); diff != "" {
				t.Fatalf("double PerformSwap(%v) changed the grid (-before +after):\n%s", s, diff)
			}
		}
	}
}

func TestIsPossibleSwapHasNoSideEffects(t *testing.T) {
	mask := engine.FullMask(engine.NumColumns, engine.NumRows)
	for seed := int64(1); seed <= 10; seed++ {
		b := newBoard(t, mask, seed)
		if _, err := b.Shuffle(); err != nil {
			t.Fatal(err)
		}
		before := b.Snapshot()

		for row := 0; row < b.Rows(); row++ {
			for col := 0; col < b.Columns(); col++ {
				for _, other := range []engine.Coord{engine.C(col+1, row), engine.C(col, row+1), engine.C(col+2, row)} {
					b.IsPossibleSwap(engine.NewSwap(engine.C(col, row), other))
				}
			}
		}

		if diff := cmp.Diff(before, b.Snapshot()); diff != "" {
			t.Fatalf("seed %d: IsPossibleSwap changed the grid (-before +after):\n%s", seed, diff)
		}
	}
}

func TestIsPossibleSwap(t *testing.T) {
	b := enginetest.Board(t, []string{
		"1121",
		"2212",
	})

	tests := []struct {
		swap engine.Swap
		want bool
	}{
		{engine.NewSwap(engine.C(2, 0), engine.C(3, 0)), true},
		{engine.NewSwap(engine.C(2, 0), engine.C(2, 1)), true},
		{engine.NewSwap(engine.C(3, 1), engine.C(2, 1)), true},
		{engine.NewSwap(engine.C(0, 0), engine.C(1, 0)), false}, // same type
		{engine.NewSwap(engine.C(1, 0), engine.C(2, 0)), false},
		{engine.NewSwap(engine.C(3, 0), engine.C(3, 1)), false},
	}

	for _, tt := range tests {
		if got := b.IsPossibleSwap(tt.swap); got != tt.want {
			t.Errorf("IsPossibleSwap(%v) = %v, expected %v", tt.swap, got, tt.want)
		}
	}
}

func TestDetectPossibleSwapsOrder(t *testing.T) {
	b := enginetest.Board(t, []string{
		"1121",
		"2212",
	})

	want := []engine.Swap{
		{A: engine.C(2, 0), B: engine.C(3, 0)},
		{A: engine.C(2, 0), B: engine.C(2, 1)},
		{A: engine.C(2, 1), B: engine.C(3, 1)},
	}
	if diff := cmp.Diff(want, b.DetectPossibleSwaps()); diff != "" {
		t.Errorf("DetectPossibleSwaps() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, b.PossibleSwaps()); diff != "" {
		t.Errorf("PossibleSwaps() mismatch (-want +got):\n%s", diff)
	}

	if err := b.PerformSwap(want[0]); err != nil {
		t.Fatal(err)
	}
	if got := b.PossibleSwaps(); got != nil {
		t.Errorf("PossibleSwaps() after mutation = %v, expected nil", got)
	}
}
