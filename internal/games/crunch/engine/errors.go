package engine

import (
	"errors"
	"fmt"
)

// Contract violations. Callers are expected to submit swaps drawn from
// DetectPossibleSwaps or built from TileAt checks; these errors signal a
// programming error and the board is never mutated when one is returned.
var (
	ErrOutOfRange  = errors.New("coordinate out of range")
	ErrNotPlayable = errors.New("cell is not playable")
	ErrNotAdjacent = errors.New("cells are not adjacent")
	ErrSameCell    = errors.New("swap names the same cell twice")
	ErrEmptyCell   = errors.New("cell holds no cookie")
)

// Configuration errors.
var (
	ErrBadMask          = errors.New("engine: invalid mask")
	ErrBadConfig        = errors.New("engine: invalid configuration")
	ErrShuffleExhausted = errors.New("engine: shuffle attempts exhausted")
	ErrSnapshotMismatch = errors.New("engine: snapshot does not fit board")
)

// SwapError reports a malformed swap.
type SwapError struct {
	Swap Swap
	Err  error
}

func (e *SwapError) Error() string {
	return fmt.Sprintf("engine: swap %s: %v", e.Swap, e.Err)
}

func (e *SwapError) Unwrap() error {
	return e.Err
}
