package engine

import (
	"fmt"
	"math/rand"
)

// Source is the random source used for fills and refills.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Objective is the level goal carried alongside the grid.
type Objective struct {
	TargetScore int `json:"target_score" yaml:"target_score"`
	MaxMoves    int `json:"max_moves" yaml:"max_moves"`
}

// Scoring holds the chain score constants.
type Scoring struct {
	// ChainBase is the score of a 3-chain at multiplier 1.
	ChainBase int
	// ComboStep is added to the multiplier after a removal pass.
	ComboStep int
	// ComboPerChain grows the multiplier after every chain instead of once
	// per RemoveMatches call.
	ComboPerChain bool
}

// DefaultScoring returns the reference scoring constants.
func DefaultScoring() Scoring {
	return Scoring{ChainBase: 60, ComboStep: 1}
}

// DefaultShuffleAttempts bounds the number of whole-grid fills tried by Shuffle.
const DefaultShuffleAttempts = 100

// Option configures a Board.
type Option func(*Board)

// WithSource sets the random source. Boards without one use a source seeded
// with 1.
func WithSource(src Source) Option {
	return func(b *Board) {
		b.rng = src
	}
}

// WithCookieTypes sets the number of distinct cookie types.
func WithCookieTypes(k int) Option {
	return func(b *Board) {
		b.numTypes = k
	}
}

// WithScoring sets the chain score constants.
func WithScoring(s Scoring) Option {
	return func(b *Board) {
		b.scoring = s
	}
}

// WithShuffleAttempts bounds the whole-grid retries made by Shuffle.
func WithShuffleAttempts(n int) Option {
	return func(b *Board) {
		b.shuffleAttempts = n
	}
}

// Board is the grid engine. It is not safe for concurrent use.
type Board struct {
	mask    *Mask
	columns int
	rows    int
	obj     Objective

	cells []CookieType

	rng             Source
	numTypes        int
	scoring         Scoring
	shuffleAttempts int

	combo    int
	possible []Swap
}

// New creates an empty board over mask. Call Shuffle to place cookies.
func New(mask *Mask, obj Objective, opts ...Option) (*Board, error) {
	if mask == nil || mask.Count() == 0 {
		return nil, fmt.Errorf("%w: mask has no playable tiles", ErrBadMask)
	}

	b := &Board{
		mask:            mask,
		columns:         mask.Columns(),
		rows:            mask.Rows(),
		obj:             obj,
		numTypes:        DefaultCookieTypes,
		scoring:         DefaultScoring(),
		shuffleAttempts: DefaultShuffleAttempts,
		combo:           1,
	}
	for _, opt := range opts {
		opt(b)
	}

	switch {
	case b.numTypes < MinCookieTypes || b.numTypes > MaxCookieTypes:
		return nil, fmt.Errorf("%w: cookie types %d not in [%d, %d]", ErrBadConfig, b.numTypes, MinCookieTypes, MaxCookieTypes)
	case b.shuffleAttempts < 1:
		return nil, fmt.Errorf("%w: shuffle attempts must be positive", ErrBadConfig)
	case b.scoring.ChainBase < 0 || b.scoring.ComboStep < 0:
		return nil, fmt.Errorf("%w: negative scoring constant", ErrBadConfig)
	case obj.TargetScore < 0 || obj.MaxMoves < 0:
		return nil, fmt.Errorf("%w: negative objective", ErrBadConfig)
	}

	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(1))
	}
	b.cells = make([]CookieType, b.columns*b.rows)
	return b, nil
}

// Columns returns the board width.
func (b *Board) Columns() int {
	return b.columns
}

// Rows returns the board height.
func (b *Board) Rows() int {
	return b.rows
}

// Mask returns the board's tile mask.
func (b *Board) Mask() *Mask {
	return b.mask
}

// Objective returns the level goal the board was created with.
func (b *Board) Objective() Objective {
	return b.obj
}

// CookieTypes returns K, the number of cookie types in play.
func (b *Board) CookieTypes() int {
	return b.numTypes
}

// ComboMultiplier returns the multiplier the next chain will be scored with.
func (b *Board) ComboMultiplier() int {
	return b.combo
}

// ResetComboMultiplier sets the multiplier back to 1. Call it once at the
// start of every player turn.
func (b *Board) ResetComboMultiplier() {
	b.combo = 1
}

// TileAt reports whether (column, row) is playable.
func (b *Board) TileAt(column, row int) bool {
	return b.mask.Has(column, row)
}

// CookieAt returns the cookie at (column, row), if any.
func (b *Board) CookieAt(column, row int) (Cookie, bool) {
	t := b.typeAt(column, row)
	if t == NoCookie {
		return Cookie{}, false
	}
	return Cookie{Column: column, Row: row, Type: t}, true
}

// Cookies returns every cookie on the board in row-major order.
func (b *Board) Cookies() []Cookie {
	cookies := make([]Cookie, 0, len(b.cells))
	for i, t := range b.cells {
		if t == NoCookie {
			continue
		}
		cookies = append(cookies, Cookie{Column: i % b.columns, Row: i / b.columns, Type: t})
	}
	return cookies
}

// Full reports whether every playable cell holds a cookie.
func (b *Board) Full() bool {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.columns; col++ {
			if b.mask.Has(col, row) && b.cells[b.index(col, row)] == NoCookie {
				return false
			}
		}
	}
	return true
}

func (b *Board) index(column, row int) int {
	return row*b.columns + column
}

// typeAt returns NoCookie for out-of-range and unplayable cells.
func (b *Board) typeAt(column, row int) CookieType {
	if !b.mask.InBounds(column, row) {
		return NoCookie
	}
	return b.cells[b.index(column, row)]
}

func (b *Board) randomType() CookieType {
	return CookieType(1 + b.rng.Intn(b.numTypes))
}
