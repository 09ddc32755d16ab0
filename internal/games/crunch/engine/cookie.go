// Package engine provides the rule engine for Cookie Crunch.
// It owns the grid of playable tiles and the cookies on it, and implements
// fill, swap, match detection, gravity and refill. The package is UI-agnostic
// and deterministic for a given random source.
package engine

import "fmt"

// CookieType identifies the kind of a cookie. Valid types are 1..K where K is
// the number of cookie types the board was created with.
type CookieType int

// NoCookie marks an empty cell.
const NoCookie CookieType = 0

const (
	Croissant CookieType = iota + 1
	Cupcake
	Danish
	Donut
	Macaroon
	SugarCookie
	Eclair
	Brownie
)

const (
	// DefaultCookieTypes is the number of cookie types in the reference game.
	DefaultCookieTypes = 6
	// MinCookieTypes is the smallest type count that can always avoid runs of three.
	MinCookieTypes = 3
	// MaxCookieTypes is the largest supported number of cookie types.
	MaxCookieTypes = 8
)

var cookieNames = [...]string{
	NoCookie:    "Empty",
	Croissant:   "Croissant",
	Cupcake:     "Cupcake",
	Danish:      "Danish",
	Donut:       "Donut",
	Macaroon:    "Macaroon",
	SugarCookie: "SugarCookie",
	Eclair:      "Eclair",
	Brownie:     "Brownie",
}

// String returns the display name of the cookie type.
func (t CookieType) String() string {
	if t < 0 || int(t) >= len(cookieNames) {
		return fmt.Sprintf("CookieType(%d)", int(t))
	}
	return cookieNames[t]
}

// Valid reports whether t is a real cookie type for a board with k types.
func (t CookieType) Valid(k int) bool {
	return t >= 1 && int(t) <= k
}

// Coord is a cell position. Column grows to the right, Row grows downward:
// row 0 is the top of the board.
type Coord struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// C is a convenience constructor for Coord.
func C(column, row int) Coord {
	return Coord{Column: column, Row: row}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Column, c.Row)
}

// Adjacent reports whether o is a horizontal or vertical neighbour of c.
func (c Coord) Adjacent(o Coord) bool {
	dc := c.Column - o.Column
	dr := c.Row - o.Row
	if dc < 0 {
		dc = -dc
	}
	if dr < 0 {
		dr = -dr
	}
	return dc+dr == 1
}

// before reports whether c precedes o in row-major order.
func (c Coord) before(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Column < o.Column
}

// Cookie is a value snapshot of one piece on the board.
type Cookie struct {
	Column int        `json:"column"`
	Row    int        `json:"row"`
	Type   CookieType `json:"type"`
}

// Coord returns the cell the cookie occupies.
func (c Cookie) Coord() Coord {
	return Coord{Column: c.Column, Row: c.Row}
}

// String returns a short description such as "Donut(3,4)".
func (c Cookie) String() string {
	return fmt.Sprintf("%s(%d,%d)", c.Type, c.Column, c.Row)
}
