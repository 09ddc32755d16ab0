package engine

import (
	"fmt"
	"strings"
)

// ChainType is the orientation of a chain.
type ChainType int

const (
	ChainHorizontal ChainType = iota
	ChainVertical
)

func (t ChainType) String() string {
	switch t {
	case ChainHorizontal:
		return "horizontal"
	case ChainVertical:
		return "vertical"
	default:
		return fmt.Sprintf("ChainType(%d)", int(t))
	}
}

// MarshalText encodes the orientation by name.
func (t ChainType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes an orientation name.
func (t *ChainType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "horizontal":
		*t = ChainHorizontal
	case "vertical":
		*t = ChainVertical
	default:
		return fmt.Errorf("engine: unknown chain type %q", text)
	}
	return nil
}

// Chain is a maximal run of three or more cookies of one type. Cookies are
// ordered left to right for horizontal chains and top to bottom for vertical
// ones.
type Chain struct {
	Type    ChainType `json:"type"`
	Cookies []Cookie  `json:"cookies"`
	Score   int       `json:"score"`
}

// Len returns the number of cookies in the chain.
func (c Chain) Len() int {
	return len(c.Cookies)
}

func (c Chain) String() string {
	parts := make([]string, len(c.Cookies))
	for i, ck := range c.Cookies {
		parts[i] = ck.String()
	}
	return fmt.Sprintf("%s chain [%s] score=%d", c.Type, strings.Join(parts, " "), c.Score)
}
