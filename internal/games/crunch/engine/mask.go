package engine

import "fmt"

const (
	// NumColumns is the board width of the reference configuration.
	NumColumns = 9
	// NumRows is the board height of the reference configuration.
	NumRows = 9
)

// Mask describes which cells of a columns x rows grid are playable.
// Tiles are stored in row-major order: index = row*columns + column.
// A Mask is immutable once built.
type Mask struct {
	columns int
	rows    int
	tiles   []bool
}

// NewMask builds a mask from a table indexed as tiles[row][column].
// Every row must have the same length.
func NewMask(tiles [][]bool) (*Mask, error) {
	rows := len(tiles)
	if rows == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadMask)
	}
	columns := len(tiles[0])
	if columns == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrBadMask)
	}

	m := &Mask{
		columns: columns,
		rows:    rows,
		tiles:   make([]bool, columns*rows),
	}
	for row, line := range tiles {
		if len(line) != columns {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrBadMask, row, len(line), columns)
		}
		copy(m.tiles[row*columns:(row+1)*columns], line)
	}
	if m.Count() == 0 {
		return nil, fmt.Errorf("%w: no playable tiles", ErrBadMask)
	}
	return m, nil
}

// FullMask returns a mask where every cell is playable.
func FullMask(columns, rows int) *Mask {
	m := &Mask{
		columns: columns,
		rows:    rows,
		tiles:   make([]bool, columns*rows),
	}
	for i := range m.tiles {
		m.tiles[i] = true
	}
	return m
}

// Columns returns the mask width.
func (m *Mask) Columns() int {
	return m.columns
}

// Rows returns the mask height.
func (m *Mask) Rows() int {
	return m.rows
}

// InBounds reports whether (column, row) lies inside the grid.
func (m *Mask) InBounds(column, row int) bool {
	return column >= 0 && column < m.columns && row >= 0 && row < m.rows
}

// Has reports whether (column, row) is a playable tile.
// Out-of-range coordinates are never playable.
func (m *Mask) Has(column, row int) bool {
	if !m.InBounds(column, row) {
		return false
	}
	return m.tiles[row*m.columns+column]
}

// Count returns the number of playable tiles.
func (m *Mask) Count() int {
	n := 0
	for _, t := range m.tiles {
		if t {
			n++
		}
	}
	return n
}
