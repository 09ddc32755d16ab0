package engine

// Fall records one cookie moved by gravity. Cookie holds its new position.
type Fall struct {
	Cookie  Cookie `json:"cookie"`
	FromRow int    `json:"from_row"`
}

// Distance returns how many rows the cookie dropped.
func (f Fall) Distance() int {
	return f.Cookie.Row - f.FromRow
}

// FillHoles lets cookies fall into empty playable cells below them. Each
// column is compacted toward its bottom-most playable cells, preserving the
// order of its cookies and skipping unplayable cells. The result has one
// entry per column in which something moved, left to right, and within a
// column the moved cookies are listed lowest first.
func (b *Board) FillHoles() [][]Fall {
	var columns [][]Fall
	playable := make([]int, 0, b.rows)

	for col := 0; col < b.columns; col++ {
		playable = playable[:0]
		for row := b.rows - 1; row >= 0; row-- {
			if b.mask.Has(col, row) {
				playable = append(playable, row)
			}
		}

		var falls []Fall
		write := 0
		for _, row := range playable {
			t := b.cells[b.index(col, row)]
			if t == NoCookie {
				continue
			}
			target := playable[write]
			write++
			if target == row {
				continue
			}
			b.cells[b.index(col, target)] = t
			b.cells[b.index(col, row)] = NoCookie
			falls = append(falls, Fall{
				Cookie:  Cookie{Column: col, Row: target, Type: t},
				FromRow: row,
			})
		}
		if len(falls) > 0 {
			columns = append(columns, falls)
		}
	}
	if len(columns) > 0 {
		b.possible = nil
	}
	return columns
}

// TopUpCookies places a uniformly random cookie in every empty playable cell.
// The result has one entry per column that received cookies, left to right,
// and within a column new cookies are listed top down. New cookies may form
// chains; the caller resolves them with another RemoveMatches pass.
func (b *Board) TopUpCookies() [][]Cookie {
	var columns [][]Cookie
	for col := 0; col < b.columns; col++ {
		var spawned []Cookie
		for row := 0; row < b.rows; row++ {
			if !b.mask.Has(col, row) {
				continue
			}
			i := b.index(col, row)
			if b.cells[i] != NoCookie {
				continue
			}
			t := b.randomType()
			b.cells[i] = t
			spawned = append(spawned, Cookie{Column: col, Row: row, Type: t})
		}
		if len(spawned) > 0 {
			columns = append(columns, spawned)
		}
	}
	if len(columns) > 0 {
		b.possible = nil
	}
	return columns
}
