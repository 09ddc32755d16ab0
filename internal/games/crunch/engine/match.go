package engine

// RemoveMatches finds every maximal run of three or more cookies, empties
// their cells, scores them with the current combo multiplier and grows the
// multiplier. Horizontal chains come first (row by row, left to right), then
// vertical chains (column by column, top to bottom).
//
// A cookie at the crossing of an L or T shape belongs to two chains. Both
// chains are scored; the cell is emptied once.
func (b *Board) RemoveMatches() []Chain {
	chains := b.detectHorizontalMatches()
	chains = append(chains, b.detectVerticalMatches()...)
	if len(chains) == 0 {
		return nil
	}

	for _, chain := range chains {
		for _, c := range chain.Cookies {
			b.cells[b.index(c.Column, c.Row)] = NoCookie
		}
	}
	b.calculateScores(chains)
	b.possible = nil
	return chains
}

func (b *Board) detectHorizontalMatches() []Chain {
	var chains []Chain
	for row := 0; row < b.rows; row++ {
		col := 0
		for col < b.columns {
			t := b.typeAt(col, row)
			end := col + 1
			if t != NoCookie {
				for end < b.columns && b.typeAt(end, row) == t {
					end++
				}
			}
			if t != NoCookie && end-col >= 3 {
				chain := Chain{Type: ChainHorizontal, Cookies: make([]Cookie, 0, end-col)}
				for x := col; x < end; x++ {
					chain.Cookies = append(chain.Cookies, Cookie{Column: x, Row: row, Type: t})
				}
				chains = append(chains, chain)
			}
			col = end
		}
	}
	return chains
}

func (b *Board) detectVerticalMatches() []Chain {
	var chains []Chain
	for col := 0; col < b.columns; col++ {
		row := 0
		for row < b.rows {
			t := b.typeAt(col, row)
			end := row + 1
			if t != NoCookie {
				for end < b.rows && b.typeAt(col, end) == t {
					end++
				}
			}
			if t != NoCookie && end-row >= 3 {
				chain := Chain{Type: ChainVertical, Cookies: make([]Cookie, 0, end-row)}
				for y := row; y < end; y++ {
					chain.Cookies = append(chain.Cookies, Cookie{Column: col, Row: y, Type: t})
				}
				chains = append(chains, chain)
			}
			row = end
		}
	}
	return chains
}

func (b *Board) calculateScores(chains []Chain) {
	for i := range chains {
		chains[i].Score = b.scoring.ChainBase * (len(chains[i].Cookies) - 2) * b.combo
		if b.scoring.ComboPerChain {
			b.combo += b.scoring.ComboStep
		}
	}
	if !b.scoring.ComboPerChain {
		b.combo += b.scoring.ComboStep
	}
}
