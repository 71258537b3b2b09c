package board

import "cardviz/internal/cards"

// Cell is one button of the card picker.
type Cell struct {
	Card   cards.Card
	Code   int
	Row    int
	Column int
}

// gridOrder is the picker's column order: A, 2, 3 .. K.
var gridOrder = []cards.Rank{
	cards.Ace, cards.Two, cards.Three, cards.Four, cards.Five, cards.Six, cards.Seven,
	cards.Eight, cards.Nine, cards.Ten, cards.Jack, cards.Queen, cards.King,
}

// Grid lays out the picker: one row per suit, diamonds first, and a fifth
// row with the small and big joker.
func Grid() []Cell {
	cells := make([]Cell, 0, cards.DeckSize)
	for row, suit := range []cards.Suit{cards.Diamonds, cards.Clubs, cards.Hearts, cards.Spades} {
		for col, rank := range gridOrder {
			c := cards.Card{Suit: suit, Rank: rank}
			cv, _ := c.Code()
			cells = append(cells, Cell{Card: c, Code: cv, Row: row, Column: col})
		}
	}
	for col, rank := range []cards.Rank{cards.SmallJoker, cards.BigJoker} {
		c := cards.Card{Suit: cards.Joker, Rank: rank}
		cv, _ := c.Code()
		cells = append(cells, Cell{Card: c, Code: cv, Row: 4, Column: col})
	}
	return cells
}

// GridRows groups Grid by row.
func GridRows() [][]Cell {
	var rows [][]Cell
	for _, cell := range Grid() {
		for len(rows) <= cell.Row {
			rows = append(rows, nil)
		}
		rows[cell.Row] = append(rows[cell.Row], cell)
	}
	return rows
}
