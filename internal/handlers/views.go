package handlers

import (
	"fmt"

	"cardviz/internal/board"
	"cardviz/internal/cards"
)

const (
	sizeGrid  = "grid"
	sizeBoard = "board"
	sizeFull  = "full"
)

type CardView struct {
	Code  int    `json:"code"`
	Suit  string `json:"suit"`
	Rank  string `json:"rank"`
	Label string `json:"label"`
	Short string `json:"short"`
	Red   bool   `json:"red"`
	Image string `json:"image"`
}

type SlotView struct {
	CardView
	Row    int `json:"row"`
	Column int `json:"column"`
}

// BoardView is the wire form of a board snapshot, sent over HTTP and the
// websocket alike.
type BoardView struct {
	Seq     uint64     `json:"seq"`
	Codes   []int      `json:"codes"`
	Cards   []SlotView `json:"cards"`
	Text    string     `json:"text"`
	Label   string     `json:"label"`
	Count   int        `json:"count"`
	Columns int        `json:"columns"`
}

func imageURL(code int, size string) string {
	return fmt.Sprintf("/api/cards/%d/image?size=%s", code, size)
}

func newCardView(c cards.Card, code int, size string) CardView {
	return CardView{
		Code:  code,
		Suit:  c.Suit.String(),
		Rank:  c.Rank.String(),
		Label: c.String(),
		Short: c.Short(),
		Red:   c.Red(),
		Image: imageURL(code, size),
	}
}

func NewBoardView(s board.Snapshot, columns int) BoardView {
	slots := make([]SlotView, 0, len(s.Slots))
	for _, sl := range s.Slots {
		slots = append(slots, SlotView{
			CardView: newCardView(sl.Card, sl.Code, sizeBoard),
			Row:      sl.Row,
			Column:   sl.Column,
		})
	}
	return BoardView{
		Seq:     s.Seq,
		Codes:   s.Codes,
		Cards:   slots,
		Text:    s.Text,
		Label:   s.Label(),
		Count:   s.Count(),
		Columns: columns,
	}
}

func gridView() [][]SlotView {
	rows := board.GridRows()
	out := make([][]SlotView, 0, len(rows))
	for _, row := range rows {
		views := make([]SlotView, 0, len(row))
		for _, cell := range row {
			views = append(views, SlotView{
				CardView: newCardView(cell.Card, cell.Code, sizeGrid),
				Row:      cell.Row,
				Column:   cell.Column,
			})
		}
		out = append(out, views)
	}
	return out
}
