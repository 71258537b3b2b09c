// Package board holds the operator's current selection: the cards shown on
// the board and the contents of the code text box.
package board

import (
	"fmt"
	"strings"
	"sync"

	"cardviz/internal/cards"
)

const DefaultColumns = 18

// Slot is one rendered card on the board.
type Slot struct {
	Card   cards.Card
	Code   int
	Row    int
	Column int
}

// Snapshot is an immutable copy of the board. Seq increases with every
// mutation so listeners can drop stale updates.
type Snapshot struct {
	Seq   uint64
	Codes []int
	Slots []Slot
	Text  string
}

func (s Snapshot) Count() int { return len(s.Codes) }

// Label is the header shown above the text box.
func (s Snapshot) Label() string {
	if len(s.Codes) == 0 {
		return "Cards:"
	}
	return fmt.Sprintf("Cards - %d:", len(s.Codes))
}

// Board is safe for concurrent use.
type Board struct {
	mu        sync.Mutex
	columns   int
	codes     []int
	text      string
	seq       uint64
	listeners []func(Snapshot)
}

func New(columns int) *Board {
	if columns <= 0 {
		columns = DefaultColumns
	}
	return &Board{columns: columns}
}

func (b *Board) Columns() int { return b.columns }

// OnChange registers fn to be called with the new snapshot after every
// mutation. Listeners run on the mutating goroutine, outside the lock.
func (b *Board) OnChange(fn func(Snapshot)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Select appends c and rewrites the text box with the serialized selection.
func (b *Board) Select(c cards.Card) (Snapshot, error) {
	cv, err := c.Code()
	if err != nil {
		return Snapshot{}, err
	}
	return b.mutate(func() {
		b.codes = append(b.codes, cv)
		b.text = cards.FormatCodes(b.codes)
	}), nil
}

func (b *Board) SelectCode(cv int) (Snapshot, error) {
	c, err := cards.Decode(cv)
	if err != nil {
		return Snapshot{}, err
	}
	return b.Select(c)
}

// Confirm replaces the board with the cards text encodes. On a parse error
// the board is left untouched and the error is returned for display. Blank
// text clears the board.
func (b *Board) Confirm(text string) (Snapshot, error) {
	if strings.TrimSpace(text) == "" {
		return b.mutate(func() {
			b.codes = nil
			b.text = text
		}), nil
	}
	codes, err := cards.ParseCodes(text)
	if err != nil {
		return Snapshot{}, err
	}
	return b.mutate(func() {
		b.codes = codes
		b.text = text
	}), nil
}

// Reset clears the board and the text box.
func (b *Board) Reset() Snapshot {
	return b.mutate(func() {
		b.codes = nil
		b.text = ""
	})
}

func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Board) mutate(fn func()) Snapshot {
	b.mu.Lock()
	fn()
	b.seq++
	snap := b.snapshotLocked()
	listeners := append([]func(Snapshot){}, b.listeners...)
	b.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return snap
}

func (b *Board) snapshotLocked() Snapshot {
	codes := append([]int{}, b.codes...)
	slots := make([]Slot, 0, len(codes))
	for i, cv := range codes {
		slots = append(slots, Slot{
			Card:   cards.MustDecode(cv),
			Code:   cv,
			Row:    i / b.columns,
			Column: i % b.columns,
		})
	}
	return Snapshot{Seq: b.seq, Codes: codes, Slots: slots, Text: b.text}
}
