// Package cards implements the integer card encoding shared with the game
// engine: codes 0..53, suits diamonds < clubs < hearts < spades, ranks
// 3 < 4 < ... < K < A < 2, and the two jokers at 52 and 53.
package cards

import (
	"fmt"
	"strconv"
	"strings"
)

type Suit int

const (
	Diamonds Suit = iota
	Clubs
	Hearts
	Spades
	Joker
)

var suitNames = [...]string{"diamonds", "clubs", "hearts", "spades", "joker"}

// suitLetters doubles as the legacy image file suffix.
var suitLetters = [...]string{"d", "c", "h", "s", "j"}

var suitSymbols = [...]string{"♦", "♣", "♥", "♠", ""}

func (s Suit) Valid() bool { return s >= Diamonds && s <= Joker }

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

func (s Suit) Letter() string {
	if !s.Valid() {
		return "?"
	}
	return suitLetters[s]
}

func (s Suit) Symbol() string {
	if !s.Valid() {
		return "?"
	}
	return suitSymbols[s]
}

// Rank values are the offset of the rank inside its suit block, so ordinary
// ranks double as their position in code order.
type Rank int

const (
	Three Rank = iota
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
	Two
	SmallJoker
	BigJoker
)

var rankLabels = [...]string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2", "small", "big"}

func (r Rank) Valid() bool { return r >= Three && r <= BigJoker }

func (r Rank) IsJoker() bool { return r == SmallJoker || r == BigJoker }

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankLabels[r]
}

const (
	SuitSize       = 13
	MinCode        = 0
	MaxCode        = 53
	DeckSize       = MaxCode + 1
	SmallJokerCode = 52
	BigJokerCode   = 53

	// ace and two sit after K in every suit block.
	aceOffset = 11
)

type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Decode maps a card code to its card.
func Decode(cv int) (Card, error) {
	if cv < MinCode || cv > MaxCode {
		return Card{}, fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidCode, cv, MinCode, MaxCode)
	}
	switch cv {
	case SmallJokerCode:
		return Card{Suit: Joker, Rank: SmallJoker}, nil
	case BigJokerCode:
		return Card{Suit: Joker, Rank: BigJoker}, nil
	}
	suit := Suit(cv / SuitSize)
	offset := cv % SuitSize
	if offset >= aceOffset {
		return Card{Suit: suit, Rank: Ace + Rank(offset-aceOffset)}, nil
	}
	return Card{Suit: suit, Rank: Three + Rank(offset)}, nil
}

// MustDecode is Decode for codes known to be valid.
func MustDecode(cv int) Card {
	c, err := Decode(cv)
	if err != nil {
		panic(err)
	}
	return c
}

// Encode maps a suit and rank back to the card code. It is the exact inverse
// of Decode.
func Encode(s Suit, r Rank) (int, error) {
	if s == Joker {
		switch r {
		case SmallJoker:
			return SmallJokerCode, nil
		case BigJoker:
			return BigJokerCode, nil
		}
		return 0, fmt.Errorf("%w: joker with rank %s", ErrInvalidCard, r)
	}
	if s < Diamonds || s > Spades {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCard, s)
	}
	switch {
	case r == Ace || r == Two:
		return int(s)*SuitSize + aceOffset + int(r-Ace), nil
	case r >= Three && r <= King:
		return int(s)*SuitSize + int(r-Three), nil
	}
	return 0, fmt.Errorf("%w: %s with rank %s", ErrInvalidCard, s, r)
}

func (c Card) Code() (int, error) {
	return Encode(c.Suit, c.Rank)
}

func (c Card) IsJoker() bool { return c.Rank.IsJoker() }

// Red reports whether the card is printed in red: diamonds, hearts and the
// big joker.
func (c Card) Red() bool {
	switch c.Suit {
	case Diamonds, Hearts:
		return true
	case Joker:
		return c.Rank == BigJoker
	}
	return false
}

func (c Card) String() string {
	if c.IsJoker() {
		return c.Rank.String() + " joker"
	}
	return c.Rank.String() + c.Suit.Symbol()
}

// Short is the compact form accepted by ParseCard, e.g. "10s", "Ad",
// "small".
func (c Card) Short() string {
	if c.IsJoker() {
		return c.Rank.String()
	}
	return c.Rank.String() + c.Suit.Letter()
}

// ImageName is the artwork file name: "<value><suit>.jpg" where the value
// is 1 for the ace, 2..10 or j/q/k, and "black_joker.jpg"/"red_joker.jpg".
func (c Card) ImageName() string {
	switch c.Rank {
	case SmallJoker:
		return "black_joker.jpg"
	case BigJoker:
		return "red_joker.jpg"
	case Ace:
		return "1" + c.Suit.Letter() + ".jpg"
	}
	return strings.ToLower(c.Rank.String()) + c.Suit.Letter() + ".jpg"
}

var jokerAliases = map[string]Rank{
	"small":       SmallJoker,
	"sj":          SmallJoker,
	"black_joker": SmallJoker,
	"big":         BigJoker,
	"rj":          BigJoker,
	"red_joker":   BigJoker,
}

var suitByText = map[string]Suit{
	"d": Diamonds, "♦": Diamonds,
	"c": Clubs, "♣": Clubs,
	"h": Hearts, "♥": Hearts,
	"s": Spades, "♠": Spades,
}

// ParseCard reads the Short form (case-insensitive). The ace may also be
// written as 1, matching the artwork names.
func ParseCard(s string) (Card, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if r, ok := jokerAliases[s]; ok {
		return Card{Suit: Joker, Rank: r}, nil
	}
	runes := []rune(s)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	suit, ok := suitByText[string(runes[len(runes)-1])]
	if !ok {
		return Card{}, fmt.Errorf("%w: unknown suit in %q", ErrInvalidCard, s)
	}
	var r Rank
	switch rankStr := string(runes[:len(runes)-1]); rankStr {
	case "a", "1":
		r = Ace
	case "k":
		r = King
	case "q":
		r = Queen
	case "j":
		r = Jack
	default:
		v, err := strconv.Atoi(rankStr)
		if err != nil || v < 2 || v > 10 {
			return Card{}, fmt.Errorf("%w: unknown rank in %q", ErrInvalidCard, s)
		}
		if v == 2 {
			r = Two
		} else {
			r = Three + Rank(v-3)
		}
	}
	return Card{Suit: suit, Rank: r}, nil
}

// Deck returns all 54 cards in code order.
func Deck() []Card {
	deck := make([]Card, 0, DeckSize)
	for cv := MinCode; cv <= MaxCode; cv++ {
		deck = append(deck, MustDecode(cv))
	}
	return deck
}
