package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripAllCodes(t *testing.T) {
	t.Parallel()

	for cv := MinCode; cv <= MaxCode; cv++ {
		c, err := Decode(cv)
		require.NoError(t, err, "decode %d", cv)
		got, err := Encode(c.Suit, c.Rank)
		require.NoError(t, err, "encode %v", c)
		assert.Equal(t, cv, got, "card %v", c)
	}
}

func TestDeckIsBijective(t *testing.T) {
	t.Parallel()

	deck := Deck()
	require.Len(t, deck, DeckSize)
	seen := map[Card]bool{}
	for i, c := range deck {
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
		cv, err := c.Code()
		require.NoError(t, err)
		assert.Equal(t, i, cv)
	}
}

func TestDecodeKnownCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code int
		want Card
	}{
		{0, Card{Suit: Diamonds, Rank: Three}},
		{10, Card{Suit: Diamonds, Rank: King}},
		{11, Card{Suit: Diamonds, Rank: Ace}},
		{12, Card{Suit: Diamonds, Rank: Two}},
		{13, Card{Suit: Clubs, Rank: Three}},
		{33, Card{Suit: Hearts, Rank: Ten}},
		{51, Card{Suit: Spades, Rank: Two}},
		{52, Card{Suit: Joker, Rank: SmallJoker}},
		{53, Card{Suit: Joker, Rank: BigJoker}},
	}
	for _, tt := range tests {
		got, err := Decode(tt.code)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "code %d", tt.code)
	}
}

func TestEncodeKnownCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		suit Suit
		rank Rank
		want int
	}{
		{Diamonds, Ace, 11},
		{Diamonds, Two, 12},
		{Spades, Two, 3*13 + 12},
		{Clubs, Three, 13},
		{Hearts, Jack, 2*13 + 8},
		{Joker, SmallJoker, 52},
		{Joker, BigJoker, 53},
	}
	for _, tt := range tests {
		got, err := Encode(tt.suit, tt.rank)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s", tt.suit, tt.rank)
	}
}

func TestDecodeRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	for _, cv := range []int{-1, 54, 100} {
		_, err := Decode(cv)
		assert.ErrorIs(t, err, ErrInvalidCode, "code %d", cv)
	}
}

func TestEncodeRejectsImpossibleCards(t *testing.T) {
	t.Parallel()

	_, err := Encode(Joker, Ace)
	assert.ErrorIs(t, err, ErrInvalidCard)
	_, err = Encode(Hearts, SmallJoker)
	assert.ErrorIs(t, err, ErrInvalidCard)
	_, err = Encode(Suit(7), Three)
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestCardLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "3♦", MustDecode(0).String())
	assert.Equal(t, "10♠", MustDecode(46).String())
	assert.Equal(t, "small joker", MustDecode(52).String())
	assert.Equal(t, "Ac", MustDecode(24).Short())
	assert.Equal(t, "big", MustDecode(53).Short())
}

func TestImageName(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		0:  "3d.jpg",
		7:  "10d.jpg",
		8:  "jd.jpg",
		10: "kd.jpg",
		11: "1d.jpg",
		25: "2c.jpg",
		37: "1h.jpg",
		48: "qs.jpg",
		52: "black_joker.jpg",
		53: "red_joker.jpg",
	}
	for cv, want := range tests {
		assert.Equal(t, want, MustDecode(cv).ImageName(), "code %d", cv)
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := map[string]int{
		"3d":          0,
		"10D":         7,
		"Ad":          11,
		"1d":          11,
		"2d":          12,
		"kc":          23,
		"J♥":          34,
		"2s":          51,
		"small":       52,
		"black_joker": 52,
		" RJ ":        53,
	}
	for in, want := range tests {
		c, err := ParseCard(in)
		require.NoError(t, err, "input %q", in)
		cv, err := c.Code()
		require.NoError(t, err)
		assert.Equal(t, want, cv, "input %q", in)
	}

	for _, in := range []string{"", "x", "11d", "3x", "zz", "1j"} {
		_, err := ParseCard(in)
		assert.ErrorIs(t, err, ErrInvalidCard, "input %q", in)
	}
}

func TestShortRoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range Deck() {
		parsed, err := ParseCard(c.Short())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestRed(t *testing.T) {
	t.Parallel()

	assert.True(t, MustDecode(0).Red())
	assert.False(t, MustDecode(13).Red())
	assert.True(t, MustDecode(26).Red())
	assert.False(t, MustDecode(39).Red())
	assert.False(t, MustDecode(52).Red())
	assert.True(t, MustDecode(53).Red())
}

func TestIsJoker(t *testing.T) {
	t.Parallel()

	for cv := MinCode; cv <= MaxCode; cv++ {
		c := MustDecode(cv)
		assert.Equal(t, cv >= SmallJokerCode, c.IsJoker(), "code %d", cv)
		assert.Equal(t, c.IsJoker(), c.Rank.IsJoker(), "code %d", cv)
	}
	assert.False(t, Ace.IsJoker())
	assert.True(t, BigJoker.IsJoker())
}
