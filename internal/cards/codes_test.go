package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []int
	}{
		{"example", "[0, 1, 11, 12, 13]", []int{0, 1, 11, 12, 13}},
		{"empty", "[]", []int{}},
		{"null", "null", []int{}},
		{"duplicates", "[5,5,53,5]", []int{5, 5, 53, 5}},
		{"whitespace", "  [ 52 ,\n 53 ]\n", []int{52, 53}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCodes(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCodesRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"",
		"[1, 2",
		"[1,]",
		"{\"a\": 1}",
		"\"[1]\"",
		"[1.5]",
		"[\"3\"]",
		"[1] [2]",
		"[1] x",
		"hello",
	} {
		_, err := ParseCodes(text)
		assert.ErrorIs(t, err, ErrInvalidJSON, "text %q", text)
	}
}

func TestParseCodesRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	_, err := ParseCodes("[0, 54]")
	require.ErrorIs(t, err, ErrInvalidCode)
	assert.Contains(t, err.Error(), "element 1")

	_, err = ParseCodes("[-1]")
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = ParseCodes("[3, 99999999999999999999]")
	require.ErrorIs(t, err, ErrInvalidCode)
	assert.NotErrorIs(t, err, ErrInvalidJSON)
	assert.Contains(t, err.Error(), "element 1")
}

func TestFormatCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[]", FormatCodes(nil))
	assert.Equal(t, "[]", FormatCodes([]int{}))
	assert.Equal(t, "[0,11,53]", FormatCodes([]int{0, 11, 53}))

	got, err := ParseCodes(FormatCodes([]int{3, 3, 40}))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 40}, got)
}

func TestDecodeAllEncodeAll(t *testing.T) {
	t.Parallel()

	cs, err := DecodeAll([]int{0, 52, 0})
	require.NoError(t, err)
	require.Len(t, cs, 3)
	assert.Equal(t, cs[0], cs[2])

	codes, err := EncodeAll(cs)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 52, 0}, codes)

	_, err = DecodeAll([]int{1, 99})
	assert.ErrorIs(t, err, ErrInvalidCode)
	_, err = EncodeAll([]Card{{Suit: Joker, Rank: King}})
	assert.ErrorIs(t, err, ErrInvalidCard)
}
