package cards

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseCodes reads a JSON array of card codes such as "[0, 1, 11, 12, 13]".
// Duplicates are kept in order. A JSON null is an empty list.
func ParseCodes(text string) ([]int, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, describeJSONError(err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after the array", ErrInvalidJSON)
	}

	codes := make([]int, 0, len(raw))
	for i, elem := range raw {
		cv, err := strconv.Atoi(string(bytes.TrimSpace(elem)))
		if errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("element %d: %w: %s is out of range", i, ErrInvalidCode, elem)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: element %d (%s) is not an integer", ErrInvalidJSON, i, elem)
		}
		if _, err := Decode(cv); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		codes = append(codes, cv)
	}
	return codes, nil
}

func describeJSONError(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return "empty input"
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "unexpected end of input"
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("%s (offset %d)", syntaxErr.Error(), syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("expected an array of integers, got %s", typeErr.Value)
	}
	return err.Error()
}

// FormatCodes is the inverse of ParseCodes; an empty selection is "[]".
func FormatCodes(codes []int) string {
	if len(codes) == 0 {
		return "[]"
	}
	b, err := json.Marshal(codes)
	if err != nil {
		// []int always marshals.
		panic(err)
	}
	return string(b)
}

// DecodeAll decodes every code, stopping at the first invalid one.
func DecodeAll(codes []int) ([]Card, error) {
	out := make([]Card, 0, len(codes))
	for _, cv := range codes {
		c, err := Decode(cv)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// EncodeAll is the inverse of DecodeAll.
func EncodeAll(cs []Card) ([]int, error) {
	out := make([]int, 0, len(cs))
	for _, c := range cs {
		cv, err := c.Code()
		if err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	return out, nil
}
