package cards

import "errors"

var (
	ErrInvalidJSON = errors.New("invalid json")
	ErrInvalidCode = errors.New("invalid card code")
	ErrInvalidCard = errors.New("invalid card")
)
