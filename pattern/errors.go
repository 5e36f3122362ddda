package pattern

import (
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/ftag"
)

var (
	// ErrInvalidSymbol is returned when a token is not part of the alphabet.
	ErrInvalidSymbol = fault.New("invalid symbol", ftag.With(ftag.InvalidArgument))

	// ErrEmptyPattern is returned for zero-length input or playback requests.
	ErrEmptyPattern = fault.New("empty pattern", ftag.With(ftag.InvalidArgument))
)
