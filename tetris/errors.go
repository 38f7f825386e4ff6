package tetris

import "errors"

var (
	ErrInvalidDimensions = errors.New("field dimensions must be greater than 4")
	ErrMalformedShape    = errors.New("malformed shape template")
	ErrMalformedField    = errors.New("malformed field")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrUnknownRandomizer = errors.New("unknown randomizer")
	ErrUnknownPolicy     = errors.New("unknown progression policy")
)
