package ml

import "errors"

// Every failure in this package is a caller precondition violation. Call sites
// wrap one of these with the offending ids or shapes; match with errors.Is.
var (
	ErrInvalidDimension  = errors.New("invalid dimension")
	ErrUnknownLayer      = errors.New("unknown layer")
	ErrUnknownNetwork    = errors.New("unknown network")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrLengthMismatch    = errors.New("length mismatch")
	ErrIncompatibleShape = errors.New("incompatible shape")
	ErrEmptyInput        = errors.New("empty input")
)
