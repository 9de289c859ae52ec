package tensor

import "errors"

// Errors returned by NDArray operations. They are wrapped with the name of
// the failing operation, so match them with errors.Is.
var (
	ErrRankMismatch    = errors.New("rank mismatch")
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidShape    = errors.New("invalid shape")
)
