package linreg

import "errors"

// Common errors.
var (
	ErrNotFitted    = errors.New("model is not fitted")
	ErrInvalidInput = errors.New("invalid input")
)
