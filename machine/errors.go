package machine

import "errors"

// Error kinds. Every error returned by this package wraps exactly one of
// them; test with errors.Is.
var (
	ErrInvalidSymbol        = errors.New("invalid symbol")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrMalformedPermutation = errors.New("malformed permutation")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
