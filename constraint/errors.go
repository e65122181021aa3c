package constraint

import "errors"

// Rejection reasons for FromRequest, matching the error kinds a caller
// surfaces verbatim to its own client. Every message is prefixed
// "constraint: " per the sentinel-error convention used throughout this
// module; callers match with errors.Is rather than string comparison.
var (
	ErrEmptyLetters         = errors.New("constraint: available set is empty after normalization")
	ErrRequiredNotAvailable = errors.New("constraint: required symbol is not in available")
	ErrNonPositiveRepeats   = errors.New("constraint: repeats must be positive")
	ErrNonPositiveLength    = errors.New("constraint: length bound must be positive")
	ErrMinExceedsMax        = errors.New("constraint: min_length exceeds max_length")
	ErrUnsupportedSymbol    = errors.New("constraint: symbol outside the active alphabet")
)
