package validator

import "errors"

var (
	// ErrMissingAPIKey is returned by New when a variant that requires a
	// key (merriam-webster, wordnik) was requested without one.
	ErrMissingAPIKey = errors.New("validator: api key required for this validator")

	// ErrInvalidCustomValidator is returned by New when a custom
	// validator's probe request produced neither a free-dictionary-shaped
	// 2xx body nor a 404.
	ErrInvalidCustomValidator = errors.New("validator: custom validator url failed probe")

	// ErrUnknownValidatorKind is returned by New for a Kind outside the
	// four named variants.
	ErrUnknownValidatorKind = errors.New("validator: unknown validator kind")
)
