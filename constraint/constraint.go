// Package constraint normalizes raw puzzle input into an immutable, valid
// Set and precomputes the derived state the solver package needs for O(1)
// pruning decisions during enumeration.
package constraint

import (
	"math"

	"github.com/bodul/sbs/alphabet"
)

// Request is the raw, unvalidated puzzle input. A nil optional field means
// "absent" — e.g. a nil Repeats means unbounded, never zero.
type Request struct {
	Available     string
	Required      string
	Repeats       *int
	MinLength     *int
	MaxLength     *int
	CaseSensitive bool
}

// Set is an immutable, validated bundle of puzzle constraints together
// with the derived state the solver consumes. Construct with FromRequest;
// a successfully constructed Set is never mutated.
type Set struct {
	alpha         alphabet.Alphabet
	availableMask alphabet.Mask
	requiredMask  alphabet.Mask
	repeatCap     int
	minLength     int
	maxLength     int // 0 means unbounded
}

// FromRequest deduplicates available/required (set semantics — requiring
// "aa" is the same as requiring "a"), normalizes case when CaseSensitive is
// false, and rejects input that breaks a Set invariant: an empty available
// set, a required symbol not in available, a non-positive repeats or
// length bound, a minimum above the maximum, or a symbol outside the active
// alphabet. It does not reject constraints that are valid but match no
// word (e.g. more required symbols than the maximum length allows). It is
// pure and side-effect-free.
func FromRequest(req Request) (*Set, error) {
	a := alphabet.New(req.CaseSensitive)

	minLength := 1
	if req.MinLength != nil {
		if *req.MinLength <= 0 {
			return nil, ErrNonPositiveLength
		}
		minLength = *req.MinLength
	}

	maxLength := 0
	if req.MaxLength != nil {
		if *req.MaxLength <= 0 {
			return nil, ErrNonPositiveLength
		}
		maxLength = *req.MaxLength
	}

	if maxLength != 0 && minLength > maxLength {
		return nil, ErrMinExceedsMax
	}

	var repeats *int
	if req.Repeats != nil {
		if *req.Repeats <= 0 {
			return nil, ErrNonPositiveRepeats
		}
		repeats = req.Repeats
	}

	var availableMask alphabet.Mask
	for _, r := range req.Available {
		folded, ok := a.Normalize(r)
		if !ok {
			return nil, ErrUnsupportedSymbol
		}
		bit, ok := a.MaskOf(folded)
		if !ok {
			return nil, ErrUnsupportedSymbol
		}
		availableMask = availableMask.With(bit)
	}
	if availableMask.IsZero() {
		return nil, ErrEmptyLetters
	}

	var requiredMask alphabet.Mask
	for _, r := range req.Required {
		folded, ok := a.Normalize(r)
		if !ok {
			return nil, ErrUnsupportedSymbol
		}
		bit, ok := a.MaskOf(folded)
		if !ok {
			return nil, ErrUnsupportedSymbol
		}
		if !availableMask.Has(bit) {
			return nil, ErrRequiredNotAvailable
		}
		requiredMask = requiredMask.With(bit)
	}

	var repeatCap int
	switch {
	case repeats != nil:
		repeatCap = *repeats
	case maxLength != 0:
		repeatCap = maxLength
	default:
		repeatCap = math.MaxInt
	}

	return &Set{
		alpha:         a,
		availableMask: availableMask,
		requiredMask:  requiredMask,
		repeatCap:     repeatCap,
		minLength:     minLength,
		maxLength:     maxLength,
	}, nil
}

// Alphabet returns the alphabet this Set was validated against.
func (s *Set) Alphabet() alphabet.Alphabet {
	return s.alpha
}

// AvailableMask is the bitmask of symbols a candidate word may use.
func (s *Set) AvailableMask() alphabet.Mask {
	return s.availableMask
}

// RequiredMask is the bitmask of symbols every candidate word must use at
// least once.
func (s *Set) RequiredMask() alphabet.Mask {
	return s.requiredMask
}

// RepeatCap is the maximum number of times any single symbol may appear in
// a candidate word.
func (s *Set) RepeatCap() int {
	return s.repeatCap
}

// MinLength is the minimum candidate word length, inclusive.
func (s *Set) MinLength() int {
	return s.minLength
}

// MaxLength returns the maximum candidate word length, inclusive, and
// whether one is set; ok is false when there is no upper bound.
func (s *Set) MaxLength() (length int, ok bool) {
	if s.maxLength == 0 {
		return 0, false
	}
	return s.maxLength, true
}
