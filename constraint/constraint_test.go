package constraint_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodul/sbs/constraint"
)

func intPtr(i int) *int { return &i }

func TestFromRequestBasic(t *testing.T) {
	cs, err := constraint.FromRequest(constraint.Request{
		Available: "abcdefg",
		Required:  "a",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cs.MinLength())
	_, ok := cs.MaxLength()
	assert.False(t, ok)
	assert.Equal(t, math.MaxInt, cs.RepeatCap())
}

func TestFromRequestEmptyLetters(t *testing.T) {
	_, err := constraint.FromRequest(constraint.Request{Available: ""})
	assert.ErrorIs(t, err, constraint.ErrEmptyLetters)
}

func TestFromRequestRequiredNotAvailable(t *testing.T) {
	_, err := constraint.FromRequest(constraint.Request{
		Available: "abc",
		Required:  "z",
	})
	assert.ErrorIs(t, err, constraint.ErrRequiredNotAvailable)
}

func TestFromRequestNonPositiveRepeats(t *testing.T) {
	_, err := constraint.FromRequest(constraint.Request{
		Available: "abc",
		Repeats:   intPtr(0),
	})
	assert.ErrorIs(t, err, constraint.ErrNonPositiveRepeats)
}

func TestFromRequestNonPositiveLength(t *testing.T) {
	_, err := constraint.FromRequest(constraint.Request{
		Available: "abc",
		MinLength: intPtr(-1),
	})
	assert.ErrorIs(t, err, constraint.ErrNonPositiveLength)

	_, err = constraint.FromRequest(constraint.Request{
		Available: "abc",
		MaxLength: intPtr(0),
	})
	assert.ErrorIs(t, err, constraint.ErrNonPositiveLength)
}

func TestFromRequestMinExceedsMax(t *testing.T) {
	_, err := constraint.FromRequest(constraint.Request{
		Available: "abc",
		MinLength: intPtr(5),
		MaxLength: intPtr(3),
	})
	assert.ErrorIs(t, err, constraint.ErrMinExceedsMax)
}

func TestFromRequestUnsupportedSymbol(t *testing.T) {
	_, err := constraint.FromRequest(constraint.Request{Available: "ab1"})
	assert.ErrorIs(t, err, constraint.ErrUnsupportedSymbol)
}

func TestFromRequestDeduplicatesAvailable(t *testing.T) {
	cs, err := constraint.FromRequest(constraint.Request{Available: "aabbcc"})
	require.NoError(t, err)

	a := cs.Alphabet()
	bit, _ := a.MaskOf('a')
	assert.True(t, cs.AvailableMask().Has(bit))
}

func TestFromRequestRequiredIsASetNotAMultiset(t *testing.T) {
	cs, err := constraint.FromRequest(constraint.Request{
		Available: "abc",
		Required:  "aa",
	})
	require.NoError(t, err)
	a := cs.Alphabet()
	bit, _ := a.MaskOf('a')
	assert.Equal(t, bit, cs.RequiredMask())
}

func TestFromRequestCaseInsensitiveNormalizesRequired(t *testing.T) {
	cs, err := constraint.FromRequest(constraint.Request{
		Available: "ABCdef",
		Required:  "A",
	})
	require.NoError(t, err)
	a := cs.Alphabet()
	bit, _ := a.MaskOf('a')
	assert.True(t, cs.RequiredMask().Has(bit))
}

func TestFromRequestCaseSensitiveDistinguishesCase(t *testing.T) {
	cs, err := constraint.FromRequest(constraint.Request{
		Available:     "Walrus",
		Required:      "W",
		CaseSensitive: true,
	})
	require.NoError(t, err)
	a := cs.Alphabet()
	upper, _ := a.MaskOf('W')
	lower, _ := a.MaskOf('w')
	assert.True(t, cs.RequiredMask().Has(upper))
	assert.False(t, cs.AvailableMask().Has(lower))
}

func TestEffectiveRepeatCapFallsBackToMaxLength(t *testing.T) {
	cs, err := constraint.FromRequest(constraint.Request{
		Available: "abc",
		MaxLength: intPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, cs.RepeatCap())
}

func TestEffectiveRepeatCapPrefersExplicitRepeats(t *testing.T) {
	cs, err := constraint.FromRequest(constraint.Request{
		Available: "abc",
		Repeats:   intPtr(2),
		MaxLength: intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, cs.RepeatCap())
}
