// Package apicontract is the glue between the wire request/response shapes
// and the core constraint/validator packages. Of the core packages, only
// validator imports net/http, for its outbound dictionary calls.
package apicontract

import (
	"context"
	"net/http"

	"github.com/bodul/sbs/constraint"
	"github.com/bodul/sbs/validator"
)

// SolveRequest is the wire shape of a solve request.
type SolveRequest struct {
	Letters           string  `json:"letters"`
	Present           string  `json:"present"`
	Repeats           *int    `json:"repeats,omitempty"`
	MinimalWordLength *int    `json:"minimal-word-length,omitempty"`
	MaximalWordLength *int    `json:"maximal-word-length,omitempty"`
	CaseSensitive     *bool   `json:"case-sensitive,omitempty"`
	Validator         *string `json:"validator,omitempty"`
	APIKey            *string `json:"api-key,omitempty"`
	ValidatorURL      *string `json:"validator-url,omitempty"`
}

// ToConstraintSet builds a constraint.Set from the request, delegating
// normalization and validation to constraint.FromRequest.
func (r SolveRequest) ToConstraintSet() (*constraint.Set, error) {
	caseSensitive := false
	if r.CaseSensitive != nil {
		caseSensitive = *r.CaseSensitive
	}
	return constraint.FromRequest(constraint.Request{
		Available:     r.Letters,
		Required:      r.Present,
		Repeats:       r.Repeats,
		MinLength:     r.MinimalWordLength,
		MaxLength:     r.MaximalWordLength,
		CaseSensitive: caseSensitive,
	})
}

// BuildValidator constructs the validator.Variant named by the request, or
// returns (nil, nil) if no validator was requested, meaning the pipeline
// is skipped entirely. client is passed through to validator.New for an
// optional custom-URL probe; pass nil to skip probing.
func (r SolveRequest) BuildValidator(ctx context.Context, client *http.Client) (validator.Variant, error) {
	if r.Validator == nil {
		return nil, nil
	}

	kind, ok := validator.ParseKind(*r.Validator)
	if !ok {
		return nil, validator.ErrUnknownValidatorKind
	}

	apiKey := ""
	if r.APIKey != nil {
		apiKey = *r.APIKey
	}
	customURL := ""
	if r.ValidatorURL != nil {
		customURL = *r.ValidatorURL
	}

	return validator.New(ctx, client, kind, apiKey, customURL)
}
