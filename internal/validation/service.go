// Package validation answers the document and postal code checks exposed by the API.
package validation

import (
	"context"
	"errors"

	"winsbygroup.com/brvalida/internal/cep"
	"winsbygroup.com/brvalida/internal/document"
)

// Outcome is the explicit result of a check.
type Outcome int

const (
	Valid Outcome = iota
	Invalid
	NotFound
	Unavailable
)

func (o Outcome) String() string {
	switch o {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case NotFound:
		return "not_found"
	case Unavailable:
		return "unavailable"
	}
	return "unknown"
}

// AddressLookup resolves a CEP to an address.
type AddressLookup interface {
	Lookup(ctx context.Context, raw string) (*cep.Address, error)
}

type Service struct {
	lookup   AddressLookup
	onResult func(kind, outcome string)
}

// NewService returns a Service. onResult, when not nil, is called after every check.
func NewService(lookup AddressLookup, onResult func(kind, outcome string)) *Service {
	if onResult == nil {
		onResult = func(string, string) {}
	}
	return &Service{lookup: lookup, onResult: onResult}
}

// Document checks value as a document of the given kind.
func (s *Service) Document(kind document.Kind, value string) Outcome {
	out := Invalid
	if kind.Valid(value) {
		out = Valid
	}
	s.onResult(string(kind), out.String())
	return out
}

// PostalCode looks the CEP up. The address is returned only for Valid; the
// error is returned only for Unavailable.
func (s *Service) PostalCode(ctx context.Context, raw string) (Outcome, *cep.Address, error) {
	out, addr, err := s.postalCode(ctx, raw)
	s.onResult("cep", out.String())
	return out, addr, err
}

func (s *Service) postalCode(ctx context.Context, raw string) (Outcome, *cep.Address, error) {
	addr, err := s.lookup.Lookup(ctx, raw)
	switch {
	case err == nil:
		return Valid, addr, nil
	case errors.Is(err, cep.ErrInvalid):
		return Invalid, nil, nil
	case errors.Is(err, cep.ErrNotFound):
		return NotFound, nil, nil
	default:
		return Unavailable, nil, err
	}
}
