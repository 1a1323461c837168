// Package cep looks Brazilian postal codes up against public address providers.
package cep

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalid means the input cannot be a CEP.
	ErrInvalid = errors.New("invalid cep")
	// ErrNotFound means every provider answered that the CEP does not exist.
	ErrNotFound = errors.New("cep not found")
	// ErrUnavailable means no provider could give a definite answer.
	ErrUnavailable = errors.New("cep providers unavailable")
)

// Length is the number of digits in a CEP.
const Length = 8

// Address is the result of a successful lookup.
type Address struct {
	CEP          string `json:"cep"`
	State        string `json:"state"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
	Service      string `json:"service"`
}

// Normalize strips everything but digits and left-pads the result with zeros.
// Inputs with no digits or more than eight digits are rejected.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if digits == "" || len(digits) > Length {
		return "", fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	return strings.Repeat("0", Length-len(digits)) + digits, nil
}
