// Package document checks Brazilian identifier numbers by their check digits.
package document

import (
	"fmt"
	"strings"
)

// Kind names a document type.
type Kind string

const (
	CPF  Kind = "cpf"
	CNPJ Kind = "cnpj"
	CNH  Kind = "cnh"
)

// Kinds lists every supported document type.
var Kinds = []Kind{CPF, CNPJ, CNH}

// Label is the upper-case name used in messages.
func (k Kind) Label() string {
	return strings.ToUpper(string(k))
}

// Valid reports whether value is a well-formed document of kind k.
func (k Kind) Valid(value string) bool {
	switch k {
	case CPF:
		return IsCPF(value)
	case CNPJ:
		return IsCNPJ(value)
	case CNH:
		return IsCNH(value)
	}
	return false
}

// ParseKind maps a name such as "cpf" or "CNPJ" to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown document kind %q", s)
}

// clean drops the punctuation accepted around document numbers and upper-cases
// letters so alphanumeric CNPJs compare consistently.
func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r == '.', r == '-', r == '/', r == ' ':
			// separator
		default:
			// keep it so the length and charset checks reject the input
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// value is the numeric weight of a document character: digits count as
// themselves and letters as their ASCII code minus 48.
func value(c byte) int {
	return int(c) - '0'
}
