// core/oligo/validate.go
package oligo

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"bsprimer-core/bases"
)

var (
	// ErrEmpty is returned for sequences with no binding bases.
	ErrEmpty = errors.New("empty oligo")
	// ErrInvalidBase is returned for characters outside the IUPAC alphabet.
	ErrInvalidBase = errors.New("invalid base")
	// ErrMalformedTail is returned for nested, unmatched or empty brackets.
	ErrMalformedTail = errors.New("malformed tail")
)

// Normalize removes spaces/quotes; case is kept because it carries LNA marks.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// Validate returns an uppercase, normalized sequence or an error if any
// character is non-IUPAC. It is meant for search queries, which carry no
// tails or modifications.
func Validate(raw string) (string, error) {
	s := strings.ToUpper(Normalize(raw))
	if s == "" {
		return s, ErrEmpty
	}
	for i := 0; i < len(s); i++ {
		if !bases.IsIUPAC(s[i]) {
			return "", fmt.Errorf("%w %q at %d; allowed: A C G T R Y S W K M B D H V N", ErrInvalidBase, s[i], i+1)
		}
	}
	return s, nil
}
