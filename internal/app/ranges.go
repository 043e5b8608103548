package app

import (
	"fmt"
	"strconv"
	"strings"
)

// span is an inclusive index range.
type span struct{ lo, hi int }

// parseSpans reads "3,10-12" style index lists. Empty input is no spans.
func parseSpans(s string) ([]span, error) {
	var out []span
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("bad index %q", part)
		}
		b := a
		if isRange {
			if b, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("bad range %q", part)
			}
		}
		if a < 0 || b < a {
			return nil, fmt.Errorf("bad range %q", part)
		}
		out = append(out, span{a, b})
	}
	return out, nil
}

// expandSpans lists every index covered, in order, duplicates kept.
func expandSpans(sp []span) []int {
	var out []int
	for _, s := range sp {
		for i := s.lo; i <= s.hi; i++ {
			out = append(out, i)
		}
	}
	return out
}
