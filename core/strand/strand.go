// Package strand derives the six bisulfite strand views of a top-strand
// sequence. All views share the top strand's coordinate space: position i of
// every view refers to the same genomic base, so a viewer can stack them
// without any offset arithmetic.
package strand

import (
	"fmt"
	"strings"

	"bsprimer-core/bases"
)

// Type enumerates the six strand views.
type Type int

const (
	F    Type = iota // forward/top, unconverted
	R                // complement of top, unconverted
	OT               // original top, bisulfite-converted
	CTOT             // complement to OT
	OB               // original bottom, bisulfite-converted
	CTOB             // complement to OB
)

var typeNames = [...]string{"F", "R", "OT", "CTOT", "OB", "CTOB"}

// All returns the six strand types in display order.
func All() []Type { return []Type{F, R, OT, CTOT, OB, CTOB} }

func (t Type) String() string {
	if t < F || t > CTOB {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Valid reports whether t is one of the six views.
func (t Type) Valid() bool { return t >= F && t <= CTOB }

// ParseType accepts the short names case-insensitively.
func ParseType(s string) (Type, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range typeNames {
		if n == u {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strand %q (want F, R, OT, CTOT, OB or CTOB)", s)
}

// ReverseDisplayed reports whether the strand is shown 3'→5' left-to-right.
func (t Type) ReverseDisplayed() bool {
	return t == R || t == CTOT || t == OB
}

// Biological returns a slice of this strand read 5'→3'.
func (t Type) Biological(s string) string {
	if t.ReverseDisplayed() {
		return bases.Reverse(s)
	}
	return s
}

// Bisulfite converts every 'c' whose index is not in m to 't'. Other bases,
// methylated cytosines and indices that do not hold a 'c' are left alone.
func Bisulfite(s string, m MethylSet) string {
	out := []byte(s)
	for i := range out {
		if out[i] == 'c' && !m.Has(i) {
			out[i] = 't'
		}
	}
	return string(out)
}

// Derive returns one strand view of top. It is total: any string and any
// index sets are accepted; out-of-range indices are inert.
func Derive(top string, mTop, mBot MethylSet, t Type) string {
	top = strings.ToLower(top)
	switch t {
	case F:
		return top
	case R:
		return bases.ComplementString(top)
	case OT:
		return Bisulfite(top, mTop)
	case CTOT:
		return bases.ComplementString(Bisulfite(top, mTop))
	case OB:
		return Bisulfite(bases.ComplementString(top), mBot)
	case CTOB:
		return bases.ComplementString(Bisulfite(bases.ComplementString(top), mBot))
	default:
		return top
	}
}

// Views holds all six derived strands, indexed by Type.
type Views [6]string

// DeriveAll derives the six views sharing the intermediate conversions.
func DeriveAll(top string, mTop, mBot MethylSet) Views {
	top = strings.ToLower(top)
	bottom := bases.ComplementString(top)
	ot := Bisulfite(top, mTop)
	ob := Bisulfite(bottom, mBot)
	return Views{
		F:    top,
		R:    bottom,
		OT:   ot,
		CTOT: bases.ComplementString(ot),
		OB:   ob,
		CTOB: bases.ComplementString(ob),
	}
}

// Get returns the view for t ("" for an invalid type).
func (v Views) Get(t Type) string {
	if !t.Valid() {
		return ""
	}
	return v[t]
}

// Slice returns v[t][start:end] clamped to the strand bounds.
func (v Views) Slice(t Type, start, end int) string {
	s := v.Get(t)
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return ""
	}
	return s[start:end]
}
