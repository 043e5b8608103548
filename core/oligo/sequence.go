// Package oligo models designed primers. A primer sequence is an ordered list
// of segments tagged Binding or Tail; only binding segments take part in
// thermodynamic and structure scoring. Each position carries its base and an
// independent LNA flag.
package oligo

import (
	"fmt"
	"strings"

	"bsprimer-core/bases"
)

// Kind tags a segment.
type Kind int

const (
	Binding Kind = iota
	Tail
)

func (k Kind) String() string {
	if k == Tail {
		return "tail"
	}
	return "binding"
}

// Position is one base of a primer. Base is stored uppercase.
type Position struct {
	Base byte
	LNA  bool
}

// Segment is a run of positions of one kind.
type Segment struct {
	Kind      Kind
	Positions []Position
}

// Sequence is a full primer, 5'→3' as written.
type Sequence struct {
	Segments []Segment
}

// Parse reads the bracket notation: "[tail]binding", where an uppercase
// letter in a binding segment marks an LNA base. Tails are stored uppercase
// and never carry LNA. Nested, unmatched or empty brackets are rejected.
func Parse(raw string) (Sequence, error) {
	s := Normalize(raw)
	var (
		seq    Sequence
		cur    []Position
		inTail bool
	)
	flush := func(k Kind) {
		if len(cur) > 0 {
			seq.Segments = append(seq.Segments, Segment{Kind: k, Positions: cur})
		}
		cur = nil
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '[':
			if inTail {
				return Sequence{}, fmt.Errorf("%w: nested '[' at %d", ErrMalformedTail, i+1)
			}
			flush(Binding)
			inTail = true
			continue
		case ']':
			if !inTail {
				return Sequence{}, fmt.Errorf("%w: unmatched ']' at %d", ErrMalformedTail, i+1)
			}
			if len(cur) == 0 {
				return Sequence{}, fmt.Errorf("%w: empty tail at %d", ErrMalformedTail, i+1)
			}
			flush(Tail)
			inTail = false
			continue
		}
		if !bases.IsIUPAC(c) {
			return Sequence{}, fmt.Errorf("%w %q at %d", ErrInvalidBase, c, i+1)
		}
		up := c &^ 0x20 // IUPAC codes are letters
		cur = append(cur, Position{Base: up, LNA: !inTail && c == up})
	}
	if inTail {
		return Sequence{}, fmt.Errorf("%w: unterminated '['", ErrMalformedTail)
	}
	flush(Binding)
	return seq, nil
}

// MustParse is Parse for literals in tests and tables; it panics on error.
func MustParse(raw string) Sequence {
	s, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Plain builds a binding-only sequence without LNA marks.
func Plain(bindingSeq string) Sequence {
	ps := make([]Position, 0, len(bindingSeq))
	for i := 0; i < len(bindingSeq); i++ {
		ps = append(ps, Position{Base: bindingSeq[i] &^ 0x20})
	}
	if len(ps) == 0 {
		return Sequence{}
	}
	return Sequence{Segments: []Segment{{Kind: Binding, Positions: ps}}}
}

// Binding returns the binding positions in order, tails removed.
func (s Sequence) Binding() []Position {
	var out []Position
	for _, seg := range s.Segments {
		if seg.Kind == Binding {
			out = append(out, seg.Positions...)
		}
	}
	return out
}

// BindingLen is the number of binding positions.
func (s Sequence) BindingLen() int {
	n := 0
	for _, seg := range s.Segments {
		if seg.Kind == Binding {
			n += len(seg.Positions)
		}
	}
	return n
}

// BindingString is the binding region, lowercase, without LNA marks.
func (s Sequence) BindingString() string {
	var b strings.Builder
	for _, p := range s.Binding() {
		b.WriteByte(p.Base | 0x20)
	}
	return b.String()
}

// Len is the full length including tails.
func (s Sequence) Len() int {
	n := 0
	for _, seg := range s.Segments {
		n += len(seg.Positions)
	}
	return n
}

// String renders back to bracket notation (LNA uppercase, rest lowercase).
func (s Sequence) String() string {
	var b strings.Builder
	for _, seg := range s.Segments {
		if seg.Kind == Tail {
			b.WriteByte('[')
		}
		for _, p := range seg.Positions {
			switch {
			case seg.Kind == Tail:
				b.WriteByte(p.Base)
			case p.LNA:
				b.WriteByte(p.Base)
			default:
				b.WriteByte(p.Base | 0x20)
			}
		}
		if seg.Kind == Tail {
			b.WriteByte(']')
		}
	}
	return b.String()
}

// LNACount is the number of LNA-marked binding positions.
func (s Sequence) LNACount() int {
	n := 0
	for _, p := range s.Binding() {
		if p.LNA {
			n++
		}
	}
	return n
}
