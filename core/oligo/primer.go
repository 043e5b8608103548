package oligo

import (
	"fmt"

	"bsprimer-core/bases"
	"bsprimer-core/strand"
)

// Primer is a designed oligo bound to one strand view and coordinate range.
// Start is the index of the first binding base in the strand's coordinate
// space; the sequence is written as the strand displays it, so primers on a
// reverse-displayed strand read 3'→5' left-to-right.
type Primer struct {
	ID     string
	Name   string
	Seq    Sequence
	Strand strand.Type
	Start  int
	MGB    bool
}

// End is the index one past the last binding base.
func (p Primer) End() int { return p.Start + p.Seq.BindingLen() }

// Validate checks the primer fits inside a strand of length strandLen.
func (p Primer) Validate(strandLen int) error {
	n := p.Seq.BindingLen()
	switch {
	case n == 0:
		return fmt.Errorf("primer %q: %w", p.Name, ErrEmpty)
	case !p.Strand.Valid():
		return fmt.Errorf("primer %q: invalid strand %v", p.Name, p.Strand)
	case p.Start < 0:
		return fmt.Errorf("primer %q: negative start %d", p.Name, p.Start)
	case p.Start+n > strandLen:
		return fmt.Errorf("primer %q: binding region %d..%d exceeds strand length %d", p.Name, p.Start, p.Start+n, strandLen)
	}
	return nil
}

// Binding5to3 is the binding region read biologically 5'→3'.
func (p Primer) Binding5to3() string {
	return p.Strand.Biological(p.Seq.BindingString())
}

// Oriented5to3 returns the binding sequence (positions and LNA flags) read
// 5'→3', for callers that score modifications.
func (p Primer) Oriented5to3() Sequence {
	b := p.Seq.Binding()
	if p.Strand.ReverseDisplayed() {
		r := make([]Position, len(b))
		for i := range b {
			r[len(b)-1-i] = b[i]
		}
		b = r
	}
	if len(b) == 0 {
		return Sequence{}
	}
	return Sequence{Segments: []Segment{{Kind: Binding, Positions: b}}}
}

// Template returns the strand slice under the binding region, read in the
// same 5'→3' direction as Binding5to3.
func (p Primer) Template(v strand.Views) string {
	return p.Strand.Biological(v.Slice(p.Strand, p.Start, p.End()))
}

// Mismatches counts binding positions that are not compatible with the
// strand they sit on.
func (p Primer) Mismatches(v strand.Views) int {
	b := p.Seq.BindingString()
	t := v.Slice(p.Strand, p.Start, p.End())
	mm := 0
	for i := 0; i < len(b); i++ {
		if !bases.CompatibleAt(b, i, t, i) {
			mm++
		}
	}
	return mm
}
