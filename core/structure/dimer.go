package structure

import (
	"strings"

	"bsprimer-core/bases"
)

// Dimer slides b, reversed so it reads 3'→5', across every offset of a and
// scores each overlap. Offsets run from -(len(b)-1) to len(a)-1.
func (sc Scoring) Dimer(a, b string) (Analysis, bool) {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	rb := bases.Reverse(b)
	var (
		best  Analysis
		found bool
	)
	for off := -(len(rb) - 1); off <= len(a)-1; off++ {
		lo, hi := max(0, off), min(len(a), off+len(rb))
		pairs, mism := 0, 0
		for i := lo; i < hi; i++ {
			if bases.IsWC(a[i], rb[i-off]) {
				pairs++
			} else {
				mism++
			}
		}
		if pairs < sc.MinPairs || pairs == 0 {
			continue
		}
		dg := float64(pairs)*sc.PairDG + float64(mism)*sc.MismatchDG
		if !found || dg < best.DG {
			best = Analysis{Kind: KindDimer, DG: dg, Offset: off, Pairs: pairs}
			found = true
		}
	}
	if found {
		best.Lines = renderDimer(a, rb, best.Offset)
	}
	return best, found
}

// renderDimer draws a over rb (3'→5') with bars on complementary pairs.
func renderDimer(a, rb string, off int) [3]string {
	const lead = "5'-"
	padA, padB := 0, 0
	if off >= 0 {
		padB = off
	} else {
		padA = -off
	}
	top := lead + strings.Repeat(" ", padA) + a + "-3'"
	bot := "3'-" + strings.Repeat(" ", padB) + rb + "-5'"

	mid := []byte(strings.Repeat(" ", len(lead)+max(padA+len(a), padB+len(rb))))
	for i := 0; i < len(a); i++ {
		j := i - off
		if j < 0 || j >= len(rb) {
			continue
		}
		if bases.IsWC(a[i], rb[j]) {
			mid[len(lead)+padA+i] = '|'
		}
	}
	return [3]string{top, strings.TrimRight(string(mid), " "), bot}
}
