package structure

import (
	"strings"

	"bsprimer-core/bases"
)

// Hairpin enumerates stem length × loop length × 3' end offset. The 3' stem
// ends EndOffset bases before the 3' terminus; the 5' stem must pair with it
// base for base across the loop.
func (sc Scoring) Hairpin(seq string) (Analysis, bool) {
	s := strings.ToUpper(seq)
	n := len(s)
	var (
		best  Analysis
		found bool
	)
	for stem := sc.MinStem; stem <= sc.MaxStem; stem++ {
		for loop := sc.MinLoop; loop <= sc.MaxLoop; loop++ {
			for end := 0; end <= sc.MaxEndOffset; end++ {
				s2End := n - end
				s2Start := s2End - stem
				s1Start := s2Start - loop - stem
				if s1Start < 0 {
					break
				}
				dg, ok := sc.stemDG(s, s1Start, s2End, stem)
				if !ok {
					continue
				}
				dg += sc.loopDG(loop)
				if !found || dg < best.DG {
					best = Analysis{Kind: KindHairpin, DG: dg, Start: s1Start, Stem: stem, Loop: loop, EndOffset: end}
					found = true
				}
			}
		}
	}
	if found {
		best.Lines = renderHairpin(s, best)
	}
	return best, found
}

// stemDG scores a perfect stem: s[s1+k] must pair with s[s2End-1-k].
func (sc Scoring) stemDG(s string, s1, s2End, stem int) (float64, bool) {
	gc := 0
	for k := 0; k < stem; k++ {
		a, b := s[s1+k], s[s2End-1-k]
		if !bases.IsWC(a, b) {
			return 0, false
		}
		if a == 'G' || a == 'C' {
			gc++
		}
	}
	return float64(gc)*sc.HairpinGCDG + float64(stem-gc)*sc.HairpinATDG, true
}

func (sc Scoring) loopDG(loop int) float64 {
	short := min(loop, sc.LoopKnee) - sc.MinLoop
	if short < 0 {
		short = 0
	}
	long := max(0, loop-sc.LoopKnee)
	return sc.LoopBaseDG + float64(short)*sc.LoopShortSlope + float64(long)*sc.LoopLongSlope
}

// renderHairpin draws the 5' arm over the reversed 3' arm:
//
//	5'-ACGGGGG--\
//	     |||||   AAAAA
//	3'- TCCCCC--/
func renderHairpin(s string, a Analysis) [3]string {
	loopStart := a.Start + a.Stem
	s2Start := loopStart + a.Loop
	s2End := s2Start + a.Stem

	prefix := s[:a.Start]
	trailing := s[s2End:]
	width := max(len(prefix), len(trailing))

	top := "5'-" + strings.Repeat(" ", width-len(prefix)) + prefix + s[a.Start:loopStart] + "--\\"
	mid := strings.Repeat(" ", 3+width) + strings.Repeat("|", a.Stem) + "   " + s[loopStart:s2Start]
	bot := "3'-" + strings.Repeat(" ", width-len(trailing)) + bases.Reverse(trailing) + bases.Reverse(s[s2Start:s2End]) + "--/"
	return [3]string{top, mid, bot}
}
