// Package structure scores primer secondary structure: bimolecular dimers
// (self or cross) and intramolecular hairpins. Both scorers search small
// bounded spaces exhaustively and keep the single most stable candidate.
// This is a deterministic approximation, not a general folding algorithm:
// dimers are single-offset ungapped alignments and hairpins are perfect
// stems closed near the 3' end.
package structure

import "strings"

// Kind tags an Analysis.
type Kind int

const (
	KindDimer Kind = iota
	KindHairpin
)

func (k Kind) String() string {
	if k == KindHairpin {
		return "hairpin"
	}
	return "dimer"
}

// Analysis is the most stable structure found.
type Analysis struct {
	Kind  Kind
	DG    float64   // kcal/mol, lower is more stable
	Lines [3]string // ASCII rendering

	// dimer
	Offset int // index in A paired with the 3' end of B
	Pairs  int

	// hairpin
	Start     int // first base of the 5' stem
	Stem      int
	Loop      int
	EndOffset int // unpaired bases after the 3' stem
}

// Text joins the three rendering lines.
func (a Analysis) Text() string { return strings.Join(a.Lines[:], "\n") }

// Scoring holds the increments and search bounds.
type Scoring struct {
	PairDG     float64 // per complementary dimer pair
	MismatchDG float64 // per non-complementary dimer pair
	MinPairs   int     // dimer candidates need at least this many pairs

	HairpinGCDG    float64 // per G·C stem pair
	HairpinATDG    float64 // per A·T stem pair
	LoopBaseDG     float64 // loop penalty at MinLoop
	LoopShortSlope float64 // per nt up to LoopKnee
	LoopLongSlope  float64 // per nt past LoopKnee
	LoopKnee       int

	MinStem, MaxStem int
	MinLoop, MaxLoop int
	MaxEndOffset     int
}

// DefaultScoring is the shipped calibration.
var DefaultScoring = Scoring{
	PairDG:     -1.5,
	MismatchDG: 0.5,
	MinPairs:   2,

	HairpinGCDG:    -2.0,
	HairpinATDG:    -1.0,
	LoopBaseDG:     3.0,
	LoopShortSlope: 0.3,
	LoopLongSlope:  0.1,
	LoopKnee:       10,

	MinStem: 2, MaxStem: 14,
	MinLoop: 3, MaxLoop: 60,
	MaxEndOffset: 5,
}

// Dimer finds the most stable antiparallel duplex between a and b (both 5'→3').
func Dimer(a, b string) (Analysis, bool) { return DefaultScoring.Dimer(a, b) }

// SelfDimer is Dimer of a primer with itself.
func SelfDimer(seq string) (Analysis, bool) { return DefaultScoring.Dimer(seq, seq) }

// CrossDimer is Dimer between two different primers, both read 5'→3'.
func CrossDimer(a, b string) (Analysis, bool) { return DefaultScoring.Dimer(a, b) }

// Hairpin finds the most stable stem-loop of seq (5'→3').
func Hairpin(seq string) (Analysis, bool) { return DefaultScoring.Hairpin(seq) }
