// core/thermo/nn.go
// Nearest-neighbor thermodynamics for DNA duplexes (SantaLucia 1998 unified set).
// Units: ΔH in kcal/mol, ΔS in cal/(K·mol). Tm in °C.
//
// Steps:
//  1) Strip tails, sum per-stack ΔH/ΔS (or a flat mismatch step against a template).
//  2) Initiation + terminal AT / terminal mismatch penalties.
//  3) Two-state Tm at 1 M Na+: Tm = ΔH*1000 / (ΔS + R ln(CT/4)) − 273.15.
//  4) Owczarzy salt correction (monovalent or Mg2+ branch), then LNA/MGB adjustments.
//
// This package has no I/O and no logging; every call is a pure function.

package thermo

import "bsprimer-core/bases"

const (
	// Gas constant in cal/(K·mol)
	Rcal = 1.987

	kelvin = 273.15
	// 37 °C reference for ΔG
	refK = 310.15
)

// NNParams holds nearest-neighbor propagation parameters.
type NNParams struct {
	DH float64 // kcal/mol
	DS float64 // cal/(K·mol)
}

// Watson–Crick propagation parameters (1 M Na+), keyed by the 5'→3' top
// dinucleotide. SantaLucia (1998) unified set; each key and its
// reverse complement share a value.
var dimerParams = map[string]NNParams{
	"AA": {-7.9, -22.2}, "TT": {-7.9, -22.2},
	"AT": {-7.2, -20.4},
	"TA": {-7.2, -21.3},
	"CA": {-8.5, -22.7}, "TG": {-8.5, -22.7},
	"GT": {-8.4, -22.4}, "AC": {-8.4, -22.4},
	"CT": {-7.8, -21.0}, "AG": {-7.8, -21.0},
	"GA": {-8.2, -22.2}, "TC": {-8.2, -22.2},
	"CG": {-10.6, -27.2},
	"GC": {-9.8, -24.4},
	"GG": {-8.0, -19.9}, "CC": {-8.0, -19.9},
}

// stack returns the NN parameters for the step a→b. Degenerate codes are
// averaged over every concrete dinucleotide they may represent.
func stack(a, b byte) (NNParams, bool) {
	ea, eb := bases.Expand(a), bases.Expand(b)
	if len(ea) == 0 || len(eb) == 0 {
		return NNParams{}, false
	}
	var sum NNParams
	k := 0
	for _, x := range ea {
		for _, y := range eb {
			prm := dimerParams[string([]byte{x, y})]
			sum.DH += prm.DH
			sum.DS += prm.DS
			k++
		}
	}
	return NNParams{DH: sum.DH / float64(k), DS: sum.DS / float64(k)}, true
}

// isATEnd reports a terminal base that can only pair as A·T.
func isATEnd(b byte) bool {
	return bases.Mask(b) != 0 && bases.GCWeight(b) == 0
}
