package thermo

import (
	"math"

	"bsprimer-core/bases"
	"bsprimer-core/oligo"
)

// Result reports the duplex prediction. A zero Tm with non-zero DG means
// the Tm is undefined under the given conditions (no ions at all).
type Result struct {
	Tm     float64 // °C, salt corrected and modification adjusted
	DG     float64 // kcal/mol at 37 °C
	GC     float64 // percent of binding region
	DH     float64 // total ΔH (kcal/mol)
	DS     float64 // total ΔS (cal/K·mol)
	Tm1M   float64 // °C at 1 M Na+, before corrections
	Branch Branch
}

// Compute predicts Tm/ΔG/GC for seq with DefaultParams. template, when
// non-empty, is the strand slice under the binding region read in the same
// direction as seq; positions it does not cover count as mismatches.
func Compute(seq oligo.Sequence, template string, mgb bool, s Settings) Result {
	return DefaultParams.Compute(seq, template, mgb, s)
}

// ComputeRaw parses bracket notation first; only parsing can fail.
func ComputeRaw(raw, template string, mgb bool, s Settings) (Result, error) {
	seq, err := oligo.Parse(raw)
	if err != nil {
		return Result{}, err
	}
	return DefaultParams.Compute(seq, template, mgb, s), nil
}

// Compute runs the full pipeline with this calibration.
func (p Params) Compute(seq oligo.Sequence, template string, mgb bool, s Settings) Result {
	bind := seq.Binding()
	n := len(bind)
	if n < 2 {
		return Result{}
	}
	aware := template != ""

	// resolved base per position and whether it matches its template
	res := make([]byte, n)
	match := make([]bool, n)
	matched := 0
	gcSum := 0.0
	for i, pos := range bind {
		res[i] = pos.Base
		match[i] = true
		if aware {
			match[i] = i < len(template) && bases.Compatible(pos.Base, template[i])
			if match[i] && bases.IsConcrete(template[i]) {
				res[i] = template[i] &^ 0x20
			}
		}
		if match[i] {
			matched++
		}
		gcSum += bases.GCWeight(pos.Base)
	}
	fGC := gcSum / float64(n)

	dh, ds := p.InitDH, p.InitDS
	for i := 0; i < n-1; i++ {
		if aware && (!match[i] || !match[i+1]) {
			dh += p.MismDH
			ds += p.MismDS
			continue
		}
		st, ok := stack(res[i], res[i+1])
		if !ok {
			dh += p.MismDH
			ds += p.MismDS
			continue
		}
		dh += st.DH
		ds += st.DS
	}
	for _, end := range [2]int{0, n - 1} {
		switch {
		case aware && !match[end]:
			dh += p.TermMismDH
			ds += p.TermMismDS
		case isATEnd(res[end]):
			dh += p.TermATDH
			ds += p.TermATDS
		}
	}

	out := Result{
		DG: dh - refK*ds/1000.0,
		GC: 100 * fGC,
		DH: dh,
		DS: ds,
	}

	tm1M := tm1MKelvin(dh, ds, s.OligoConcUM)
	if tm1M <= 0 {
		out.Branch = BranchNone
		return out
	}
	out.Tm1M = tm1M - kelvin

	tmK, branch := saltCorrect(tm1M, fGC, n, s)
	out.Branch = branch
	if tmK <= 0 {
		return out
	}
	tm := tmK - kelvin

	lenScale := 1.0
	if p.LNARefLength > 0 && n > p.LNARefLength {
		lenScale = float64(p.LNARefLength) / float64(n)
	}
	for i, pos := range bind {
		if !pos.LNA {
			continue
		}
		switch {
		case aware && !match[i]:
			tm -= p.LNAMismPenalty
		case bases.GCWeight(res[i]) >= 0.5:
			tm += p.LNAGCBoost * lenScale
		default:
			tm += p.LNAATBoost * lenScale
		}
	}
	if mgb {
		boost := p.MGBBoostAT - (p.MGBBoostAT-p.MGBBoostGC)*fGC
		if aware {
			boost *= float64(matched) / float64(n)
		}
		tm += boost
	}
	out.Tm = tm
	return out
}

// tm1MKelvin is the two-state Tm at 1 M Na+ for a non-self-complementary
// duplex; 0 when the denominator has no physical solution.
func tm1MKelvin(dh, ds, oligoUM float64) float64 {
	ct := math.Max(oligoUM*1e-6, floor)
	den := ds + Rcal*math.Log(ct/4)
	if den >= 0 {
		return 0
	}
	tm := dh * 1000.0 / den
	if math.IsNaN(tm) || math.IsInf(tm, 0) || tm <= 0 {
		return 0
	}
	return tm
}
