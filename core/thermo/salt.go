package thermo

import "math"

// Branch names the salt-correction formula applied.
type Branch string

const (
	BranchNone       Branch = "none"       // no ions: Tm undefined
	BranchMonovalent Branch = "monovalent" // Owczarzy 2004
	BranchMixed      Branch = "mixed"      // Owczarzy 2008, 0.22 <= R < 6
	BranchDivalent   Branch = "divalent"   // Owczarzy 2008, Mg2+ dominated
)

// floor keeps logs and ratios finite.
const floor = 1e-12

// Owczarzy et al. (2008) Mg2+ coefficients.
const (
	mgA = 3.92e-5
	mgB = -9.11e-6
	mgC = 6.26e-5
	mgD = 1.42e-5
	mgE = -4.82e-4
	mgF = 5.25e-4
	mgG = 8.31e-5
)

// saltCorrect converts a 1 M Na+ Tm (K) to the given conditions. A zero
// return means the Tm is undefined under these conditions.
func saltCorrect(tm1M, fGC float64, n int, s Settings) (float64, Branch) {
	mon := math.Max(0, s.NaMM) / 1000
	mg := math.Max(0, s.MgMM-s.DNTPMM) / 1000

	if mon <= floor && mg <= floor {
		return 0, BranchNone
	}
	if mg <= floor {
		return finiteInverse(monovalentInv(tm1M, fGC, mon)), BranchMonovalent
	}
	ratio := math.Inf(1)
	if mon > floor {
		ratio = math.Sqrt(mg) / mon
	}
	if ratio < 0.22 {
		return finiteInverse(monovalentInv(tm1M, fGC, mon)), BranchMonovalent
	}

	a, d, g := mgA, mgD, mgG
	branch := BranchDivalent
	if ratio < 6.0 {
		lnMon := math.Log(mon)
		a = mgA * (0.843 - 0.352*math.Sqrt(mon)*lnMon)
		d = mgD * (1.279 - 4.03e-3*lnMon - 8.03e-3*lnMon*lnMon)
		g = mgG * (0.486 - 0.258*lnMon + 5.25e-3*lnMon*lnMon*lnMon)
		branch = BranchMixed
	}
	lnMg := math.Log(math.Max(mg, floor))
	inv := 1/tm1M + a + mgB*lnMg + fGC*(mgC+d*lnMg) +
		(mgE+mgF*lnMg+g*lnMg*lnMg)/(2*float64(n-1))
	return finiteInverse(inv), branch
}

func monovalentInv(tm1M, fGC, mon float64) float64 {
	lnNa := math.Log(math.Max(mon, floor))
	return 1/tm1M + (4.29*fGC-3.95)*1e-5*lnNa + 9.40e-6*lnNa*lnNa
}

func finiteInverse(inv float64) float64 {
	if inv <= 0 || math.IsNaN(inv) || math.IsInf(inv, 0) {
		return 0
	}
	return 1 / inv
}
