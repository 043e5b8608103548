package thermo

// Settings are the reaction conditions. Nothing in this package supplies
// defaults implicitly: every call receives a full value.
type Settings struct {
	OligoConcUM float64 // oligo concentration, µM
	NaMM        float64 // monovalent cations, mM
	MgMM        float64 // Mg2+, mM
	DNTPMM      float64 // total free dNTP, mM
}

// DefaultSettings is a typical bisulfite PCR mix. Callers opt in by passing it.
var DefaultSettings = Settings{
	OligoConcUM: 0.25,
	NaMM:        50,
	MgMM:        2.5,
	DNTPMM:      0.8,
}

// Params are the empirical constants layered on top of the NN table. They
// drift between reference tools, so they are data, not code.
type Params struct {
	InitDH, InitDS         float64 // duplex initiation
	TermATDH, TermATDS     float64 // per terminal A·T pair
	TermMismDH, TermMismDS float64 // per terminal base mismatching its template
	MismDH, MismDS         float64 // per NN step touching a mismatch

	LNAGCBoost      float64 // °C per LNA on G/C at or below LNARefLength
	LNAATBoost      float64 // °C per LNA on A/T at or below LNARefLength
	LNARefLength    int     // boosts scale by LNARefLength/n above this length
	LNAMismPenalty  float64 // °C lost per LNA sitting on a mismatch
	MGBBoostAT      float64 // °C MGB boost for a 0% GC duplex
	MGBBoostGC      float64 // °C MGB boost for a 100% GC duplex
}

// DefaultParams is the shipped calibration.
var DefaultParams = Params{
	InitDH: 0.2, InitDS: -5.7,
	TermATDH: 2.2, TermATDS: 6.9,
	TermMismDH: 4.0, TermMismDS: 8.0,
	MismDH: -1.2, MismDS: -4.5,

	LNAGCBoost:     3.0,
	LNAATBoost:     2.0,
	LNARefLength:   15,
	LNAMismPenalty: 4.0,
	MGBBoostAT:     18.0,
	MGBBoostGC:     6.0,
}
