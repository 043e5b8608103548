package thermo

import (
	"math"
	"testing"

	"bsprimer-core/oligo"
)

const primer20 = "acgtacgttgcaagctagct"

// newSettings builds monovalent-only conditions; tweak fields per test.
func newSettings() Settings {
	return Settings{OligoConcUM: 0.25, NaMM: 50}
}

func compute(t *testing.T, raw, template string, mgb bool, s Settings) Result {
	t.Helper()
	r, err := ComputeRaw(raw, template, mgb, s)
	if err != nil {
		t.Fatalf("ComputeRaw(%q): %v", raw, err)
	}
	return r
}

func TestCompute_ShortSequencesReturnZero(t *testing.T) {
	for _, raw := range []string{"", "a", "[acgtacgt]c", "g[tttt]"} {
		if r := compute(t, raw, "", true, newSettings()); r != (Result{}) {
			t.Fatalf("%q: expected zero sentinel, got %+v", raw, r)
		}
	}
}

func TestCompute_Reference20mer(t *testing.T) {
	r := compute(t, primer20, "", false, newSettings())
	if r.Branch != BranchMonovalent {
		t.Fatalf("branch = %s, want monovalent", r.Branch)
	}
	if math.Abs(r.Tm-55.79) > 0.05 {
		t.Fatalf("Tm = %.3f, want ≈55.79", r.Tm)
	}
	if math.Abs(r.Tm1M-71.48) > 0.05 {
		t.Fatalf("Tm1M = %.3f, want ≈71.48", r.Tm1M)
	}
	if r.GC != 50 {
		t.Fatalf("GC = %v, want 50", r.GC)
	}
	if want := r.DH - 310.15*r.DS/1000; math.Abs(r.DG-want) > 1e-9 {
		t.Fatalf("DG = %v, want %v", r.DG, want)
	}
	if math.Abs(r.DG-(-26.03)) > 0.01 {
		t.Fatalf("DG = %.3f, want ≈-26.03", r.DG)
	}
}

func TestCompute_TailsAreIgnored(t *testing.T) {
	plain := compute(t, primer20, "", false, newSettings())
	tailed := compute(t, "[gggggggggg]"+primer20+"[cccc]", "", false, newSettings())
	if plain != tailed {
		t.Fatalf("tails changed the result: %+v vs %+v", plain, tailed)
	}
}

func TestCompute_MonotonicWithGC(t *testing.T) {
	ladder := []string{
		"atatatatatatatatatat",
		"gtatatatatatatatatac",
		"gcatatatatatatatatgc",
		"gcgcatatatatatatgcgc",
		"gcgcgcatatatatgcgcgc",
		"gcgcgcgcatatgcgcgcgc",
		"gcgcgcgcgcgcgcgcgcgc",
	}
	last := -math.MaxFloat64
	for _, seq := range ladder {
		r := compute(t, seq, "", false, newSettings())
		if r.Tm1M < last {
			t.Fatalf("1 M Tm decreased with more GC at %q: %.2f < %.2f", seq, r.Tm1M, last)
		}
		last = r.Tm1M
	}
}

// Tm should be non-decreasing with [Na+] and strictly higher across a wide range.
func TestCompute_MonotonicWithSalt(t *testing.T) {
	in := newSettings()
	salts := []float64{1, 10, 50, 200, 1000}
	const eps = 1e-9
	var first, last float64
	for i, na := range salts {
		in.NaMM = na
		r := compute(t, primer20, "", false, in)
		if i == 0 {
			first = r.Tm
		} else if r.Tm < last-eps {
			t.Fatalf("Tm should be non-decreasing with salt: %g < %g at %g mM", r.Tm, last, na)
		}
		last = r.Tm
	}
	if last-first <= eps {
		t.Fatalf("Tm should increase across salt range: Δ=%g", last-first)
	}
}

func TestCompute_SaltBranchSelection(t *testing.T) {
	mono := compute(t, primer20, "", false, newSettings())

	mixed := newSettings()
	mixed.MgMM = 3
	rMixed := compute(t, primer20, "", false, mixed)
	if rMixed.Branch != BranchMixed {
		t.Fatalf("branch = %s, want mixed", rMixed.Branch)
	}
	if math.Abs(rMixed.Tm-mono.Tm) < 1 {
		t.Fatalf("Mg branch did not change Tm: %.2f vs %.2f", rMixed.Tm, mono.Tm)
	}

	div := Settings{OligoConcUM: 0.25, NaMM: 1, MgMM: 5}
	if r := compute(t, primer20, "", false, div); r.Branch != BranchDivalent || r.Tm <= 0 {
		t.Fatalf("expected divalent branch with finite Tm, got %+v", r)
	}

	// dNTPs chelate Mg2+: with Mg == dNTP the monovalent branch applies again
	chelated := newSettings()
	chelated.MgMM, chelated.DNTPMM = 0.8, 0.8
	if r := compute(t, primer20, "", false, chelated); r.Branch != BranchMonovalent || r.Tm != mono.Tm {
		t.Fatalf("chelated Mg should fall back to monovalent: %+v", r)
	}
}

func TestCompute_NoIonsSentinel(t *testing.T) {
	r := compute(t, primer20, "", false, Settings{OligoConcUM: 0.25})
	if r.Tm != 0 || r.Branch != BranchNone {
		t.Fatalf("expected Tm sentinel, got %+v", r)
	}
	if r.DG == 0 || r.GC != 50 {
		t.Fatalf("DG/GC should still be reported: %+v", r)
	}
	if math.IsNaN(r.Tm) || math.IsInf(r.Tm, 0) {
		t.Fatal("Tm must never be NaN/Inf")
	}
}

func TestCompute_PerfectTemplateMatchesNoTemplate(t *testing.T) {
	plain := compute(t, primer20, "", false, newSettings())
	aware := compute(t, primer20, primer20, false, newSettings())
	if plain != aware {
		t.Fatalf("perfect template changed the result: %+v vs %+v", plain, aware)
	}
}

func TestCompute_MismatchesLowerTm(t *testing.T) {
	tpl := []byte(primer20)
	tpl[9] = 'a' // internal t→a
	internal := compute(t, primer20, string(tpl), false, newSettings())

	tpl3 := []byte(primer20)
	tpl3[19] = 'a' // terminal t→a
	terminal := compute(t, primer20, string(tpl3), false, newSettings())

	perfect := compute(t, primer20, primer20, false, newSettings())
	if !(internal.Tm < perfect.Tm) || !(terminal.Tm < perfect.Tm) {
		t.Fatalf("mismatches should lower Tm: perfect %.2f internal %.2f terminal %.2f",
			perfect.Tm, internal.Tm, terminal.Tm)
	}
	short := compute(t, primer20, primer20[:10], false, newSettings())
	if !(short.Tm < internal.Tm) {
		t.Fatalf("uncovered positions should count as mismatches: %.2f", short.Tm)
	}
}

func TestCompute_LNA(t *testing.T) {
	base := compute(t, primer20, "", false, newSettings())
	gc := compute(t, "acgtacgttGcaagctagct", "", false, newSettings())
	at := compute(t, "acgtacgttgcAagctagct", "", false, newSettings())
	if !(gc.Tm-base.Tm > at.Tm-base.Tm && at.Tm > base.Tm) {
		t.Fatalf("GC-LNA should boost more than AT-LNA: base %.2f gc %.2f at %.2f", base.Tm, gc.Tm, at.Tm)
	}
	if gc.DG != base.DG {
		t.Fatalf("LNA is a Tm adjustment and must not change ΔG")
	}

	// boost shrinks as the primer grows
	long := "acgtacgttgcaagctagctacgtacgttg"
	boostShort := gc.Tm - base.Tm
	boostLong := compute(t, "acgtacgttGcaagctagctacgtacgttg", "", false, newSettings()).Tm -
		compute(t, long, "", false, newSettings()).Tm
	if !(boostLong < boostShort) {
		t.Fatalf("LNA boost should shrink with length: %.3f vs %.3f", boostLong, boostShort)
	}

	// an LNA on a mismatched position costs instead of helping
	tpl := []byte(primer20)
	tpl[9] = 'a'
	onMismatch := compute(t, "acgtacgttGcaagctagct", string(tpl), false, newSettings())
	plainMismatch := compute(t, primer20, string(tpl), false, newSettings())
	if !(onMismatch.Tm < plainMismatch.Tm) {
		t.Fatalf("LNA on mismatch should penalize: %.2f vs %.2f", onMismatch.Tm, plainMismatch.Tm)
	}
}

func TestCompute_MGB(t *testing.T) {
	at := "atatatatatatatatatat"
	gc := "gcgcgcgcgcgcgcgcgcgc"
	boost := func(seq, tpl string) float64 {
		return compute(t, seq, tpl, true, newSettings()).Tm - compute(t, seq, tpl, false, newSettings()).Tm
	}
	if !(boost(at, "") > boost(gc, "")) {
		t.Fatalf("MGB should favor AT-rich duplexes")
	}
	tpl := []byte(at)
	tpl[5] = 'g'
	if !(boost(at, string(tpl)) < boost(at, "")) {
		t.Fatalf("MGB boost should scale down with mismatches")
	}
}

func TestCompute_DegenerateAndIdempotent(t *testing.T) {
	s := DefaultSettings
	a := compute(t, "ttygttagtygtaggtat", "", false, s)
	b := compute(t, "ttygttagtygtaggtat", "", false, s)
	if a != b {
		t.Fatal("Compute must be deterministic")
	}
	if a.Tm <= 0 || math.IsNaN(a.Tm) {
		t.Fatalf("degenerate primer should still yield a Tm: %+v", a)
	}
	if a.GC <= 0 || a.GC >= 50 {
		t.Fatalf("GC%% with Y counted as half: %v", a.GC)
	}
}

func TestCompute_CustomParams(t *testing.T) {
	p := DefaultParams
	p.MGBBoostAT, p.MGBBoostGC = 0, 0
	seq := oligo.MustParse(primer20)
	if p.Compute(seq, "", true, newSettings()) != Compute(seq, "", false, newSettings()) {
		t.Fatal("zero MGB calibration should remove the MGB boost")
	}
}

func TestParseConc(t *testing.T) {
	tests := []struct {
		in   string
		unit float64
		want float64
		ok   bool
	}{
		{"50mM", Molar, 0.05, true},
		{"250nM", Molar, 250e-9, true},
		{"3uM", Molar, 3e-6, true},
		{"0.2µM", Molar, 0.2e-6, true},
		{"1M", MilliMolar, 1, true},
		{"50", MilliMolar, 0.05, true},
		{"1e-3", Molar, 1e-3, true},
		{"5 kM", Molar, 0, false},
		{"abc", Molar, 0, false},
		{"-3mM", Molar, 0, false},
	}
	for _, tc := range tests {
		got, err := ParseConc(tc.in, tc.unit)
		if (err == nil) != tc.ok {
			t.Fatalf("ParseConc(%q) err = %v", tc.in, err)
		}
		if tc.ok && math.Abs(got-tc.want) > 1e-15 {
			t.Fatalf("ParseConc(%q) = %g, want %g", tc.in, got, tc.want)
		}
	}
}

func TestDeltaGAt(t *testing.T) {
	if got := DeltaGAt(-100, -300, 37); math.Abs(got-(-100+310.15*0.3)) > 1e-9 {
		t.Fatalf("DeltaGAt = %v", got)
	}
}
