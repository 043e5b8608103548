package structure

import (
	"math/rand"
	"strings"
	"testing"
)

func TestHairpin_DetectsEngineeredStem(t *testing.T) {
	seq := "GGGGG" + "AAAAA" + "CCCCC"
	h, ok := Hairpin(seq)
	if !ok {
		t.Fatalf("expected a hairpin in %s", seq)
	}
	if h.Stem != 5 || h.Loop != 5 || h.EndOffset != 0 || h.Start != 0 {
		t.Fatalf("unexpected hairpin: stem=%d loop=%d end=%d start=%d", h.Stem, h.Loop, h.EndOffset, h.Start)
	}
	if h.DG >= 0 {
		t.Fatalf("engineered stem should be stable, ΔG=%.2f", h.DG)
	}
	want := [3]string{
		`5'-GGGGG--\`,
		`   |||||   AAAAA`,
		`3'-CCCCC--/`,
	}
	if h.Lines != want {
		t.Fatalf("rendering:\n%s\nwant:\n%s", h.Text(), strings.Join(want[:], "\n"))
	}

	// same composition, no stem closable near the 3' end
	control := "GGCGCAGACAGACAC"
	if c, ok := Hairpin(control); ok {
		t.Fatalf("scrambled control folded: ΔG=%.2f\n%s", c.DG, c.Text())
	}
}

func TestHairpin_ToleratesTrailingBases(t *testing.T) {
	h, ok := Hairpin("ac" + "GGGGG" + "AAAAA" + "CCCCC" + "t")
	if !ok || h.Stem != 5 || h.EndOffset != 1 || h.Start != 2 {
		t.Fatalf("unexpected hairpin: %+v", h)
	}
	if h.Lines[0] != `5'-ACGGGGG--\` || h.Lines[2] != `3'- TCCCCC--/` {
		t.Fatalf("rendering:\n%s", h.Text())
	}
}

func TestHairpin_TooShort(t *testing.T) {
	for _, s := range []string{"", "ACG", "GCAAAG"} {
		if _, ok := Hairpin(s); ok {
			t.Fatalf("%q cannot hold a stem-loop", s)
		}
	}
}

func TestHairpin_GCStemMoreStableThanAT(t *testing.T) {
	gc, ok1 := Hairpin("GCGCAAAAGCGC")
	at, ok2 := Hairpin("ATATCCCCATAT")
	if !ok1 || !ok2 {
		t.Fatalf("both should fold: %v %v", ok1, ok2)
	}
	if !(gc.DG < at.DG) {
		t.Fatalf("GC stem ΔG %.2f should be below AT stem ΔG %.2f", gc.DG, at.DG)
	}
}

func TestDimer_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randSeq := func() string {
		b := make([]byte, 5+rng.Intn(20))
		for i := range b {
			b[i] = "ACGT"[rng.Intn(4)]
		}
		return string(b)
	}
	for k := 0; k < 200; k++ {
		a, b := randSeq(), randSeq()
		ab, okAB := Dimer(a, b)
		ba, okBA := Dimer(b, a)
		if okAB != okBA || ab.DG != ba.DG || ab.Pairs != ba.Pairs {
			t.Fatalf("asymmetric dimer for %s/%s: %v %.2f vs %v %.2f", a, b, okAB, ab.DG, okBA, ba.DG)
		}
	}
}

func TestDimer_SelfComplementary(t *testing.T) {
	d, ok := SelfDimer("acgtacgt")
	if !ok {
		t.Fatal("palindrome should dimerize")
	}
	if d.Offset != 0 || d.Pairs != 8 || d.DG != -12 {
		t.Fatalf("unexpected dimer: %+v", d)
	}
	want := [3]string{
		"5'-ACGTACGT-3'",
		"   ||||||||",
		"3'-TGCATGCA-5'",
	}
	if d.Lines != want {
		t.Fatalf("rendering:\n%s", d.Text())
	}
}

func TestDimer_NoCandidate(t *testing.T) {
	if _, ok := SelfDimer("AAAAAAAA"); ok {
		t.Fatal("poly-A cannot pair with itself")
	}
	if _, ok := Dimer("", "ACGT"); ok {
		t.Fatal("empty input has no dimer")
	}
}

func TestDimer_OffsetRendering(t *testing.T) {
	// only the GCGC runs pair; the A/C flanks overhang as mismatches
	d, ok := CrossDimer("CCCCCCGCGC", "GCGCAAAAA")
	if !ok {
		t.Fatal("expected a partial-overlap dimer")
	}
	if d.Offset != 1 || d.Pairs != 4 || d.DG != -3.5 {
		t.Fatalf("unexpected dimer: %+v", d)
	}
	for _, line := range d.Lines {
		if line == "" {
			t.Fatalf("empty rendering line: %q", d.Lines)
		}
	}
	bars := strings.Count(d.Lines[1], "|")
	if bars != d.Pairs {
		t.Fatalf("bars %d != pairs %d\n%s", bars, d.Pairs, d.Text())
	}
	// every bar sits over a complementary column
	top, bot := d.Lines[0], d.Lines[2]
	for i, c := range d.Lines[1] {
		if c != '|' {
			continue
		}
		pair := string([]byte{top[i], bot[i]})
		if pair != "AT" && pair != "TA" && pair != "GC" && pair != "CG" {
			t.Fatalf("bar over %q at column %d\n%s", pair, i, d.Text())
		}
	}
}

func TestCustomScoring(t *testing.T) {
	sc := DefaultScoring
	sc.MinPairs = 9
	if _, ok := sc.Dimer("ACGTACGT", "ACGTACGT"); ok {
		t.Fatal("MinPairs above overlap should suppress the dimer")
	}
	sc = DefaultScoring
	sc.MaxStem = 4
	if h, ok := sc.Hairpin("GGGGGAAAAACCCCC"); !ok || h.Stem > 4 {
		t.Fatalf("MaxStem not honored: %+v", h)
	}
}
