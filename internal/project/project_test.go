package project

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"bsprimer-core/strand"
	"bsprimer-core/structure"
	"bsprimer-core/thermo"
)

const top = "ACGTCCGATCGA"

func newProject(t *testing.T) *Project {
	t.Helper()
	p, err := New("demo", top, thermo.DefaultSettings)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestNew(t *testing.T) {
	p := newProject(t)
	if _, err := uuid.Parse(p.ID); err != nil {
		t.Fatalf("ID %q is not a uuid: %v", p.ID, err)
	}
	if p.Top != "acgtccgatcga" {
		t.Fatalf("top not lowercased: %q", p.Top)
	}
	if got := p.Views().Get(strand.F); got != p.Top {
		t.Fatalf("F view = %q", got)
	}
	if _, err := New("x", "  ", thermo.DefaultSettings); !errors.Is(err, ErrEmptyTop) {
		t.Fatalf("want ErrEmptyTop, got %v", err)
	}
	if _, err := New("x", "acgt-acgt", thermo.DefaultSettings); !errors.Is(err, ErrInvalidTop) {
		t.Fatalf("want ErrInvalidTop, got %v", err)
	}
}

func TestToggleMethylation(t *testing.T) {
	p := newProject(t)
	p.ToggleMethylation(false, 4, 5)
	if got := p.Views().Get(strand.OT); got != "atgtccgattga" {
		t.Fatalf("OT after methylating 4..5 = %q", got)
	}
	p.ToggleMethylation(false, 5, 5)
	if len(p.MethylTop) != 1 || p.MethylTop[0] != 4 {
		t.Fatalf("methyl top = %v, want [4]", p.MethylTop)
	}
	p.ToggleMethylation(true, 2, 2)
	if len(p.MethylBottom) != 1 || p.MethylBottom[0] != 2 {
		t.Fatalf("methyl bottom = %v, want [2]", p.MethylBottom)
	}
}

func TestMethylateCpGs(t *testing.T) {
	p := newProject(t)
	p.ToggleMethylation(false, 4, 4)
	p.MethylateCpGs()
	wantTop, wantBot := []int{1, 4, 5, 9}, []int{2, 6, 10}
	if len(p.MethylTop) != len(wantTop) || len(p.MethylBottom) != len(wantBot) {
		t.Fatalf("got top %v bottom %v", p.MethylTop, p.MethylBottom)
	}
	for i := range wantTop {
		if p.MethylTop[i] != wantTop[i] {
			t.Fatalf("top = %v, want %v", p.MethylTop, wantTop)
		}
	}
	for i := range wantBot {
		if p.MethylBottom[i] != wantBot[i] {
			t.Fatalf("bottom = %v, want %v", p.MethylBottom, wantBot)
		}
	}
}

func TestAddAndRemovePrimer(t *testing.T) {
	p := newProject(t)
	rec, err := p.AddPrimer("", "[gg]acGtcc", strand.F, 0, false)
	if err != nil {
		t.Fatalf("AddPrimer: %v", err)
	}
	if rec.Name != "F_0" || rec.Seq != "[GG]acGtcc" || rec.Strand != "F" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if _, err := p.AddPrimer("late", "acgtcc", strand.F, 10, false); err == nil {
		t.Fatal("expected placement error past strand end")
	}
	if _, err := p.AddPrimer("bad", "ac[gt", strand.F, 0, false); err == nil {
		t.Fatal("expected parse error")
	}
	if len(p.Primers) != 1 {
		t.Fatalf("rejected primers must not be stored: %d", len(p.Primers))
	}
	if err := p.RemovePrimer("nope"); !errors.Is(err, ErrNoSuchPrimer) {
		t.Fatalf("want ErrNoSuchPrimer, got %v", err)
	}
	if err := p.RemovePrimer(rec.ID); err != nil || len(p.Primers) != 0 {
		t.Fatalf("remove by id: %v, %d left", err, len(p.Primers))
	}
}

func TestCheck(t *testing.T) {
	p := newProject(t)
	if _, err := p.AddPrimer("fwd", "acgtcc", strand.F, 0, false); err != nil {
		t.Fatal(err)
	}
	// R reads right to left on screen; "tgcagg" is ggacgt 5'→3'.
	if _, err := p.AddPrimer("rev", "tgcagg", strand.R, 0, false); err != nil {
		t.Fatal(err)
	}
	p.Primers = append(p.Primers, PrimerRecord{Name: "stale", Seq: "acgt", Strand: "F", Start: 40})

	rep := p.Check(thermo.DefaultParams, structure.DefaultScoring)
	if len(rep.Primers) != 2 {
		t.Fatalf("reports = %d, want 2", len(rep.Primers))
	}
	if _, ok := rep.Invalid["stale"]; !ok || len(rep.Invalid) != 1 {
		t.Fatalf("invalid = %v", rep.Invalid)
	}
	f, r := rep.Primers[0], rep.Primers[1]
	if f.Binding != "acgtcc" || f.Template != "acgtcc" || f.Mismatches != 0 {
		t.Fatalf("fwd report %+v", f)
	}
	if r.Binding != "ggacgt" || r.Template != "ggacgt" || r.Oligo != "ggacgt" || r.Mismatches != 0 {
		t.Fatalf("rev report %+v", r)
	}
	if math.Abs(f.Thermo.GC-200.0/3) > 1e-9 {
		t.Fatalf("fwd GC = %v", f.Thermo.GC)
	}
	if len(rep.Cross) != 1 {
		t.Fatalf("cross = %+v", rep.Cross)
	}
	c := rep.Cross[0]
	if c.A != "fwd" || c.B != "rev" || c.Dimer.Pairs != 6 {
		t.Fatalf("cross dimer %+v", c)
	}
}

func TestCheck_MismatchOnConvertedStrand(t *testing.T) {
	p := newProject(t)
	// unmethylated OT reads atgtttgattga; the primer keeps the c at 1
	if _, err := p.AddPrimer("ot", "acgttt", strand.OT, 0, false); err != nil {
		t.Fatal(err)
	}
	rep := p.Check(thermo.DefaultParams, structure.DefaultScoring)
	if got := rep.Primers[0].Mismatches; got != 1 {
		t.Fatalf("mismatches = %d, want 1", got)
	}
	if got := rep.Primers[0].Template; got != "atgttt" {
		t.Fatalf("template = %q", got)
	}
}
