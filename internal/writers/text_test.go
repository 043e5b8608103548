package writers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"bsprimer/pkg/api"
)

func TestThermoText(t *testing.T) {
	var b bytes.Buffer
	rs := []api.ThermoV1{{Seq: "acgtacgttgcaagctagct", Tm: 55.791, DG: -26.034, GC: 50, Tm1M: 71.48, SaltBranch: "monovalent"}}
	if err := Write(Thermo, "text", &b, rs); err != nil {
		t.Fatal(err)
	}
	want := "# name\tseq\ttm\tdg\tgc\ttm_1m\tsalt_branch\n" +
		"-\tacgtacgttgcaagctagct\t55.79\t-26.03\t50.0\t71.48\tmonovalent\n"
	if b.String() != want {
		t.Fatalf("got %q\nwant %q", b.String(), want)
	}
}

func TestStrandsText(t *testing.T) {
	var b bytes.Buffer
	s := api.StrandsV1{
		SequenceID: "demo",
		Length:     4,
		MethylTop:  []int{1},
		Strands: []api.StrandV1{
			{Type: "F", Seq: "acgt", Direction: DirForward},
			{Type: "R", Seq: "tgca", Direction: DirReverse},
		},
	}
	if err := Write(Strands, "text", &b, s); err != nil {
		t.Fatal(err)
	}
	want := "# demo 4 bp\n" +
		"# methylated top: 1  bottom: -\n" +
		"# F 5'-acgt-3'\n" +
		"# R 3'-tgca-5'\n"
	if b.String() != want {
		t.Fatalf("got %q\nwant %q", b.String(), want)
	}
}

func TestStructureText(t *testing.T) {
	var b bytes.Buffer
	ss := []api.StructureV1{
		{Kind: "hairpin", A: "p1"},
		{Kind: "dimer", A: "p1", B: "p2", Found: true, DG: -3.5, Lines: []string{"x", "y", "z"}},
	}
	if err := Write(Structure, "text", &b, ss); err != nil {
		t.Fatal(err)
	}
	want := "# hairpin p1: none\n#\n# dimer p1 x p2: dG -3.50 kcal/mol\n# x\n# y\n# z\n"
	if b.String() != want {
		t.Fatalf("got %q\nwant %q", b.String(), want)
	}
}

func TestCheckText_InvalidSorted(t *testing.T) {
	var b bytes.Buffer
	c := api.CheckV1{
		Primers: []api.PrimerCheckV1{{
			Primer:  api.PrimerV1{Name: "fwd", Strand: "F"},
			Binding: "acgt",
			Thermo:  api.ThermoV1{Tm: 10, DG: -1, GC: 50},
		}},
		Invalid: map[string]string{"zz": "late", "aa": "bad"},
	}
	if err := Write(Check, "text", &b, c); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{
		"fwd\tF\t0\t0\t10.00\t-1.00\t50.0\tacgt\n",
		"# fwd self-dimer: none\n",
		"# fwd hairpin: none\n",
		"# invalid aa: bad\n# invalid zz: late\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestJSON_NoHTMLEscape(t *testing.T) {
	var b bytes.Buffer
	s := api.StrandsV1{Strands: []api.StrandV1{{Type: "F", Seq: "ac", Direction: DirForward}}}
	if err := Write(Strands, "json", &b, s); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), `"direction": "5'->3'"`) {
		t.Fatalf("direction escaped: %s", b.String())
	}
	var back api.StrandsV1
	if err := json.Unmarshal(b.Bytes(), &back); err != nil || back.Strands[0].Seq != "ac" {
		t.Fatalf("decode: %v %+v", err, back)
	}
}
