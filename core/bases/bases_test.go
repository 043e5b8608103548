package bases

import "testing"

func TestComplement_CasePreservingAndPassThrough(t *testing.T) {
	cases := map[byte]byte{
		'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C',
		'a': 't', 't': 'a', 'c': 'g', 'g': 'c',
		'R': 'Y', 'y': 'r', 'N': 'N',
		'-': '-', 'X': 'X', '[': '[',
	}
	for in, want := range cases {
		if got := Complement(in); got != want {
			t.Errorf("Complement(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestComplement_RoundTrip(t *testing.T) {
	for _, b := range []byte("ACGTacgt") {
		if got := Complement(Complement(b)); got != b {
			t.Fatalf("complement(complement(%q)) = %q", b, got)
		}
	}
}

func TestReverseComplement(t *testing.T) {
	tests := []struct{ in, want string }{
		{"AGTC", "GACT"},
		{"acgtt", "aacgt"},
		{"RYSWKMBDHVN", "NBDHVKMWSRY"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := ReverseComplement(tc.in); got != tc.want {
			t.Errorf("ReverseComplement(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if back := ReverseComplement(ReverseComplement(tc.in)); back != tc.in {
			t.Errorf("double reverse-complement of %q = %q", tc.in, back)
		}
	}
}

func TestComplementString_IsNotReversed(t *testing.T) {
	if got := ComplementString("aacg"); got != "ttgc" {
		t.Fatalf("ComplementString(aacg) = %q, want ttgc", got)
	}
}

func TestCompatible(t *testing.T) {
	for _, x := range []byte("ACGTacgt") {
		if !Compatible('N', x) {
			t.Errorf("N should be compatible with %q", x)
		}
	}
	tests := []struct {
		p, t byte
		want bool
	}{
		{'A', 'A', true},
		{'A', 'C', false},
		{'a', 'A', true},
		{'Y', 'c', true},
		{'Y', 't', true},
		{'Y', 'g', false},
		{'R', 'a', true},
		{'A', 'N', false}, // degenerate template is not a member
		{'X', 'X', true},  // unknown primer: strict equality
		{'X', 'A', false},
		{0, 'A', false},
		{'A', 0, false},
	}
	for _, tc := range tests {
		if got := Compatible(tc.p, tc.t); got != tc.want {
			t.Errorf("Compatible(%q,%q) = %v, want %v", tc.p, tc.t, got, tc.want)
		}
	}
}

func TestCompatibleAt_OutOfRange(t *testing.T) {
	if CompatibleAt("ACG", 3, "ACG", 0) || CompatibleAt("ACG", 0, "", 0) {
		t.Fatal("out-of-range positions must be incompatible")
	}
	if !CompatibleAt("ACG", 2, "TTG", 2) {
		t.Fatal("G vs G should be compatible")
	}
}

func TestExpandAndGCWeight(t *testing.T) {
	if got := string(Expand('n')); got != "ACGT" {
		t.Fatalf("Expand(n) = %q", got)
	}
	if Expand('Z') != nil {
		t.Fatal("Expand of unknown code should be nil")
	}
	weights := map[byte]float64{'G': 1, 'a': 0, 'S': 1, 'W': 0, 'Y': 0.5, 'N': 0.5, 'B': 2.0 / 3.0}
	for b, want := range weights {
		if got := GCWeight(b); got != want {
			t.Errorf("GCWeight(%q) = %v, want %v", b, got, want)
		}
	}
}

func TestIUPACMask_Snapshot(t *testing.T) {
	if Mask('A') != 1 || Mask('C') != 2 || Mask('G') != 4 || Mask('T') != 8 {
		t.Fatalf("canonical masks corrupted")
	}
	if Mask('U') != 0 || IsIUPAC('u') {
		t.Fatalf("U is not one of the 15 codes")
	}
	if Compatible('T', 'u') || Compatible('N', 'U') {
		t.Fatalf("U must not match on the template side")
	}
	if Complement('U') != 'U' || Complement('u') != 'u' {
		t.Fatalf("U must pass through complement unchanged")
	}
	if Mask('r') != Mask('R') || Mask('N') != 15 {
		t.Fatalf("ambiguity masks corrupted: r=%d N=%d", Mask('r'), Mask('N'))
	}
}
