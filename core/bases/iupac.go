// core/bases/iupac.go
package bases

/* -------------------------- IUPAC lookup table -------------------------- */

var iupacMask [256]byte // bit0=A bit1=C bit2=G bit3=T

func init() {
	set := func(c byte, bits byte) {
		iupacMask[c] = bits
		iupacMask[c|0x20] = bits // lowercase mirrors uppercase
	}
	set('A', 1)       // 0001
	set('C', 2)       // 0010
	set('G', 4)       // 0100
	set('T', 8)       // 1000
	set('R', 1|4)     // A/G
	set('Y', 2|8)     // C/T
	set('S', 2|4)     // C/G
	set('W', 1|8)     // A/T
	set('K', 4|8)     // G/T
	set('M', 1|2)     // A/C
	set('B', 2|4|8)   // C/G/T
	set('D', 1|4|8)   // A/G/T
	set('H', 1|2|8)   // A/C/T
	set('V', 1|2|4)   // A/C/G
	set('N', 1|2|4|8) // any
}

var concrete = [4]byte{'A', 'C', 'G', 'T'}

// Mask returns the 4-bit base set of an IUPAC code (0 if unrecognized).
func Mask(b byte) byte { return iupacMask[b] }

// IsIUPAC reports whether b is one of the 15 codes, either case.
func IsIUPAC(b byte) bool { return iupacMask[b] != 0 }

// IsConcrete reports whether b is a plain A/C/G/T (either case).
func IsConcrete(b byte) bool {
	switch iupacMask[b] {
	case 1, 2, 4, 8:
		return true
	}
	return false
}

// Expand returns the uppercase concrete bases represented by code,
// or nil for an unrecognized character.
func Expand(code byte) []byte {
	m := iupacMask[code]
	if m == 0 {
		return nil
	}
	out := make([]byte, 0, 4)
	for i, b := range concrete {
		if m&(1<<i) != 0 {
			out = append(out, b)
		}
	}
	return out
}

/* --------------------------- Compatible (FAST) -------------------------- */

// Compatible reports whether the template base is one of the bases the
// primer base may represent. Both sides are compared case-insensitively.
// An unrecognized primer base only matches itself. A missing base (0) on
// either side never matches.
func Compatible(primer, template byte) bool {
	if primer == 0 || template == 0 {
		return false
	}
	p, t := upper(primer), upper(template)
	pm := iupacMask[p]
	if pm == 0 {
		return p == t
	}
	// the template side must be a concrete member of the primer's set
	return IsConcrete(t) && pm&iupacMask[t] != 0
}

// CompatibleAt is Compatible over string positions; out-of-range is a miss.
func CompatibleAt(primer string, i int, template string, j int) bool {
	if i < 0 || i >= len(primer) || j < 0 || j >= len(template) {
		return false
	}
	return Compatible(primer[i], template[j])
}

// GCWeight is the expected G/C fraction of a code (S=1, Y=0.5, N=0.5).
func GCWeight(b byte) float64 {
	m := iupacMask[b]
	if m == 0 {
		return 0
	}
	n, gc := 0, 0
	for i := 0; i < 4; i++ {
		if m&(1<<i) == 0 {
			continue
		}
		n++
		if i == 1 || i == 2 {
			gc++
		}
	}
	return float64(gc) / float64(n)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
