// core/bases/rc.go
package bases

var complement [256]byte

func init() {
	pairs := []struct{ a, b byte }{
		{'A', 'T'}, {'C', 'G'},
		{'R', 'Y'}, {'K', 'M'}, {'B', 'V'}, {'D', 'H'},
		{'S', 'S'}, {'W', 'W'}, {'N', 'N'},
	}
	for _, p := range pairs {
		complement[p.a], complement[p.b] = p.b, p.a
		complement[p.a|0x20], complement[p.b|0x20] = p.b|0x20, p.a|0x20
	}
}

// Complement returns the case-preserving Watson–Crick (or IUPAC) complement
// of b. Unrecognized characters pass through unchanged.
func Complement(b byte) byte {
	if c := complement[b]; c != 0 {
		return c
	}
	return b
}

// ComplementString complements s position-wise without reversing it.
func ComplementString(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = Complement(s[i])
	}
	return string(out)
}

// ReverseComplement complements s and reverses the result.
func ReverseComplement(s string) string {
	n := len(s)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = Complement(s[i])
	}
	return string(out)
}

// Reverse reverses the byte order of s.
func Reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// IsWC reports a strict Watson–Crick pair between two concrete bases.
func IsWC(a, b byte) bool {
	switch upper(a) {
	case 'A':
		return upper(b) == 'T'
	case 'T':
		return upper(b) == 'A'
	case 'C':
		return upper(b) == 'G'
	case 'G':
		return upper(b) == 'C'
	default:
		return false
	}
}
