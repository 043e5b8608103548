package strand

import "sort"

// MethylSet is a set of top-strand indices considered methylated.
// The zero value is an empty set and is safe to read.
type MethylSet struct {
	m map[int]struct{}
}

// NewMethylSet builds a set from indices; duplicates collapse.
func NewMethylSet(idx ...int) MethylSet {
	s := MethylSet{m: make(map[int]struct{}, len(idx))}
	for _, i := range idx {
		s.m[i] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s MethylSet) Has(i int) bool {
	_, ok := s.m[i]
	return ok
}

// Len is the number of indices in the set.
func (s MethylSet) Len() int { return len(s.m) }

// Sorted returns the indices in ascending order.
func (s MethylSet) Sorted() []int {
	out := make([]int, 0, len(s.m))
	for i := range s.m {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Toggle returns a new set: the symmetric difference of s with [start, end).
// s itself is not modified.
func (s MethylSet) Toggle(start, end int) MethylSet {
	out := NewMethylSet(s.Sorted()...)
	for i := start; i < end; i++ {
		if _, ok := out.m[i]; ok {
			delete(out.m, i)
		} else {
			out.m[i] = struct{}{}
		}
	}
	return out
}

// CpGs returns the fully methylated starting sets: the C of every top-strand
// CG for the top set, and the G of every CG (a c on the aligned bottom
// strand) for the bottom set.
func CpGs(top string) (topIdx, bottomIdx []int) {
	for i := 0; i+1 < len(top); i++ {
		if (top[i] == 'c' || top[i] == 'C') && (top[i+1] == 'g' || top[i+1] == 'G') {
			topIdx = append(topIdx, i)
			bottomIdx = append(bottomIdx, i+1)
		}
	}
	return topIdx, bottomIdx
}
