// core/search/search.go
package search

import (
	"bsprimer-core/bases"
	"bsprimer-core/strand"
)

/* ----------------------- types --------------------- */

// Hit is one qualifying window; End is inclusive.
type Hit struct {
	Strand     strand.Type
	Start      int
	End        int
	Mismatches int
}

/* --------------------------- Search ------------------------------------- */

// Search slides query over strandSeq and reports every window with at most
// maxMM positions where the (possibly degenerate) query base is incompatible
// with the strand base. On reverse-displayed strands the query is reversed
// first so hits read in the strand's on-screen direction. Hits come back in
// scan order, overlapping windows included.
func Search(strandSeq, query string, t strand.Type, maxMM int) []Hit {
	ql := len(query)
	if ql == 0 || len(strandSeq) < ql || maxMM < 0 {
		return nil
	}
	q := query
	if t.ReverseDisplayed() {
		q = bases.Reverse(query)
	}

	end := len(strandSeq) - ql
	out := make([]Hit, 0, 8)

window:
	for pos := 0; pos <= end; pos++ {
		mm := 0
		for j := 0; j < ql; j++ {
			if !bases.Compatible(q[j], strandSeq[pos+j]) {
				mm++
				if mm > maxMM {
					continue window
				}
			}
		}
		out = append(out, Hit{Strand: t, Start: pos, End: pos + ql - 1, Mismatches: mm})
	}
	return out
}

// SearchAll runs Search over all six views in strand.All order.
func SearchAll(v strand.Views, query string, maxMM int) []Hit {
	var out []Hit
	for _, t := range strand.All() {
		out = append(out, Search(v.Get(t), query, t, maxMM)...)
	}
	return out
}
