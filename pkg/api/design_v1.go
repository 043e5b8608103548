// pkg/api/design_v1.go
package api

// StrandV1 is one derived strand. Direction is "5'->3'" or "3'->5'" as read
// left to right.
type StrandV1 struct {
	Type      string `json:"type"`
	Seq       string `json:"seq"`
	Direction string `json:"direction"`
}

// StrandsV1 is the six-strand view of a top sequence.
type StrandsV1 struct {
	SequenceID   string     `json:"sequence_id,omitempty"`
	Length       int        `json:"length"`
	MethylTop    []int      `json:"methyl_top,omitempty"`
	MethylBottom []int      `json:"methyl_bottom,omitempty"`
	Strands      []StrandV1 `json:"strands"`
}

// SettingsV1 are reaction conditions; concentrations in µM (oligo) and mM.
type SettingsV1 struct {
	OligoConcUM float64 `json:"oligo_uM"`
	NaMM        float64 `json:"na_mM"`
	MgMM        float64 `json:"mg_mM"`
	DNTPMM      float64 `json:"dntp_mM"`
}

// ThermoV1 is a melting temperature report. Tm is 0 when undefined.
type ThermoV1 struct {
	Name       string     `json:"name,omitempty"`
	Seq        string     `json:"seq"`
	Template   string     `json:"template,omitempty"`
	MGB        bool       `json:"mgb,omitempty"`
	Tm         float64    `json:"tm"`
	DG         float64    `json:"dg"`
	GC         float64    `json:"gc"`
	DH         float64    `json:"dh"`
	DS         float64    `json:"ds"`
	Tm1M       float64    `json:"tm_1m"`
	SaltBranch string     `json:"salt_branch"`
	Settings   SettingsV1 `json:"settings"`
}

// StructureV1 is a dimer or hairpin. Found is false when no candidate met
// the minimum, in which case only Kind is meaningful.
type StructureV1 struct {
	Kind      string   `json:"kind"`
	A         string   `json:"a,omitempty"`
	B         string   `json:"b,omitempty"`
	Found     bool     `json:"found"`
	DG        float64  `json:"dg,omitempty"`
	Lines     []string `json:"lines,omitempty"`
	Offset    int      `json:"offset,omitempty"`
	Pairs     int      `json:"pairs,omitempty"`
	Start     int      `json:"start,omitempty"`
	Stem      int      `json:"stem,omitempty"`
	Loop      int      `json:"loop,omitempty"`
	EndOffset int      `json:"end_offset,omitempty"`
}

// HitV1 is one search hit; End is inclusive.
type HitV1 struct {
	Strand     string `json:"strand"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Mismatches int    `json:"mismatches"`
	Site       string `json:"site"`
}

// SearchV1 is the result of a degenerate search.
type SearchV1 struct {
	SequenceID    string  `json:"sequence_id,omitempty"`
	Query         string  `json:"query"`
	MaxMismatches int     `json:"max_mismatches"`
	Hits          []HitV1 `json:"hits"`
}
