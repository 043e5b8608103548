// pkg/api/project_v1.go
package api

// PrimerV1 is a stored primer. Seq is bracket notation as displayed.
type PrimerV1 struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Seq    string `json:"seq"`
	Strand string `json:"strand"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	MGB    bool   `json:"mgb,omitempty"`
}

// ProjectV1 is a project as shown to users.
type ProjectV1 struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Length       int        `json:"length"`
	Top          string     `json:"top"`
	MethylTop    []int      `json:"methyl_top,omitempty"`
	MethylBottom []int      `json:"methyl_bottom,omitempty"`
	Primers      []PrimerV1 `json:"primers,omitempty"`
	Settings     SettingsV1 `json:"settings"`
	Updated      string     `json:"updated"`
}

// ProjectSummaryV1 is one row of a project listing.
type ProjectSummaryV1 struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Updated string `json:"updated"`
}

// PrimerCheckV1 scores one stored primer against its strand.
type PrimerCheckV1 struct {
	Primer     PrimerV1    `json:"primer"`
	Oligo      string      `json:"oligo"`
	Binding    string      `json:"binding"`
	Template   string      `json:"template"`
	Mismatches int         `json:"mismatches"`
	Thermo     ThermoV1    `json:"thermo"`
	SelfDimer  StructureV1 `json:"self_dimer"`
	Hairpin    StructureV1 `json:"hairpin"`
}

// CheckV1 is the full project check.
type CheckV1 struct {
	ProjectID string            `json:"project_id"`
	Primers   []PrimerCheckV1   `json:"primers"`
	Cross     []StructureV1     `json:"cross_dimers,omitempty"`
	Invalid   map[string]string `json:"invalid,omitempty"`
}
