package project

import (
	"strings"

	"bsprimer-core/oligo"
	"bsprimer-core/structure"
	"bsprimer-core/thermo"
)

// PrimerReport is the per-primer result of Check.
type PrimerReport struct {
	Record     PrimerRecord
	Oligo      string // full oligo 5'→3', tails included
	Binding    string // binding region 5'→3'
	Template   string // strand under the binding region, same direction
	Mismatches int
	Thermo     thermo.Result
	SelfDimer  *structure.Analysis
	Hairpin    *structure.Analysis
}

// CrossReport is the most stable dimer between two stored primers.
type CrossReport struct {
	A, B  string // primer names
	Dimer structure.Analysis
}

// Report is the outcome of Check. Primers that no longer fit the sequence
// are listed in Invalid with the reason and skipped otherwise.
type Report struct {
	Primers []PrimerReport
	Cross   []CrossReport
	Invalid map[string]string
}

// Check scores every stored primer against its strand under the project's
// settings, then every unordered pair of valid primers for cross dimers.
func (p *Project) Check(params thermo.Params, sc structure.Scoring) Report {
	views := p.Views()
	rep := Report{}
	var ok []oligo.Primer
	for _, rec := range p.Primers {
		op, err := rec.Primer()
		if err == nil {
			err = op.Validate(len(p.Top))
		}
		if err != nil {
			if rep.Invalid == nil {
				rep.Invalid = map[string]string{}
			}
			rep.Invalid[rec.Name] = err.Error()
			continue
		}
		ok = append(ok, op)

		full := OligoString(op)
		pr := PrimerReport{
			Record:     rec,
			Oligo:      full,
			Binding:    op.Binding5to3(),
			Template:   op.Template(views),
			Mismatches: op.Mismatches(views),
		}
		pr.Thermo = params.Compute(op.Oriented5to3(), pr.Template, op.MGB, p.Settings)
		if a, found := sc.Dimer(full, full); found {
			pr.SelfDimer = &a
		}
		if a, found := sc.Hairpin(full); found {
			pr.Hairpin = &a
		}
		rep.Primers = append(rep.Primers, pr)
	}

	for i := 0; i < len(ok); i++ {
		for j := i + 1; j < len(ok); j++ {
			a, found := sc.Dimer(OligoString(ok[i]), OligoString(ok[j]))
			if !found {
				continue
			}
			rep.Cross = append(rep.Cross, CrossReport{A: ok[i].Name, B: ok[j].Name, Dimer: a})
		}
	}
	return rep
}

// OligoString is the whole primer, tails included, lowercased and read 5'→3'.
func OligoString(op oligo.Primer) string {
	var b strings.Builder
	for _, seg := range op.Seq.Segments {
		for _, pos := range seg.Positions {
			b.WriteByte(pos.Base | 0x20)
		}
	}
	return op.Strand.Biological(b.String())
}
