package app

import (
	"time"

	"bsprimer-core/strand"
	"bsprimer-core/structure"
	"bsprimer-core/thermo"

	"bsprimer/internal/project"
	"bsprimer/internal/writers"
	"bsprimer/pkg/api"
)

func settingsV1(s thermo.Settings) api.SettingsV1 {
	return api.SettingsV1{OligoConcUM: s.OligoConcUM, NaMM: s.NaMM, MgMM: s.MgMM, DNTPMM: s.DNTPMM}
}

func strandsV1(id string, top string, mTop, mBot strand.MethylSet) api.StrandsV1 {
	v := strand.DeriveAll(top, mTop, mBot)
	out := api.StrandsV1{
		SequenceID:   id,
		Length:       len(top),
		MethylTop:    mTop.Sorted(),
		MethylBottom: mBot.Sorted(),
	}
	for _, t := range strand.All() {
		dir := writers.DirForward
		if t.ReverseDisplayed() {
			dir = writers.DirReverse
		}
		out.Strands = append(out.Strands, api.StrandV1{Type: t.String(), Seq: v.Get(t), Direction: dir})
	}
	return out
}

func thermoV1(name, seq, template string, mgb bool, r thermo.Result, s thermo.Settings) api.ThermoV1 {
	return api.ThermoV1{
		Name:       name,
		Seq:        seq,
		Template:   template,
		MGB:        mgb,
		Tm:         r.Tm,
		DG:         r.DG,
		GC:         r.GC,
		DH:         r.DH,
		DS:         r.DS,
		Tm1M:       r.Tm1M,
		SaltBranch: string(r.Branch),
		Settings:   settingsV1(s),
	}
}

func structureV1(kind structure.Kind, a, b string, an structure.Analysis, found bool) api.StructureV1 {
	out := api.StructureV1{Kind: kind.String(), A: a, B: b, Found: found}
	if !found {
		return out
	}
	out.DG = an.DG
	out.Lines = append([]string(nil), an.Lines[:]...)
	switch kind {
	case structure.KindDimer:
		out.Offset, out.Pairs = an.Offset, an.Pairs
	case structure.KindHairpin:
		out.Start, out.Stem, out.Loop, out.EndOffset = an.Start, an.Stem, an.Loop, an.EndOffset
	}
	return out
}

func structurePtrV1(kind structure.Kind, a string, an *structure.Analysis) api.StructureV1 {
	if an == nil {
		return structureV1(kind, a, "", structure.Analysis{}, false)
	}
	return structureV1(kind, a, "", *an, true)
}

func primerV1(r project.PrimerRecord) api.PrimerV1 {
	out := api.PrimerV1{ID: r.ID, Name: r.Name, Seq: r.Seq, Strand: r.Strand, Start: r.Start, End: r.Start, MGB: r.MGB}
	if op, err := r.Primer(); err == nil {
		out.End = op.End()
	}
	return out
}

func projectV1(p *project.Project) api.ProjectV1 {
	out := api.ProjectV1{
		ID:           p.ID,
		Name:         p.Name,
		Length:       len(p.Top),
		Top:          p.Top,
		MethylTop:    p.MethylTop,
		MethylBottom: p.MethylBottom,
		Settings:     settingsV1(p.Settings),
		Updated:      p.Updated.Format(time.RFC3339),
	}
	for _, r := range p.Primers {
		out.Primers = append(out.Primers, primerV1(r))
	}
	return out
}

func summariesV1(ss []project.Summary) []api.ProjectSummaryV1 {
	out := make([]api.ProjectSummaryV1, 0, len(ss))
	for _, s := range ss {
		out = append(out, api.ProjectSummaryV1{ID: s.ID, Name: s.Name, Updated: s.Updated.Format(time.RFC3339)})
	}
	return out
}

func checkV1(p *project.Project, rep project.Report) api.CheckV1 {
	out := api.CheckV1{ProjectID: p.ID, Primers: []api.PrimerCheckV1{}, Invalid: rep.Invalid}
	for _, pr := range rep.Primers {
		out.Primers = append(out.Primers, api.PrimerCheckV1{
			Primer:     primerV1(pr.Record),
			Oligo:      pr.Oligo,
			Binding:    pr.Binding,
			Template:   pr.Template,
			Mismatches: pr.Mismatches,
			Thermo:     thermoV1(pr.Record.Name, pr.Record.Seq, pr.Template, pr.Record.MGB, pr.Thermo, p.Settings),
			SelfDimer:  structurePtrV1(structure.KindDimer, pr.Record.Name, pr.SelfDimer),
			Hairpin:    structurePtrV1(structure.KindHairpin, pr.Record.Name, pr.Hairpin),
		})
	}
	for _, c := range rep.Cross {
		out.Cross = append(out.Cross, structureV1(structure.KindDimer, c.A, c.B, c.Dimer, true))
	}
	return out
}
