package writers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"bsprimer/internal/pretty"
	"bsprimer/pkg/api"
)

const (
	DirForward = "5'->3'"
	DirReverse = "3'->5'"
)

func init() {
	Register(Strands, "text", writeStrandsText)
	Register(Thermo, "text", writeThermoText)
	Register(Structure, "text", writeStructureText)
	Register(Search, "text", writeSearchText)
	Register(Search, "pretty", writeSearchPretty)
	Register(Project, "text", writeProjectText)
	Register(Projects, "text", writeProjectsText)
	Register(Check, "text", writeCheckText)
}

// intsCSV for printing index sets.
func intsCSV(a []int) string {
	if len(a) == 0 {
		return "-"
	}
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(ss, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeStrandsText(w io.Writer, payload any) error {
	s, ok := payload.(api.StrandsV1)
	if !ok {
		return badPayload(Strands, "text", payload)
	}
	rows := make([]pretty.Row, len(s.Strands))
	for i, st := range s.Strands {
		rows[i] = pretty.Row{Label: st.Type, Seq: st.Seq, Reverse: st.Direction == DirReverse}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s %d bp\n", orDash(s.SequenceID), s.Length)
	fmt.Fprintf(&b, "# methylated top: %s  bottom: %s\n", intsCSV(s.MethylTop), intsCSV(s.MethylBottom))
	b.WriteString(pretty.RenderStrands(rows, pretty.DefaultOptions))
	_, err := io.WriteString(w, b.String())
	return err
}

func thermoHeader() string {
	return "# name\tseq\ttm\tdg\tgc\ttm_1m\tsalt_branch\n"
}

func thermoRow(t api.ThermoV1) string {
	return fmt.Sprintf("%s\t%s\t%.2f\t%.2f\t%.1f\t%.2f\t%s\n",
		orDash(t.Name), t.Seq, t.Tm, t.DG, t.GC, t.Tm1M, t.SaltBranch)
}

func writeThermoText(w io.Writer, payload any) error {
	rs, ok := payload.([]api.ThermoV1)
	if !ok {
		return badPayload(Thermo, "text", payload)
	}
	var b strings.Builder
	b.WriteString(thermoHeader())
	for _, t := range rs {
		b.WriteString(thermoRow(t))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func structureTitle(s api.StructureV1) string {
	switch {
	case s.A != "" && s.B != "":
		return fmt.Sprintf("%s %s x %s", s.Kind, s.A, s.B)
	case s.A != "":
		return fmt.Sprintf("%s %s", s.Kind, s.A)
	}
	return s.Kind
}

func writeStructureText(w io.Writer, payload any) error {
	ss, ok := payload.([]api.StructureV1)
	if !ok {
		return badPayload(Structure, "text", payload)
	}
	var b strings.Builder
	for i, s := range ss {
		if i > 0 {
			b.WriteString("#\n")
		}
		b.WriteString(pretty.RenderStructure(structureTitle(s), s.Found, s.DG, s.Lines))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func hitHeader() string {
	return "# strand\tstart\tend\tmismatches\tsite\n"
}

func hitRow(h api.HitV1) string {
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%s\n", h.Strand, h.Start, h.End, h.Mismatches, h.Site)
}

// hitBlock renders one hit with the query laid under the site in display order.
func hitBlock(query string, h api.HitV1) string {
	reverse := isReverseDisplayed(h.Strand)
	q := query
	if reverse {
		q = reverseString(query)
	}
	title := fmt.Sprintf("%s %d..%d mm=%d", h.Strand, h.Start, h.End, h.Mismatches)
	return pretty.RenderHit(title, h.Site, q, reverse, pretty.DefaultOptions)
}

func writeSearchText(w io.Writer, payload any) error {
	s, ok := payload.(api.SearchV1)
	if !ok {
		return badPayload(Search, "text", payload)
	}
	var b strings.Builder
	b.WriteString(hitHeader())
	for _, h := range s.Hits {
		b.WriteString(hitRow(h))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSearchPretty(w io.Writer, payload any) error {
	s, ok := payload.(api.SearchV1)
	if !ok {
		return badPayload(Search, "pretty", payload)
	}
	var b strings.Builder
	for i, h := range s.Hits {
		if i > 0 {
			b.WriteString("#\n")
		}
		b.WriteString(hitBlock(s.Query, h))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func primerHeader() string {
	return "# id\tname\tstrand\tstart\tend\tmgb\tseq\n"
}

func writeProjectText(w io.Writer, payload any) error {
	p, ok := payload.(api.ProjectV1)
	if !ok {
		return badPayload(Project, "text", payload)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# project %s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(&b, "# length %d bp, updated %s\n", p.Length, p.Updated)
	fmt.Fprintf(&b, "# methylated top: %s  bottom: %s\n", intsCSV(p.MethylTop), intsCSV(p.MethylBottom))
	fmt.Fprintf(&b, "# oligo %g uM, Na %g mM, Mg %g mM, dNTP %g mM\n",
		p.Settings.OligoConcUM, p.Settings.NaMM, p.Settings.MgMM, p.Settings.DNTPMM)
	b.WriteString(primerHeader())
	for _, pr := range p.Primers {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%d\t%d\t%t\t%s\n", pr.ID, pr.Name, pr.Strand, pr.Start, pr.End, pr.MGB, pr.Seq)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeProjectsText(w io.Writer, payload any) error {
	ps, ok := payload.([]api.ProjectSummaryV1)
	if !ok {
		return badPayload(Projects, "text", payload)
	}
	var b strings.Builder
	b.WriteString("# id\tname\tupdated\n")
	for _, p := range ps {
		fmt.Fprintf(&b, "%s\t%s\t%s\n", p.ID, p.Name, p.Updated)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeCheckText(w io.Writer, payload any) error {
	c, ok := payload.(api.CheckV1)
	if !ok {
		return badPayload(Check, "text", payload)
	}
	var b strings.Builder
	b.WriteString("# name\tstrand\tstart\tmismatches\ttm\tdg\tgc\tbinding\n")
	for _, p := range c.Primers {
		fmt.Fprintf(&b, "%s\t%s\t%d\t%d\t%.2f\t%.2f\t%.1f\t%s\n",
			p.Primer.Name, p.Primer.Strand, p.Primer.Start, p.Mismatches,
			p.Thermo.Tm, p.Thermo.DG, p.Thermo.GC, p.Binding)
	}
	for _, p := range c.Primers {
		b.WriteString("#\n")
		b.WriteString(pretty.RenderStructure(p.Primer.Name+" self-dimer", p.SelfDimer.Found, p.SelfDimer.DG, p.SelfDimer.Lines))
		b.WriteString(pretty.RenderStructure(p.Primer.Name+" hairpin", p.Hairpin.Found, p.Hairpin.DG, p.Hairpin.Lines))
	}
	for _, x := range c.Cross {
		b.WriteString("#\n")
		b.WriteString(pretty.RenderStructure(structureTitle(x), x.Found, x.DG, x.Lines))
	}
	if len(c.Invalid) > 0 {
		names := make([]string, 0, len(c.Invalid))
		for n := range c.Invalid {
			names = append(names, n)
		}
		sort.Strings(names)
		b.WriteString("#\n")
		for _, n := range names {
			fmt.Fprintf(&b, "# invalid %s: %s\n", n, c.Invalid[n])
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
