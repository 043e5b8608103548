package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"bsprimer-core/bases"
)

// Row is one strand line. Reverse rows read 3'→5' left to right.
type Row struct {
	Label   string
	Seq     string
	Reverse bool
}

// Options control the ASCII rendering.
type Options struct {
	// Columns per block. If <=0, use default (60).
	Width int

	// Draw a position ruler (1-based, every 10) above each block.
	Ruler bool

	// Glyphs
	ExactGlyph   string // default "|"
	PartialGlyph string // default "¦"
}

// DefaultOptions is the look used by the CLI.
var DefaultOptions = Options{
	Width:        60,
	Ruler:        true,
	ExactGlyph:   "|",
	PartialGlyph: "¦",
}

const (
	linePrefix  = "# "
	prefixPlus  = "5'-"
	suffixPlus  = "-3'"
	prefixMinus = "3'-"
	suffixMinus = "-5'"
)

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultOptions.Width
	}
	return o.Width
}

func (o Options) ExactGlyphOrDefault() string {
	if o.ExactGlyph == "" {
		return DefaultOptions.ExactGlyph
	}
	return o.ExactGlyph
}

func (o Options) PartialGlyphOrDefault() string {
	if o.PartialGlyph == "" {
		return DefaultOptions.PartialGlyph
	}
	return o.PartialGlyph
}

func ends(reverse bool) (string, string) {
	if reverse {
		return prefixMinus, suffixMinus
	}
	return prefixPlus, suffixPlus
}

// ruler returns a tick line for columns [start, end): every 10th position
// (1-based) is labelled with its number ending on that column.
func ruler(start, end int) string {
	line := []byte(strings.Repeat(" ", end-start))
	free := 0
	for p := start; p < end; p++ {
		if (p+1)%10 != 0 {
			continue
		}
		lbl := strconv.Itoa(p + 1)
		at := p - start - len(lbl) + 1
		if at < free {
			continue
		}
		copy(line[at:], lbl)
		free = p - start + 2
	}
	return strings.TrimRight(string(line), " ")
}

// RenderStrands lays the rows out column-aligned in blocks of opt.Width.
// Rows of unequal length are rendered as far as they go.
func RenderStrands(rows []Row, opt Options) string {
	w := opt.width()
	labelW, n := 0, 0
	for _, r := range rows {
		labelW = max(labelW, len(r.Label))
		n = max(n, len(r.Seq))
	}

	var b strings.Builder
	for start := 0; start < n; start += w {
		end := min(start+w, n)
		if start > 0 {
			b.WriteString("#\n")
		}
		if opt.Ruler {
			if r := ruler(start, end); r != "" {
				fmt.Fprintf(&b, "%s%s%s\n", linePrefix, strings.Repeat(" ", labelW+1+len(prefixPlus)), r)
			}
		}
		for _, r := range rows {
			op, cl := ends(r.Reverse)
			chunk := ""
			if start < len(r.Seq) {
				chunk = r.Seq[start:min(end, len(r.Seq))]
			}
			fmt.Fprintf(&b, "%s%-*s %s%s%s\n", linePrefix, labelW, r.Label, op, chunk, cl)
		}
	}
	return b.String()
}

// MatchLine draws one glyph per query position: exact for a concrete match,
// partial for a degenerate match, blank for a mismatch.
func MatchLine(query, site string, opt Options) string {
	n := min(len(query), len(site))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		switch {
		case !bases.Compatible(query[i], site[i]):
			b.WriteByte(' ')
		case bases.IsConcrete(query[i]):
			b.WriteString(opt.ExactGlyphOrDefault())
		default:
			b.WriteString(opt.PartialGlyphOrDefault())
		}
	}
	return b.String()
}

// RenderHit prints a query against the strand site it matched, both in
// display order, with a match line between them.
func RenderHit(title, site, query string, reverse bool, opt Options) string {
	op, cl := ends(reverse)
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", linePrefix, title)
	fmt.Fprintf(&b, "%s%s%s%s\n", linePrefix, op, site, cl)
	fmt.Fprintf(&b, "%s%s%s\n", linePrefix, strings.Repeat(" ", len(op)), strings.TrimRight(MatchLine(query, site, opt), " "))
	fmt.Fprintf(&b, "%s%s%s%s\n", linePrefix, op, query, cl)
	return b.String()
}

// RenderStructure prints a structure block under a one-line summary.
func RenderStructure(title string, found bool, dg float64, lines []string) string {
	var b strings.Builder
	if !found {
		fmt.Fprintf(&b, "%s%s: none\n", linePrefix, title)
		return b.String()
	}
	fmt.Fprintf(&b, "%s%s: dG %.2f kcal/mol\n", linePrefix, title, dg)
	for _, l := range lines {
		fmt.Fprintf(&b, "%s%s\n", linePrefix, strings.TrimRight(l, " "))
	}
	return b.String()
}
