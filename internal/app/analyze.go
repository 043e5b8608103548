package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bsprimer-core/oligo"
	"bsprimer-core/search"
	"bsprimer-core/seqio"
	"bsprimer-core/strand"
	"bsprimer-core/structure"

	"bsprimer/internal/logger"
	"bsprimer/internal/project"
	"bsprimer/internal/writers"
	"bsprimer/pkg/api"
)

// methylFlags are shared by commands that derive strands from a file.
type methylFlags struct {
	top, bottom string
	cpg         bool
}

func (m *methylFlags) add(cmd *cobra.Command) {
	cmd.Flags().StringVar(&m.top, "methyl-top", "", "methylated top-strand indices, e.g. 3,10-12")
	cmd.Flags().StringVar(&m.bottom, "methyl-bottom", "", "methylated bottom-strand indices")
	cmd.Flags().BoolVar(&m.cpg, "cpg", false, "treat every CpG as methylated on both strands")
}

func (m *methylFlags) sets(top string) (strand.MethylSet, strand.MethylSet, error) {
	ts, err := parseSpans(m.top)
	if err != nil {
		return strand.MethylSet{}, strand.MethylSet{}, usageError{fmt.Errorf("--methyl-top: %w", err)}
	}
	bs, err := parseSpans(m.bottom)
	if err != nil {
		return strand.MethylSet{}, strand.MethylSet{}, usageError{fmt.Errorf("--methyl-bottom: %w", err)}
	}
	ti, bi := expandSpans(ts), expandSpans(bs)
	if m.cpg {
		ct, cb := strand.CpGs(top)
		ti, bi = append(ti, ct...), append(bi, cb...)
	}
	return strand.NewMethylSet(ti...), strand.NewMethylSet(bi...), nil
}

// readSeq reads a sequence file; "-" is the command's stdin.
func readSeq(cmd *cobra.Command, path string) (seqio.Record, error) {
	var (
		rec seqio.Record
		err error
	)
	if path == "-" {
		rec, err = seqio.Read(cmd.Context(), cmd.InOrStdin())
	} else {
		rec, err = seqio.ReadPath(cmd.Context(), path)
	}
	if err != nil {
		return seqio.Record{}, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("sequence loaded", zap.String("id", rec.ID), zap.String("format", string(rec.Format)), zap.Int("length", len(rec.Seq)))
	return rec, nil
}

func parseOligo(raw string) (oligo.Sequence, error) {
	seq, err := oligo.Parse(raw)
	if err != nil {
		return oligo.Sequence{}, usageError{err}
	}
	return seq, nil
}

// fullOligo is every base of seq, tails included, as written.
func fullOligo(seq oligo.Sequence) string {
	return project.OligoString(oligo.Primer{Seq: seq, Strand: strand.F})
}

func newStrandsCmd(e *env) *cobra.Command {
	var mf methylFlags
	cmd := &cobra.Command{
		Use:   "strands <seqfile|->",
		Short: "Show the six strands of a sequence",
		Long: `Show the six strands of a sequence, column aligned.

The sequence file may be FASTA (first record), GenBank (ORIGIN block) or
raw text. Unmethylated cytosines are converted on OT and OB.`,
		Example: "  bsprimer strands region.fa --cpg\n  bsprimer strands region.gb --methyl-top 3,10-12 -o json",
		Args:    nArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := readSeq(cmd, args[0])
			if err != nil {
				return err
			}
			mTop, mBot, err := mf.sets(rec.Seq)
			if err != nil {
				return err
			}
			return e.emit(writers.Strands, strandsV1(rec.ID, rec.Seq, mTop, mBot))
		},
	}
	mf.add(cmd)
	return cmd
}

func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().String("oligo-conc", "", "oligo concentration, e.g. 250nM (bare number: uM)")
	cmd.Flags().String("na", "", "monovalent cations, e.g. 50mM (bare number: mM)")
	cmd.Flags().String("mg", "", "Mg2+ (bare number: mM)")
	cmd.Flags().String("dntp", "", "total dNTP (bare number: mM)")
}

func newThermoCmd(e *env) *cobra.Command {
	var (
		template string
		mgb      bool
	)
	cmd := &cobra.Command{
		Use:   "thermo <primer>...",
		Short: "Melting temperature, dG and GC of primers",
		Long: `Melting temperature, dG and GC of primers by nearest-neighbor thermodynamics.

Primers use bracket notation: [tail] marks a 5' tail that does not bind,
uppercase binding letters are LNA. With --template the binding region is
scored against that strand slice and mismatches lower the Tm.`,
		Example: "  bsprimer thermo acgtacgttgcaagctagct\n  bsprimer thermo '[gtaaaacgacggccag]ttgAtttgtTgg' --na 50mM --mg 3mM",
		Args:    nArgs(1, -1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.cfg.Settings()
			if err != nil {
				return usageError{err}
			}
			params := e.cfg.Params()
			var out []api.ThermoV1
			for _, raw := range args {
				seq, err := parseOligo(raw)
				if err != nil {
					return err
				}
				r := params.Compute(seq, strings.ToLower(template), mgb, s)
				out = append(out, thermoV1("", seq.String(), strings.ToLower(template), mgb, r, s))
			}
			return e.emit(writers.Thermo, out)
		},
	}
	cmd.Flags().StringVar(&template, "template", "", "strand slice under the binding region, same direction")
	cmd.Flags().BoolVar(&mgb, "mgb", false, "primer carries a minor groove binder")
	addSettingsFlags(cmd)
	return cmd
}

func newDimerCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dimer <a> [b]",
		Short: "Most stable self dimer of a, or cross dimer of a and b",
		Long: `Most stable self dimer of a, or cross dimer of a and b.

Both oligos are read 5'->3'. Tails take part; LNA marks are ignored.`,
		Args: nArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seqs := make([]string, len(args))
			for i, raw := range args {
				seq, err := parseOligo(raw)
				if err != nil {
					return err
				}
				seqs[i] = fullOligo(seq)
			}
			a, b := seqs[0], seqs[0]
			if len(seqs) == 2 {
				b = seqs[1]
			}
			an, found := e.cfg.Scoring().Dimer(a, b)
			return e.emit(writers.Structure, []api.StructureV1{structureV1(structure.KindDimer, a, b, an, found)})
		},
	}
	return cmd
}

func newHairpinCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hairpin <primer>...",
		Short: "Most stable hairpin of each primer",
		Args:  nArgs(1, -1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := e.cfg.Scoring()
			var out []api.StructureV1
			for _, raw := range args {
				seq, err := parseOligo(raw)
				if err != nil {
					return err
				}
				s := fullOligo(seq)
				an, found := sc.Hairpin(s)
				out = append(out, structureV1(structure.KindHairpin, s, "", an, found))
			}
			return e.emit(writers.Structure, out)
		},
	}
	return cmd
}

func newSearchCmd(e *env) *cobra.Command {
	var (
		mf     methylFlags
		only   string
		noHead bool
		maxMM  int
	)
	cmd := &cobra.Command{
		Use:   "search <seqfile|-> <query>",
		Short: "Find a degenerate query on all six strands",
		Long: `Find a degenerate query on all six strands.

The query is written 5'->3' and may use IUPAC codes; a degenerate query
base matches any concrete base it stands for. On strands shown 3'->5' the
query is reversed so hits read in display coordinates.`,
		Example: "  bsprimer search region.fa ttygtttagagtttt --mismatches 1 --cpg",
		Args:    nArgs(2, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := oligo.Validate(args[1])
			if err != nil {
				return usageError{err}
			}
			maxMM = e.cfg.Search.MaxMismatches
			if maxMM < 0 {
				return usageError{fmt.Errorf("--mismatches must be >= 0")}
			}
			var (
				one    strand.Type
				single = only != ""
			)
			if single {
				if one, err = strand.ParseType(only); err != nil {
					return usageError{err}
				}
			}

			rec, err := readSeq(cmd, args[0])
			if err != nil {
				return err
			}
			mTop, mBot, err := mf.sets(rec.Seq)
			if err != nil {
				return err
			}
			views := strand.DeriveAll(rec.Seq, mTop, mBot)

			meta := api.SearchV1{SequenceID: rec.ID, Query: strings.ToLower(query), MaxMismatches: maxMM}
			in, done := writers.StartHitWriter(e.stdout, e.output, meta, !noHead, 64)
			var hits []search.Hit
			if single {
				hits = search.Search(views.Get(one), query, one, maxMM)
			} else {
				hits = search.SearchAll(views, query, maxMM)
			}
			n, sendErr := streamHits(cmd.Context(), views, hits, in)
			close(in)
			werr := <-done
			logger.Debug("search done", zap.Int("hits", n))
			if sendErr != nil {
				return sendErr
			}
			switch werr = writers.Quiet(werr); {
			case werr == nil:
				return nil
			case errors.Is(werr, writers.ErrUnknownFormat):
				return usageError{werr}
			}
			return fmt.Errorf("%w: %v", errOutput, werr)
		},
	}
	mf.add(cmd)
	cmd.Flags().IntVarP(&maxMM, "mismatches", "m", 0, "maximum mismatches per hit")
	cmd.Flags().StringVar(&only, "strand", "", "search only this strand (F, R, OT, CTOT, OB, CTOB)")
	cmd.Flags().BoolVar(&noHead, "no-header", false, "omit the text header")
	return cmd
}

// streamHits sends hits with the strand site each one covers.
func streamHits(ctx context.Context, v strand.Views, hits []search.Hit, out chan<- api.HitV1) (int, error) {
	n := 0
	for _, h := range hits {
		s := v.Get(h.Strand)
		hv := api.HitV1{Strand: h.Strand.String(), Start: h.Start, End: h.End, Mismatches: h.Mismatches, Site: s[h.Start : h.End+1]}
		select {
		case out <- hv:
			n++
		case <-ctx.Done():
			return n, ctx.Err()
		}
	}
	return n, nil
}
