package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bsprimer-core/strand"

	"bsprimer/internal/logger"
	"bsprimer/internal/project"
	"bsprimer/internal/writers"
)

func newProjectCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create, edit and check saved designs",
		Long: `Create, edit and check saved designs.

A project holds a top-strand sequence, the methylated positions on both
strands, the primers placed on the six strands and the reaction settings.
Projects live in a sqlite file (--db, or store.path in the settings).
Commands taking <project> accept its ID or name.`,
	}
	cmd.PersistentFlags().String("db", "", "project database file")
	cmd.AddCommand(
		newProjectNewCmd(e),
		newProjectShowCmd(e),
		newProjectListCmd(e),
		newProjectMethylateCmd(e),
		newProjectSettingsCmd(e),
		newProjectAddPrimerCmd(e),
		newProjectRmPrimerCmd(e),
		newProjectCheckCmd(e),
		newProjectDeleteCmd(e),
	)
	return cmd
}

// withStore opens the configured store for the duration of fn.
func (e *env) withStore(ctx context.Context, fn func(*project.Store) error) error {
	st, err := project.Open(ctx, e.cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// edit loads a project, applies fn, saves it and prints the result.
func (e *env) edit(cmd *cobra.Command, key string, fn func(*project.Project) error) error {
	ctx := cmd.Context()
	return e.withStore(ctx, func(st *project.Store) error {
		p, err := st.Load(ctx, key)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		if err := st.Save(ctx, p); err != nil {
			return err
		}
		logger.Info("project updated", zap.String("id", p.ID), zap.String("name", p.Name))
		return e.emit(writers.Project, projectV1(p))
	})
}

func newProjectNewCmd(e *env) *cobra.Command {
	var mf methylFlags
	cmd := &cobra.Command{
		Use:   "new <name> <seqfile|->",
		Short: "Create a project from a sequence file",
		Args:  nArgs(2, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := readSeq(cmd, args[1])
			if err != nil {
				return err
			}
			s, err := e.cfg.Settings()
			if err != nil {
				return usageError{err}
			}
			p, err := project.New(args[0], rec.Seq, s)
			if err != nil {
				return err
			}
			mTop, mBot, err := mf.sets(p.Top)
			if err != nil {
				return err
			}
			p.MethylTop, p.MethylBottom = mTop.Sorted(), mBot.Sorted()

			ctx := cmd.Context()
			return e.withStore(ctx, func(st *project.Store) error {
				if err := st.Save(ctx, p); err != nil {
					return err
				}
				logger.Info("project created", zap.String("id", p.ID), zap.String("name", p.Name), zap.Int("length", len(p.Top)))
				return e.emit(writers.Project, projectV1(p))
			})
		},
	}
	mf.add(cmd)
	addSettingsFlags(cmd)
	return cmd
}

func newProjectShowCmd(e *env) *cobra.Command {
	var strands bool
	cmd := &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project, or its six strands with --strands",
		Args:  nArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return e.withStore(ctx, func(st *project.Store) error {
				p, err := st.Load(ctx, args[0])
				if err != nil {
					return err
				}
				if strands {
					mTop, mBot := p.MethylSets()
					return e.emit(writers.Strands, strandsV1(p.Name, p.Top, mTop, mBot))
				}
				return e.emit(writers.Project, projectV1(p))
			})
		},
	}
	cmd.Flags().BoolVar(&strands, "strands", false, "show the six derived strands")
	return cmd
}

func newProjectListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects, most recently updated first",
		Args:  nArgs(0, 0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return e.withStore(ctx, func(st *project.Store) error {
				ss, err := st.List(ctx)
				if err != nil {
					return err
				}
				return e.emit(writers.Projects, summariesV1(ss))
			})
		},
	}
}

func newProjectMethylateCmd(e *env) *cobra.Command {
	var (
		top, bottom string
		cpg         bool
	)
	cmd := &cobra.Command{
		Use:   "methylate <project>",
		Short: "Toggle methylation on index ranges",
		Long: `Toggle methylation on index ranges.

Every index in --top / --bottom flips between methylated and unmethylated.
--cpg marks all CpGs methylated on both strands.`,
		Example: "  bsprimer project methylate demo --top 3,10-12\n  bsprimer project methylate demo --cpg",
		Args:    nArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := parseSpans(top)
			if err != nil {
				return usageError{fmt.Errorf("--top: %w", err)}
			}
			bs, err := parseSpans(bottom)
			if err != nil {
				return usageError{fmt.Errorf("--bottom: %w", err)}
			}
			if len(ts) == 0 && len(bs) == 0 && !cpg {
				return usageError{fmt.Errorf("nothing to do: give --top, --bottom or --cpg")}
			}
			return e.edit(cmd, args[0], func(p *project.Project) error {
				for _, s := range ts {
					p.ToggleMethylation(false, s.lo, s.hi)
				}
				for _, s := range bs {
					p.ToggleMethylation(true, s.lo, s.hi)
				}
				if cpg {
					p.MethylateCpGs()
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&top, "top", "", "top-strand index ranges to toggle")
	cmd.Flags().StringVar(&bottom, "bottom", "", "bottom-strand index ranges to toggle")
	cmd.Flags().BoolVar(&cpg, "cpg", false, "methylate every CpG on both strands")
	return cmd
}

func newProjectSettingsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings <project>",
		Short:   "Replace the reaction settings with the current configuration",
		Example: "  bsprimer project settings demo --na 50mM --mg 3mM",
		Args:    nArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.cfg.Settings()
			if err != nil {
				return usageError{err}
			}
			return e.edit(cmd, args[0], func(p *project.Project) error {
				p.Settings = s
				return nil
			})
		},
	}
	addSettingsFlags(cmd)
	return cmd
}

func newProjectAddPrimerCmd(e *env) *cobra.Command {
	var (
		name, on string
		start    int
		mgb      bool
	)
	cmd := &cobra.Command{
		Use:   "add-primer <project> <seq>",
		Short: "Place a primer on a strand",
		Long: `Place a primer on a strand.

The sequence is written as the strand displays it: on R, CTOT and OB that
is 3'->5' left to right. --start is the strand index of the first binding
base.`,
		Example: "  bsprimer project add-primer demo 'ttgAtttgtTgg' --strand OT --start 120 --name fwd",
		Args:    nArgs(2, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := strand.ParseType(on)
			if err != nil {
				return usageError{err}
			}
			return e.edit(cmd, args[0], func(p *project.Project) error {
				rec, err := p.AddPrimer(name, args[1], t, start, mgb)
				if err != nil {
					return usageError{err}
				}
				logger.Debug("primer added", zap.String("id", rec.ID), zap.String("name", rec.Name))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "primer name (default <strand>_<start>)")
	cmd.Flags().StringVar(&on, "strand", "OT", "strand the primer sits on")
	cmd.Flags().IntVar(&start, "start", 0, "strand index of the first binding base")
	cmd.Flags().BoolVar(&mgb, "mgb", false, "primer carries a minor groove binder")
	return cmd
}

func newProjectRmPrimerCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-primer <project> <primer>",
		Short: "Remove a primer by ID or name",
		Args:  nArgs(2, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.edit(cmd, args[0], func(p *project.Project) error {
				return p.RemovePrimer(args[1])
			})
		},
	}
}

func newProjectCheckCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "check <project>",
		Short: "Score every primer: Tm, mismatches, self dimer, hairpin, cross dimers",
		Args:  nArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return e.withStore(ctx, func(st *project.Store) error {
				p, err := st.Load(ctx, args[0])
				if err != nil {
					return err
				}
				rep := p.Check(e.cfg.Params(), e.cfg.Scoring())
				for name, why := range rep.Invalid {
					logger.Warn("primer skipped", zap.String("primer", name), zap.String("reason", why))
				}
				return e.emit(writers.Check, checkV1(p, rep))
			})
		},
	}
}

func newProjectDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project>",
		Short: "Delete a project",
		Args:  nArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return e.withStore(ctx, func(st *project.Store) error {
				if err := st.Delete(ctx, args[0]); err != nil {
					return err
				}
				logger.Info("project deleted", zap.String("project", args[0]))
				return nil
			})
		},
	}
}
