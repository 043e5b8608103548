// Package app is the bsprimer command tree.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"bsprimer/internal/config"
	"bsprimer/internal/logger"
	"bsprimer/internal/writers"
)

// Version is stamped at build time.
var Version = "0.1.0"

// flagKeys binds config keys to the flag names that override them.
var flagKeys = map[string]string{
	"thermo.oligo-conc":     "oligo-conc",
	"thermo.na":             "na",
	"thermo.mg":             "mg",
	"thermo.dntp":           "dntp",
	"search.max-mismatches": "mismatches",
	"store.path":            "db",
	"log.level":             "log-level",
}

// usageError marks bad invocations (exit code 2).
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// env is the state shared by every command of one invocation.
type env struct {
	stdout, stderr io.Writer

	configPath string
	logLevel   string
	output     string

	cfg config.Config
}

// RunContext executes argv and returns the process exit code: 0 ok,
// 1 error, 2 usage, 3 output failure, 130 cancelled.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(argv)
	err := root.ExecuteContext(ctx)
	_ = logger.Sync()

	var ue usageError
	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		_, _ = fmt.Fprintln(stderr, "cancelled")
		return 130
	case err == nil:
		return 0
	case writers.IsBrokenPipe(err):
		return 0
	case errors.As(err, &ue):
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		_, _ = fmt.Fprintln(stderr, "run with --help for usage")
		return 2
	case errors.Is(err, errOutput):
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 3
	default:
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

// NewRootCmd builds a fresh command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	e := &env{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "bsprimer",
		Short: "Design and check primers against bisulfite-converted DNA",
		Long: `Design and check primers against bisulfite-converted DNA.

A top-strand sequence and the methylated cytosines on each strand give six
strands: F and R (unconverted), OT and CTOT (original top, converted, and its
complement), OB and CTOB (original bottom, converted, and its complement).
Primers are placed on one of them and scored for melting temperature,
dimers and hairpins.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := root.PersistentFlags()
	pf.StringVar(&e.configPath, "config", "", "settings file (default ./bsprimer.yaml if present)")
	pf.StringVar(&e.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVarP(&e.output, "output", "o", "text", "output format: text, json (search also: pretty)")

	root.AddCommand(
		newStrandsCmd(e),
		newThermoCmd(e),
		newDimerCmd(e),
		newHairpinCmd(e),
		newSearchCmd(e),
		newProjectCmd(e),
	)
	return root
}

// setup loads configuration and starts the logger for the command about to
// run. .env problems are reported once the logger exists.
func (e *env) setup(cmd *cobra.Command) error {
	dotenv, dotenvErr := config.LoadDotEnv()

	flags := map[string]*pflag.Flag{}
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			flags[key] = f
		}
	}
	cfg, err := config.Load(e.configPath, flags)
	if err != nil {
		return err
	}
	e.cfg = cfg

	lvl, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return usageError{fmt.Errorf("--log-level: %w", err)}
	}
	logger.Init(lvl, e.stderr)

	switch {
	case dotenvErr != nil:
		logger.Warn("failed to load .env", zap.Error(dotenvErr))
	case !dotenv:
		logger.Debug("no .env found, using local environment")
	}
	if cfg.File != "" {
		logger.Debug("config file loaded", zap.String("path", cfg.File))
	}
	logger.Debug("command start", zap.String("cmd", cmd.CommandPath()), zap.String("output", e.output))
	return nil
}

var errOutput = errors.New("write output")

// emit renders payload through the writers registry into a buffered stdout.
func (e *env) emit(kind writers.Kind, payload any) error {
	outw := bufio.NewWriter(e.stdout)
	err := writers.Quiet(writers.Write(kind, e.output, outw, payload))
	if err == nil {
		err = writers.Quiet(outw.Flush())
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, writers.ErrUnknownFormat):
		return usageError{err}
	}
	return fmt.Errorf("%w: %v", errOutput, err)
}

// nArgs is cobra.ExactArgs / RangeArgs with usage errors.
func nArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || (hi >= 0 && len(args) > hi) {
			switch {
			case lo == hi:
				return usageError{fmt.Errorf("%s: want %d argument(s), got %d", cmd.Name(), lo, len(args))}
			case hi < 0:
				return usageError{fmt.Errorf("%s: want at least %d argument(s), got %d", cmd.Name(), lo, len(args))}
			}
			return usageError{fmt.Errorf("%s: want %d to %d arguments, got %d", cmd.Name(), lo, hi, len(args))}
		}
		return nil
	}
}
