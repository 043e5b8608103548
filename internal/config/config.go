// Package config is for app wide settings that are unmarshalled from Viper.
// Sources, lowest precedence first: built-in defaults, bsprimer.yaml,
// BSPRIMER_* environment (a local .env is loaded into the environment
// first), then bound command line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bsprimer-core/structure"
	"bsprimer-core/thermo"
)

// EnvPrefix prefixes every environment override, e.g. BSPRIMER_THERMO_NA.
const EnvPrefix = "BSPRIMER"

// ThermoConfig are reaction conditions as human-typed concentrations.
type ThermoConfig struct {
	// oligo concentration, bare numbers are µM
	OligoConc string `mapstructure:"oligo-conc"`

	// monovalent cations, bare numbers are mM
	Na string `mapstructure:"na"`

	// Mg2+, bare numbers are mM
	Mg string `mapstructure:"mg"`

	// total dNTP, bare numbers are mM
	DNTP string `mapstructure:"dntp"`
}

// CalibrationConfig overrides the empirical thermodynamic constants.
type CalibrationConfig struct {
	InitDH         float64 `mapstructure:"init-dh"`
	InitDS         float64 `mapstructure:"init-ds"`
	TermATDH       float64 `mapstructure:"term-at-dh"`
	TermATDS       float64 `mapstructure:"term-at-ds"`
	TermMismDH     float64 `mapstructure:"term-mismatch-dh"`
	TermMismDS     float64 `mapstructure:"term-mismatch-ds"`
	MismDH         float64 `mapstructure:"mismatch-dh"`
	MismDS         float64 `mapstructure:"mismatch-ds"`
	LNAGCBoost     float64 `mapstructure:"lna-gc-boost"`
	LNAATBoost     float64 `mapstructure:"lna-at-boost"`
	LNARefLength   int     `mapstructure:"lna-ref-length"`
	LNAMismPenalty float64 `mapstructure:"lna-mismatch-penalty"`
	MGBBoostAT     float64 `mapstructure:"mgb-boost-at"`
	MGBBoostGC     float64 `mapstructure:"mgb-boost-gc"`
}

// StructureConfig are the dimer and hairpin scoring constants.
type StructureConfig struct {
	PairDG         float64 `mapstructure:"pair-dg"`
	MismatchDG     float64 `mapstructure:"mismatch-dg"`
	MinPairs       int     `mapstructure:"min-pairs"`
	HairpinGCDG    float64 `mapstructure:"hairpin-gc-dg"`
	HairpinATDG    float64 `mapstructure:"hairpin-at-dg"`
	LoopBaseDG     float64 `mapstructure:"loop-base-dg"`
	LoopShortSlope float64 `mapstructure:"loop-short-slope"`
	LoopLongSlope  float64 `mapstructure:"loop-long-slope"`
	LoopKnee       int     `mapstructure:"loop-knee"`
	MinStem        int     `mapstructure:"min-stem"`
	MaxStem        int     `mapstructure:"max-stem"`
	MinLoop        int     `mapstructure:"min-loop"`
	MaxLoop        int     `mapstructure:"max-loop"`
	MaxEndOffset   int     `mapstructure:"max-end-offset"`
}

// SearchConfig are defaults for the degenerate search.
type SearchConfig struct {
	MaxMismatches int `mapstructure:"max-mismatches"`
}

// StoreConfig locates the project database.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the root-level settings struct.
type Config struct {
	Thermo      ThermoConfig
	Calibration CalibrationConfig
	Structure   StructureConfig
	Search      SearchConfig
	Store       StoreConfig
	Log         LogConfig

	// File is the settings file that was read, empty when none was.
	File string `mapstructure:"-"`
}

// Defaults installs the shipped values on v.
func Defaults(v *viper.Viper) {
	s := thermo.DefaultSettings
	v.SetDefault("thermo.oligo-conc", fmt.Sprintf("%guM", s.OligoConcUM))
	v.SetDefault("thermo.na", fmt.Sprintf("%gmM", s.NaMM))
	v.SetDefault("thermo.mg", fmt.Sprintf("%gmM", s.MgMM))
	v.SetDefault("thermo.dntp", fmt.Sprintf("%gmM", s.DNTPMM))

	p := thermo.DefaultParams
	v.SetDefault("calibration.init-dh", p.InitDH)
	v.SetDefault("calibration.init-ds", p.InitDS)
	v.SetDefault("calibration.term-at-dh", p.TermATDH)
	v.SetDefault("calibration.term-at-ds", p.TermATDS)
	v.SetDefault("calibration.term-mismatch-dh", p.TermMismDH)
	v.SetDefault("calibration.term-mismatch-ds", p.TermMismDS)
	v.SetDefault("calibration.mismatch-dh", p.MismDH)
	v.SetDefault("calibration.mismatch-ds", p.MismDS)
	v.SetDefault("calibration.lna-gc-boost", p.LNAGCBoost)
	v.SetDefault("calibration.lna-at-boost", p.LNAATBoost)
	v.SetDefault("calibration.lna-ref-length", p.LNARefLength)
	v.SetDefault("calibration.lna-mismatch-penalty", p.LNAMismPenalty)
	v.SetDefault("calibration.mgb-boost-at", p.MGBBoostAT)
	v.SetDefault("calibration.mgb-boost-gc", p.MGBBoostGC)

	sc := structure.DefaultScoring
	v.SetDefault("structure.pair-dg", sc.PairDG)
	v.SetDefault("structure.mismatch-dg", sc.MismatchDG)
	v.SetDefault("structure.min-pairs", sc.MinPairs)
	v.SetDefault("structure.hairpin-gc-dg", sc.HairpinGCDG)
	v.SetDefault("structure.hairpin-at-dg", sc.HairpinATDG)
	v.SetDefault("structure.loop-base-dg", sc.LoopBaseDG)
	v.SetDefault("structure.loop-short-slope", sc.LoopShortSlope)
	v.SetDefault("structure.loop-long-slope", sc.LoopLongSlope)
	v.SetDefault("structure.loop-knee", sc.LoopKnee)
	v.SetDefault("structure.min-stem", sc.MinStem)
	v.SetDefault("structure.max-stem", sc.MaxStem)
	v.SetDefault("structure.min-loop", sc.MinLoop)
	v.SetDefault("structure.max-loop", sc.MaxLoop)
	v.SetDefault("structure.max-end-offset", sc.MaxEndOffset)

	v.SetDefault("search.max-mismatches", 0)
	v.SetDefault("store.path", "bsprimer.db")
	v.SetDefault("log.level", "info")
}

// LoadDotEnv loads .env files (default ./.env) into the environment without
// overriding variables already set. A missing file is not an error; loaded
// reports whether anything was read.
func LoadDotEnv(filenames ...string) (loaded bool, err error) {
	err = godotenv.Load(filenames...)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("load .env: %w", err)
	}
	return true, nil
}

// Load builds a Config; call LoadDotEnv first so .env values are visible.
// path names an explicit settings file; when empty an optional bsprimer.yaml
// in the working directory is used. flags maps config keys to command line
// flags that override every other source when set.
func Load(path string, flags map[string]*pflag.Flag) (Config, error) {
	v := viper.New()
	Defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("bsprimer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}
	for key, f := range flags {
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}
	c.File = v.ConfigFileUsed()
	return c, nil
}

// Default is the Config produced by defaults alone.
func Default() Config {
	v := viper.New()
	Defaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Settings converts the concentration strings to thermo.Settings.
func (c Config) Settings() (thermo.Settings, error) {
	var s thermo.Settings
	conv := []struct {
		key  string
		raw  string
		unit float64
		dst  *float64
	}{
		{"thermo.oligo-conc", c.Thermo.OligoConc, thermo.MicroMolar, &s.OligoConcUM},
		{"thermo.na", c.Thermo.Na, thermo.MilliMolar, &s.NaMM},
		{"thermo.mg", c.Thermo.Mg, thermo.MilliMolar, &s.MgMM},
		{"thermo.dntp", c.Thermo.DNTP, thermo.MilliMolar, &s.DNTPMM},
	}
	for _, x := range conv {
		if strings.TrimSpace(x.raw) == "" {
			continue
		}
		m, err := thermo.ParseConc(x.raw, x.unit)
		if err != nil {
			return thermo.Settings{}, fmt.Errorf("%s: %w", x.key, err)
		}
		*x.dst = math.Round(m/x.unit*1e9) / 1e9
	}
	return s, nil
}

// Params returns the thermodynamic calibration.
func (c Config) Params() thermo.Params {
	k := c.Calibration
	return thermo.Params{
		InitDH: k.InitDH, InitDS: k.InitDS,
		TermATDH: k.TermATDH, TermATDS: k.TermATDS,
		TermMismDH: k.TermMismDH, TermMismDS: k.TermMismDS,
		MismDH: k.MismDH, MismDS: k.MismDS,

		LNAGCBoost:     k.LNAGCBoost,
		LNAATBoost:     k.LNAATBoost,
		LNARefLength:   k.LNARefLength,
		LNAMismPenalty: k.LNAMismPenalty,
		MGBBoostAT:     k.MGBBoostAT,
		MGBBoostGC:     k.MGBBoostGC,
	}
}

// Scoring returns the structure scoring constants.
func (c Config) Scoring() structure.Scoring {
	k := c.Structure
	return structure.Scoring{
		PairDG:     k.PairDG,
		MismatchDG: k.MismatchDG,
		MinPairs:   k.MinPairs,

		HairpinGCDG:    k.HairpinGCDG,
		HairpinATDG:    k.HairpinATDG,
		LoopBaseDG:     k.LoopBaseDG,
		LoopShortSlope: k.LoopShortSlope,
		LoopLongSlope:  k.LoopLongSlope,
		LoopKnee:       k.LoopKnee,

		MinStem: k.MinStem, MaxStem: k.MaxStem,
		MinLoop: k.MinLoop, MaxLoop: k.MaxLoop,
		MaxEndOffset: k.MaxEndOffset,
	}
}
