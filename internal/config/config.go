// Package config handles command-line and environment configuration for the
// estimator front ends.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/cicalc/internal/errors"
	"github.com/agbru/cicalc/internal/estimate"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "CICALC_"

// Default values for flags that do not come from the estimator itself.
const (
	DefaultShutdownTimeout = 10 * time.Second
	DefaultLogLevel        = "info"
)

// SupportedShells lists the shells accepted by --completion.
var SupportedShells = []string{"bash", "zsh", "fish"}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Population is the population size N.
	Population int64
	// Sample is the sample size n.
	Sample int64
	// Percentage is the observed percentage in [0, 100].
	Percentage float64
	// Levels are confidence levels reported in addition to 95% and 75%.
	Levels []float64
	// OutputFile is the path to save the report (empty for no file output).
	OutputFile string
	// JSON prints the result as JSON instead of text.
	JSON bool
	// Quiet suppresses the configuration header.
	Quiet bool
	// NoColor disables ANSI colors.
	NoColor bool
	// TUI launches the interactive dashboard.
	TUI bool
	// Interactive launches the line-oriented REPL.
	Interactive bool
	// Serve is the listen address of the browser front end (empty disables it).
	Serve string
	// ShutdownTimeout bounds the graceful shutdown of the server.
	ShutdownTimeout time.Duration
	// Completion selects a shell for completion script generation.
	Completion string
	// LogLevel is the zerolog level name.
	LogLevel string
}

// Default returns the configuration used when no flag or variable is set.
func Default() AppConfig {
	return AppConfig{
		Population:      estimate.DefaultPopulation,
		Sample:          estimate.DefaultSample,
		Percentage:      estimate.DefaultPercentage,
		ShutdownTimeout: DefaultShutdownTimeout,
		LogLevel:        DefaultLogLevel,
	}
}

// interactiveMode reports whether the inputs can be edited after startup, in
// which case the sample size is clamped rather than rejected.
func (c AppConfig) interactiveMode() bool {
	return c.TUI || c.Interactive || c.Serve != ""
}

// ToInput converts the configuration into estimator input.
func (c AppConfig) ToInput() estimate.Input {
	return estimate.Input{
		PopulationSize: c.Population,
		SampleSize:     c.Sample,
		Proportion:     c.Percentage / 100,
	}
}

// ParseConfig parses command-line arguments, applies environment overrides
// and validates the result.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The command-line arguments (without the program name).
//   - errorWriter: The writer for usage and parse errors.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when --help was requested, a ConfigError or a
//     ValidationError otherwise.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	cfg := Default()
	var levels string

	fs.Int64Var(&cfg.Population, "N", cfg.Population, "Total population size.")
	fs.Int64Var(&cfg.Population, "population", cfg.Population, "Total population size (alias for -N).")
	fs.Int64Var(&cfg.Sample, "n", cfg.Sample, "Sample size (must not exceed the population).")
	fs.Int64Var(&cfg.Sample, "sample", cfg.Sample, "Sample size (alias for -n).")
	fs.Float64Var(&cfg.Percentage, "p", cfg.Percentage, "Observed percentage in [0, 100].")
	fs.Float64Var(&cfg.Percentage, "percent", cfg.Percentage, "Observed percentage (alias for -p).")
	fs.StringVar(&levels, "levels", "", "Extra confidence levels, comma-separated (e.g. \"0.9,0.99\").")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write the report to this file.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the report to this file (alias for -o).")
	fs.BoolVar(&cfg.JSON, "json", false, "Print the result as JSON.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode: print only the result lines.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Quiet mode (alias for -q).")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Launch the interactive dashboard.")
	fs.BoolVar(&cfg.Interactive, "i", false, "Start the interactive prompt.")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Start the interactive prompt (alias for -i).")
	fs.StringVar(&cfg.Serve, "serve", "", "Serve the browser calculator on this address (e.g. \":8080\").")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown budget for --serve.")
	fs.StringVar(&cfg.Completion, "completion", "", "Generate a completion script (bash, zsh, fish).")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error).")

	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorWriter, "Computes the standard error and 95%%/75%% confidence intervals of a\n")
		fmt.Fprintf(errorWriter, "proportion sampled from a finite population.\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEnvironment variables (prefix %s) override defaults; flags override both.\n", EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%s", err.Error())
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&cfg, fs)
	if !isFlagSet(fs, "levels") {
		levels = getEnvString("LEVELS", levels)
	}

	parsed, err := ParseLevels(levels)
	if err != nil {
		return AppConfig{}, err
	}
	cfg.Levels = parsed

	if cfg.interactiveMode() {
		cfg.Sample = estimate.ClampSample(cfg.Sample, cfg.Population)
	}

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// ParseLevels parses a comma-separated list of confidence levels. Each level
// may be a fraction ("0.9") or a percentage ("90%").
func ParseLevels(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var levels []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		percent := strings.HasSuffix(part, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(part, "%"), 64)
		if err != nil {
			return nil, apperrors.NewConfigError("invalid confidence level %q", part)
		}
		if percent {
			v /= 100
		}
		if math.IsNaN(v) || v <= 0 || v >= 1 {
			return nil, apperrors.NewConfigError("confidence level %q must lie strictly between 0 and 1", part)
		}
		levels = append(levels, v)
	}
	return levels, nil
}

// Validate checks the configuration for consistency. Estimator inputs are
// checked by estimate.Validate, so out-of-domain values surface as
// ValidationErrors; the other checks return ConfigErrors.
func (c AppConfig) Validate() error {
	if c.Completion != "" {
		if !isSupportedShell(c.Completion) {
			return apperrors.NewConfigError("unsupported shell %q (accepted values: %s)", c.Completion, strings.Join(SupportedShells, ", "))
		}
		return nil
	}

	modes := 0
	for _, on := range []bool{c.TUI, c.Interactive, c.Serve != ""} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--tui, --interactive and --serve are mutually exclusive")
	}
	if c.Serve != "" && c.ShutdownTimeout <= 0 {
		return apperrors.NewConfigError("--shutdown-timeout must be positive, got %s", c.ShutdownTimeout)
	}

	if _, err := estimate.ProportionFromPercentage(c.Percentage); err != nil {
		return err
	}
	return estimate.Validate(c.ToInput())
}

func isSupportedShell(shell string) bool {
	for _, s := range SupportedShells {
		if s == shell {
			return true
		}
	}
	return false
}
