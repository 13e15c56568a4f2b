// Package cli provides the one-shot output, the interactive prompt and the
// shell completion scripts of the estimator.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agbru/cicalc/internal/config"
	"github.com/agbru/cicalc/internal/estimate"
	"github.com/agbru/cicalc/internal/format"
	"github.com/agbru/cicalc/internal/ui"
)

// REPLConfig holds the initial inputs of a REPL session.
type REPLConfig struct {
	Population int64
	Sample     int64
	Percentage float64
	Levels     []float64
}

// REPLConfigFrom builds a REPLConfig from the application configuration.
func REPLConfigFrom(cfg config.AppConfig) REPLConfig {
	return REPLConfig{
		Population: cfg.Population,
		Sample:     cfg.Sample,
		Percentage: cfg.Percentage,
		Levels:     append([]float64(nil), cfg.Levels...),
	}
}

// REPL is an interactive estimator session. Every accepted change to an
// input recomputes and prints the result.
type REPL struct {
	population int64
	sample     int64
	percentage float64
	levels     []float64
	in         io.Reader
	out        io.Writer
}

// NewREPL creates a new REPL instance. The sample is clamped to the
// population.
func NewREPL(config REPLConfig) *REPL {
	return &REPL{
		population: config.Population,
		sample:     estimate.ClampSample(config.Sample, config.Population),
		percentage: config.Percentage,
		levels:     config.Levels,
		in:         os.Stdin,
		out:        os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive session. It prints the initial result, then
// reads commands until the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)
	r.recompute()

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorLabel()+"ci> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if line := strings.TrimSpace(input); line != "" && !r.processCommand(line) {
					return
				}
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorError(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorLabel(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sConfidence Interval Calculator - Interactive%s         %s║%s\n",
		ui.ColorLabel(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorLabel(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorLabel(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %spopulation <N>%s - Set the population size (alias: pop)\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %ssample <n>%s     - Set the sample size (alias: n)\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %spercent <p>%s    - Set the observed percentage (alias: pct)\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<p>%s            - Same as percent <p>\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slevel <l>%s      - Add a confidence level (0.9 or 90%%)\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slevels%s         - Remove the extra confidence levels\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sshow%s           - Display the current result\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s         - Display the current inputs\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s           - Display this help\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s    - Exit interactive mode\n", ui.ColorWarning(), ui.ColorReset(), ui.ColorWarning(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "population", "pop":
		r.cmdPopulation(args)
	case "sample", "n":
		r.cmdSample(args)
	case "percent", "pct", "p":
		r.cmdPercent(args)
	case "level", "l":
		r.cmdLevel(args)
	case "levels":
		r.levels = nil
		r.recompute()
	case "show", "s":
		r.recompute()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorValue(), ui.ColorReset())
		return false
	default:
		if pct, err := strconv.ParseFloat(strings.TrimSuffix(cmd, "%"), 64); err == nil {
			r.setPercent(pct)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorError(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorWarning(), ui.ColorReset())
		}
	}

	return true
}

// parseSize parses a size argument, printing usage on failure.
func (r *REPL) parseSize(cmd string, args []string) (int64, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s <number>%s\n", ui.ColorError(), cmd, ui.ColorReset())
		return 0, false
	}
	v, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorError(), args[0], ui.ColorReset())
		return 0, false
	}
	return v, true
}

// cmdPopulation handles the "population" command. A population smaller than
// the sample clamps the sample.
func (r *REPL) cmdPopulation(args []string) {
	v, ok := r.parseSize("population", args)
	if !ok {
		return
	}
	if v < 2 {
		fmt.Fprintf(r.out, "%sPopulation size must be at least 2.%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	r.population = v
	if clamped := estimate.ClampSample(r.sample, v); clamped != r.sample {
		r.sample = clamped
		fmt.Fprintf(r.out, "%sSample reduced to %d.%s\n", ui.ColorWarning(), clamped, ui.ColorReset())
	}
	r.recompute()
}

// cmdSample handles the "sample" command. Values above the population are
// clamped.
func (r *REPL) cmdSample(args []string) {
	v, ok := r.parseSize("sample", args)
	if !ok {
		return
	}
	if v < 2 {
		fmt.Fprintf(r.out, "%sSample size must be greater than 1.%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	if clamped := estimate.ClampSample(v, r.population); clamped != v {
		v = clamped
		fmt.Fprintf(r.out, "%sSample limited to the population (%d).%s\n", ui.ColorWarning(), clamped, ui.ColorReset())
	}
	r.sample = v
	r.recompute()
}

// cmdPercent handles the "percent" command.
func (r *REPL) cmdPercent(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: percent <0-100>%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	pct, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "%"), 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorError(), args[0], ui.ColorReset())
		return
	}
	r.setPercent(pct)
}

func (r *REPL) setPercent(pct float64) {
	if _, err := estimate.ProportionFromPercentage(pct); err != nil {
		fmt.Fprintf(r.out, "%sPercentage must lie between 0 and 100.%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	r.percentage = pct
	r.recompute()
}

// cmdLevel handles the "level" command.
func (r *REPL) cmdLevel(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: level <0.9 | 90%%>%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	levels, err := config.ParseLevels(strings.Join(args, ","))
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorError(), err, ui.ColorReset())
		return
	}
	added := 0
	for _, l := range levels {
		if estimate.IsReportedLevel(l, r.levels) {
			fmt.Fprintf(r.out, "%s%s is already reported.%s\n", ui.ColorWarning(), format.FormatLevel(l), ui.ColorReset())
			continue
		}
		r.levels = append(r.levels, l)
		added++
	}
	if added > 0 {
		r.recompute()
	}
}

// recompute evaluates the estimate for the current inputs and prints it.
func (r *REPL) recompute() {
	res, err := estimate.ComputeLevels(r.input(), r.levels)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid input: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		return
	}
	DisplayResult(r.out, res)
	fmt.Fprintln(r.out)
}

func (r *REPL) input() estimate.Input {
	return estimate.Input{
		PopulationSize: r.population,
		SampleSize:     r.sample,
		Proportion:     r.percentage / 100,
	}
}

// cmdStatus displays the current inputs.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent inputs:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Population:  %s%d%s\n", ui.ColorValue(), r.population, ui.ColorReset())
	fmt.Fprintf(r.out, "  Sample:      %s%d%s\n", ui.ColorValue(), r.sample, ui.ColorReset())
	fmt.Fprintf(r.out, "  Percentage:  %s%s%%%s\n", ui.ColorValue(), trimFloat(r.percentage), ui.ColorReset())
	fmt.Fprintf(r.out, "  Levels:      %s%s%s\n", ui.ColorValue(), levelList(r.levels), ui.ColorReset())
	fmt.Fprintln(r.out)
}
