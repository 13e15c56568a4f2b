// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayResultWithConfig].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatResultText].
//
//   - Write* functions write data to files or writers in a machine format.
//     Examples: [WriteResultToFile], [WriteResultJSON].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/cicalc/internal/estimate"
	"github.com/agbru/cicalc/internal/format"
	"github.com/agbru/cicalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the report (empty for no file output).
	OutputFile string
	// Quiet mode suppresses the confirmation messages.
	Quiet bool
	// JSON prints the result as a JSON document.
	JSON bool
}

// FormatResultText returns the plain result lines joined by newlines, with a
// trailing newline.
func FormatResultText(r estimate.Result) string {
	return strings.Join(format.ResultLines(r), "\n") + "\n"
}

// DisplayResult writes the standard error line followed by one line per
// confidence interval, colorized with the active theme.
//
// Parameters:
//   - out: The output writer.
//   - r: The computed estimate.
func DisplayResult(out io.Writer, r estimate.Result) {
	fmt.Fprintf(out, "%sStandard Error:%s %s%s%s\n",
		ui.ColorLabel(), ui.ColorReset(),
		ui.ColorValue(), format.FormatStandardError(r.StandardError), ui.ColorReset())
	for _, iv := range r.Intervals() {
		fmt.Fprintf(out, "%s%s Confidence Interval (Z-score = %s):%s %s%s%s\n",
			ui.ColorLabel(), format.FormatLevel(iv.Level), format.FormatZ(iv.Z), ui.ColorReset(),
			ui.ColorForLevel(iv.Level), format.FormatInterval(iv), ui.ColorReset())
	}
}

// WriteResultJSON encodes the result as indented JSON.
func WriteResultJSON(out io.Writer, r estimate.Result) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// WriteResultToFile writes a report to config.OutputFile, creating parent
// directories as needed. It writes nothing when OutputFile is empty.
//
// Parameters:
//   - r: The computed estimate.
//   - duration: The computation duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(r estimate.Result, duration time.Duration, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if config.JSON {
		return WriteResultJSON(file, r)
	}

	fmt.Fprintf(file, "# Confidence Interval Estimate\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Duration: %s\n", format.FormatExecutionDuration(duration))
	fmt.Fprintf(file, "# Population: %d\n", r.PopulationSize)
	fmt.Fprintf(file, "# Sample: %d\n", r.SampleSize)
	fmt.Fprintf(file, "# Proportion: %s\n", trimFloat(r.Proportion))
	fmt.Fprintf(file, "\n")
	if _, err := fmt.Fprint(file, FormatResultText(r)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayResultWithConfig displays a result with the given output
// configuration and saves it to a file when requested.
//
// Returns:
//   - error: An error if encoding or file output fails.
func DisplayResultWithConfig(out io.Writer, r estimate.Result, duration time.Duration, config OutputConfig) error {
	if config.JSON {
		if err := WriteResultJSON(out, r); err != nil {
			return err
		}
	} else {
		DisplayResult(out, r)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(r, duration, config); err != nil {
			return err
		}
		if !config.Quiet && !config.JSON {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s\n",
				ui.ColorValue(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}

func trimFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
