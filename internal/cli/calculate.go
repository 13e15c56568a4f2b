package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/cicalc/internal/config"
	"github.com/agbru/cicalc/internal/format"
	"github.com/agbru/cicalc/internal/ui"
)

// PrintExecutionConfig displays the inputs of the estimate about to be
// computed: population, sample, observed percentage and confidence levels.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Estimate Configuration ---\n")
	fmt.Fprintf(out, "Population: %s%d%s, sample: %s%d%s (%s of the population).\n",
		ui.ColorValue(), cfg.Population, ui.ColorReset(),
		ui.ColorValue(), cfg.Sample, ui.ColorReset(),
		format.FormatPercent(float64(cfg.Sample)/float64(cfg.Population)))
	fmt.Fprintf(out, "Observed percentage: %s%s%%%s.\n",
		ui.ColorValue(), trimFloat(cfg.Percentage), ui.ColorReset())
	fmt.Fprintf(out, "Confidence levels: %s%s%s.\n",
		ui.ColorMuted(), levelList(cfg.Levels), ui.ColorReset())
	fmt.Fprintln(out)
}

// levelList returns the reported levels, the fixed 95% and 75% first.
func levelList(extra []float64) string {
	names := []string{"95%", "75%"}
	for _, l := range extra {
		names = append(names, format.FormatLevel(l))
	}
	return strings.Join(names, ", ")
}
