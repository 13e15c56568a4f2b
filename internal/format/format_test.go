package format

import (
	"testing"
	"time"

	"github.com/agbru/cicalc/internal/estimate"
)

func TestFormatStandardError(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		in   float64
		want string
	}{
		{0.047457899787624956, "0.0475"},
		{0.05371937772430143, "0.0537"},
		{0, "0.0000"},
		{0.5, "0.5000"},
	}
	for _, tc := range testCases {
		if got := FormatStandardError(tc.in); got != tc.want {
			t.Errorf("FormatStandardError(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		in   float64
		want string
	}{
		{0.4069825164162551, "40.70%"},
		{0.593017483583745, "59.30%"},
		{0, "0.00%"},
		{1, "100.00%"},
		{-0.1495, "-14.95%"},
	}
	for _, tc := range testCases {
		if got := FormatPercent(tc.in); got != tc.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatZAndLevel(t *testing.T) {
	t.Parallel()
	if got := FormatZ(estimate.Z95); got != "1.96" {
		t.Errorf("FormatZ(Z95) = %q", got)
	}
	if got := FormatZ(estimate.Z75); got != "1.15" {
		t.Errorf("FormatZ(Z75) = %q", got)
	}
	if got := FormatZ(2.5758293035489); got != "2.5758" {
		t.Errorf("FormatZ(z99) = %q", got)
	}

	levels := map[float64]string{0.95: "95%", 0.75: "75%", 0.999: "99.9%", 0.5: "50%"}
	for in, want := range levels {
		if got := FormatLevel(in); got != want {
			t.Errorf("FormatLevel(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestResultLines(t *testing.T) {
	t.Parallel()
	r, err := estimate.Compute(100, 0.5, 1000)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	want := []string{
		"Standard Error: 0.0475",
		"95% Confidence Interval (Z-score = 1.96): (Low: 40.70%, High: 59.30%)",
		"75% Confidence Interval (Z-score = 1.15): (Low: 44.54%, High: 55.46%)",
	}
	got := ResultLines(r)
	if len(got) != len(want) {
		t.Fatalf("ResultLines() returned %d lines, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResultLinesCensus(t *testing.T) {
	t.Parallel()
	r, err := estimate.Compute(1000, 0.5, 1000)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	got := ResultLines(r)
	if got[0] != "Standard Error: 0.0000" {
		t.Errorf("census SE line = %q", got[0])
	}
	if got[1] != "95% Confidence Interval (Z-score = 1.96): (Low: 50.00%, High: 50.00%)" {
		t.Errorf("census 95%% line = %q", got[1])
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0ns"},
		{850 * time.Nanosecond, "850ns"},
		{1500 * time.Nanosecond, "1.5\u00b5s"},
		{500 * time.Microsecond, "500.0\u00b5s"},
		{25 * time.Millisecond, "25.0ms"},
		{2*time.Second + 1234*time.Microsecond, "2.001s"},
	}
	for _, tc := range testCases {
		if got := FormatExecutionDuration(tc.in); got != tc.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
