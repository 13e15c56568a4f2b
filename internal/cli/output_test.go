package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/cicalc/internal/errors"
	"github.com/agbru/cicalc/internal/estimate"
)

const defaultResultText = `Standard Error: 0.0475
95% Confidence Interval (Z-score = 1.96): (Low: 40.70%, High: 59.30%)
75% Confidence Interval (Z-score = 1.15): (Low: 44.54%, High: 55.46%)
`

func mustCompute(t *testing.T, n int64, p float64, population int64, levels ...float64) estimate.Result {
	t.Helper()
	r, err := estimate.ComputeLevels(estimate.Input{PopulationSize: population, SampleSize: n, Proportion: p}, levels)
	if err != nil {
		t.Fatalf("ComputeLevels() error = %v", err)
	}
	return r
}

func TestDisplayResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayResult(&buf, mustCompute(t, 100, 0.5, 1000))
	if buf.String() != defaultResultText {
		t.Errorf("DisplayResult() =\n%s\nwant\n%s", buf.String(), defaultResultText)
	}
	if got := FormatResultText(mustCompute(t, 100, 0.5, 1000)); got != defaultResultText {
		t.Errorf("FormatResultText() =\n%s", got)
	}
}

func TestDisplayResultExtraLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayResult(&buf, mustCompute(t, 100, 0.5, 1000, 0.99))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[3], "99% Confidence Interval (Z-score = 2.5758): ") {
		t.Errorf("extra level line = %q", lines[3])
	}
}

func TestWriteResultJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := WriteResultJSON(&buf, mustCompute(t, 100, 0.5, 1000)); err != nil {
		t.Fatalf("WriteResultJSON() error = %v", err)
	}
	var doc struct {
		Population    int64   `json:"population"`
		Sample        int64   `json:"sample"`
		Proportion    float64 `json:"proportion"`
		StandardError float64 `json:"standard_error"`
		Intervals     []struct {
			Level float64 `json:"level"`
			Z     float64 `json:"z"`
		} `json:"intervals"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if doc.Population != 1000 || doc.Sample != 100 || doc.Proportion != 0.5 {
		t.Errorf("unexpected inputs in JSON: %+v", doc)
	}
	if len(doc.Intervals) != 2 || doc.Intervals[0].Z != 1.96 || doc.Intervals[1].Z != 1.15 {
		t.Errorf("unexpected intervals in JSON: %+v", doc.Intervals)
	}
}

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	result := mustCompute(t, 100, 0.5, 1000)

	testCases := []struct {
		name      string
		config    OutputConfig
		checkFunc func(t *testing.T, filePath string)
	}{
		{
			name:   "Write text report to file",
			config: OutputConfig{OutputFile: filepath.Join(tmpDir, "result.txt")},
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatalf("Failed to read output file: %v", err)
				}
				s := string(content)
				if !strings.Contains(s, "# Population: 1000") || !strings.Contains(s, "# Proportion: 0.5") {
					t.Errorf("File should contain the input header, got:\n%s", s)
				}
				if !strings.HasSuffix(s, defaultResultText) {
					t.Errorf("File should end with the result lines, got:\n%s", s)
				}
			},
		},
		{
			name:   "Write JSON report to file",
			config: OutputConfig{OutputFile: filepath.Join(tmpDir, "result.json"), JSON: true},
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatalf("Failed to read output file: %v", err)
				}
				if !json.Valid(content) {
					t.Errorf("File should contain valid JSON, got %q", content)
				}
			},
		},
		{
			name:   "Create nested directory",
			config: OutputConfig{OutputFile: filepath.Join(tmpDir, "nested", "dir", "result.txt")},
			checkFunc: func(t *testing.T, filePath string) {
				if _, err := os.Stat(filePath); err != nil {
					t.Errorf("File should exist in nested directory: %v", err)
				}
			},
		},
		{
			name:   "Empty output file (no write)",
			config: OutputConfig{},
		},
	}

	for _, tc := range testCases {
		tc := tc // per-iteration copy (go 1.21 loop semantics)
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := WriteResultToFile(result, time.Millisecond, tc.config); err != nil {
				t.Fatalf("WriteResultToFile() error = %v", err)
			}
			if tc.checkFunc != nil {
				tc.checkFunc(t, tc.config.OutputFile)
			}
		})
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	result := mustCompute(t, 100, 0.5, 1000)

	t.Run("Text with file confirmation", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "out.txt")
		var buf bytes.Buffer
		if err := DisplayResultWithConfig(&buf, result, time.Millisecond, OutputConfig{OutputFile: path}); err != nil {
			t.Fatalf("DisplayResultWithConfig() error = %v", err)
		}
		if !strings.HasPrefix(buf.String(), defaultResultText) {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
		if !strings.Contains(buf.String(), "Result saved to: "+path) {
			t.Errorf("missing save confirmation:\n%s", buf.String())
		}
	})

	t.Run("Quiet hides confirmation", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "out.txt")
		var buf bytes.Buffer
		if err := DisplayResultWithConfig(&buf, result, time.Millisecond, OutputConfig{OutputFile: path, Quiet: true}); err != nil {
			t.Fatalf("DisplayResultWithConfig() error = %v", err)
		}
		if buf.String() != defaultResultText {
			t.Errorf("quiet output should only contain the result:\n%s", buf.String())
		}
	})

	t.Run("JSON output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := DisplayResultWithConfig(&buf, result, 0, OutputConfig{JSON: true}); err != nil {
			t.Fatalf("DisplayResultWithConfig() error = %v", err)
		}
		if !json.Valid(buf.Bytes()) {
			t.Errorf("expected JSON output, got %q", buf.String())
		}
	})

	t.Run("Unwritable path", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		err := DisplayResultWithConfig(&buf, result, 0, OutputConfig{OutputFile: filepath.Join(blocker, "out.txt")})
		if err == nil {
			t.Fatal("expected error when the parent path is a file")
		}
	})
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	_, err := estimate.Compute(1, 0.5, 1000)
	var buf bytes.Buffer
	code := HandleError(err, &buf)
	if code != apperrors.ExitErrorDomain {
		t.Errorf("HandleError() = %d, want %d", code, apperrors.ExitErrorDomain)
	}
	if !strings.HasPrefix(buf.String(), "Invalid input: ") {
		t.Errorf("unexpected message %q", buf.String())
	}
	if HandleError(nil, &buf) != apperrors.ExitSuccess {
		t.Error("nil error should map to success")
	}
	if HandleError(errors.New("boom"), &bytes.Buffer{}) != apperrors.ExitErrorGeneric {
		t.Error("unknown error should map to the generic code")
	}
}
