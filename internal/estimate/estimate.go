package estimate

import (
	"encoding/json"
	"fmt"
	"math"

	apperrors "github.com/agbru/cicalc/internal/errors"
)

// Default inputs, matching the values the calculator starts with.
const (
	DefaultPopulation int64   = 1000
	DefaultSample     int64   = 100
	DefaultPercentage float64 = 50
)

// Input holds the three quantities an estimate is computed from.
type Input struct {
	// PopulationSize is N, the number of units in the population.
	PopulationSize int64 `json:"population"`
	// SampleSize is n, the number of sampled units.
	SampleSize int64 `json:"sample"`
	// Proportion is the observed share p in [0, 1].
	Proportion float64 `json:"proportion"`
}

// Interval is a two-sided confidence interval around a proportion.
type Interval struct {
	Level float64 `json:"level"`
	Z     float64 `json:"z"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns Upper - Lower.
func (iv Interval) Width() float64 { return iv.Upper - iv.Lower }

// MarginOfError returns half the interval width.
func (iv Interval) MarginOfError() float64 { return iv.Width() / 2 }

// Contains reports whether x lies inside the closed interval.
func (iv Interval) Contains(x float64) bool { return x >= iv.Lower && x <= iv.Upper }

// Result is the output of an estimate.
type Result struct {
	Input
	StandardError float64
	Interval95    Interval
	Interval75    Interval
	// Extra holds intervals for additionally requested levels, in request order.
	Extra []Interval
}

// MarshalJSON flattens the intervals into a single ordered list.
func (r Result) MarshalJSON() ([]byte, error) {
	type report struct {
		Input
		StandardError float64    `json:"standard_error"`
		Intervals     []Interval `json:"intervals"`
	}
	return json.Marshal(report{Input: r.Input, StandardError: r.StandardError, Intervals: r.Intervals()})
}

// Intervals returns the 95% and 75% intervals followed by any extra levels.
func (r Result) Intervals() []Interval {
	out := make([]Interval, 0, 2+len(r.Extra))
	out = append(out, r.Interval95, r.Interval75)
	return append(out, r.Extra...)
}

// Validate checks that in lies inside the estimator's domain: N >= 2,
// 1 < n <= N and 0 <= p <= 1. The returned error is an
// apperrors.ValidationError naming the offending field.
func Validate(in Input) error {
	switch {
	case in.PopulationSize < 2:
		return apperrors.NewValidationError("population", "population size must be at least 2, got %d", in.PopulationSize)
	case in.SampleSize <= 1:
		return apperrors.NewValidationError("sample", "sample size must be greater than 1, got %d", in.SampleSize)
	case in.SampleSize > in.PopulationSize:
		return apperrors.NewValidationError("sample", "sample size %d exceeds population size %d", in.SampleSize, in.PopulationSize)
	case math.IsNaN(in.Proportion) || in.Proportion < 0 || in.Proportion > 1:
		return apperrors.NewValidationError("proportion", "proportion must lie in [0, 1], got %g", in.Proportion)
	}
	return nil
}

// ProportionFromPercentage converts a percentage in [0, 100] to a proportion.
func ProportionFromPercentage(pct float64) (float64, error) {
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return 0, apperrors.NewValidationError("percent", "percentage must lie in [0, 100], got %g", pct)
	}
	return pct / 100, nil
}

// ClampSample limits a sample size to the population size.
func ClampSample(n, population int64) int64 {
	if n > population {
		return population
	}
	return n
}

// FiniteCorrection returns sqrt((N-n)/(N-1)). It is 1 for n = 1 and 0 for n = N.
func FiniteCorrection(n, population int64) float64 {
	return math.Sqrt(float64(population-n) / float64(population-1))
}

// StandardError returns sqrt(p(1-p)/n) * FiniteCorrection(n, N) without
// validating its inputs.
func StandardError(n int64, p float64, population int64) float64 {
	return math.Sqrt(p*(1-p)/float64(n)) * FiniteCorrection(n, population)
}

// NewInterval builds the interval p ± z·se.
func NewInterval(p, se, level, z float64) Interval {
	moe := z * se
	return Interval{Level: level, Z: z, Lower: p - moe, Upper: p + moe}
}

// Compute returns the standard error and the 95% and 75% intervals for a
// sample of sampleSize units with observed proportion drawn from a population
// of populationSize units. Inputs outside the domain yield an error wrapping
// apperrors.ErrDomain and the field's ValidationError.
func Compute(sampleSize int64, proportion float64, populationSize int64) (Result, error) {
	return ComputeLevels(Input{PopulationSize: populationSize, SampleSize: sampleSize, Proportion: proportion}, nil)
}

// ComputeLevels is Compute plus one extra interval per requested level. Extra
// levels resolve through DefaultZTable and fall back to the normal quantile.
func ComputeLevels(in Input, levels []float64) (Result, error) {
	if err := Validate(in); err != nil {
		return Result{}, fmt.Errorf("%w: %w", apperrors.ErrDomain, err)
	}

	se := StandardError(in.SampleSize, in.Proportion, in.PopulationSize)
	res := Result{
		Input:         in,
		StandardError: se,
		Interval95:    NewInterval(in.Proportion, se, Level95, Z95),
		Interval75:    NewInterval(in.Proportion, se, Level75, Z75),
	}
	for i, level := range levels {
		z, err := DefaultZTable.ZScore(level)
		if err != nil {
			return Result{}, err
		}
		if IsReportedLevel(level, levels[:i]) {
			continue
		}
		res.Extra = append(res.Extra, NewInterval(in.Proportion, se, level, z))
	}
	return res, nil
}

// IsReportedLevel reports whether level already has an interval: it is one
// of the default levels or appears in extra.
func IsReportedLevel(level float64, extra []float64) bool {
	if level == Level95 || level == Level75 {
		return true
	}
	for _, l := range extra {
		if l == level {
			return true
		}
	}
	return false
}
