package estimate

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"

	apperrors "github.com/agbru/cicalc/internal/errors"
)

// Confidence levels reported by default and their fixed z-scores.
const (
	Level95 = 0.95
	Level75 = 0.75
	Z95     = 1.96
	Z75     = 1.15
)

// ZTable maps a two-sided confidence level to its z-score.
type ZTable map[float64]float64

// DefaultZTable holds the rounded z-scores used for the default intervals.
var DefaultZTable = ZTable{
	Level95: Z95,
	Level75: Z75,
}

// ZScore returns the table entry for level, or the two-sided standard normal
// quantile InvCDF(1 - (1-level)/2) when the level is not tabulated.
func (t ZTable) ZScore(level float64) (float64, error) {
	if math.IsNaN(level) || level <= 0 || level >= 1 {
		return 0, apperrors.NewValidationError("level", "confidence level must lie in (0, 1), got %g", level)
	}
	if z, ok := t[level]; ok {
		return z, nil
	}
	return NormalQuantile(level), nil
}

// Levels returns the tabulated levels in descending order.
func (t ZTable) Levels() []float64 {
	levels := make([]float64, 0, len(t))
	for l := range t {
		levels = append(levels, l)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(levels)))
	return levels
}

// NormalQuantile returns the z-score of a two-sided confidence level under the
// standard normal distribution.
func NormalQuantile(level float64) float64 {
	return stats.StdNormal.InvCDF(1 - (1-level)/2)
}
