package tui

import (
	"testing"

	"github.com/agbru/cicalc/internal/estimate"
)

func TestAxisCell(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		x     float64
		width int
		want  int
	}{
		{0, 11, 0},
		{1, 11, 10},
		{0.5, 11, 5},
		{-0.2, 11, 0},
		{1.3, 11, 10},
		{0.5, 1, 0},
	}
	for _, tc := range testCases {
		if got := axisCell(tc.x, tc.width); got != tc.want {
			t.Errorf("axisCell(%v, %d) = %d, want %d", tc.x, tc.width, got, tc.want)
		}
	}
}

func TestRenderBand(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		iv   estimate.Interval
		p    float64
		want string
	}{
		{"Centered", estimate.Interval{Lower: 0.4, Upper: 0.6}, 0.5, "────███────"},
		{"Collapsed", estimate.Interval{Lower: 0.5, Upper: 0.5}, 0.5, "─────█─────"},
		{"Below zero pinned", estimate.Interval{Lower: -0.15, Upper: 0.2}, 0.03, "███────────"},
		{"Whole axis", estimate.Interval{Lower: -1, Upper: 2}, 0.5, "███████████"},
	}
	for _, tc := range testCases {
		tc := tc // per-iteration copy (go 1.21 loop semantics)
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := renderBand(tc.iv, tc.p, 11); got != tc.want {
				t.Errorf("renderBand() = %q, want %q", got, tc.want)
			}
		})
	}
	if renderBand(estimate.Interval{}, 0, 0) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestSliderCells(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		pct   float64
		width int
		want  int
	}{
		{50, 10, 5},
		{0, 10, 0},
		{100, 10, 10},
		{150, 10, 10},
		{33, 30, 10},
		{50, 0, 0},
	}
	for _, tc := range testCases {
		if got := sliderCells(tc.pct, tc.width); got != tc.want {
			t.Errorf("sliderCells(%v, %d) = %d, want %d", tc.pct, tc.width, got, tc.want)
		}
	}
}
