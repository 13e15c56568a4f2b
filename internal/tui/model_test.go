package tui

import (
	"context"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/cicalc/internal/config"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return NewModel(context.Background(), config.Default(), "v1.0.0")
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestNewModelComputesDefaults(t *testing.T) {
	m := newTestModel(t)
	res, err := m.Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.StandardError-0.047457899787624956) > 1e-12 {
		t.Errorf("StandardError = %v", res.StandardError)
	}
	if m.focus != FieldPopulation {
		t.Errorf("initial focus = %v, want population", m.focus)
	}
}

func TestModelEditingRecomputes(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), runes("500"))
	if got := m.Input().PopulationSize; got != 500 {
		t.Fatalf("PopulationSize = %d, want 500", got)
	}

	// Sample: 100 -> 50
	m = press(t, m, keyOf(tea.KeyTab), keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), runes("50"))
	// Percent: 50 -> 20 with three big steps left
	m = press(t, m, keyOf(tea.KeyDown), keyOf(tea.KeyShiftLeft), keyOf(tea.KeyShiftLeft), keyOf(tea.KeyShiftLeft))

	in := m.Input()
	if in.SampleSize != 50 || in.Proportion != 0.2 {
		t.Fatalf("Input() = %+v, want sample 50 and proportion 0.2", in)
	}
	res, err := m.Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.StandardError-0.05371937772430143) > 1e-12 {
		t.Errorf("StandardError = %v, want 0.0537...", res.StandardError)
	}
}

func TestModelPercentSliderBounds(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyOf(tea.KeyUp)) // wraps to the percent field
	if m.focus != FieldPercent {
		t.Fatalf("focus = %v, want percent", m.focus)
	}
	for i := 0; i < 8; i++ {
		m = press(t, m, keyOf(tea.KeyShiftRight))
	}
	if m.percent != 100 {
		t.Errorf("percent = %v, want 100", m.percent)
	}
	m = press(t, m, keyOf(tea.KeyLeft))
	if m.percent != 99 {
		t.Errorf("percent = %v, want 99", m.percent)
	}
	m = press(t, m, runes("7"))
	if m.percent != 99 {
		t.Error("digits should not edit the percent slider")
	}
}

func TestModelClampsSample(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace)) // population "10"
	if got := m.Input(); got.PopulationSize != 10 || got.SampleSize != 10 {
		t.Fatalf("Input() = %+v, want population 10 and clamped sample 10", got)
	}
	if !m.clamped {
		t.Error("clamped flag should be set")
	}
	res, err := m.Result()
	if err != nil || res.StandardError != 0 {
		t.Errorf("census should give SE 0, got %v (err %v)", res.StandardError, err)
	}
	m = press(t, m, runes("00")) // population "1000"
	if m.Input().SampleSize != 100 || m.clamped {
		t.Error("sample should be restored once the population grows")
	}
}

func TestModelShowsValidationError(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyOf(tea.KeyDown), keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace)) // sample "1"
	if _, err := m.Result(); err == nil {
		t.Fatal("sample of one should be rejected")
	}
}

func TestModelReset(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("9"), keyOf(tea.KeyTab), keyOf(tea.KeyTab), keyOf(tea.KeyRight))
	m = press(t, m, runes("r"))
	in := m.Input()
	if in.PopulationSize != 1000 || in.SampleSize != 100 || in.Proportion != 0.5 {
		t.Errorf("reset should restore defaults, got %+v", in)
	}
	if m.focus != FieldPopulation {
		t.Error("reset should focus the population field")
	}
}

func TestModelQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), keyOf(tea.KeyCtrlC)} {
		m := newTestModel(t)
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s should return a command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s should quit", msg)
		}
	}
}

func TestModelContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewModel(ctx, config.Default(), "dev")
	cancel()
	msg := m.Init()()
	if _, ok := msg.(ContextCancelledMsg); !ok {
		t.Fatalf("Init command returned %T, want ContextCancelledMsg", msg)
	}
	_, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("cancellation should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("cancellation should produce tea.QuitMsg")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	if m.View() != "Initializing..." {
		t.Error("view before the first WindowSizeMsg should be a placeholder")
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	view := m.View()
	for _, want := range []string{
		"Confidence Interval Calculator v1.0.0",
		"Population size",
		"Standard Error: 0.0475",
		"95% Confidence Interval (Z-score = 1.96): (Low: 40.70%, High: 59.30%)",
		"75% Confidence Interval (Z-score = 1.15): (Low: 44.54%, High: 55.46%)",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(t, m, keyOf(tea.KeyTab), keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace))
	if !strings.Contains(m.View(), "Invalid input: ") {
		t.Error("view should show the validation error")
	}
}

func TestModelViewShowsSECurve(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	view := m.View()
	if !strings.Contains(view, "SE by sample size: ") {
		t.Error("view should show the SE curve")
	}
	if !strings.Contains(view, "▲ n=100") {
		t.Error("view should mark the current sample size")
	}
}
