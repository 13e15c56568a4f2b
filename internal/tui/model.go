package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/cicalc/internal/config"
	apperrors "github.com/agbru/cicalc/internal/errors"
	"github.com/agbru/cicalc/internal/estimate"
	"github.com/agbru/cicalc/internal/format"
)

// Field identifies an editable input of the dashboard.
type Field int

// Editable inputs, in focus order.
const (
	FieldPopulation Field = iota
	FieldSample
	FieldPercent
	fieldCount
)

// Layout constants for the dashboard.
const (
	sliderWidth   = 30
	minBandWidth  = 20
	maxSizeDigits = 12
	bigStep       = 10
)

// ContextCancelledMsg is sent when the parent context is cancelled.
type ContextCancelledMsg struct {
	Err error
}

// Model is the root bubbletea model of the dashboard. Every edit recomputes
// the estimate synchronously.
type Model struct {
	header HeaderModel
	help   help.Model
	keymap KeyMap

	population string
	sample     string
	percent    float64
	levels     []float64
	focus      Field

	result  estimate.Result
	err     error
	clamped bool

	defaults config.AppConfig
	ctx      context.Context
	width    int
	height   int
}

// NewModel creates a dashboard seeded with the configured inputs.
func NewModel(ctx context.Context, cfg config.AppConfig, version string) Model {
	m := Model{
		header:   NewHeaderModel(version),
		help:     help.New(),
		keymap:   DefaultKeyMap(),
		defaults: cfg,
		ctx:      ctx,
	}
	m.resetInputs()
	m.recompute()
	return m
}

func (m *Model) resetInputs() {
	m.population = strconv.FormatInt(m.defaults.Population, 10)
	m.sample = strconv.FormatInt(m.defaults.Sample, 10)
	m.percent = m.defaults.Percentage
	m.levels = append([]float64(nil), m.defaults.Levels...)
	m.focus = FieldPopulation
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return watchContextCmd(m.ctx)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case ContextCancelledMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.resetInputs()

	case key.Matches(msg, m.keymap.Up):
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		m.focus = (m.focus + 1) % fieldCount
		return m, nil

	case key.Matches(msg, m.keymap.Left):
		m.step(-1)

	case key.Matches(msg, m.keymap.Right):
		m.step(1)

	case key.Matches(msg, m.keymap.PageLeft):
		m.step(-bigStep)

	case key.Matches(msg, m.keymap.PageRight):
		m.step(bigStep)

	case key.Matches(msg, m.keymap.Delete):
		m.deleteDigit()

	default:
		if msg.Type != tea.KeyRunes || !m.typeDigits(msg.Runes) {
			return m, nil
		}
	}

	m.recompute()
	return m, nil
}

// step moves the focused input by delta units. Sizes never go below zero and
// the percentage stays within [0, 100].
func (m *Model) step(delta int) {
	switch m.focus {
	case FieldPopulation:
		m.population = stepSize(m.population, delta)
	case FieldSample:
		m.sample = stepSize(m.sample, delta)
	case FieldPercent:
		m.percent = clampPercent(m.percent + float64(delta))
	}
}

func stepSize(text string, delta int) string {
	v, _ := strconv.ParseInt(text, 10, 64)
	v += int64(delta)
	if v < 0 {
		v = 0
	}
	return strconv.FormatInt(v, 10)
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// typeDigits appends digits to the focused size field. It reports whether
// the input changed.
func (m *Model) typeDigits(runes []rune) bool {
	target := m.focusedText()
	if target == nil {
		return false
	}
	changed := false
	for _, r := range runes {
		if r < '0' || r > '9' || len(*target) >= maxSizeDigits {
			continue
		}
		if *target == "0" {
			*target = ""
		}
		*target += string(r)
		changed = true
	}
	return changed
}

func (m *Model) deleteDigit() {
	if target := m.focusedText(); target != nil && *target != "" {
		*target = (*target)[:len(*target)-1]
	}
}

func (m *Model) focusedText() *string {
	switch m.focus {
	case FieldPopulation:
		return &m.population
	case FieldSample:
		return &m.sample
	}
	return nil
}

// Input returns the estimator input for the current fields. The sample is
// clamped to the population.
func (m Model) Input() estimate.Input {
	population, _ := strconv.ParseInt(m.population, 10, 64)
	sample, _ := strconv.ParseInt(m.sample, 10, 64)
	return estimate.Input{
		PopulationSize: population,
		SampleSize:     estimate.ClampSample(sample, population),
		Proportion:     m.percent / 100,
	}
}

func (m *Model) recompute() {
	in := m.Input()
	sample, _ := strconv.ParseInt(m.sample, 10, 64)
	m.clamped = sample > in.SampleSize

	start := time.Now()
	m.result, m.err = estimate.ComputeLevels(in, m.levels)
	m.header.SetComputed(time.Since(start))
}

// Result returns the last computed estimate and its error.
func (m Model) Result() (estimate.Result, error) {
	return m.result, m.err
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	inner := m.width - 4
	inputs := panelStyle.Width(inner).Render(m.inputsView())
	results := panelStyle.Width(inner).Render(m.resultsView(inner - 4))
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), inputs, results, m.help.View(m.keymap))
}

func (m Model) inputsView() string {
	rows := []string{
		m.fieldRow(FieldPopulation, "Population size", fieldValueStyle.Render(orDash(m.population))),
		m.fieldRow(FieldSample, "Sample size", fieldValueStyle.Render(orDash(m.sample))),
		m.fieldRow(FieldPercent, "Observed %", renderSlider(m.percent, sliderWidth)+" "+
			fieldValueStyle.Render(strconv.FormatFloat(m.percent, 'f', -1, 64)+"%")),
	}
	if m.clamped {
		rows = append(rows, noticeStyle.Render(fmt.Sprintf("sample limited to the population (%d)", m.Input().SampleSize)))
	}
	return strings.Join(rows, "\n")
}

func (m Model) fieldRow(f Field, label, value string) string {
	marker, style := "  ", fieldLabelStyle
	if m.focus == f {
		marker, style = "▸ ", fieldFocusStyle
	}
	return style.Render(fmt.Sprintf("%s%-16s", marker, label)) + value
}

func (m Model) resultsView(width int) string {
	if m.err != nil {
		return errorStyle.Render("Invalid input: " + m.err.Error())
	}
	bandWidth := width
	if bandWidth < minBandWidth {
		bandWidth = minBandWidth
	}

	lines := []string{
		resultLabelStyle.Render("Standard Error: ") + resultValueStyle.Render(format.FormatStandardError(m.result.StandardError)),
	}
	for _, iv := range m.result.Intervals() {
		lines = append(lines,
			"",
			resultLabelStyle.Render(fmt.Sprintf("%s Confidence Interval (Z-score = %s): ", format.FormatLevel(iv.Level), format.FormatZ(iv.Z)))+
				bandStyle(iv.Level).Render(format.FormatInterval(iv)),
			bandStyle(iv.Level).Render(renderBand(iv, m.result.Proportion, bandWidth)),
		)
	}
	lines = append(lines, axisStyle.Render("0%"+spaces(bandWidth-6)+"100%"))
	in := m.Input()
	label := "SE by sample size: "
	lines = append(lines, "",
		resultLabelStyle.Render(label)+resultValueStyle.Render(RenderSparkline(seCurve(in, curveWidth))),
		spaces(len(label)+curveMarker(in.PopulationSize, in.SampleSize, curveWidth))+axisStyle.Render("▲ n="+strconv.FormatInt(in.SampleSize, 10)),
	)
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Run is the public entry point for the dashboard mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	p := tea.NewProgram(NewModel(ctx, cfg, version), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return apperrors.ExitErrorGeneric
	}
	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
