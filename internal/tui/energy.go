package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cardfile/internal/tools"
	"github.com/sadopc/cardfile/internal/tracker"
)

var levelColors = map[tracker.EnergyLevel]lipgloss.Color{
	tracker.EnergyHigh:     lipgloss.Color("#2ECC71"),
	tracker.EnergyMedium:   lipgloss.Color("#7AA2F7"),
	tracker.EnergyLow:      lipgloss.Color("#F39C12"),
	tracker.EnergyDepleted: lipgloss.Color("#E74C3C"),
	tracker.EnergyRecovery: lipgloss.Color("#9B59B6"),
}

type energyModel struct {
	tracker *tracker.Tracker
	tools   *tools.Toolset
	width   int
	height  int

	trends   []tracker.EnergyTrend
	readings []tracker.EnergyReading
	average  float64

	chart barchart.Model

	formActive  bool
	form        *huh.Form
	formLevel   *string
	formContext *string
}

func newEnergyModel(t *tracker.Tracker, ts *tools.Toolset) energyModel {
	level, context := "medium", ""
	return energyModel{
		tracker:     t,
		tools:       ts,
		chart:       barchart.New(40, 8),
		formLevel:   &level,
		formContext: &context,
	}
}

func (e *energyModel) setSize(w, h int) {
	e.width = w
	e.height = h
}

func (e energyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		readings, err := e.tracker.Energy.Recent(7)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return energyDataMsg{
			trends:   tracker.BucketByPeriod(readings),
			readings: readings,
			average:  tracker.AverageEnergy(readings),
		}
	}
}

func (e energyModel) update(msg tea.Msg) (energyModel, tea.Cmd) {
	if e.formActive && e.form != nil {
		return e.updateForm(msg)
	}

	switch msg := msg.(type) {
	case energyDataMsg:
		e.trends = msg.trends
		e.readings = msg.readings
		e.average = msg.average
		e.buildChart()
		return e, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Log), key.Matches(msg, keys.New):
			return e.showLogForm()
		}
	}
	return e, nil
}

func (e *energyModel) buildChart() {
	chartWidth := e.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	e.chart = barchart.New(chartWidth, 8)

	var bars []barchart.BarData
	for _, t := range e.trends {
		style := lipgloss.NewStyle().Foreground(colorHighlight)
		if t.SampleCount == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: t.Period,
			Values: []barchart.BarValue{
				{Name: t.Period, Value: t.AverageLevel, Style: style},
			},
		})
	}

	e.chart.PushAll(bars)
	e.chart.Draw()
}

func (e energyModel) showLogForm() (energyModel, tea.Cmd) {
	*e.formLevel = "medium"
	*e.formContext = ""

	options := make([]huh.Option[string], len(tracker.EnergyLevels))
	for i, l := range tracker.EnergyLevels {
		options[i] = huh.NewOption(string(l), string(l))
	}

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Energy level").Options(options...).Value(e.formLevel),
			huh.NewInput().Title("Context (optional)").Value(e.formContext),
		),
	).WithShowHelp(true).WithShowErrors(true)

	e.formActive = true
	return e, e.form.Init()
}

func (e energyModel) updateForm(msg tea.Msg) (energyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			e.formActive = false
			e.form = nil
			return e, nil
		}
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		e.formActive = false
		level, context := *e.formLevel, *e.formContext
		return e, tea.Batch(
			func() tea.Msg {
				resp, err := e.tools.LogEnergy(level, context)
				if err != nil {
					return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
				}
				return statusMsg{text: resp.Message, isError: !resp.Success}
			},
			e.refresh(),
		)
	}

	return e, cmd
}

func (e energyModel) view() string {
	w := e.width - 4

	if e.formActive && e.form != nil {
		title := titleStyle.Render("Log Energy")
		formView := e.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Energy (7 days)")
	avg := mutedStyle.Render("average ") + highlightStyle.Render(fmt.Sprintf("%.1f/5", e.average))
	header := fmt.Sprintf("%s  %s", title, avg)

	chartView := e.chart.View()
	trendTable := e.renderTrendTable()
	recent := e.renderRecent()
	hint := mutedStyle.Render("  l: log energy")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", trendTable, "", recent, "", hint,
		),
	)
}

func (e energyModel) renderTrendTable() string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %8s %8s", "Period", "Avg", "Samples")))
	for _, t := range e.trends {
		avg := "—"
		if t.SampleCount > 0 {
			avg = fmt.Sprintf("%.1f", t.AverageLevel)
		}
		rows = append(rows, fmt.Sprintf("  %-12s %8s %8d", t.Period, avg, t.SampleCount))
	}
	return strings.Join(rows, "\n")
}

func (e energyModel) renderRecent() string {
	if len(e.readings) == 0 {
		return mutedStyle.Render("  No readings yet. Press l to log one.")
	}

	title := mutedStyle.Render("  Recent readings:")
	rows := []string{title}

	start := max(0, len(e.readings)-5)
	for _, r := range e.readings[start:] {
		dot := lipgloss.NewStyle().Foreground(levelColors[r.Level]).Render("●")
		line := fmt.Sprintf("  %s %s  %-9s", dot, r.Timestamp.Local().Format("Mon 15:04"), r.Level)
		if r.Context != "" {
			line += mutedStyle.Render(" " + r.Context)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}
