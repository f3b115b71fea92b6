package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cardfile/internal/tools"
	"github.com/sadopc/cardfile/internal/tracker"
)

type patternsModel struct {
	tracker *tracker.Tracker
	tools   *tools.Toolset
	width   int
	height  int

	report  string
	balance tracker.CategoryBalance
	chart   barchart.Model
}

func newPatternsModel(t *tracker.Tracker, ts *tools.Toolset) patternsModel {
	return patternsModel{
		tracker: t,
		tools:   ts,
		chart:   barchart.New(40, 6),
	}
}

func (p *patternsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p patternsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		analysis, err := p.tracker.Analyzer.Analyze()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		resp, err := p.tools.PatternAnalysis()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return patternsDataMsg{report: resp.Message, balance: analysis.CategoryBalance}
	}
}

func (p patternsModel) update(msg tea.Msg) (patternsModel, tea.Cmd) {
	if msg, ok := msg.(patternsDataMsg); ok {
		p.report = msg.report
		p.balance = msg.balance
		p.buildChart()
	}
	return p, nil
}

func (p *patternsModel) buildChart() {
	chartWidth := p.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	p.chart = barchart.New(chartWidth, 6)

	counts := []struct {
		priority tracker.TaskPriority
		value    int
	}{
		{tracker.PriorityDeep, p.balance.Deep},
		{tracker.PriorityStandard, p.balance.Standard},
		{tracker.PriorityLight, p.balance.Light},
		{tracker.PrioritySomeday, p.balance.Someday},
	}

	var bars []barchart.BarData
	for _, c := range counts {
		style := lipgloss.NewStyle().Foreground(categoryColors[string(c.priority)])
		bars = append(bars, barchart.BarData{
			Label: string(c.priority),
			Values: []barchart.BarValue{
				{Name: string(c.priority), Value: float64(c.value), Style: style},
			},
		})
	}

	p.chart.PushAll(bars)
	p.chart.Draw()
}

func (p patternsModel) view() string {
	w := p.width - 4

	if p.report == "" {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading..."))
	}

	report := p.renderReport()

	balanceTitle := titleStyle.Render("Category Balance")
	total := p.balance.Deep + p.balance.Standard + p.balance.Light + p.balance.Someday
	var balanceView string
	if total == 0 {
		balanceView = mutedStyle.Render("  No active cards to balance.")
	} else {
		balanceView = p.chart.View()
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, report, "", balanceTitle, "", balanceView),
	)
}

// renderReport restyles the markdown-ish report for the terminal: headings
// get the title style, bullets keep their bars.
func (p patternsModel) renderReport() string {
	var rows []string
	for _, line := range strings.Split(p.report, "\n") {
		switch {
		case strings.HasPrefix(line, "## "):
			rows = append(rows, titleStyle.Render(strings.TrimPrefix(line, "## ")))
		case strings.HasPrefix(line, "### "):
			rows = append(rows, highlightStyle.Render(strings.TrimPrefix(line, "### ")))
		case strings.HasPrefix(line, "•"):
			rows = append(rows, "  "+line)
		default:
			rows = append(rows, line)
		}
	}
	return strings.Join(rows, "\n")
}
