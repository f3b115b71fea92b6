package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cardfile/internal/config"
	"github.com/sadopc/cardfile/internal/tools"
	"github.com/sadopc/cardfile/internal/tracker"
)

type dashboardModel struct {
	tracker *tracker.Tracker
	tools   *tools.Toolset
	cfg     *config.Config
	width   int
	height  int

	summary *tracker.Summary
	status  *tracker.SprintStatus
	today   *tracker.DailyEntry
	avoided []tracker.Task
}

func newDashboardModel(t *tracker.Tracker, ts *tools.Toolset, cfg *config.Config) dashboardModel {
	return dashboardModel{tracker: t, tools: ts, cfg: cfg}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		summary, err := d.tracker.Analyzer.Summary()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		status, err := d.tracker.Sprint.Status()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		today, err := d.tracker.Journal.Today()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		avoided, _ := d.tracker.Registry.Avoided(d.cfg.AvoidanceThreshold)

		return dashboardDataMsg{
			summary: summary,
			status:  status,
			today:   today,
			avoided: avoided,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.summary = msg.summary
		d.status = msg.status
		d.today = msg.today
		d.avoided = msg.avoided
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.RestDay):
			return d, d.recordRestDay()
		}
	}
	return d, nil
}

func (d dashboardModel) recordRestDay() tea.Cmd {
	return func() tea.Msg {
		resp, err := d.tools.RecordRestDay()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return statusMsg{text: resp.Message}
	}
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	if d.summary == nil || d.status == nil {
		return mutedStyle.Render("Loading...")
	}

	contentWidth := d.width - 4

	sprintPanel := d.renderSprintPanel(contentWidth)
	todayPanel := d.renderTodayPanel(contentWidth)
	avoidedPanel := d.renderAvoidedPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, sprintPanel, todayPanel, avoidedPanel)
}

func (d dashboardModel) renderSprintPanel(w int) string {
	day := sprintDayStyle.Width(w - 6).Render(
		sprintLabel(d.status.Level, fmt.Sprintf("Sprint Day %d", d.status.CurrentDay)),
	)

	var detail string
	switch d.status.Level {
	case tracker.SprintDanger:
		detail = errorStyle.Render("⚠ DANGER — take a rest day (press R)")
	case tracker.SprintWarning:
		detail = warningStyle.Render("⚡ Warning — rest day recommended soon")
	default:
		detail = successStyle.Render("✓ Healthy sprint")
	}
	detail = lipgloss.NewStyle().Width(w - 6).Align(lipgloss.Center).Render(detail)

	risk := lipgloss.NewStyle().Width(w - 6).Align(lipgloss.Center).Render(
		mutedStyle.Render("burnout risk: ") + riskLabel(d.summary.BurnoutRisk),
	)

	meta := fmt.Sprintf("started %s", d.status.StartDate)
	if d.status.LastRestDay != "" {
		meta += "  ·  last rest " + d.status.LastRestDay
	}
	metaLine := lipgloss.NewStyle().Width(w - 6).Align(lipgloss.Center).Render(mutedStyle.Render(meta))

	content := lipgloss.JoinVertical(lipgloss.Center, day, detail, risk, metaLine)

	if d.status.Level == tracker.SprintHealthy {
		return panelStyle.Width(w).Render(content)
	}
	return activePanelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")

	rows := []string{title}
	rows = append(rows, fmt.Sprintf("  completed %s   rolled %s   readings %s   active cards %s",
		highlightStyle.Render(fmt.Sprintf("%d", len(d.today.TasksCompleted))),
		highlightStyle.Render(fmt.Sprintf("%d", len(d.today.TasksRolledForward))),
		highlightStyle.Render(fmt.Sprintf("%d", len(d.today.EnergyReadings))),
		highlightStyle.Render(fmt.Sprintf("%d", d.summary.ActiveTasks)),
	))
	rows = append(rows, fmt.Sprintf("  7-day completion %s",
		highlightStyle.Render(fmt.Sprintf("%.0f%%", d.summary.CompletionRate*100))))

	if len(d.today.FieldReports) > 0 {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  Field reports:"))
		start := max(0, len(d.today.FieldReports)-3)
		for _, r := range d.today.FieldReports[start:] {
			rows = append(rows, "  "+r)
		}
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderAvoidedPanel(w int) string {
	title := titleStyle.Render("Avoidance")

	if len(d.avoided) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			successStyle.Render("  No avoidance patterns. Cards are moving."),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{title}
	for _, t := range d.avoided {
		dot := lipgloss.NewStyle().Foreground(categoryColors[string(t.Priority)]).Render("●")
		rows = append(rows, warningStyle.Render(
			fmt.Sprintf("  %s %q — rolled %dx", dot, t.Content, t.RollForwardCount)))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
