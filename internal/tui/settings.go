package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cardfile/internal/config"
	"github.com/sadopc/cardfile/internal/tracker"
)

type settingsModel struct {
	tracker *tracker.Tracker
	cfg     *config.Config
	width   int
	height  int

	formActive bool
	form       *huh.Form

	formWarning   *string
	formDanger    *string
	formThreshold *string
	formWeekly    *bool
	formSessions  *bool
}

func newSettingsModel(t *tracker.Tracker, cfg *config.Config) settingsModel {
	warning, danger, threshold := "", "", ""
	weekly, sessions := false, false
	return settingsModel{
		tracker:       t,
		cfg:           cfg,
		formWarning:   &warning,
		formDanger:    &danger,
		formThreshold: &threshold,
		formWeekly:    &weekly,
		formSessions:  &sessions,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func validInt(min int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		if n < min {
			return fmt.Errorf("must be at least %d", min)
		}
		return nil
	}
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.formWarning = strconv.Itoa(s.cfg.Sprint.WarningDay)
	*s.formDanger = strconv.Itoa(s.cfg.Sprint.DangerDay)
	*s.formThreshold = strconv.Itoa(s.cfg.AvoidanceThreshold)
	*s.formWeekly = s.cfg.Modules.WeeklyReview
	*s.formSessions = s.cfg.Modules.DeepWorkSessions

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sprint warning day").
				Validate(validInt(1)).
				Value(s.formWarning),
			huh.NewInput().
				Title("Sprint danger day").
				Validate(validInt(1)).
				Value(s.formDanger),
			huh.NewInput().
				Title("Avoidance threshold (rolls)").
				Validate(validInt(1)).
				Value(s.formThreshold),
			huh.NewConfirm().
				Title("Weekly review module").
				Value(s.formWeekly),
			huh.NewConfirm().
				Title("Deep work sessions module").
				Value(s.formSessions),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.save()
	}

	return s, cmd
}

func (s settingsModel) save() tea.Cmd {
	warning, _ := strconv.Atoi(strings.TrimSpace(*s.formWarning))
	danger, _ := strconv.Atoi(strings.TrimSpace(*s.formDanger))
	threshold, _ := strconv.Atoi(strings.TrimSpace(*s.formThreshold))

	// Mutate the shared config in place so every component that holds it
	// sees the new thresholds immediately.
	s.cfg.Sprint.WarningDay = warning
	s.cfg.Sprint.DangerDay = danger
	if s.cfg.Sprint.DangerDay < s.cfg.Sprint.WarningDay {
		s.cfg.Sprint.DangerDay = s.cfg.Sprint.WarningDay
	}
	s.cfg.AvoidanceThreshold = threshold
	s.cfg.Modules.WeeklyReview = *s.formWeekly
	s.cfg.Modules.DeepWorkSessions = *s.formSessions

	return func() tea.Msg {
		if err := config.Save(s.tracker.DB, s.cfg); err != nil {
			return statusMsg{text: fmt.Sprintf("Error saving settings: %v", err), isError: true}
		}
		return statusMsg{text: "Settings saved"}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Edit Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")

	onOff := func(b bool) string {
		if b {
			return successStyle.Render("on")
		}
		return mutedStyle.Render("off")
	}

	rows := []string{
		title,
		"",
		fmt.Sprintf("  Sprint warning day     %s", highlightStyle.Render(strconv.Itoa(s.cfg.Sprint.WarningDay))),
		fmt.Sprintf("  Sprint danger day      %s", highlightStyle.Render(strconv.Itoa(s.cfg.Sprint.DangerDay))),
		fmt.Sprintf("  Avoidance threshold    %s rolls", highlightStyle.Render(strconv.Itoa(s.cfg.AvoidanceThreshold))),
		"",
		fmt.Sprintf("  Weekly review          %s", onOff(s.cfg.Modules.WeeklyReview)),
		fmt.Sprintf("  Deep work sessions     %s", onOff(s.cfg.Modules.DeepWorkSessions)),
		"",
		mutedStyle.Render("  Peak energy windows:"),
	}
	for _, win := range s.cfg.EnergyWindows {
		rows = append(rows, fmt.Sprintf("    %02d:00–%02d:00  %s", win.Start, win.End, mutedStyle.Render(win.Label)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
