package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cardfile/internal/config"
	"github.com/sadopc/cardfile/internal/tools"
	"github.com/sadopc/cardfile/internal/tracker"
)

// cardsModel shows the active card stack grouped by category and routes
// every mutation through the tools envelope layer.
type cardsModel struct {
	tracker *tracker.Tracker
	tools   *tools.Toolset
	cfg     *config.Config
	width   int
	height  int

	tasks  []tracker.Task
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "card", "report"

	// Form field pointers (survive value copies)
	formContent  *string
	formPriority *string
	formNote     *string
	formReport   *string
}

func newCardsModel(t *tracker.Tracker, ts *tools.Toolset, cfg *config.Config) cardsModel {
	content, priority, note, report := "", "standard", "", ""
	return cardsModel{
		tracker:      t,
		tools:        ts,
		cfg:          cfg,
		formContent:  &content,
		formPriority: &priority,
		formNote:     &note,
		formReport:   &report,
	}
}

func (c *cardsModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c cardsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tasks, err := c.tracker.Registry.List("", true)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return cardsDataMsg{tasks: sortByPriority(tasks)}
	}
}

// sortByPriority orders tasks deep → someday, preserving insertion order
// within a category so the list is stable under the cursor.
func sortByPriority(tasks []tracker.Task) []tracker.Task {
	out := make([]tracker.Task, 0, len(tasks))
	for _, p := range tracker.Priorities {
		for _, t := range tasks {
			if t.Priority == p {
				out = append(out, t)
			}
		}
	}
	return out
}

func (c cardsModel) update(msg tea.Msg) (cardsModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case cardsDataMsg:
		c.tasks = msg.tasks
		if c.cursor >= len(c.tasks) {
			c.cursor = max(0, len(c.tasks)-1)
		}
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(c.tasks)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.New):
			return c.showCardForm()
		case key.Matches(msg, keys.Report):
			return c.showReportForm()
		case key.Matches(msg, keys.Complete):
			if len(c.tasks) > 0 {
				return c, c.completeCard(c.tasks[c.cursor].ID)
			}
		case key.Matches(msg, keys.Roll):
			if len(c.tasks) > 0 {
				return c, c.rollCard(c.tasks[c.cursor].ID)
			}
		}
	}
	return c, nil
}

func (c cardsModel) completeCard(id string) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.tools.CompleteTask(id)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return statusMsg{text: resp.Message, isError: !resp.Success}
	}
}

func (c cardsModel) rollCard(id string) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.tools.RollForwardTask(id)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return statusMsg{text: resp.Message, isError: !resp.Success}
	}
}

func (c cardsModel) showCardForm() (cardsModel, tea.Cmd) {
	*c.formContent = ""
	*c.formPriority = "standard"
	*c.formNote = ""
	c.formType = "card"

	options := make([]huh.Option[string], len(tracker.Priorities))
	for i, p := range tracker.Priorities {
		options[i] = huh.NewOption(c.cfg.CategoryName(string(p)), string(p))
	}

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Card").Value(c.formContent),
			huh.NewSelect[string]().Title("Category").Options(options...).Value(c.formPriority),
			huh.NewInput().Title("Note (optional)").Value(c.formNote),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c cardsModel) showReportForm() (cardsModel, tea.Cmd) {
	*c.formReport = ""
	c.formType = "report"

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Field report").Value(c.formReport),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c cardsModel) updateForm(msg tea.Msg) (cardsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		switch c.formType {
		case "card":
			if *c.formContent != "" {
				content, priority, note := *c.formContent, *c.formPriority, *c.formNote
				return c, tea.Batch(
					func() tea.Msg {
						resp, err := c.tools.AddTask(content, priority, note)
						if err != nil {
							return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
						}
						return statusMsg{text: resp.Message, isError: !resp.Success}
					},
					c.refresh(),
				)
			}
			return c, c.refresh()
		case "report":
			if *c.formReport != "" {
				report := *c.formReport
				return c, func() tea.Msg {
					resp, err := c.tools.AddFieldReport(report)
					if err != nil {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
					return statusMsg{text: resp.Message, isError: !resp.Success}
				}
			}
			return c, nil
		}
	}

	return c, cmd
}

func (c cardsModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		title := titleStyle.Render("New Card")
		if c.formType == "report" {
			title = titleStyle.Render("Field Report")
		}
		formView := c.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Card Stack")

	if len(c.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No active cards. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)

	var lastPriority tracker.TaskPriority
	for i, t := range c.tasks {
		if t.Priority != lastPriority {
			lastPriority = t.Priority
			header := lipgloss.NewStyle().
				Foreground(categoryColors[string(t.Priority)]).
				Bold(true).
				Render(c.cfg.CategoryName(string(t.Priority)))
			rows = append(rows, "")
			rows = append(rows, "  "+header)
		}

		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := style.Render(fmt.Sprintf("  %s%s", cursor, t.Content))
		if t.RollForwardCount > 0 {
			rollNote := fmt.Sprintf(" [rolled %dx]", t.RollForwardCount)
			if t.RollForwardCount >= c.cfg.AvoidanceThreshold {
				line += warningStyle.Render(rollNote)
			} else {
				line += mutedStyle.Render(rollNote)
			}
		}
		rows = append(rows, line)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  c: complete  r: roll forward  f: field report"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
