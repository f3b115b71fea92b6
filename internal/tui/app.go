package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cardfile/internal/config"
	"github.com/sadopc/cardfile/internal/export"
	"github.com/sadopc/cardfile/internal/tools"
	"github.com/sadopc/cardfile/internal/tracker"
)

// App is the root Bubble Tea model.
type App struct {
	tracker *tracker.Tracker
	tools   *tools.Toolset
	cfg     *config.Config
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	cards     cardsModel
	energy    energyModel
	patterns  patternsModel
	settings  settingsModel

	help   help.Model
	status string
}

func NewApp(t *tracker.Tracker, ts *tools.Toolset, cfg *config.Config) App {
	h := help.New()
	h.ShowAll = false

	return App{
		tracker:    t,
		tools:      ts,
		cfg:        cfg,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(t, ts, cfg),
		cards:      newCardsModel(t, ts, cfg),
		energy:     newEnergyModel(t, ts),
		patterns:   newPatternsModel(t, ts),
		settings:   newSettingsModel(t, cfg),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.loadData(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.cards.setSize(a.width, contentHeight)
		a.energy.setSize(a.width, contentHeight)
		a.patterns.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewCards
			return a, a.cards.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewEnergy
			return a, a.energy.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewPatterns
			return a, a.patterns.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		// Minute tick keeps the dashboard's sprint/today panels current
		// across midnight without user input.
		return a, tea.Batch(tickCmd(), a.refreshCurrentView())

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewCards:
		a.cards, cmd = a.cards.update(msg)
	case viewEnergy:
		a.energy, cmd = a.energy.update(msg)
	case viewPatterns:
		a.patterns, cmd = a.patterns.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewCards:
		return a.cards.formActive
	case viewEnergy:
		return a.energy.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewCards:
		return a.cards.refresh()
	case viewEnergy:
		return a.energy.refresh()
	case viewPatterns:
		return a.patterns.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewCards:
		content = a.cards.view()
	case viewEnergy:
		content = a.energy.view()
	case viewPatterns:
		content = a.patterns.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("cardfile")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Sprint indicator in footer
	sprintInfo := ""
	if s := a.dashboard.status; s != nil {
		sprintInfo = sprintLabel(s.Level, fmt.Sprintf(" %s day %d", levelGlyph(s.Level), s.CurrentDay))
	}

	left := footerStyle.Render(helpView)
	right := sprintInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"Tasks CSV", "Tasks JSON", "Daily CSV"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		var err error
		switch format {
		case 0:
			tasks, lerr := a.tracker.Registry.List("", false)
			if lerr != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", lerr), isError: true}
			}
			path = filepath.Join(home, fmt.Sprintf("cardfile-tasks-%s.csv", dateStr))
			err = export.TasksToCSV(tasks, a.cfg, path)
		case 1:
			tasks, lerr := a.tracker.Registry.List("", false)
			if lerr != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", lerr), isError: true}
			}
			path = filepath.Join(home, fmt.Sprintf("cardfile-tasks-%s.json", dateStr))
			err = export.TasksToJSON(tasks, a.cfg, path)
		case 2:
			entries, lerr := a.tracker.Journal.Entries()
			if lerr != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", lerr), isError: true}
			}
			path = filepath.Join(home, fmt.Sprintf("cardfile-daily-%s.csv", dateStr))
			err = export.DaysToCSV(entries, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		return exportDoneMsg{path: path}
	}
}
