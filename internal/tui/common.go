package tui

import (
	"time"

	"github.com/sadopc/cardfile/internal/tracker"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewCards
	viewEnergy
	viewPatterns
	viewSettings
)

var viewNames = []string{"Dashboard", "Cards", "Energy", "Patterns", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

type dashboardDataMsg struct {
	summary *tracker.Summary
	status  *tracker.SprintStatus
	today   *tracker.DailyEntry
	avoided []tracker.Task
}

type cardsDataMsg struct {
	tasks []tracker.Task
}

type energyDataMsg struct {
	trends   []tracker.EnergyTrend
	readings []tracker.EnergyReading
	average  float64
}

type patternsDataMsg struct {
	report  string
	balance tracker.CategoryBalance
}

// --- Helpers ---

func levelGlyph(level tracker.SprintLevel) string {
	switch level {
	case tracker.SprintDanger:
		return "⚠"
	case tracker.SprintWarning:
		return "⚡"
	default:
		return "✓"
	}
}

func riskLabel(risk tracker.BurnoutRisk) string {
	switch risk {
	case tracker.RiskHigh:
		return errorStyle.Render(string(risk))
	case tracker.RiskMedium:
		return warningStyle.Render(string(risk))
	default:
		return successStyle.Render(string(risk))
	}
}

func sprintLabel(level tracker.SprintLevel, text string) string {
	switch level {
	case tracker.SprintDanger:
		return errorStyle.Render(text)
	case tracker.SprintWarning:
		return warningStyle.Render(text)
	default:
		return successStyle.Render(text)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
