package tools

import (
	"fmt"
	"strings"
)

// PatternAnalysis runs the full analysis and renders it as a report the
// coaching layer can hand to the user verbatim.
func (ts *Toolset) PatternAnalysis() (Response, error) {
	analysis, err := ts.tracker.Analyzer.Analyze()
	if err != nil {
		return Response{}, err
	}

	var b strings.Builder
	b.WriteString("## Pattern Analysis\n\n")

	if len(analysis.AvoidancePatterns) > 0 {
		b.WriteString("### Avoidance Patterns\n")
		for _, p := range analysis.AvoidancePatterns {
			category := ts.cfg.CategoryName(string(p.Category))
			fmt.Fprintf(&b, "• %q - %dx rolls (%s)\n", p.TaskContent, p.RollCount, category)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Energy Trends (7 days)\n")
	for _, t := range analysis.EnergyTrends {
		bar := strings.Repeat("█", int(t.AverageLevel+0.5))
		fmt.Fprintf(&b, "• %s: %s %.1f/5\n", t.Period, bar, t.AverageLevel)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "### Completion Rate: %.0f%%\n\n", analysis.CompletionRate*100)
	fmt.Fprintf(&b, "### Burnout Risk: %s", analysis.BurnoutRisk)

	return ok(b.String(), map[string]any{
		"avoidance_patterns": analysis.AvoidancePatterns,
		"energy_trends":      analysis.EnergyTrends,
		"completion_rate":    analysis.CompletionRate,
		"category_balance":   analysis.CategoryBalance,
		"burnout_risk":       string(analysis.BurnoutRisk),
	}), nil
}

// Summary gives the headline status lines for the daily briefing.
func (ts *Toolset) Summary() (Response, error) {
	summary, err := ts.tracker.Analyzer.Summary()
	if err != nil {
		return Response{}, err
	}
	today, err := ts.tracker.Journal.Today()
	if err != nil {
		return Response{}, err
	}

	lines := []string{
		"## Status\n",
		fmt.Sprintf("**Sprint:** Day %d (%s)", summary.SprintDay, summary.SprintLevel),
		fmt.Sprintf("**Active Tasks:** %d", summary.ActiveTasks),
		fmt.Sprintf("**Completed Today:** %d", len(today.TasksCompleted)),
		fmt.Sprintf("**Rolled Today:** %d", len(today.TasksRolledForward)),
		fmt.Sprintf("**7-Day Completion:** %.1f%%", summary.CompletionRate*100),
		fmt.Sprintf("**Burnout Risk:** %s", summary.BurnoutRisk),
	}
	if summary.AvoidedTasks > 0 {
		lines = append(lines, fmt.Sprintf("\n**%d tasks** showing avoidance patterns", summary.AvoidedTasks))
	}

	return ok(strings.Join(lines, "\n"), map[string]any{
		"total_tasks":     summary.TotalTasks,
		"active_tasks":    summary.ActiveTasks,
		"completed_tasks": summary.CompletedTasks,
		"avoided_tasks":   summary.AvoidedTasks,
		"daily_entries":   summary.DailyEntries,
		"sprint_day":      summary.SprintDay,
		"sprint_status":   string(summary.SprintLevel),
		"burnout_risk":    string(summary.BurnoutRisk),
		"completion_rate": summary.CompletionRate,
	}), nil
}
