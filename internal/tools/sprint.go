package tools

import (
	"fmt"

	"github.com/sadopc/cardfile/internal/tracker"
)

// SprintStatus reads (and, once per day, advances) the sprint counter.
func (ts *Toolset) SprintStatus() (Response, error) {
	status, err := ts.tracker.Sprint.Status()
	if err != nil {
		return Response{}, err
	}

	message := fmt.Sprintf("Sprint Day %d", status.CurrentDay)
	switch status.Level {
	case tracker.SprintDanger:
		message += fmt.Sprintf(" - DANGER: you've worked %d consecutive days. Take a rest day!", status.CurrentDay)
	case tracker.SprintWarning:
		remaining := ts.cfg.Sprint.DangerDay - status.CurrentDay
		message += fmt.Sprintf(" - Warning: rest day recommended within %d days.", remaining)
	default:
		message += fmt.Sprintf(" - healthy sprint (warning at day %d)", ts.cfg.Sprint.WarningDay)
	}
	if status.LastRestDay != "" {
		message += "\nLast rest day: " + status.LastRestDay
	}

	return ok(message, map[string]any{
		"current_day":   status.CurrentDay,
		"start_date":    status.StartDate,
		"status":        string(status.Level),
		"last_rest_day": status.LastRestDay,
	}), nil
}

// RecordRestDay resets the sprint counter and schedules tomorrow as day 1.
func (ts *Toolset) RecordRestDay() (Response, error) {
	if err := ts.tracker.Sprint.RecordRestDay(); err != nil {
		return Response{}, err
	}
	return ok("Rest day recorded. Sprint counter reset. Enjoy your recovery!",
		map[string]any{"rest_day": ts.now().Format("2006-01-02")}), nil
}

// AddFieldReport captures a quick note into today's entry.
func (ts *Toolset) AddFieldReport(report string) (Response, error) {
	if err := ts.tracker.Journal.AddFieldReport(report); err != nil {
		return Response{}, err
	}
	return ok(fmt.Sprintf("Field report logged: %q", report),
		map[string]any{"timestamp": ts.now().Format("15:04")}), nil
}
