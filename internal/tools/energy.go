package tools

import (
	"fmt"

	"github.com/sadopc/cardfile/internal/tracker"
)

var energyRecommendations = map[tracker.EnergyLevel]string{
	tracker.EnergyHigh:     "Perfect time for deep work!",
	tracker.EnergyMedium:   "Good for standard tasks.",
	tracker.EnergyLow:      "Focus on light tasks or take a break.",
	tracker.EnergyDepleted: "Consider stopping for today. Rest is productive.",
	tracker.EnergyRecovery: "Take it easy. Gentle tasks only.",
}

// LogEnergy records a reading and answers with a level-appropriate
// recommendation, plus a rest nudge when the sprint is in danger.
func (ts *Toolset) LogEnergy(level, context string) (Response, error) {
	l, err := tracker.ParseEnergyLevel(level)
	if err != nil {
		return fail(err.Error()), nil
	}

	reading, err := ts.tracker.Energy.Log(l, context)
	if err != nil {
		return Response{}, err
	}
	status, err := ts.tracker.Sprint.Status()
	if err != nil {
		return Response{}, err
	}

	recommendation := energyRecommendations[l]
	if inPeak, window := ts.cfg.InPeakWindow(reading.Timestamp.Hour()); inPeak && window.Label != "" {
		recommendation += fmt.Sprintf(" You're in your %s window.", window.Label)
	}
	if status.Level == tracker.SprintDanger {
		recommendation += fmt.Sprintf(" Sprint day %d - consider a rest day soon.", status.CurrentDay)
	}

	return ok(
		fmt.Sprintf("Energy logged: %s. %s", l, recommendation),
		map[string]any{
			"reading":       reading,
			"sprint_day":    status.CurrentDay,
			"sprint_status": string(status.Level),
		},
	), nil
}

// EnergyTrends reports the trailing-week period buckets.
func (ts *Toolset) EnergyTrends() (Response, error) {
	readings, err := ts.tracker.Energy.Recent(7)
	if err != nil {
		return Response{}, err
	}

	trends := tracker.BucketByPeriod(readings)
	average := tracker.AverageEnergy(readings)

	message := fmt.Sprintf("Average energy over 7 days: %.1f/5 (%d readings)", average, len(readings))
	if len(readings) == 0 {
		message = "No energy readings in the past 7 days"
	}

	return ok(message, map[string]any{
		"trends":  trends,
		"average": average,
		"count":   len(readings),
	}), nil
}
