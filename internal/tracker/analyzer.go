package tracker

import (
	"strings"
	"time"

	"github.com/sadopc/cardfile/internal/config"
)

// Analyzer derives actionable signals from the current task set, daily
// history, and sprint state. It keeps no state of its own: every call
// recomputes from the persisted records, so results can never go stale.
type Analyzer struct {
	registry *Registry
	journal  *Journal
	energy   *EnergyLog
	sprint   *Sprint
	cfg      *config.Config
	now      func() time.Time
}

func NewAnalyzer(registry *Registry, journal *Journal, energy *EnergyLog, sprint *Sprint, cfg *config.Config) *Analyzer {
	return &Analyzer{
		registry: registry,
		journal:  journal,
		energy:   energy,
		sprint:   sprint,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Analyze runs the full pattern analysis over the trailing seven days.
func (a *Analyzer) Analyze() (*PatternAnalysis, error) {
	tasks, err := a.registry.load()
	if err != nil {
		return nil, err
	}
	entries, err := a.journal.Entries()
	if err != nil {
		return nil, err
	}
	status, err := a.sprint.Status()
	if err != nil {
		return nil, err
	}
	readings, err := a.energy.Recent(7)
	if err != nil {
		return nil, err
	}

	analysis := &PatternAnalysis{
		AvoidancePatterns: avoidancePatterns(tasks, a.cfg.AvoidanceThreshold),
		EnergyTrends:      BucketByPeriod(readings),
		CompletionRate:    completionRate(entries, a.now()),
		CategoryBalance:   categoryBalance(tasks),
		BurnoutRisk:       burnoutRisk(status.Level, AverageEnergy(readings)),
	}
	return analysis, nil
}

// Summary aggregates headline counts for the presentation layer.
func (a *Analyzer) Summary() (*Summary, error) {
	tasks, err := a.registry.load()
	if err != nil {
		return nil, err
	}
	entries, err := a.journal.Entries()
	if err != nil {
		return nil, err
	}
	status, err := a.sprint.Status()
	if err != nil {
		return nil, err
	}
	analysis, err := a.Analyze()
	if err != nil {
		return nil, err
	}

	active := 0
	for _, t := range tasks {
		if t.Active() {
			active++
		}
	}

	return &Summary{
		TotalTasks:     len(tasks),
		ActiveTasks:    active,
		CompletedTasks: len(tasks) - active,
		AvoidedTasks:   len(analysis.AvoidancePatterns),
		DailyEntries:   len(entries),
		SprintDay:      status.CurrentDay,
		SprintLevel:    status.Level,
		BurnoutRisk:    analysis.BurnoutRisk,
		CompletionRate: analysis.CompletionRate,
	}, nil
}

// avoidancePatterns flags every active task at or past the roll threshold.
// first_rolled comes from the task's first note with the roll prefix
// stripped; tasks without notes fall back to their creation time.
func avoidancePatterns(tasks []Task, threshold int) []AvoidancePattern {
	patterns := []AvoidancePattern{}
	for _, t := range tasks {
		if !t.Active() || t.RollForwardCount < threshold {
			continue
		}
		firstRolled := t.CreatedAt.Format(time.RFC3339)
		if len(t.Notes) > 0 {
			firstRolled = strings.TrimPrefix(t.Notes[0], rollNotePrefix)
		}
		patterns = append(patterns, AvoidancePattern{
			TaskID:      t.ID,
			TaskContent: t.Content,
			RollCount:   t.RollForwardCount,
			FirstRolled: firstRolled,
			Category:    t.Priority,
		})
	}
	return patterns
}

// completionRate is completed/(completed+rolled) across entries from the
// trailing seven days, 0.0 when there was no activity.
func completionRate(entries map[string]DailyEntry, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -7)
	completed, rolled := 0, 0
	for date, entry := range entries {
		entryDate, err := time.ParseInLocation(dateLayout, date, time.Local)
		if err != nil || entryDate.Before(cutoff) {
			continue
		}
		completed += len(entry.TasksCompleted)
		rolled += len(entry.TasksRolledForward)
	}
	if completed+rolled == 0 {
		return 0.0
	}
	return float64(completed) / float64(completed+rolled)
}

func categoryBalance(tasks []Task) CategoryBalance {
	var balance CategoryBalance
	for _, t := range tasks {
		if !t.Active() {
			continue
		}
		switch t.Priority {
		case PriorityDeep:
			balance.Deep++
		case PriorityStandard:
			balance.Standard++
		case PriorityLight:
			balance.Light++
		case PrioritySomeday:
			balance.Someday++
		}
	}
	return balance
}

// burnoutRisk combines sprint health and average energy with OR semantics
// at each tier. The sprint check alone can force a tier regardless of how
// good the energy numbers look.
func burnoutRisk(level SprintLevel, avgEnergy float64) BurnoutRisk {
	switch {
	case level == SprintDanger || avgEnergy < 2.5:
		return RiskHigh
	case level == SprintWarning || avgEnergy < 3.5:
		return RiskMedium
	default:
		return RiskLow
	}
}
