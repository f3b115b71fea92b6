package tracker

import "time"

// TaskPriority buckets tasks by the cognitive energy they demand.
type TaskPriority string

const (
	PriorityDeep     TaskPriority = "deep"
	PriorityStandard TaskPriority = "standard"
	PriorityLight    TaskPriority = "light"
	PrioritySomeday  TaskPriority = "someday"
)

// Priorities lists all valid priorities in display order.
var Priorities = []TaskPriority{PriorityDeep, PriorityStandard, PriorityLight, PrioritySomeday}

// EnergyLevel is a self-reported energy state.
type EnergyLevel string

const (
	EnergyHigh     EnergyLevel = "high"
	EnergyMedium   EnergyLevel = "medium"
	EnergyLow      EnergyLevel = "low"
	EnergyDepleted EnergyLevel = "depleted"
	EnergyRecovery EnergyLevel = "recovery"
)

// EnergyLevels lists all valid levels from highest to lowest charge.
var EnergyLevels = []EnergyLevel{EnergyHigh, EnergyMedium, EnergyLow, EnergyDepleted, EnergyRecovery}

// SprintLevel classifies sprint health against the configured thresholds.
type SprintLevel string

const (
	SprintHealthy SprintLevel = "healthy"
	SprintWarning SprintLevel = "warning"
	SprintDanger  SprintLevel = "danger"
)

// BurnoutRisk is the three-tier risk classification.
type BurnoutRisk string

const (
	RiskLow    BurnoutRisk = "low"
	RiskMedium BurnoutRisk = "medium"
	RiskHigh   BurnoutRisk = "high"
)

// SessionType tags what a session was started for.
type SessionType string

const (
	SessionBriefing       SessionType = "briefing"
	SessionCard           SessionType = "card"
	SessionEnergy         SessionType = "energy"
	SessionAccountability SessionType = "accountability"
	SessionGeneral        SessionType = "general"
)

// SessionTypes lists all valid session types.
var SessionTypes = []SessionType{SessionBriefing, SessionCard, SessionEnergy, SessionAccountability, SessionGeneral}

// Task is a single index card. Identity is the ID; content is the card text.
type Task struct {
	ID               string       `json:"id"`
	Content          string       `json:"content"`
	Priority         TaskPriority `json:"priority"`
	CreatedAt        time.Time    `json:"created_at"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
	RollForwardCount int          `json:"roll_forward_count"`
	Notes            []string     `json:"notes"`
}

// Active reports whether the task is still open.
func (t Task) Active() bool { return t.CompletedAt == nil }

// EnergyReading is immutable once logged and lives inside a DailyEntry.
type EnergyReading struct {
	Timestamp time.Time   `json:"timestamp"`
	Level     EnergyLevel `json:"level"`
	Context   string      `json:"context,omitempty"`
}

// DailyEntry is the per-calendar-date record. Once created it is only
// appended to through explicit field updates, never replaced wholesale.
type DailyEntry struct {
	Date               string          `json:"date"`
	SprintDay          int             `json:"sprint_day"`
	EnergyReadings     []EnergyReading `json:"energy_readings"`
	TasksCompleted     []string        `json:"tasks_completed"`
	TasksRolledForward []string        `json:"tasks_rolled_forward"`
	FieldReports       []string        `json:"field_reports"`
	Briefing           string          `json:"briefing,omitempty"`
}

// SprintState is the persisted consecutive-working-day counter.
type SprintState struct {
	CurrentDay  int      `json:"current_day"`
	StartDate   string   `json:"start_date"`
	LastWorkDay string   `json:"last_work_day"`
	RestDays    []string `json:"rest_days"`
}

// SprintStatus is the derived view handed to callers.
type SprintStatus struct {
	CurrentDay  int         `json:"current_day"`
	StartDate   string      `json:"start_date"`
	Level       SprintLevel `json:"status"`
	LastRestDay string      `json:"last_rest_day,omitempty"`
}

// Session is one interactive session with the tracker.
type Session struct {
	ID           string            `json:"id"`
	StartedAt    time.Time         `json:"started_at"`
	LastActivity time.Time         `json:"last_activity"`
	Type         SessionType       `json:"type"`
	Context      map[string]string `json:"context,omitempty"`
}

// AvoidancePattern is a task rolled forward at or past the threshold.
type AvoidancePattern struct {
	TaskID      string       `json:"task_id"`
	TaskContent string       `json:"task_content"`
	RollCount   int          `json:"roll_count"`
	FirstRolled string       `json:"first_rolled"`
	Category    TaskPriority `json:"category"`
}

// EnergyTrend is the bucketed average for one period of the day.
type EnergyTrend struct {
	Period       string  `json:"period"` // morning, afternoon, evening
	AverageLevel float64 `json:"average_level"`
	SampleCount  int     `json:"sample_count"`
}

// CategoryBalance counts active tasks per priority.
type CategoryBalance struct {
	Deep     int `json:"deep"`
	Standard int `json:"standard"`
	Light    int `json:"light"`
	Someday  int `json:"someday"`
}

// PatternAnalysis is derived on every request and never persisted, so it
// cannot go stale.
type PatternAnalysis struct {
	AvoidancePatterns []AvoidancePattern `json:"avoidance_patterns"`
	EnergyTrends      []EnergyTrend      `json:"energy_trends"`
	CompletionRate    float64            `json:"completion_rate"`
	CategoryBalance   CategoryBalance    `json:"category_balance"`
	BurnoutRisk       BurnoutRisk        `json:"burnout_risk"`
}

// Summary aggregates headline counts for the presentation layer.
type Summary struct {
	TotalTasks     int         `json:"total_tasks"`
	ActiveTasks    int         `json:"active_tasks"`
	CompletedTasks int         `json:"completed_tasks"`
	AvoidedTasks   int         `json:"avoided_tasks"`
	DailyEntries   int         `json:"daily_entries"`
	SprintDay      int         `json:"sprint_day"`
	SprintLevel    SprintLevel `json:"sprint_status"`
	BurnoutRisk    BurnoutRisk `json:"burnout_risk"`
	CompletionRate float64     `json:"completion_rate"`
}

// dateLayout is the calendar-date key format for daily entries and sprint
// fields, in the process-local timezone.
const dateLayout = "2006-01-02"
