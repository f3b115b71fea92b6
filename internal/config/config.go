// Package config holds the user configuration record: sprint thresholds,
// peak energy windows, display names, and module flags. It is loaded once at
// startup and threaded explicitly into every component that needs it.
package config

import (
	"github.com/sadopc/cardfile/internal/store"
)

// DocumentNames are display names for the three core documents.
type DocumentNames struct {
	Daily   string `json:"daily"`
	Tasks   string `json:"tasks"`
	Journey string `json:"journey"`
}

// CategoryNames are display names for the four task categories.
type CategoryNames struct {
	Deep     string `json:"deep"`
	Standard string `json:"standard"`
	Light    string `json:"light"`
	Someday  string `json:"someday"`
}

// SprintThresholds set the day counts at which sprint health degrades.
type SprintThresholds struct {
	WarningDay int `json:"warning_day"`
	DangerDay  int `json:"danger_day"`
}

// EnergyWindow is an hour range flagged as high-focus time.
type EnergyWindow struct {
	Start int    `json:"start"` // hour 0-23, inclusive
	End   int    `json:"end"`   // hour 0-23, exclusive
	Label string `json:"label,omitempty"`
}

// CoachingVoices are opaque persona labels passed through to the coaching
// text generator. The core never interprets them.
type CoachingVoices struct {
	Discipline string `json:"discipline"` // for avoidance patterns
	Wisdom     string `json:"wisdom"`     // for burnout signals
	Leadership string `json:"leadership"` // for scattered priorities
}

// ModuleSettings enable optional modules.
type ModuleSettings struct {
	Health           bool `json:"health"`
	WeeklyReview     bool `json:"weekly_review"`
	DeepWorkSessions bool `json:"deep_work_sessions"`
}

// SystemSettings hold path and timezone configuration.
type SystemSettings struct {
	Timezone string `json:"timezone"`
	DataDir  string `json:"data_dir"`
}

// Config is the complete configuration record, persisted as a single
// document in the store.
type Config struct {
	Documents          DocumentNames    `json:"documents"`
	Categories         CategoryNames    `json:"categories"`
	Sprint             SprintThresholds `json:"sprint"`
	AvoidanceThreshold int              `json:"avoidance_threshold"`
	EnergyWindows      []EnergyWindow   `json:"energy_windows"`
	Voices             CoachingVoices   `json:"voices"`
	Modules            ModuleSettings   `json:"modules"`
	System             SystemSettings   `json:"system"`
}

// Default returns the configuration used when no record exists yet.
func Default() *Config {
	return &Config{
		Documents: DocumentNames{
			Daily:   "The Daybook",
			Tasks:   "The Card Stack",
			Journey: "The Long Haul",
		},
		Categories: CategoryNames{
			Deep:     "Deep Focus",
			Standard: "Standard Work",
			Light:    "Light Lifting",
			Someday:  "Someday Stack",
		},
		Sprint:             SprintThresholds{WarningDay: 14, DangerDay: 21},
		AvoidanceThreshold: 3,
		EnergyWindows: []EnergyWindow{
			{Start: 9, End: 13, Label: "Morning Focus"},
			{Start: 15, End: 18, Label: "Afternoon Drive"},
			{Start: 20, End: 22, Label: "Evening Flow"},
		},
		Voices: CoachingVoices{
			Discipline: "Marcus Aurelius",
			Wisdom:     "Gandalf",
			Leadership: "Aragorn",
		},
		Modules: ModuleSettings{
			Health:           false,
			WeeklyReview:     true,
			DeepWorkSessions: true,
		},
		System: SystemSettings{Timezone: "auto", DataDir: "~/.config/cardfile"},
	}
}

// Load reads the configuration document, falling back to defaults when the
// record is missing or corrupt. The first load persists the defaults so the
// record exists for collaborators.
func Load(db *store.Store) (*Config, error) {
	cfg := Default()
	updated, err := db.UpdatedAt(store.DocConfig)
	if err != nil {
		return nil, err
	}
	if err := db.Load(store.DocConfig, cfg); err != nil {
		return nil, err
	}
	sanitize(cfg)
	if updated.IsZero() {
		if err := db.Save(store.DocConfig, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Save persists the configuration record.
func Save(db *store.Store, cfg *Config) error {
	return db.Save(store.DocConfig, cfg)
}

// sanitize repairs values a hand-edited or partially written record could
// hold, so threshold math never divides through zero days.
func sanitize(cfg *Config) {
	def := Default()
	if cfg.Sprint.WarningDay < 1 {
		cfg.Sprint.WarningDay = def.Sprint.WarningDay
	}
	if cfg.Sprint.DangerDay < cfg.Sprint.WarningDay {
		cfg.Sprint.DangerDay = def.Sprint.DangerDay
	}
	if cfg.AvoidanceThreshold < 1 {
		cfg.AvoidanceThreshold = def.AvoidanceThreshold
	}
	if len(cfg.EnergyWindows) == 0 {
		cfg.EnergyWindows = def.EnergyWindows
	}
}

// CategoryName maps a priority value to its display name.
func (c *Config) CategoryName(priority string) string {
	switch priority {
	case "deep":
		return c.Categories.Deep
	case "standard":
		return c.Categories.Standard
	case "light":
		return c.Categories.Light
	case "someday":
		return c.Categories.Someday
	}
	return priority
}

// VoiceFor picks the coaching persona for a context keyword.
func (c *Config) VoiceFor(context string) string {
	switch context {
	case "avoidance":
		return c.Voices.Discipline
	case "burnout":
		return c.Voices.Wisdom
	case "scattered":
		return c.Voices.Leadership
	}
	return c.Voices.Wisdom
}

// InPeakWindow reports whether hour falls inside a configured peak energy
// window, and which one.
func (c *Config) InPeakWindow(hour int) (bool, *EnergyWindow) {
	for i := range c.EnergyWindows {
		w := &c.EnergyWindows[i]
		if w.Start <= hour && hour < w.End {
			return true, w
		}
	}
	return false, nil
}
