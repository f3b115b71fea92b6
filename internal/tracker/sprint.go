package tracker

import (
	"time"

	"github.com/sadopc/cardfile/internal/config"
	"github.com/sadopc/cardfile/internal/store"
)

// Sprint tracks consecutive working days. The day-rollover transition runs
// on every status read but mutates state at most once per calendar day.
type Sprint struct {
	db  *store.Store
	cfg *config.Config
	now func() time.Time
}

func NewSprint(db *store.Store, cfg *config.Config) *Sprint {
	return &Sprint{db: db, cfg: cfg, now: time.Now}
}

func (s *Sprint) load(today string) (SprintState, error) {
	state := SprintState{
		CurrentDay:  1,
		StartDate:   today,
		LastWorkDay: today,
		RestDays:    []string{},
	}
	err := s.db.Load(store.DocSprint, &state)
	return state, err
}

// Status applies the once-per-day transition and classifies the counter.
//
// Same day as the last recorded work day: no mutation. A one-day step
// increments the counter. A gap of more than one day means rest was taken
// without being recorded, and the sprint restarts at day 1 today.
func (s *Sprint) Status() (*SprintStatus, error) {
	today := s.now().Format(dateLayout)
	state, err := s.load(today)
	if err != nil {
		return nil, err
	}

	if state.LastWorkDay != today {
		lastWork, perr := time.Parse(dateLayout, state.LastWorkDay)
		todayDate, _ := time.Parse(dateLayout, today)
		daysSince := 0
		if perr == nil {
			daysSince = int(todayDate.Sub(lastWork).Hours() / 24)
		}

		if perr != nil || daysSince > 1 {
			state.CurrentDay = 1
			state.StartDate = today
		} else {
			state.CurrentDay++
		}
		state.LastWorkDay = today
		if err := s.db.Save(store.DocSprint, state); err != nil {
			return nil, err
		}
	}

	level := SprintHealthy
	switch {
	case state.CurrentDay >= s.cfg.Sprint.DangerDay:
		level = SprintDanger
	case state.CurrentDay >= s.cfg.Sprint.WarningDay:
		level = SprintWarning
	}

	status := &SprintStatus{
		CurrentDay: state.CurrentDay,
		StartDate:  state.StartDate,
		Level:      level,
	}
	if n := len(state.RestDays); n > 0 {
		status.LastRestDay = state.RestDays[n-1]
	}
	return status, nil
}

// RecordRestDay resets the counter to zero and schedules tomorrow as day 1,
// so the sprint reads healthy the moment work resumes. This is deliberately
// different from the implicit gap reset, which restarts at day 1 immediately.
func (s *Sprint) RecordRestDay() error {
	today := s.now().Format(dateLayout)
	state, err := s.load(today)
	if err != nil {
		return err
	}

	tomorrow := s.now().AddDate(0, 0, 1).Format(dateLayout)
	state.RestDays = append(state.RestDays, today)
	state.CurrentDay = 0
	state.StartDate = tomorrow

	return s.db.Save(store.DocSprint, state)
}
