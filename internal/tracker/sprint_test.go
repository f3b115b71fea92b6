package tracker

import (
	"testing"
	"time"

	"github.com/sadopc/cardfile/internal/store"
)

func seedSprint(t *testing.T, tr *Tracker, state SprintState) {
	t.Helper()
	if err := tr.DB.Save(store.DocSprint, state); err != nil {
		t.Fatalf("seed sprint: %v", err)
	}
}

func loadSprintState(t *testing.T, tr *Tracker) SprintState {
	t.Helper()
	var state SprintState
	if err := tr.DB.Load(store.DocSprint, &state); err != nil {
		t.Fatalf("load sprint: %v", err)
	}
	return state
}

func TestSprintFirstStatus(t *testing.T) {
	tr := newTestTracker(t)
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.Local)
	setClock(tr, now)

	status, err := tr.Sprint.Status()
	if err != nil {
		t.Fatal(err)
	}
	if status.CurrentDay != 1 {
		t.Fatalf("fresh sprint should be day 1, got %d", status.CurrentDay)
	}
	if status.StartDate != "2026-05-04" {
		t.Fatalf("expected start date today, got %s", status.StartDate)
	}
	if status.Level != SprintHealthy {
		t.Fatalf("day 1 should be healthy, got %s", status.Level)
	}
}

func TestSprintSameDayNoMutation(t *testing.T) {
	tr := newTestTracker(t)
	setClock(tr, time.Date(2026, 5, 4, 10, 0, 0, 0, time.Local))

	first, err := tr.Sprint.Status()
	if err != nil {
		t.Fatal(err)
	}
	second, err := tr.Sprint.Status()
	if err != nil {
		t.Fatal(err)
	}
	if second.CurrentDay != first.CurrentDay {
		t.Fatalf("same-day re-read must not advance: %d vs %d", first.CurrentDay, second.CurrentDay)
	}
}

func TestSprintIncrementsAfterOneDay(t *testing.T) {
	tr := newTestTracker(t)
	setClock(tr, time.Date(2026, 5, 5, 9, 0, 0, 0, time.Local))

	seedSprint(t, tr, SprintState{
		CurrentDay:  5,
		StartDate:   "2026-04-30",
		LastWorkDay: "2026-05-04",
		RestDays:    []string{},
	})

	status, err := tr.Sprint.Status()
	if err != nil {
		t.Fatal(err)
	}
	if status.CurrentDay != 6 {
		t.Fatalf("one-day step should increment to 6, got %d", status.CurrentDay)
	}
	if status.StartDate != "2026-04-30" {
		t.Fatalf("start date should survive increments, got %s", status.StartDate)
	}

	state := loadSprintState(t, tr)
	if state.LastWorkDay != "2026-05-05" {
		t.Fatalf("last work day should advance, got %s", state.LastWorkDay)
	}
}

func TestSprintGapResets(t *testing.T) {
	tr := newTestTracker(t)
	setClock(tr, time.Date(2026, 5, 8, 9, 0, 0, 0, time.Local))

	seedSprint(t, tr, SprintState{
		CurrentDay:  12,
		StartDate:   "2026-04-22",
		LastWorkDay: "2026-05-04", // four days ago
		RestDays:    []string{},
	})

	status, err := tr.Sprint.Status()
	if err != nil {
		t.Fatal(err)
	}
	if status.CurrentDay != 1 {
		t.Fatalf("gap should reset to day 1, got %d", status.CurrentDay)
	}
	if status.StartDate != "2026-05-08" {
		t.Fatalf("reset should restart the sprint today, got %s", status.StartDate)
	}
}

func TestSprintUnparsableLastWorkDayResets(t *testing.T) {
	tr := newTestTracker(t)
	setClock(tr, time.Date(2026, 5, 8, 9, 0, 0, 0, time.Local))

	seedSprint(t, tr, SprintState{
		CurrentDay:  9,
		StartDate:   "2026-04-30",
		LastWorkDay: "garbage",
		RestDays:    []string{},
	})

	status, err := tr.Sprint.Status()
	if err != nil {
		t.Fatal(err)
	}
	if status.CurrentDay != 1 {
		t.Fatalf("unparsable state should reset to day 1, got %d", status.CurrentDay)
	}
}

func TestSprintLevels(t *testing.T) {
	// Default thresholds: warning at 14, danger at 21
	cases := []struct {
		day  int
		want SprintLevel
	}{
		{1, SprintHealthy},
		{13, SprintHealthy},
		{14, SprintWarning},
		{20, SprintWarning},
		{21, SprintDanger},
		{30, SprintDanger},
	}

	for _, tc := range cases {
		tr := newTestTracker(t)
		setClock(tr, time.Date(2026, 5, 4, 9, 0, 0, 0, time.Local))
		seedSprint(t, tr, SprintState{
			CurrentDay:  tc.day,
			StartDate:   "2026-04-01",
			LastWorkDay: "2026-05-04",
			RestDays:    []string{},
		})

		status, err := tr.Sprint.Status()
		if err != nil {
			t.Fatal(err)
		}
		if status.Level != tc.want {
			t.Errorf("day %d: expected %s, got %s", tc.day, tc.want, status.Level)
		}
	}
}

func TestRecordRestDay(t *testing.T) {
	tr := newTestTracker(t)
	setClock(tr, time.Date(2026, 5, 10, 18, 0, 0, 0, time.Local))

	seedSprint(t, tr, SprintState{
		CurrentDay:  16,
		StartDate:   "2026-04-25",
		LastWorkDay: "2026-05-10",
		RestDays:    []string{},
	})

	if err := tr.Sprint.RecordRestDay(); err != nil {
		t.Fatal(err)
	}

	state := loadSprintState(t, tr)
	if state.CurrentDay != 0 {
		t.Fatalf("rest day should zero the counter, got %d", state.CurrentDay)
	}
	if state.StartDate != "2026-05-11" {
		t.Fatalf("next sprint should start tomorrow, got %s", state.StartDate)
	}
	if state.LastWorkDay != "2026-05-10" {
		t.Fatalf("last work day must survive the rest day, got %s", state.LastWorkDay)
	}
	if len(state.RestDays) != 1 || state.RestDays[0] != "2026-05-10" {
		t.Fatalf("today should be recorded as a rest day, got %v", state.RestDays)
	}
}

func TestRestDayThenNextDayReadsHealthyDayOne(t *testing.T) {
	tr := newTestTracker(t)
	setClock(tr, time.Date(2026, 5, 10, 18, 0, 0, 0, time.Local))

	seedSprint(t, tr, SprintState{
		CurrentDay:  22,
		StartDate:   "2026-04-19",
		LastWorkDay: "2026-05-10",
		RestDays:    []string{},
	})
	if err := tr.Sprint.RecordRestDay(); err != nil {
		t.Fatal(err)
	}

	// Work resumes the next morning: the one-day step increments 0 -> 1.
	setClock(tr, time.Date(2026, 5, 11, 8, 0, 0, 0, time.Local))
	status, err := tr.Sprint.Status()
	if err != nil {
		t.Fatal(err)
	}
	if status.CurrentDay != 1 {
		t.Fatalf("day after rest should read day 1, got %d", status.CurrentDay)
	}
	if status.Level != SprintHealthy {
		t.Fatalf("day after rest should be healthy, got %s", status.Level)
	}
	if status.LastRestDay != "2026-05-10" {
		t.Fatalf("expected last rest day surfaced, got %q", status.LastRestDay)
	}
}
