package tracker

import (
	"strings"
	"testing"
	"time"
)

func TestTodayLazyCreate(t *testing.T) {
	tr := newTestTracker(t)
	setClock(tr, time.Date(2026, 6, 1, 10, 30, 0, 0, time.Local))

	entry, err := tr.Journal.Today()
	if err != nil {
		t.Fatal(err)
	}
	if entry.Date != "2026-06-01" {
		t.Fatalf("expected today's date, got %s", entry.Date)
	}
	if entry.SprintDay != 1 {
		t.Fatalf("expected sprint day snapshot 1, got %d", entry.SprintDay)
	}
	if entry.EnergyReadings == nil || entry.TasksCompleted == nil ||
		entry.TasksRolledForward == nil || entry.FieldReports == nil {
		t.Fatalf("collections should be initialized, got %+v", entry)
	}

	// Second call returns the existing entry, not a fresh one.
	entries, err := tr.Journal.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single entry, got %d", len(entries))
	}
	again, err := tr.Journal.Today()
	if err != nil {
		t.Fatal(err)
	}
	if again.Date != entry.Date {
		t.Fatalf("expected the same entry back, got %+v", again)
	}
}

func TestAddFieldReportStampsTime(t *testing.T) {
	tr := newTestTracker(t)
	setClock(tr, time.Date(2026, 6, 1, 14, 5, 0, 0, time.Local))

	if err := tr.Journal.AddFieldReport("finished the draft"); err != nil {
		t.Fatal(err)
	}

	entry, err := tr.Journal.Today()
	if err != nil {
		t.Fatal(err)
	}
	if len(entry.FieldReports) != 1 {
		t.Fatalf("expected one field report, got %v", entry.FieldReports)
	}
	if entry.FieldReports[0] != "[14:05] finished the draft" {
		t.Fatalf("expected time-prefixed report, got %q", entry.FieldReports[0])
	}
}

func TestRecordCompletedAndRolled(t *testing.T) {
	tr := newTestTracker(t)
	setClock(tr, time.Date(2026, 6, 1, 9, 0, 0, 0, time.Local))

	if err := tr.Journal.RecordCompleted("task-1"); err != nil {
		t.Fatal(err)
	}
	if err := tr.Journal.RecordCompleted("task-2"); err != nil {
		t.Fatal(err)
	}
	if err := tr.Journal.RecordRolledForward("task-3"); err != nil {
		t.Fatal(err)
	}

	entry, err := tr.Journal.Today()
	if err != nil {
		t.Fatal(err)
	}
	if len(entry.TasksCompleted) != 2 || entry.TasksCompleted[0] != "task-1" {
		t.Fatalf("unexpected completed list: %v", entry.TasksCompleted)
	}
	if len(entry.TasksRolledForward) != 1 || entry.TasksRolledForward[0] != "task-3" {
		t.Fatalf("unexpected rolled list: %v", entry.TasksRolledForward)
	}
}

func TestSetBriefing(t *testing.T) {
	tr := newTestTracker(t)
	setClock(tr, time.Date(2026, 6, 1, 8, 0, 0, 0, time.Local))

	if err := tr.Journal.SetBriefing("Focus on the deep work stack today."); err != nil {
		t.Fatal(err)
	}

	entry, err := tr.Journal.Today()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(entry.Briefing, "deep work") {
		t.Fatalf("expected briefing stored, got %q", entry.Briefing)
	}
}

func TestEntriesSpanDays(t *testing.T) {
	tr := newTestTracker(t)

	setClock(tr, time.Date(2026, 6, 1, 9, 0, 0, 0, time.Local))
	if _, err := tr.Journal.Today(); err != nil {
		t.Fatal(err)
	}

	setClock(tr, time.Date(2026, 6, 2, 9, 0, 0, 0, time.Local))
	if _, err := tr.Journal.Today(); err != nil {
		t.Fatal(err)
	}

	entries, err := tr.Journal.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two dated entries, got %d", len(entries))
	}
	if _, ok := entries["2026-06-01"]; !ok {
		t.Fatal("missing entry for 2026-06-01")
	}
	if _, ok := entries["2026-06-02"]; !ok {
		t.Fatal("missing entry for 2026-06-02")
	}
}
