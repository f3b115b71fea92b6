package tracker

import (
	"fmt"
	"time"

	"github.com/sadopc/cardfile/internal/store"
)

// dailyDocument maps calendar dates to their entries.
type dailyDocument struct {
	Entries map[string]DailyEntry `json:"entries"`
}

// Journal owns the per-date daily entries. Today's entry is created lazily
// on first access; entries for past dates are never created retroactively.
type Journal struct {
	db     *store.Store
	sprint *Sprint
	now    func() time.Time
}

func NewJournal(db *store.Store, sprint *Sprint) *Journal {
	return &Journal{db: db, sprint: sprint, now: time.Now}
}

func (j *Journal) load() (map[string]DailyEntry, error) {
	doc := dailyDocument{Entries: map[string]DailyEntry{}}
	if err := j.db.Load(store.DocDaily, &doc); err != nil {
		return nil, err
	}
	if doc.Entries == nil {
		doc.Entries = map[string]DailyEntry{}
	}
	return doc.Entries, nil
}

func (j *Journal) save(entries map[string]DailyEntry) error {
	return j.db.Save(store.DocDaily, dailyDocument{Entries: entries})
}

// Entries returns every recorded daily entry keyed by date.
func (j *Journal) Entries() (map[string]DailyEntry, error) {
	return j.load()
}

// Today returns today's entry, creating it with a sprint-day snapshot if it
// does not exist yet.
func (j *Journal) Today() (*DailyEntry, error) {
	today := j.now().Format(dateLayout)
	entries, err := j.load()
	if err != nil {
		return nil, err
	}

	if entry, ok := entries[today]; ok {
		return &entry, nil
	}

	status, err := j.sprint.Status()
	if err != nil {
		return nil, err
	}
	entry := DailyEntry{
		Date:               today,
		SprintDay:          status.CurrentDay,
		EnergyReadings:     []EnergyReading{},
		TasksCompleted:     []string{},
		TasksRolledForward: []string{},
		FieldReports:       []string{},
	}
	entries[today] = entry
	if err := j.save(entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// mutateToday applies fn to today's entry and persists the result. The entry
// is created first if needed, so fn always sees a valid entry.
func (j *Journal) mutateToday(fn func(*DailyEntry)) (*DailyEntry, error) {
	if _, err := j.Today(); err != nil {
		return nil, err
	}
	today := j.now().Format(dateLayout)
	entries, err := j.load()
	if err != nil {
		return nil, err
	}
	entry := entries[today]
	fn(&entry)
	entries[today] = entry
	if err := j.save(entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// AddFieldReport appends a quick capture note with an embedded time prefix.
func (j *Journal) AddFieldReport(report string) error {
	stamped := fmt.Sprintf("[%s] %s", j.now().Format("15:04"), report)
	_, err := j.mutateToday(func(e *DailyEntry) {
		e.FieldReports = append(e.FieldReports, stamped)
	})
	return err
}

// SetBriefing stores today's generated briefing text.
func (j *Journal) SetBriefing(text string) error {
	_, err := j.mutateToday(func(e *DailyEntry) {
		e.Briefing = text
	})
	return err
}

// RecordCompleted appends a task id to today's completed list.
func (j *Journal) RecordCompleted(taskID string) error {
	_, err := j.mutateToday(func(e *DailyEntry) {
		e.TasksCompleted = append(e.TasksCompleted, taskID)
	})
	return err
}

// RecordRolledForward appends a task id to today's rolled-forward list.
func (j *Journal) RecordRolledForward(taskID string) error {
	_, err := j.mutateToday(func(e *DailyEntry) {
		e.TasksRolledForward = append(e.TasksRolledForward, taskID)
	})
	return err
}
