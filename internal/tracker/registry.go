package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/cardfile/internal/store"
)

// rollNotePrefix stamps the notes appended by RollForward. The analyzer
// strips it back off to recover the first roll date.
const rollNotePrefix = "Rolled forward on "

// taskDocument is the persisted shape of the task collection: the full
// ordered task list plus a last-updated timestamp. Insertion order is
// preserved across round trips.
type taskDocument struct {
	Tasks       []Task    `json:"tasks"`
	LastUpdated time.Time `json:"last_updated"`
}

// Registry is the task CRUD component. Every operation is a read-modify-write
// cycle over the tasks document.
type Registry struct {
	db  *store.Store
	now func() time.Time
}

func NewRegistry(db *store.Store) *Registry {
	return &Registry{db: db, now: time.Now}
}

// newID generates a globally unique id with a time-based prefix, keeping ids
// naturally sortable by creation time.
func newID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", now.Unix(), suffix)
}

func (r *Registry) load() ([]Task, error) {
	doc := taskDocument{Tasks: []Task{}}
	if err := r.db.Load(store.DocTasks, &doc); err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

func (r *Registry) save(tasks []Task) error {
	return r.db.Save(store.DocTasks, taskDocument{Tasks: tasks, LastUpdated: r.now()})
}

// Add creates a task and appends it to the collection. It fails only on
// storage errors.
func (r *Registry) Add(content string, priority TaskPriority, notes []string) (*Task, error) {
	tasks, err := r.load()
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []string{}
	}
	task := Task{
		ID:        newID(r.now()),
		Content:   content,
		Priority:  priority,
		CreatedAt: r.now(),
		Notes:     notes,
	}
	tasks = append(tasks, task)
	if err := r.save(tasks); err != nil {
		return nil, err
	}
	return &task, nil
}

// Complete stamps completed_at on the task. The registry itself does not
// reject re-completion; the tool layer checks that before calling.
func (r *Registry) Complete(id string) (*Task, error) {
	tasks, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			now := r.now()
			tasks[i].CompletedAt = &now
			if err := r.save(tasks); err != nil {
				return nil, err
			}
			return &tasks[i], nil
		}
	}
	return nil, ErrNotFound
}

// RollForward increments the avoidance counter and appends a dated note.
func (r *Registry) RollForward(id string) (*Task, error) {
	tasks, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].RollForwardCount++
			tasks[i].Notes = append(tasks[i].Notes,
				rollNotePrefix+r.now().Format(dateLayout))
			if err := r.save(tasks); err != nil {
				return nil, err
			}
			return &tasks[i], nil
		}
	}
	return nil, ErrNotFound
}

// Find resolves an identifier to a task: exact id match first, then the
// first task whose content contains the identifier case-insensitively.
// When several contents match, the earliest wins silently.
func (r *Registry) Find(identifier string) (*Task, error) {
	tasks, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == identifier {
			return &tasks[i], nil
		}
	}
	needle := strings.ToLower(identifier)
	for i := range tasks {
		if strings.Contains(strings.ToLower(tasks[i].Content), needle) {
			return &tasks[i], nil
		}
	}
	return nil, ErrNotFound
}

// List returns tasks filtered by priority (empty = all) and, when activeOnly
// is set, by completion status.
func (r *Registry) List(priority TaskPriority, activeOnly bool) ([]Task, error) {
	tasks, err := r.load()
	if err != nil {
		return nil, err
	}
	var out []Task
	for _, t := range tasks {
		if priority != "" && t.Priority != priority {
			continue
		}
		if activeOnly && !t.Active() {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Avoided returns active tasks rolled forward at least minRoll times. The
// boundary is inclusive.
func (r *Registry) Avoided(minRoll int) ([]Task, error) {
	tasks, err := r.load()
	if err != nil {
		return nil, err
	}
	var out []Task
	for _, t := range tasks {
		if t.Active() && t.RollForwardCount >= minRoll {
			out = append(out, t)
		}
	}
	return out, nil
}
