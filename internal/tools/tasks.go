package tools

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sadopc/cardfile/internal/tracker"
)

// AddTask creates a new card. The priority string is validated here, at the
// boundary; the registry only ever sees parsed values.
func (ts *Toolset) AddTask(content, priority, note string) (Response, error) {
	p, err := tracker.ParsePriority(priority)
	if err != nil {
		return fail(err.Error()), nil
	}

	var notes []string
	if note != "" {
		notes = []string{note}
	}
	task, err := ts.tracker.Registry.Add(content, p, notes)
	if err != nil {
		return Response{}, err
	}

	category := ts.cfg.CategoryName(string(p))
	return ok(
		fmt.Sprintf("Task added to %s: %q", category, content),
		map[string]any{"task_id": task.ID, "priority": string(p), "category": category},
	), nil
}

// CompleteTask resolves the identifier, rejects double completion, marks the
// task done, and records the completion in today's entry.
func (ts *Toolset) CompleteTask(identifier string) (Response, error) {
	task, err := ts.tracker.Registry.Find(identifier)
	if errors.Is(err, tracker.ErrNotFound) {
		return fail(fmt.Sprintf("Task not found: %q", identifier)), nil
	}
	if err != nil {
		return Response{}, err
	}

	if !task.Active() {
		return fail(fmt.Sprintf("%s: %q", tracker.ErrAlreadyCompleted, task.Content)), nil
	}

	done, err := ts.tracker.Registry.Complete(task.ID)
	if err != nil {
		return Response{}, err
	}
	if err := ts.tracker.Journal.RecordCompleted(done.ID); err != nil {
		return Response{}, err
	}

	return ok(
		fmt.Sprintf("Completed: %q", done.Content),
		map[string]any{"task_id": done.ID, "completed_at": done.CompletedAt},
	), nil
}

// RollForwardTask carries a card into the next day and flags it once it
// crosses the avoidance threshold.
func (ts *Toolset) RollForwardTask(identifier string) (Response, error) {
	task, err := ts.tracker.Registry.Find(identifier)
	if errors.Is(err, tracker.ErrNotFound) {
		return fail(fmt.Sprintf("Task not found: %q", identifier)), nil
	}
	if err != nil {
		return Response{}, err
	}

	rolled, err := ts.tracker.Registry.RollForward(task.ID)
	if err != nil {
		return Response{}, err
	}
	if err := ts.tracker.Journal.RecordRolledForward(rolled.ID); err != nil {
		return Response{}, err
	}

	avoided := rolled.RollForwardCount >= ts.cfg.AvoidanceThreshold
	var message string
	if avoided {
		message = fmt.Sprintf("AVOIDANCE PATTERN: %q has been rolled forward %d times",
			rolled.Content, rolled.RollForwardCount)
	} else {
		message = fmt.Sprintf("Rolled forward: %q (%dx)", rolled.Content, rolled.RollForwardCount)
	}

	return ok(message, map[string]any{
		"task_id":              rolled.ID,
		"roll_count":           rolled.RollForwardCount,
		"is_avoidance_pattern": avoided,
	}), nil
}

// Tasks lists active cards, grouped by category, optionally filtered to a
// single priority.
func (ts *Toolset) Tasks(priority string) (Response, error) {
	var filter tracker.TaskPriority
	if priority != "" {
		p, err := tracker.ParsePriority(priority)
		if err != nil {
			return fail(err.Error()), nil
		}
		filter = p
	}

	tasks, err := ts.tracker.Registry.List(filter, true)
	if err != nil {
		return Response{}, err
	}

	grouped := map[tracker.TaskPriority][]tracker.Task{}
	for _, t := range tasks {
		grouped[t.Priority] = append(grouped[t.Priority], t)
	}

	var sections []string
	for _, p := range tracker.Priorities {
		if filter != "" && p != filter {
			continue
		}
		group := grouped[p]
		if len(group) == 0 && filter == "" {
			continue
		}
		lines := make([]string, 0, len(group))
		for _, t := range group {
			line := "• " + t.Content
			if t.RollForwardCount > 0 {
				line += fmt.Sprintf(" [rolled %dx]", t.RollForwardCount)
			}
			lines = append(lines, line)
		}
		body := "No tasks"
		if len(lines) > 0 {
			body = strings.Join(lines, "\n")
		}
		sections = append(sections, ts.cfg.CategoryName(string(p))+":\n"+body)
	}

	message := "No active tasks"
	if len(sections) > 0 {
		message = strings.Join(sections, "\n\n")
	}

	return ok(message, map[string]any{"tasks": tasks, "count": len(tasks)}), nil
}

// AvoidedTasks lists cards rolled forward at or past the threshold, most
// avoided first.
func (ts *Toolset) AvoidedTasks() (Response, error) {
	avoided, err := ts.tracker.Registry.Avoided(ts.cfg.AvoidanceThreshold)
	if err != nil {
		return Response{}, err
	}

	if len(avoided) == 0 {
		return ok("No avoidance patterns detected. Great job staying on top of tasks!",
			map[string]any{"tasks": []tracker.Task{}, "count": 0}), nil
	}

	sort.SliceStable(avoided, func(i, j int) bool {
		return avoided[i].RollForwardCount > avoided[j].RollForwardCount
	})

	lines := make([]string, 0, len(avoided))
	for _, t := range avoided {
		lines = append(lines, fmt.Sprintf("• %q - rolled %dx (%s)",
			t.Content, t.RollForwardCount, ts.cfg.CategoryName(string(t.Priority))))
	}

	return ok("Avoidance patterns detected:\n"+strings.Join(lines, "\n"),
		map[string]any{"tasks": avoided, "count": len(avoided)}), nil
}
