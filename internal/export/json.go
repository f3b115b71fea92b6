package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/cardfile/internal/tracker"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Tasks      []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID          string   `json:"id"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	CreatedAt   string   `json:"created_at"`
	CompletedAt string   `json:"completed_at,omitempty"`
	RollCount   int      `json:"roll_forward_count"`
	Notes       []string `json:"notes,omitempty"`
}

// categoryNamer maps a priority value to its display name. The config type
// satisfies it.
type categoryNamer interface {
	CategoryName(priority string) string
}

// TasksToJSON writes the full task collection to path.
func TasksToJSON(tasks []tracker.Task, names categoryNamer, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(tasks),
	}

	for _, t := range tasks {
		completed := ""
		if t.CompletedAt != nil {
			completed = t.CompletedAt.Local().Format(time.RFC3339)
		}
		export.Tasks = append(export.Tasks, jsonTask{
			ID:          t.ID,
			Content:     t.Content,
			Category:    names.CategoryName(string(t.Priority)),
			Priority:    string(t.Priority),
			CreatedAt:   t.CreatedAt.Local().Format(time.RFC3339),
			CompletedAt: completed,
			RollCount:   t.RollForwardCount,
			Notes:       t.Notes,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
