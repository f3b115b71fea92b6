package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sadopc/cardfile/internal/tracker"
)

// TasksToCSV writes the task collection to path, one row per card.
func TasksToCSV(tasks []tracker.Task, names categoryNamer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Content", "Category", "Created", "Completed", "Rolls"}); err != nil {
		return err
	}

	for _, t := range tasks {
		completed := ""
		if t.CompletedAt != nil {
			completed = t.CompletedAt.Local().Format(time.RFC3339)
		}
		row := []string{
			t.ID,
			t.Content,
			names.CategoryName(string(t.Priority)),
			t.CreatedAt.Local().Format(time.RFC3339),
			completed,
			fmt.Sprintf("%d", t.RollForwardCount),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// DaysToCSV writes the daily history to path, one row per date, oldest
// first.
func DaysToCSV(entries map[string]tracker.DailyEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Sprint Day", "Energy Readings", "Avg Energy", "Completed", "Rolled", "Field Reports"}); err != nil {
		return err
	}

	dates := make([]string, 0, len(entries))
	for date := range entries {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		e := entries[date]
		row := []string{
			e.Date,
			fmt.Sprintf("%d", e.SprintDay),
			fmt.Sprintf("%d", len(e.EnergyReadings)),
			fmt.Sprintf("%.1f", tracker.AverageEnergy(e.EnergyReadings)),
			fmt.Sprintf("%d", len(e.TasksCompleted)),
			fmt.Sprintf("%d", len(e.TasksRolledForward)),
			fmt.Sprintf("%d", len(e.FieldReports)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
