// Package export renders the behavioral logs as downloadable CSV
// files. An empty log yields no file at all rather than a header-only
// file.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/nutrifarma/advisor-api/internal/model"
)

// File is an in-memory download: name plus UTF-8 CSV content.
type File struct {
	Name    string
	Content []byte
}

// FoodLogCSV dumps the food log, one row per entry. Returns nil when
// the log is empty.
func FoodLogCSV(entries []model.FoodEntry, now time.Time) (*File, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	rows := [][]string{{"date", "time", "meal", "description", "quantity"}}
	for _, e := range entries {
		rows = append(rows, []string{e.Date, e.Time, string(e.Meal), e.Description, e.Quantity})
	}

	content, err := writeCSV(rows)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:    fmt.Sprintf("food_log_%s.csv", now.Format("2006-01-02")),
		Content: content,
	}, nil
}

// ActivityLogCSV dumps the activity log. Returns nil when empty.
func ActivityLogCSV(entries []model.ActivityEntry, now time.Time) (*File, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	rows := [][]string{{"date", "activity", "duration_minutes", "intensity", "notes"}}
	for _, e := range entries {
		rows = append(rows, []string{
			e.Date, e.Activity, strconv.Itoa(e.DurationMinutes), string(e.Intensity), e.Notes,
		})
	}

	content, err := writeCSV(rows)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:    fmt.Sprintf("activity_log_%s.csv", now.Format("2006-01-02")),
		Content: content,
	}, nil
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}
