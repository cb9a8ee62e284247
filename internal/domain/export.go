package domain

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"example.com/workoutlog/internal/observability"
)

// ExportScope selects whose workouts a CSV export covers.
type ExportScope string

const (
	// ExportScopeOwn exports the actor's own workouts.
	ExportScopeOwn ExportScope = "own"
	// ExportScopeAll exports every user's workouts. Admin only.
	ExportScopeAll ExportScope = "all"
)

var exportHeader = []string{"date", "time", "muscle_group", "exercise", "set_number", "reps", "weight_kg"}

// ExportCSV streams workouts as CSV, one row per (workout, set) pair,
// ordered by date and time ascending then set number. Workouts without
// sets emit a single row with empty set columns. The all scope adds a
// username column and requires an admin actor.
func (s *WorkoutService) ExportCSV(ctx context.Context, actor Actor, scope ExportScope, w io.Writer) error {
	var userID string
	switch scope {
	case ExportScopeOwn:
		userID = actor.UserID
	case ExportScopeAll:
		if !actor.Admin {
			return ErrForbidden
		}
	default:
		return NewValidationError(FieldError{Field: "scope", Message: "must be own or all"})
	}

	rows, err := s.workouts.ExportRows(ctx, userID)
	if err != nil {
		return err
	}

	header := exportHeader
	if scope == ExportScopeAll {
		header = append(append([]string{}, exportHeader...), "username")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Date,
			row.Time,
			row.MuscleGroup,
			row.Exercise,
			formatIntPtr(row.SetNumber),
			formatIntPtr(row.Reps),
			formatFloatPtr(row.WeightKG),
		}
		if scope == ExportScopeAll {
			record = append(record, row.Username)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	observability.RecordExport(len(rows))
	return nil
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g", *v)
}
