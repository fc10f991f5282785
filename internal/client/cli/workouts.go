package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"gymtrack/internal/client/models"
)

// LogWorkout records a completed session, planned or free.
func (a *App) LogWorkout(ctx context.Context) error {
	scheduleID, err := GetInt(a.reader, "Schedule id (empty for a free workout)", 0, os.Stdout)
	if err != nil {
		return err
	}
	duration, err := GetInt(a.reader, "Duration (minutes)", 0, os.Stdout)
	if err != nil {
		return err
	}
	notes, err := getSimpleText(a.reader, "Notes", os.Stdout)
	if err != nil {
		return err
	}

	w := models.WorkoutLog{
		PerformedAt:     time.Now().UTC().Format(time.RFC3339),
		DurationMinutes: duration,
		Notes:           notes,
	}
	if scheduleID != 0 {
		id := int64(scheduleID)
		w.PlanScheduleID = &id
	}

	// One detail line per performed exercise, empty exercise id to finish.
	for {
		exID, err := GetInt(a.reader, "Exercise id (empty to finish)", 0, os.Stdout)
		if err != nil {
			return err
		}
		if exID == 0 {
			break
		}
		sets, err := GetInt(a.reader, "Sets done", 0, os.Stdout)
		if err != nil {
			return err
		}
		reps, err := GetInt(a.reader, "Reps done", 0, os.Stdout)
		if err != nil {
			return err
		}
		weight, err := GetFloat(a.reader, "Weight used (kg, empty for none)", 0, os.Stdout)
		if err != nil {
			return err
		}
		w.Details = append(w.Details, models.WorkoutDetail{
			ExerciseID: int64(exID),
			SetsDone:   sets,
			RepsDone:   reps,
			WeightUsed: weight,
		})
	}

	id, err := a.workouts.Log(ctx, w)
	if err != nil {
		return err
	}
	printlnFn("Logged workout", id)
	return nil
}

// History lists logged workouts; optional args narrow to "month year".
func (a *App) History(ctx context.Context, args []string) error {
	var month, year int
	if len(args) >= 1 {
		m, err := strconv.Atoi(args[0])
		if err != nil || m < 1 || m > 12 {
			return fmt.Errorf("invalid month: %q", args[0])
		}
		month = m
		year = time.Now().Year()
	}
	if len(args) >= 2 {
		y, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid year: %q", args[1])
		}
		year = y
	}

	items, err := a.workouts.History(ctx, month, year)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		printlnFn("No workouts logged.")
		return nil
	}
	for _, it := range items {
		line := fmt.Sprintf("%4d  %s  %3d min", it.ID, it.PerformedAt, it.DurationMinutes)
		if it.ScheduleTitle != "" {
			line += "  " + it.ScheduleTitle
		}
		printlnFn(line)
	}
	return nil
}

// ShowWorkout prints one history entry with its exercise details.
func (a *App) ShowWorkout(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	it, err := a.workouts.Detail(ctx, id)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("%s  %d min", it.PerformedAt, it.DurationMinutes))
	if it.Notes != "" {
		printlnFn(it.Notes)
	}
	for _, d := range it.Details {
		line := fmt.Sprintf("  %-30s %dx%d", d.ExerciseName, d.SetsDone, d.RepsDone)
		if d.WeightUsed > 0 {
			line += fmt.Sprintf(" @ %.1fkg", d.WeightUsed)
		}
		printlnFn(line)
	}
	return nil
}

// DeleteWorkout removes a history entry.
func (a *App) DeleteWorkout(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	if err := a.workouts.Delete(ctx, id); err != nil {
		return err
	}
	printlnFn("Deleted workout", id)
	return nil
}
