package cli

import (
	"context"
	"fmt"
	"os"

	"gymtrack/internal/client/services"
)

// dayNames maps day_of_week (1..7, Monday-first) to display names.
var dayNames = [...]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func dayName(d int) string {
	if d >= 1 && d < len(dayNames) {
		return dayNames[d]
	}
	return fmt.Sprintf("day %d", d)
}

// Plans lists the current user's workout plans.
func (a *App) Plans(ctx context.Context) error {
	plans, err := a.plans.List(ctx)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		printlnFn("No plans yet, create one with 'newplan'.")
		return nil
	}
	for _, p := range plans {
		printlnFn(fmt.Sprintf("%4d  %-25s %s .. %s", p.ID, p.PlanName, p.StartDate, p.EndDate))
	}
	return nil
}

// ShowPlan prints a plan with its weekly schedule and exercise targets.
func (a *App) ShowPlan(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	p, err := a.plans.Get(ctx, id)
	if err != nil {
		return err
	}

	printlnFn(p.PlanName)
	if p.Description != "" {
		printlnFn(p.Description)
	}
	for _, s := range p.Schedules {
		printlnFn(fmt.Sprintf("  %s  %s (schedule %d)", dayName(s.DayOfWeek), s.Title, s.ID))
		for _, e := range s.Exercises {
			printlnFn(fmt.Sprintf("    [%d] %s  %dx%d, rest %ds",
				e.ID, e.ExerciseName, e.TargetSets, e.TargetReps, e.TargetRestTime))
		}
	}
	return nil
}

func (a *App) promptPlanRequest() (services.PlanRequest, error) {
	var req services.PlanRequest
	var err error

	if req.PlanName, err = getSimpleText(a.reader, "Plan name", os.Stdout); err != nil {
		return req, err
	}
	if req.StartDate, err = getSimpleText(a.reader, "Start date (YYYY-MM-DD)", os.Stdout); err != nil {
		return req, err
	}
	if req.EndDate, err = getSimpleText(a.reader, "End date (YYYY-MM-DD)", os.Stdout); err != nil {
		return req, err
	}
	if req.Description, err = getSimpleText(a.reader, "Description", os.Stdout); err != nil {
		return req, err
	}
	return req, nil
}

// NewPlan creates a workout plan.
func (a *App) NewPlan(ctx context.Context) error {
	req, err := a.promptPlanRequest()
	if err != nil {
		return err
	}
	id, err := a.plans.Create(ctx, req)
	if err != nil {
		return err
	}
	printlnFn("Created plan", id)
	return nil
}

// EditPlan updates a plan's header fields.
func (a *App) EditPlan(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	req, err := a.promptPlanRequest()
	if err != nil {
		return err
	}
	if err := a.plans.Update(ctx, id, req); err != nil {
		return err
	}
	printlnFn("Updated plan", id)
	return nil
}

// DeletePlan soft-deletes a plan.
func (a *App) DeletePlan(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	if err := a.plans.Delete(ctx, id); err != nil {
		return err
	}
	printlnFn("Deleted plan", id)
	return nil
}

// ClonePlan duplicates a plan with its schedules.
func (a *App) ClonePlan(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	newID, err := a.plans.Clone(ctx, id)
	if err != nil {
		return err
	}
	printlnFn("Cloned into plan", newID)
	return nil
}

// AddScheduleDay adds a training day to a plan.
func (a *App) AddScheduleDay(ctx context.Context, planIDArg string) error {
	planID, err := parseID(planIDArg)
	if err != nil {
		return err
	}
	day, err := GetInt(a.reader, "Day of week (1=Mon .. 7=Sun)", 0, os.Stdout)
	if err != nil {
		return err
	}
	if day < 1 || day > 7 {
		return fmt.Errorf("day of week must be 1..7, got %d", day)
	}
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.plans.AddSchedule(ctx, planID, services.ScheduleRequest{DayOfWeek: day, Title: title})
	if err != nil {
		return err
	}
	printlnFn("Added schedule", id)
	return nil
}

func (a *App) promptTargets(withExercise bool) (services.ExerciseTargets, error) {
	var t services.ExerciseTargets
	var err error

	if withExercise {
		exID, err := GetInt(a.reader, "Exercise id", 0, os.Stdout)
		if err != nil {
			return t, err
		}
		t.ExerciseID = int64(exID)
	}
	if t.TargetSets, err = GetInt(a.reader, "Target sets", 3, os.Stdout); err != nil {
		return t, err
	}
	if t.TargetReps, err = GetInt(a.reader, "Target reps", 10, os.Stdout); err != nil {
		return t, err
	}
	if t.TargetRestTime, err = GetInt(a.reader, "Rest time (seconds)", 60, os.Stdout); err != nil {
		return t, err
	}
	return t, nil
}

// AddScheduleExercise binds an exercise with targets to a schedule.
func (a *App) AddScheduleExercise(ctx context.Context, scheduleIDArg string) error {
	scheduleID, err := parseID(scheduleIDArg)
	if err != nil {
		return err
	}
	t, err := a.promptTargets(true)
	if err != nil {
		return err
	}
	id, err := a.schedules.AddExercise(ctx, scheduleID, t)
	if err != nil {
		return err
	}
	printlnFn("Added exercise", id)
	return nil
}

// EditScheduleExercise updates the targets of a plan exercise.
func (a *App) EditScheduleExercise(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	t, err := a.promptTargets(false)
	if err != nil {
		return err
	}
	if err := a.schedules.UpdateExercise(ctx, id, t); err != nil {
		return err
	}
	printlnFn("Updated exercise", id)
	return nil
}

// RemoveScheduleExercise removes an exercise from a schedule.
func (a *App) RemoveScheduleExercise(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	if err := a.schedules.RemoveExercise(ctx, id); err != nil {
		return err
	}
	printlnFn("Removed exercise", id)
	return nil
}
