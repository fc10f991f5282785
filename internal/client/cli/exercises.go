package cli

import (
	"context"
	"fmt"
	"os"

	"gymtrack/internal/client/services"
)

// MuscleGroups lists the catalog categories.
func (a *App) MuscleGroups(ctx context.Context) error {
	groups, err := a.exercises.MuscleGroups(ctx)
	if err != nil {
		return err
	}
	for _, g := range groups {
		printlnFn(fmt.Sprintf("%4d  %s", g.ID, g.GroupName))
	}
	return nil
}

// Exercises lists the catalog, prompting for optional filters.
func (a *App) Exercises(ctx context.Context) error {
	groupID, err := GetInt(a.reader, "Muscle group id (empty for all)", 0, os.Stdout)
	if err != nil {
		return err
	}
	difficulty, err := getSimpleText(a.reader, "Difficulty (empty for all)", os.Stdout)
	if err != nil {
		return err
	}
	page, err := GetInt(a.reader, "Page (empty for first)", 0, os.Stdout)
	if err != nil {
		return err
	}

	filter := services.ExerciseFilter{
		MuscleGroupID: int64(groupID),
		Difficulty:    difficulty,
		Page:          page,
	}
	items, pagination, err := a.exercises.List(ctx, filter)
	if err != nil {
		return err
	}

	for _, e := range items {
		line := fmt.Sprintf("%4d  %-30s %s", e.ID, e.Name, e.Difficulty)
		printlnFn(line)
	}
	if pagination != nil && pagination.TotalPages > 1 {
		printlnFn(fmt.Sprintf("Page %d of %d", pagination.Page, pagination.TotalPages))
	}
	return nil
}

// ShowExercise prints one exercise with its media.
func (a *App) ShowExercise(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	e, err := a.exercises.Get(ctx, id)
	if err != nil {
		return err
	}

	printlnFn(e.Name)
	if e.Difficulty != "" {
		printlnFn("Difficulty:", e.Difficulty)
	}
	if e.Equipment != "" {
		printlnFn("Equipment:", e.Equipment)
	}
	if e.Description != "" {
		printlnFn(e.Description)
	}
	for _, m := range e.Media {
		printlnFn(fmt.Sprintf("  [%d] %s %s", m.ID, m.MediaType, m.URL))
	}
	return nil
}
