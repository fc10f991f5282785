package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gymtrack/internal/client/models"
)

// Stats prints the dashboard summary.
func (a *App) Stats(ctx context.Context) error {
	stats, err := a.stats.Dashboard(ctx)
	if err != nil {
		return err
	}
	printlnFn("Workouts:", stats.TotalWorkouts)
	printlnFn("Minutes: ", stats.TotalMinutes)
	printlnFn("Streak:  ", stats.CurrentStreak, "days")
	return nil
}

// WeightChart prints the body-weight series as a simple bar chart.
// The optional argument is a range: 1month, 3months, 6months, 1year, all.
func (a *App) WeightChart(ctx context.Context, args []string) error {
	dateRange := ""
	if len(args) > 0 {
		dateRange = args[0]
	}

	points, err := a.stats.WeightChart(ctx, dateRange)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		printlnFn("No weight records, add one with 'metrics'.")
		return nil
	}

	min, max := points[0].Weight, points[0].Weight
	for _, p := range points {
		if p.Weight < min {
			min = p.Weight
		}
		if p.Weight > max {
			max = p.Weight
		}
	}

	for _, p := range points {
		bars := 1
		if max > min {
			bars = 1 + int((p.Weight-min)/(max-min)*40)
		}
		printlnFn(fmt.Sprintf("%s %6.1f %s", p.RecordedAt, p.Weight, strings.Repeat("#", bars)))
	}
	return nil
}

// RecordMetrics records a body measurement.
func (a *App) RecordMetrics(ctx context.Context) error {
	weight, err := GetFloat(a.reader, "Weight (kg)", 0, os.Stdout)
	if err != nil {
		return err
	}
	height, err := GetFloat(a.reader, "Height (cm)", 0, os.Stdout)
	if err != nil {
		return err
	}
	bodyFat, err := GetFloat(a.reader, "Body fat % (empty to skip)", 0, os.Stdout)
	if err != nil {
		return err
	}

	m := models.BodyMetrics{Weight: weight, Height: height, BodyFatPercentage: bodyFat}
	id, err := a.users.RecordBodyMetrics(ctx, m)
	if err != nil {
		return err
	}
	printlnFn("Recorded metrics", id)
	return nil
}

// Profile fetches the profile from the server and refreshes the stored
// identity, so role or avatar changes made elsewhere become visible.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.users.Profile(ctx)
	if err != nil {
		return err
	}

	if prev := a.store.Snapshot().User; prev != nil {
		if u.Role == "" {
			// Profile endpoint may omit the role; keep the claim from login.
			u.Role = prev.Role
		}
		if err := a.store.UpdateUser(ctx, u); err != nil {
			return err
		}
	}

	printlnFn(fmt.Sprintf("%s (%s)", u.Email, u.FullName))
	if u.Gender != "" {
		printlnFn("Gender:        ", u.Gender)
	}
	if u.DateOfBirth != "" {
		printlnFn("Date of birth: ", u.DateOfBirth)
	}
	if u.FitnessGoal != "" {
		printlnFn("Goal:          ", u.FitnessGoal)
	}
	if u.ActivityLevel != "" {
		printlnFn("Activity:      ", u.ActivityLevel)
	}
	return nil
}
