package services

import (
	"context"
	"fmt"
	"net/http"

	"gymtrack/internal/client/api"
)

// ExerciseTargets are the per-exercise goals inside a schedule.
type ExerciseTargets struct {
	ExerciseID     int64 `json:"exercise_id,omitempty"`
	TargetSets     int   `json:"target_sets"`
	TargetReps     int   `json:"target_reps"`
	TargetRestTime int   `json:"target_rest_time,omitempty"`
}

// ScheduleService edits the exercises bound to a plan's training days.
type ScheduleService interface {
	AddExercise(ctx context.Context, scheduleID int64, t ExerciseTargets) (int64, error)
	UpdateExercise(ctx context.Context, planExerciseID int64, t ExerciseTargets) error
	RemoveExercise(ctx context.Context, planExerciseID int64) error
}

type scheduleService struct {
	api *api.Client
}

func NewScheduleService(c *api.Client) ScheduleService {
	return &scheduleService{api: c}
}

func (s *scheduleService) AddExercise(ctx context.Context, scheduleID int64, t ExerciseTargets) (int64, error) {
	var out struct {
		PlanExerciseID int64 `json:"plan_exercise_id"`
	}
	path := fmt.Sprintf("/api/v1/plans/schedules/%d/exercises", scheduleID)
	if err := s.api.Send(ctx, http.MethodPost, path, nil, t, &out); err != nil {
		return 0, err
	}
	return out.PlanExerciseID, nil
}

func (s *scheduleService) UpdateExercise(ctx context.Context, planExerciseID int64, t ExerciseTargets) error {
	path := fmt.Sprintf("/api/v1/plans/exercises/%d", planExerciseID)
	return s.api.Send(ctx, http.MethodPut, path, nil, t, nil)
}

func (s *scheduleService) RemoveExercise(ctx context.Context, planExerciseID int64) error {
	path := fmt.Sprintf("/api/v1/plans/exercises/%d", planExerciseID)
	return s.api.Send(ctx, http.MethodDelete, path, nil, nil, nil)
}
