package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"gymtrack/internal/client/api"
	"gymtrack/internal/client/models"
)

// WorkoutService logs completed sessions and reads training history.
type WorkoutService interface {
	Log(ctx context.Context, w models.WorkoutLog) (int64, error)
	History(ctx context.Context, month, year int) ([]models.WorkoutHistoryItem, error)
	Detail(ctx context.Context, id int64) (*models.WorkoutHistoryItem, error)
	Delete(ctx context.Context, id int64) error
}

type workoutService struct {
	api *api.Client
}

func NewWorkoutService(c *api.Client) WorkoutService {
	return &workoutService{api: c}
}

func (s *workoutService) Log(ctx context.Context, w models.WorkoutLog) (int64, error) {
	var out struct {
		HistoryID int64 `json:"history_id"`
	}
	if err := s.api.Send(ctx, http.MethodPost, "/api/v1/workouts", nil, w, &out); err != nil {
		return 0, err
	}
	return out.HistoryID, nil
}

// History lists logged workouts, optionally narrowed to a month of a year.
// Zero month/year mean "no filter".
func (s *workoutService) History(ctx context.Context, month, year int) ([]models.WorkoutHistoryItem, error) {
	q := url.Values{}
	if month != 0 {
		q.Set("month", strconv.Itoa(month))
	}
	if year != 0 {
		q.Set("year", strconv.Itoa(year))
	}

	raw, err := s.api.Do(ctx, http.MethodGet, "/api/v1/workouts/history", q, nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[models.WorkoutHistoryItem](raw)
	return items, err
}

func (s *workoutService) Detail(ctx context.Context, id int64) (*models.WorkoutHistoryItem, error) {
	var item models.WorkoutHistoryItem
	path := fmt.Sprintf("/api/v1/workouts/history/%d", id)
	if err := s.api.Send(ctx, http.MethodGet, path, nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *workoutService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/workouts/history/%d", id)
	return s.api.Send(ctx, http.MethodDelete, path, nil, nil, nil)
}
