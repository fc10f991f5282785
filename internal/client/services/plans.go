package services

import (
	"context"
	"fmt"
	"net/http"

	"gymtrack/internal/client/api"
	"gymtrack/internal/client/models"
)

// PlanRequest is the create/update payload for a workout plan.
type PlanRequest struct {
	PlanName    string `json:"plan_name"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// ScheduleRequest adds a training day to a plan.
type ScheduleRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	Title     string `json:"title,omitempty"`
}

// PlanService manages the current user's workout plans. Delete is a soft
// delete on the backend; deleted plans disappear from List.
type PlanService interface {
	List(ctx context.Context) ([]models.Plan, error)
	Get(ctx context.Context, id int64) (*models.Plan, error)
	Create(ctx context.Context, req PlanRequest) (int64, error)
	Update(ctx context.Context, id int64, req PlanRequest) error
	Delete(ctx context.Context, id int64) error
	Clone(ctx context.Context, id int64) (int64, error)
	AddSchedule(ctx context.Context, planID int64, req ScheduleRequest) (int64, error)
}

type planService struct {
	api *api.Client
}

func NewPlanService(c *api.Client) PlanService {
	return &planService{api: c}
}

func (s *planService) List(ctx context.Context) ([]models.Plan, error) {
	raw, err := s.api.Do(ctx, http.MethodGet, "/api/v1/plans", nil, nil)
	if err != nil {
		return nil, err
	}
	plans, _, err := decodeList[models.Plan](raw)
	return plans, err
}

func (s *planService) Get(ctx context.Context, id int64) (*models.Plan, error) {
	var plan models.Plan
	path := fmt.Sprintf("/api/v1/plans/%d", id)
	if err := s.api.Send(ctx, http.MethodGet, path, nil, nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *planService) Create(ctx context.Context, req PlanRequest) (int64, error) {
	var out struct {
		PlanID int64 `json:"plan_id"`
	}
	if err := s.api.Send(ctx, http.MethodPost, "/api/v1/plans", nil, req, &out); err != nil {
		return 0, err
	}
	return out.PlanID, nil
}

func (s *planService) Update(ctx context.Context, id int64, req PlanRequest) error {
	path := fmt.Sprintf("/api/v1/plans/%d", id)
	return s.api.Send(ctx, http.MethodPut, path, nil, req, nil)
}

func (s *planService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/plans/%d", id)
	return s.api.Send(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (s *planService) Clone(ctx context.Context, id int64) (int64, error) {
	var out struct {
		NewPlanID int64 `json:"new_plan_id"`
	}
	path := fmt.Sprintf("/api/v1/plans/%d/clone", id)
	if err := s.api.Send(ctx, http.MethodPost, path, nil, nil, &out); err != nil {
		return 0, err
	}
	return out.NewPlanID, nil
}

func (s *planService) AddSchedule(ctx context.Context, planID int64, req ScheduleRequest) (int64, error) {
	var out struct {
		ScheduleID int64 `json:"schedule_id"`
	}
	path := fmt.Sprintf("/api/v1/plans/%d/schedules", planID)
	if err := s.api.Send(ctx, http.MethodPost, path, nil, req, &out); err != nil {
		return 0, err
	}
	return out.ScheduleID, nil
}
