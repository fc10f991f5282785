package services

import (
	"context"
	"net/http"

	"gymtrack/internal/client/api"
	"gymtrack/internal/client/models"
)

// UserService reads the current profile and records body metrics.
type UserService interface {
	Profile(ctx context.Context) (*models.User, error)
	RecordBodyMetrics(ctx context.Context, m models.BodyMetrics) (int64, error)
}

type userService struct {
	api *api.Client
}

func NewUserService(c *api.Client) UserService {
	return &userService{api: c}
}

func (s *userService) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := s.api.Send(ctx, http.MethodGet, "/api/v1/users/profile", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userService) RecordBodyMetrics(ctx context.Context, m models.BodyMetrics) (int64, error) {
	var out struct {
		MetricID int64 `json:"metric_id"`
	}
	if err := s.api.Send(ctx, http.MethodPost, "/api/v1/users/body-metrics", nil, m, &out); err != nil {
		return 0, err
	}
	return out.MetricID, nil
}
