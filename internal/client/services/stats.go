package services

import (
	"context"
	"net/http"
	"net/url"

	"gymtrack/internal/client/api"
	"gymtrack/internal/client/models"
)

// Weight chart ranges accepted by the backend.
const (
	RangeOneMonth    = "1month"
	RangeThreeMonths = "3months"
	RangeSixMonths   = "6months"
	RangeOneYear     = "1year"
	RangeAll         = "all"
)

// StatsService reads aggregated training and body-weight statistics.
type StatsService interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
	WeightChart(ctx context.Context, dateRange string) ([]models.WeightPoint, error)
}

type statsService struct {
	api *api.Client
}

func NewStatsService(c *api.Client) StatsService {
	return &statsService{api: c}
}

func (s *statsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := s.api.Send(ctx, http.MethodGet, "/api/v1/stats/dashboard", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *statsService) WeightChart(ctx context.Context, dateRange string) ([]models.WeightPoint, error) {
	if dateRange == "" {
		dateRange = RangeThreeMonths
	}
	q := url.Values{"range": []string{dateRange}}

	raw, err := s.api.Do(ctx, http.MethodGet, "/api/v1/stats/weight-chart", q, nil)
	if err != nil {
		return nil, err
	}
	points, _, err := decodeList[models.WeightPoint](raw)
	return points, err
}
