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

// ExerciseFilter narrows the exercise listing. Zero values mean "no filter".
type ExerciseFilter struct {
	MuscleGroupID int64
	Difficulty    string
	Page          int
}

// ExerciseService reads the public exercise catalog.
type ExerciseService interface {
	List(ctx context.Context, f ExerciseFilter) ([]models.Exercise, *models.Pagination, error)
	Get(ctx context.Context, id int64) (*models.Exercise, error)
	MuscleGroups(ctx context.Context) ([]models.MuscleGroup, error)
}

type exerciseService struct {
	api *api.Client
}

func NewExerciseService(c *api.Client) ExerciseService {
	return &exerciseService{api: c}
}

func (s *exerciseService) List(ctx context.Context, f ExerciseFilter) ([]models.Exercise, *models.Pagination, error) {
	q := url.Values{}
	if f.MuscleGroupID != 0 {
		q.Set("muscle_group_id", strconv.FormatInt(f.MuscleGroupID, 10))
	}
	if f.Difficulty != "" {
		q.Set("difficulty", f.Difficulty)
	}
	if f.Page != 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}

	raw, err := s.api.Do(ctx, http.MethodGet, "/api/v1/exercises", q, nil)
	if err != nil {
		return nil, nil, err
	}
	return decodeList[models.Exercise](raw)
}

func (s *exerciseService) Get(ctx context.Context, id int64) (*models.Exercise, error) {
	var ex models.Exercise
	path := fmt.Sprintf("/api/v1/exercises/%d", id)
	if err := s.api.Send(ctx, http.MethodGet, path, nil, nil, &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

func (s *exerciseService) MuscleGroups(ctx context.Context) ([]models.MuscleGroup, error) {
	raw, err := s.api.Do(ctx, http.MethodGet, "/api/v1/muscle-groups", nil, nil)
	if err != nil {
		return nil, err
	}
	groups, _, err := decodeList[models.MuscleGroup](raw)
	return groups, err
}
