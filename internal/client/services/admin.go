package services

import (
	"context"
	"fmt"
	"net/http"

	"gymtrack/internal/client/api"
	"gymtrack/internal/client/models"
)

// MuscleGroupRequest is the create/update payload for a catalog category.
type MuscleGroupRequest struct {
	GroupName    string `json:"group_name"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// ExerciseRequest is the create/update payload for a catalog exercise.
type ExerciseRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Difficulty    string `json:"difficulty,omitempty"`
	MuscleGroupID int64  `json:"muscle_group_id"`
	Equipment     string `json:"equipment,omitempty"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
}

// AdminService manages the exercise catalog. Every endpoint requires an
// admin credential; the backend rejects everything else with 403.
type AdminService interface {
	CreateMuscleGroup(ctx context.Context, req MuscleGroupRequest) (int64, error)
	UpdateMuscleGroup(ctx context.Context, id int64, req MuscleGroupRequest) error
	DeleteMuscleGroup(ctx context.Context, id int64) error

	CreateExercise(ctx context.Context, req ExerciseRequest) (int64, error)
	UpdateExercise(ctx context.Context, id int64, req ExerciseRequest) error
	DeleteExercise(ctx context.Context, id int64) error

	AddExerciseMedia(ctx context.Context, exerciseID int64, filename string, file []byte) (*models.ExerciseMedia, error)
	DeleteExerciseMedia(ctx context.Context, mediaID int64) error
}

type adminService struct {
	api *api.Client
}

func NewAdminService(c *api.Client) AdminService {
	return &adminService{api: c}
}

func (s *adminService) CreateMuscleGroup(ctx context.Context, req MuscleGroupRequest) (int64, error) {
	var out struct {
		GroupID int64 `json:"group_id"`
	}
	if err := s.api.Send(ctx, http.MethodPost, "/api/v1/admin/muscle-groups", nil, req, &out); err != nil {
		return 0, err
	}
	return out.GroupID, nil
}

func (s *adminService) UpdateMuscleGroup(ctx context.Context, id int64, req MuscleGroupRequest) error {
	path := fmt.Sprintf("/api/v1/admin/muscle-groups/%d", id)
	return s.api.Send(ctx, http.MethodPut, path, nil, req, nil)
}

func (s *adminService) DeleteMuscleGroup(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/admin/muscle-groups/%d", id)
	return s.api.Send(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (s *adminService) CreateExercise(ctx context.Context, req ExerciseRequest) (int64, error) {
	var out struct {
		ExerciseID int64 `json:"exercise_id"`
	}
	if err := s.api.Send(ctx, http.MethodPost, "/api/v1/admin/exercises", nil, req, &out); err != nil {
		return 0, err
	}
	return out.ExerciseID, nil
}

func (s *adminService) UpdateExercise(ctx context.Context, id int64, req ExerciseRequest) error {
	path := fmt.Sprintf("/api/v1/admin/exercises/%d", id)
	return s.api.Send(ctx, http.MethodPut, path, nil, req, nil)
}

func (s *adminService) DeleteExercise(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/admin/exercises/%d", id)
	return s.api.Send(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (s *adminService) AddExerciseMedia(ctx context.Context, exerciseID int64, filename string, file []byte) (*models.ExerciseMedia, error) {
	var media models.ExerciseMedia
	path := fmt.Sprintf("/api/v1/admin/exercises/%d/media", exerciseID)
	if err := s.api.Upload(ctx, path, "files", filename, file, &media); err != nil {
		return nil, err
	}
	return &media, nil
}

func (s *adminService) DeleteExerciseMedia(ctx context.Context, mediaID int64) error {
	path := fmt.Sprintf("/api/v1/admin/exercises/media/%d", mediaID)
	return s.api.Send(ctx, http.MethodDelete, path, nil, nil, nil)
}
