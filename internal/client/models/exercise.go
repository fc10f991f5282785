package models

// MuscleGroup is a catalog category used for exercise filtering.
type MuscleGroup struct {
	ID           int64  `json:"id"`
	GroupName    string `json:"group_name"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// Exercise is a catalog entry. Media is only populated by the detail endpoint.
type Exercise struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Difficulty    string          `json:"difficulty,omitempty"`
	MuscleGroupID int64           `json:"muscle_group_id,omitempty"`
	MuscleGroup   string          `json:"muscle_group,omitempty"`
	Equipment     string          `json:"equipment,omitempty"`
	ThumbnailURL  string          `json:"thumbnail_url,omitempty"`
	Media         []ExerciseMedia `json:"media,omitempty"`
}

// ExerciseMedia is an image or video attached to an exercise.
type ExerciseMedia struct {
	ID        int64  `json:"id"`
	MediaType string `json:"media_type,omitempty"`
	URL       string `json:"url"`
}

// Pagination is the list-endpoint paging envelope.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
	TotalItems int `json:"total_items,omitempty"`
}
