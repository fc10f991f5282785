// Package models defines client-side data models exchanged with the gymtrack
// backend. Field tags follow the backend's snake_case JSON.
package models

// Role values the backend is known to emit. Comparison is done
// case-insensitively because older deployments return lowercase.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the identity record: the server-issued profile merged with the
// role claim. The role may arrive as a sibling of the user object on the
// wire; the session store merges it in before this struct is persisted.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`

	// Optional profile fields.
	Gender        string `json:"gender,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	FitnessGoal   string `json:"fitness_goal,omitempty"`
	ActivityLevel string `json:"activity_level,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
}

// BodyMetrics is a single body measurement record.
type BodyMetrics struct {
	ID                int64   `json:"id,omitempty"`
	Weight            float64 `json:"weight"`
	Height            float64 `json:"height"`
	BodyFatPercentage float64 `json:"body_fat_percentage,omitempty"`
	RecordedAt        string  `json:"recorded_at,omitempty"`
}
