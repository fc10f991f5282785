package models

// DashboardStats summarizes training activity for the stats screen.
type DashboardStats struct {
	TotalWorkouts int `json:"total_workouts"`
	TotalMinutes  int `json:"total_minutes"`
	CurrentStreak int `json:"current_streak"`
}

// WeightPoint is one sample of the body-weight chart.
type WeightPoint struct {
	RecordedAt string  `json:"recorded_at"`
	Weight     float64 `json:"weight"`
}
