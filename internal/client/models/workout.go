package models

// WorkoutLog is the payload sent when logging a completed session.
// PlanScheduleID is nil for a free (unplanned) workout.
type WorkoutLog struct {
	PlanScheduleID  *int64          `json:"plan_schedule_id"`
	PerformedAt     string          `json:"performed_at"`
	DurationMinutes int             `json:"duration_minutes"`
	Notes           string          `json:"notes,omitempty"`
	Details         []WorkoutDetail `json:"details"`
}

// WorkoutDetail records what was actually performed for one exercise.
type WorkoutDetail struct {
	ExerciseID   int64   `json:"exercise_id"`
	SetsDone     int     `json:"sets_done"`
	RepsDone     int     `json:"reps_done"`
	WeightUsed   float64 `json:"weight_used,omitempty"`
	ExerciseName string  `json:"exercise_name,omitempty"`
}

// WorkoutHistoryItem is one row of the history listing.
type WorkoutHistoryItem struct {
	ID              int64           `json:"id"`
	PerformedAt     string          `json:"performed_at"`
	DurationMinutes int             `json:"duration_minutes"`
	Notes           string          `json:"notes,omitempty"`
	ScheduleTitle   string          `json:"schedule_title,omitempty"`
	Details         []WorkoutDetail `json:"details,omitempty"`
}
