package models

// Plan is a workout plan owned by the current user.
type Plan struct {
	ID          int64          `json:"id"`
	PlanName    string         `json:"plan_name"`
	StartDate   string         `json:"start_date,omitempty"`
	EndDate     string         `json:"end_date,omitempty"`
	Description string         `json:"description,omitempty"`
	Schedules   []PlanSchedule `json:"schedules,omitempty"`
}

// PlanSchedule is one training day inside a plan. DayOfWeek is 1..7
// (Monday..Sunday), matching the backend.
type PlanSchedule struct {
	ID        int64          `json:"id"`
	DayOfWeek int            `json:"day_of_week"`
	Title     string         `json:"title,omitempty"`
	Exercises []PlanExercise `json:"exercises,omitempty"`
}

// PlanExercise binds an exercise to a schedule with its targets.
type PlanExercise struct {
	ID             int64  `json:"id"`
	ExerciseID     int64  `json:"exercise_id"`
	ExerciseName   string `json:"exercise_name,omitempty"`
	TargetSets     int    `json:"target_sets"`
	TargetReps     int    `json:"target_reps"`
	TargetRestTime int    `json:"target_rest_time,omitempty"`
}
