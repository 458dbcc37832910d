package workouts

import "time"

type WorkoutResponse struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Type           WorkoutType `json:"type"`
	DurationMin    int         `json:"duration_min"`
	CaloriesBurned int         `json:"calories_burned"`
	Notes          string      `json:"notes"`
	Exercises      []Exercise  `json:"exercises"`
	PerformedAt    time.Time   `json:"performed_at"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type PaginatedWorkouts struct {
	Workouts   []WorkoutResponse `json:"workouts"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// WeeklyStats summarizes the trailing seven days of activity
type WeeklyStats struct {
	WorkoutCount   int64 `json:"workout_count"`
	TotalMinutes   int64 `json:"total_minutes"`
	TotalCalories  int64 `json:"total_calories"`
	ActiveDayCount int64 `json:"active_day_count"`
}

func (w *Workout) ToResponse() WorkoutResponse {
	exercises := []Exercise(w.Exercises)
	if exercises == nil {
		exercises = []Exercise{}
	}

	return WorkoutResponse{
		ID:             w.ID.String(),
		Name:           w.Name,
		Type:           w.Type,
		DurationMin:    w.DurationMin,
		CaloriesBurned: w.CaloriesBurned,
		Notes:          w.Notes,
		Exercises:      exercises,
		PerformedAt:    w.PerformedAt,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}
