package workouts

import "time"

type ExerciseInput struct {
	Name     string  `json:"name" validate:"required,min=1,max=255"`
	Sets     int     `json:"sets" validate:"required,min=1,max=100"`
	Reps     int     `json:"reps" validate:"required,min=1,max=1000"`
	WeightKG float64 `json:"weight_kg" validate:"min=0"`
}

type CreateWorkoutRequest struct {
	Name           string          `json:"name" validate:"required,min=2,max=255"`
	Type           string          `json:"type" validate:"required,oneof=strength cardio mobility"`
	DurationMin    int             `json:"duration_min" validate:"required,min=1,max=1440"`
	CaloriesBurned int             `json:"calories_burned" validate:"min=0,max=20000"`
	Notes          string          `json:"notes" validate:"max=2000"`
	Exercises      []ExerciseInput `json:"exercises" validate:"dive"`
	PerformedAt    *time.Time      `json:"performed_at"`
}

type UpdateWorkoutRequest struct {
	Name           *string         `json:"name" validate:"omitempty,min=2,max=255"`
	Type           *string         `json:"type" validate:"omitempty,oneof=strength cardio mobility"`
	DurationMin    *int            `json:"duration_min" validate:"omitempty,min=1,max=1440"`
	CaloriesBurned *int            `json:"calories_burned" validate:"omitempty,min=0,max=20000"`
	Notes          *string         `json:"notes" validate:"omitempty,max=2000"`
	Exercises      []ExerciseInput `json:"exercises" validate:"omitempty,dive"`
	PerformedAt    *time.Time      `json:"performed_at"`
}

type WorkoutListQuery struct {
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Type  string `form:"type" binding:"omitempty,oneof=strength cardio mobility"`
}
