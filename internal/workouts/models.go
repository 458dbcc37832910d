package workouts

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type WorkoutType string

const (
	WorkoutTypeStrength WorkoutType = "strength"
	WorkoutTypeCardio   WorkoutType = "cardio"
	WorkoutTypeMobility WorkoutType = "mobility"
)

// Exercise is one entry of a workout's exercise list
type Exercise struct {
	Name     string  `json:"name"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	WeightKG float64 `json:"weight_kg"`
}

// ExerciseList is stored as a jsonb column
type ExerciseList []Exercise

func (l ExerciseList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *ExerciseList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for ExerciseList")
	}
}

type Workout struct {
	ID             uuid.UUID    `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID         uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index"`
	Name           string       `json:"name" gorm:"not null;size:255"`
	Type           WorkoutType  `json:"type" gorm:"type:varchar(20);not null"`
	DurationMin    int          `json:"duration_min" gorm:"not null;check:duration_min > 0"`
	CaloriesBurned int          `json:"calories_burned" gorm:"default:0;check:calories_burned >= 0"`
	Notes          string       `json:"notes" gorm:"type:text"`
	Exercises      ExerciseList `json:"exercises" gorm:"type:jsonb"`
	PerformedAt    time.Time    `json:"performed_at" gorm:"not null;index"`
	CreatedAt      time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

func IsValidWorkoutType(t string) bool {
	switch WorkoutType(t) {
	case WorkoutTypeStrength, WorkoutTypeCardio, WorkoutTypeMobility:
		return true
	default:
		return false
	}
}
