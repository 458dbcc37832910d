package users

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// JSONMap is a jsonb column holding a free-form object
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for JSONMap")
	}
}

type User struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName   string     `json:"first_name" gorm:"not null"`
	LastName    string     `json:"last_name" gorm:"not null"`
	Password    string     `json:"-" gorm:"not null"` // hide in json
	Email       string     `json:"email" gorm:"uniqueIndex;not null"`
	AvatarURL   string     `json:"avatar_url" gorm:"size:500"`
	HeightCM    *float64   `json:"height_cm"`
	WeightKG    *float64   `json:"weight_kg"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `json:"gender" gorm:"size:20"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Onboarding step names accepted by PUT /users/onboarding/:step
const (
	StepGoal      = "goal"
	StepActivity  = "activity"
	StepNutrition = "nutrition"
)

func IsValidStep(step string) bool {
	switch step {
	case StepGoal, StepActivity, StepNutrition:
		return true
	default:
		return false
	}
}

// OnboardingProgress persists each wizard step independently so the mobile
// client can resume where it left off.
type OnboardingProgress struct {
	ID            uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID        uuid.UUID  `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	GoalStep      JSONMap    `json:"goal" gorm:"type:jsonb"`
	ActivityStep  JSONMap    `json:"activity" gorm:"type:jsonb"`
	NutritionStep JSONMap    `json:"nutrition" gorm:"type:jsonb"`
	Completed     bool       `json:"completed" gorm:"default:false"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HasAllSteps reports whether every wizard step has been persisted
func (p *OnboardingProgress) HasAllSteps() bool {
	return p.GoalStep != nil && p.ActivityStep != nil && p.NutritionStep != nil
}
