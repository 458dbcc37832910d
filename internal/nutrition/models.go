package nutrition

import (
	"time"

	"github.com/google/uuid"
)

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

type MealLog struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_meal_user_date"`
	Date      string    `json:"date" gorm:"type:date;not null;index:idx_meal_user_date"`
	MealType  MealType  `json:"meal_type" gorm:"type:varchar(20);not null"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Calories  int       `json:"calories" gorm:"not null;check:calories >= 0"`
	ProteinG  float64   `json:"protein_g" gorm:"default:0;check:protein_g >= 0"`
	CarbsG    float64   `json:"carbs_g" gorm:"default:0;check:carbs_g >= 0"`
	FatG      float64   `json:"fat_g" gorm:"default:0;check:fat_g >= 0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func IsValidMealType(t string) bool {
	switch MealType(t) {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	default:
		return false
	}
}

// DailySummary aggregates one calendar day of meal logs
type DailySummary struct {
	Date          string           `json:"date"`
	TotalCalories int              `json:"total_calories"`
	TotalProteinG float64          `json:"total_protein_g"`
	TotalCarbsG   float64          `json:"total_carbs_g"`
	TotalFatG     float64          `json:"total_fat_g"`
	ByMealType    map[MealType]int `json:"by_meal_type"`
	Meals         []MealLog        `json:"meals"`
}
