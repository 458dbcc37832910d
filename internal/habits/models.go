package habits

import (
	"time"

	"github.com/google/uuid"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

type Habit struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Frequency   Frequency `json:"frequency" gorm:"type:varchar(20);not null;default:'daily'"`
	Archived    bool      `json:"archived" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Habit) TableName() string {
	return "habits"
}

// Checkin records one completed day for a habit. The unique index on
// (habit_id, date) makes a second check-in for the same day a conflict.
type Checkin struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	HabitID   uuid.UUID `json:"habit_id" gorm:"type:uuid;not null;uniqueIndex:idx_checkin_habit_date"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Date      string    `json:"date" gorm:"type:date;not null;uniqueIndex:idx_checkin_habit_date"`
	CreatedAt time.Time `json:"created_at"`
}

func (Checkin) TableName() string {
	return "habit_checkins"
}

// Streak milestones worth announcing on the activity feed.
var milestones = []int{7, 30, 100}

func isMilestone(streak int) bool {
	for _, m := range milestones {
		if streak == m {
			return true
		}
	}
	return false
}
