package habits

import (
	"time"

	"github.com/google/uuid"
)

type HabitResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Frequency   Frequency `json:"frequency"`
	Archived    bool      `json:"archived"`
	Streak      int       `json:"streak"`
	CheckedIn   bool      `json:"checked_in_today"`
	CreatedAt   time.Time `json:"created_at"`
}

type CheckinResponse struct {
	ID        uuid.UUID `json:"id"`
	HabitID   uuid.UUID `json:"habit_id"`
	Date      string    `json:"date"`
	Streak    int       `json:"streak"`
	Milestone bool      `json:"milestone"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Habit) ToResponse(streak int, checkedInToday bool) *HabitResponse {
	return &HabitResponse{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		Frequency:   h.Frequency,
		Archived:    h.Archived,
		Streak:      streak,
		CheckedIn:   checkedInToday,
		CreatedAt:   h.CreatedAt,
	}
}
