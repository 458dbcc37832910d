package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActivityEvent is the wire format for everything on the activity topic.
// Payload carries event-specific fields so new event types don't need a
// schema change.
type ActivityEvent struct {
	ID        uuid.UUID              `json:"id"`
	Type      ActivityEventType      `json:"type"`
	UserID    uuid.UUID              `json:"user_id"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
}

type ActivityEventType string

const (
	EventWorkoutCompleted ActivityEventType = "workout.completed"
	EventHabitMilestone   ActivityEventType = "habit.milestone"
	EventOrderPlaced      ActivityEventType = "order.placed"
)

func NewActivityEvent(eventType ActivityEventType, userID uuid.UUID, payload map[string]interface{}) *ActivityEvent {
	return &ActivityEvent{
		ID:        uuid.New(),
		Type:      eventType,
		UserID:    userID,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
}

func (e *ActivityEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ActivityEventFromJSON(data []byte) (*ActivityEvent, error) {
	var event ActivityEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// GetPartitionKey keys messages by user so one user's events stay ordered.
func (e *ActivityEvent) GetPartitionKey() string {
	return e.UserID.String()
}

// PayloadString reads a string field from the payload, empty when absent.
func (e *ActivityEvent) PayloadString(key string) string {
	if v, ok := e.Payload[key].(string); ok {
		return v
	}
	return ""
}

// PayloadInt reads a numeric field from the payload. JSON numbers decode as
// float64, so both forms are accepted.
func (e *ActivityEvent) PayloadInt(key string) int {
	switch v := e.Payload[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
