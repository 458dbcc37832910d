package notifications

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityEventRoundTrip(t *testing.T) {
	userID := uuid.New()
	event := NewActivityEvent(EventWorkoutCompleted, userID, map[string]interface{}{
		"name":     "Push Day",
		"calories": 350,
	})

	data, err := event.ToJSON()
	require.NoError(t, err)

	decoded, err := ActivityEventFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, EventWorkoutCompleted, decoded.Type)
	assert.Equal(t, userID, decoded.UserID)

	// JSON decodes numbers as float64; PayloadInt must still read them
	assert.Equal(t, 350, decoded.PayloadInt("calories"))
	assert.Equal(t, "Push Day", decoded.PayloadString("name"))
	assert.Zero(t, decoded.PayloadInt("missing"))
	assert.Empty(t, decoded.PayloadString("missing"))
}

func TestGetPartitionKey(t *testing.T) {
	userID := uuid.New()
	event := NewActivityEvent(EventHabitMilestone, userID, nil)
	assert.Equal(t, userID.String(), event.GetPartitionKey())
}

func TestActivityEventFromJSONInvalid(t *testing.T) {
	_, err := ActivityEventFromJSON([]byte("{not json"))
	assert.Error(t, err)
}

func TestRenderFeedContent(t *testing.T) {
	userID := uuid.New()

	workout := NewActivityEvent(EventWorkoutCompleted, userID, map[string]interface{}{
		"name":     "Push Day",
		"calories": 350,
	})
	assert.Equal(t, "Completed a workout: Push Day (350 kcal burned)", renderFeedContent(workout))

	noCalories := NewActivityEvent(EventWorkoutCompleted, userID, map[string]interface{}{
		"name": "Full Body Mobility",
	})
	assert.Equal(t, "Completed a workout: Full Body Mobility", renderFeedContent(noCalories))

	milestone := NewActivityEvent(EventHabitMilestone, userID, map[string]interface{}{
		"name":   "Meditation",
		"streak": 7,
	})
	assert.Equal(t, `Hit a 7-day streak on "Meditation"!`, renderFeedContent(milestone))

	// Order events don't surface on the feed
	order := NewActivityEvent(EventOrderPlaced, userID, nil)
	assert.Empty(t, renderFeedContent(order))
}
