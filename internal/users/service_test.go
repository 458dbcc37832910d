package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepository struct {
	users      map[string]*User
	onboarding map[string]*OnboardingProgress
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:      make(map[string]*User),
		onboarding: make(map[string]*OnboardingProgress),
	}
}

func (f *fakeRepository) addUser() *User {
	user := &User{
		ID:        uuid.New(),
		FirstName: "Alex",
		LastName:  "Rivera",
		Email:     "alex@example.com",
	}
	f.users[user.ID.String()] = user
	return user
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeRepository) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (*User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := updates["first_name"].(string); ok {
		user.FirstName = v
	}
	if v, ok := updates["last_name"].(string); ok {
		user.LastName = v
	}
	if v, ok := updates["height_cm"].(float64); ok {
		user.HeightCM = &v
	}
	if v, ok := updates["weight_kg"].(float64); ok {
		user.WeightKG = &v
	}
	return user, nil
}

func (f *fakeRepository) GetOnboarding(ctx context.Context, userID string) (*OnboardingProgress, error) {
	progress, ok := f.onboarding[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return progress, nil
}

func (f *fakeRepository) CreateOnboarding(ctx context.Context, progress *OnboardingProgress) error {
	progress.ID = uuid.New()
	f.onboarding[progress.UserID.String()] = progress
	return nil
}

func (f *fakeRepository) UpdateOnboarding(ctx context.Context, userID string, updates map[string]interface{}) error {
	progress, ok := f.onboarding[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["goal_step"].(JSONMap); ok {
		progress.GoalStep = v
	}
	if v, ok := updates["activity_step"].(JSONMap); ok {
		progress.ActivityStep = v
	}
	if v, ok := updates["nutrition_step"].(JSONMap); ok {
		progress.NutritionStep = v
	}
	if v, ok := updates["completed"].(bool); ok {
		progress.Completed = v
	}
	if v, ok := updates["completed_at"].(time.Time); ok {
		progress.CompletedAt = &v
	}
	return nil
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo), repo
}

func TestUpdateProfile(t *testing.T) {
	svc, repo := newTestService()
	user := repo.addUser()

	height := 182.0
	name := "Sam"
	profile, err := svc.UpdateProfile(context.Background(), user.ID.String(), &UpdateProfileRequest{
		FirstName: &name,
		HeightCM:  &height,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sam", profile.FirstName)
	require.NotNil(t, profile.HeightCM)
	assert.InDelta(t, 182.0, *profile.HeightCM, 0.001)
}

func TestUpdateProfileNoFields(t *testing.T) {
	svc, repo := newTestService()
	user := repo.addUser()

	profile, err := svc.UpdateProfile(context.Background(), user.ID.String(), &UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Alex", profile.FirstName)
}

func TestGetOnboardingCreatesOnFirstRead(t *testing.T) {
	svc, repo := newTestService()
	user := repo.addUser()

	resp, err := svc.GetOnboarding(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.False(t, resp.Completed)
	assert.Nil(t, resp.Goal)

	// The progress row now exists and is reused
	assert.Len(t, repo.onboarding, 1)
	_, err = svc.GetOnboarding(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Len(t, repo.onboarding, 1)
}

func TestSaveOnboardingStep(t *testing.T) {
	svc, repo := newTestService()
	user := repo.addUser()

	resp, err := svc.SaveOnboardingStep(context.Background(), user.ID.String(), StepGoal, map[string]interface{}{
		"target": "lose_weight",
	})
	require.NoError(t, err)
	assert.Equal(t, "lose_weight", resp.Goal["target"])
	assert.False(t, resp.Completed)
}

func TestSaveOnboardingUnknownStep(t *testing.T) {
	svc, repo := newTestService()
	user := repo.addUser()

	_, err := svc.SaveOnboardingStep(context.Background(), user.ID.String(), "favorite-color", nil)
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestCompleteOnboarding(t *testing.T) {
	svc, repo := newTestService()
	user := repo.addUser()
	id := user.ID.String()

	// Completion requires every step to be saved first
	_, err := svc.CompleteOnboarding(context.Background(), id)
	assert.ErrorIs(t, err, ErrOnboardingIncomplete)

	steps := map[string]map[string]interface{}{
		StepGoal:      {"target": "build_muscle"},
		StepActivity:  {"level": "moderate"},
		StepNutrition: {"diet": "high_protein"},
	}
	for step, data := range steps {
		_, err := svc.SaveOnboardingStep(context.Background(), id, step, data)
		require.NoError(t, err)
	}

	resp, err := svc.CompleteOnboarding(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, resp.Completed)
	assert.NotNil(t, resp.CompletedAt)

	_, err = svc.CompleteOnboarding(context.Background(), id)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}
