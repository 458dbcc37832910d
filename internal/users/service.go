package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrUnknownStep          = errors.New("unknown onboarding step")
	ErrOnboardingIncomplete = errors.New("onboarding steps missing")
	ErrAlreadyCompleted     = errors.New("onboarding already completed")
)

type Service interface {
	GetProfile(ctx context.Context, userID string) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*ProfileResponse, error)
	GetOnboarding(ctx context.Context, userID string) (*OnboardingResponse, error)
	SaveOnboardingStep(ctx context.Context, userID, step string, data map[string]interface{}) (*OnboardingResponse, error)
	CompleteOnboarding(ctx context.Context, userID string) (*OnboardingResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, userID string) (*ProfileResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := user.ToProfileResponse()
	return &resp, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*ProfileResponse, error) {
	updates := make(map[string]interface{})

	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.HeightCM != nil {
		updates["height_cm"] = *req.HeightCM
	}
	if req.WeightKG != nil {
		updates["weight_kg"] = *req.WeightKG
	}
	if req.DateOfBirth != nil {
		updates["date_of_birth"] = *req.DateOfBirth
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}

	if len(updates) == 0 {
		return s.GetProfile(ctx, userID)
	}
	updates["updated_at"] = time.Now()

	user, err := s.repo.UpdateProfile(ctx, userID, updates)
	if err != nil {
		return nil, err
	}
	resp := user.ToProfileResponse()
	return &resp, nil
}

// getOrCreateOnboarding returns the progress document, creating an empty one
// on first read so the wizard always has something to resume from.
func (s *service) getOrCreateOnboarding(ctx context.Context, userID string) (*OnboardingProgress, error) {
	progress, err := s.repo.GetOnboarding(ctx, userID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load onboarding progress: %w", err)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress = &OnboardingProgress{UserID: user.ID}
	if err := s.repo.CreateOnboarding(ctx, progress); err != nil {
		return nil, fmt.Errorf("failed to create onboarding progress: %w", err)
	}
	return progress, nil
}

func (s *service) GetOnboarding(ctx context.Context, userID string) (*OnboardingResponse, error) {
	progress, err := s.getOrCreateOnboarding(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := progress.ToResponse()
	return &resp, nil
}

func (s *service) SaveOnboardingStep(ctx context.Context, userID, step string, data map[string]interface{}) (*OnboardingResponse, error) {
	if !IsValidStep(step) {
		return nil, ErrUnknownStep
	}

	if _, err := s.getOrCreateOnboarding(ctx, userID); err != nil {
		return nil, err
	}

	column := map[string]string{
		StepGoal:      "goal_step",
		StepActivity:  "activity_step",
		StepNutrition: "nutrition_step",
	}[step]

	updates := map[string]interface{}{
		column:       JSONMap(data),
		"updated_at": time.Now(),
	}
	if err := s.repo.UpdateOnboarding(ctx, userID, updates); err != nil {
		return nil, fmt.Errorf("failed to save onboarding step: %w", err)
	}

	return s.GetOnboarding(ctx, userID)
}

func (s *service) CompleteOnboarding(ctx context.Context, userID string) (*OnboardingResponse, error) {
	progress, err := s.getOrCreateOnboarding(ctx, userID)
	if err != nil {
		return nil, err
	}

	if progress.Completed {
		return nil, ErrAlreadyCompleted
	}
	if !progress.HasAllSteps() {
		return nil, ErrOnboardingIncomplete
	}

	now := time.Now()
	updates := map[string]interface{}{
		"completed":    true,
		"completed_at": now,
		"updated_at":   now,
	}
	if err := s.repo.UpdateOnboarding(ctx, userID, updates); err != nil {
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	return s.GetOnboarding(ctx, userID)
}
