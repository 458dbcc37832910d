package users

import "time"

// partial profile update payload
type UpdateProfileRequest struct {
	FirstName   *string    `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName    *string    `json:"last_name" validate:"omitempty,min=2,max=100"`
	AvatarURL   *string    `json:"avatar_url" validate:"omitempty,url"`
	HeightCM    *float64   `json:"height_cm" validate:"omitempty,gt=0,lt=300"`
	WeightKG    *float64   `json:"weight_kg" validate:"omitempty,gt=0,lt=500"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender" validate:"omitempty,oneof=male female other"`
}

// one onboarding wizard step; payload shape is owned by the client
type OnboardingStepRequest struct {
	Data map[string]interface{} `json:"data" validate:"required"`
}
