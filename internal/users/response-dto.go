package users

import "time"

// profile data in responses (without sensitive info)
type ProfileResponse struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	AvatarURL   string     `json:"avatar_url"`
	HeightCM    *float64   `json:"height_cm"`
	WeightKG    *float64   `json:"weight_kg"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `json:"gender"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (u *User) ToProfileResponse() ProfileResponse {
	return ProfileResponse{
		ID:          u.ID.String(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		AvatarURL:   u.AvatarURL,
		HeightCM:    u.HeightCM,
		WeightKG:    u.WeightKG,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// OnboardingResponse is the progress document returned to the wizard
type OnboardingResponse struct {
	Goal        map[string]interface{} `json:"goal"`
	Activity    map[string]interface{} `json:"activity"`
	Nutrition   map[string]interface{} `json:"nutrition"`
	Completed   bool                   `json:"completed"`
	CompletedAt *time.Time             `json:"completed_at"`
}

func (p *OnboardingProgress) ToResponse() OnboardingResponse {
	return OnboardingResponse{
		Goal:        p.GoalStep,
		Activity:    p.ActivityStep,
		Nutrition:   p.NutritionStep,
		Completed:   p.Completed,
		CompletedAt: p.CompletedAt,
	}
}
