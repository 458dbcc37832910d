package habits

type CreateHabitRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	Frequency   string `json:"frequency" validate:"omitempty,oneof=daily weekly"`
}

type UpdateHabitRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Frequency   *string `json:"frequency" validate:"omitempty,oneof=daily weekly"`
	Archived    *bool   `json:"archived"`
}

type CheckinRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
