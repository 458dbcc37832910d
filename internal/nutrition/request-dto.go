package nutrition

type LogMealRequest struct {
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	MealType string  `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	Name     string  `json:"name" validate:"required,min=1,max=255"`
	Calories int     `json:"calories" validate:"required,min=0,max=20000"`
	ProteinG float64 `json:"protein_g" validate:"min=0,max=2000"`
	CarbsG   float64 `json:"carbs_g" validate:"min=0,max=2000"`
	FatG     float64 `json:"fat_g" validate:"min=0,max=2000"`
}

type MealListQuery struct {
	Date string `form:"date" binding:"required"`
}
