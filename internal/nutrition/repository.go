package nutrition

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, meal *MealLog) error
	GetByID(ctx context.Context, id string) (*MealLog, error)
	ListByUserAndDate(ctx context.Context, userID, date string) ([]MealLog, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, meal *MealLog) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*MealLog, error) {
	var meal MealLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *repository) ListByUserAndDate(ctx context.Context, userID, date string) ([]MealLog, error) {
	var meals []MealLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at ASC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&MealLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
