package workouts

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, workout *Workout) error
	GetByID(ctx context.Context, id string) (*Workout, error)
	ListByUser(ctx context.Context, userID string, query WorkoutListQuery) ([]Workout, int64, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*Workout, error)
	Delete(ctx context.Context, id string) error
	StatsSince(ctx context.Context, userID string, since time.Time) (*WeeklyStats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, workout *Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Workout, error) {
	var workout Workout
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&workout).Error; err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string, query WorkoutListQuery) ([]Workout, int64, error) {
	db := r.db.WithContext(ctx).Model(&Workout{}).Where("user_id = ?", userID)

	if query.Type != "" {
		db = db.Where("type = ?", query.Type)
	}

	var totalCount int64
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var workouts []Workout
	offset := (query.Page - 1) * query.Limit
	err := db.Order("performed_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&workouts).Error
	if err != nil {
		return nil, 0, err
	}

	return workouts, totalCount, nil
}

func (r *repository) Update(ctx context.Context, id string, updates map[string]interface{}) (*Workout, error) {
	result := r.db.WithContext(ctx).Model(&Workout{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Workout{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) StatsSince(ctx context.Context, userID string, since time.Time) (*WeeklyStats, error) {
	var stats WeeklyStats
	err := r.db.WithContext(ctx).Model(&Workout{}).
		Select(
			"COUNT(*) AS workout_count, "+
				"COALESCE(SUM(duration_min), 0) AS total_minutes, "+
				"COALESCE(SUM(calories_burned), 0) AS total_calories, "+
				"COUNT(DISTINCT DATE(performed_at)) AS active_day_count",
		).
		Where("user_id = ? AND performed_at >= ?", userID, since).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
