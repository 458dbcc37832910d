package habits

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrHabitNotFound   = errors.New("habit not found")
	ErrAlreadyChecked  = errors.New("habit already checked in for this date")
	ErrCheckinNotFound = errors.New("check-in not found")
)

type Repository interface {
	Create(ctx context.Context, habit *Habit) error
	GetByID(ctx context.Context, id uuid.UUID) (*Habit, error)
	ListByUser(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]Habit, error)
	Update(ctx context.Context, habit *Habit) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateCheckin(ctx context.Context, checkin *Checkin) error
	ListCheckins(ctx context.Context, habitID uuid.UUID, limit int) ([]Checkin, error)
	HasCheckin(ctx context.Context, habitID uuid.UUID, date string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, habit *Habit) error {
	return r.db.WithContext(ctx).Create(habit).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Habit, error) {
	var habit Habit
	err := r.db.WithContext(ctx).First(&habit, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, err
	}
	return &habit, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]Habit, error) {
	var habits []Habit
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}
	err := query.Order("created_at ASC").Find(&habits).Error
	return habits, err
}

func (r *repository) Update(ctx context.Context, habit *Habit) error {
	return r.db.WithContext(ctx).Save(habit).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&Checkin{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Habit{}, "id = ?", id).Error
	})
}

func (r *repository) CreateCheckin(ctx context.Context, checkin *Checkin) error {
	err := r.db.WithContext(ctx).Create(checkin).Error
	if err != nil {
		// The unique index on (habit_id, date) is the arbiter for
		// duplicate check-ins, including concurrent ones.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyChecked
		}
		return err
	}
	return nil
}

func (r *repository) ListCheckins(ctx context.Context, habitID uuid.UUID, limit int) ([]Checkin, error) {
	var checkins []Checkin
	query := r.db.WithContext(ctx).Where("habit_id = ?", habitID).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&checkins).Error
	return checkins, err
}

func (r *repository) HasCheckin(ctx context.Context, habitID uuid.UUID, date string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Checkin{}).
		Where("habit_id = ? AND date = ?", habitID, date).
		Count(&count).Error
	return count > 0, err
}
