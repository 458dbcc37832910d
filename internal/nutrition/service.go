package nutrition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fittrack/pkg/cache"
	"fittrack/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMealNotFound = errors.New("meal log not found")
	ErrNotOwner     = errors.New("meal log does not belong to user")
)

type Service interface {
	LogMeal(ctx context.Context, userID uuid.UUID, req *LogMealRequest) (*MealLog, error)
	ListByDate(ctx context.Context, userID uuid.UUID, date string) ([]MealLog, error)
	DeleteMeal(ctx context.Context, userID uuid.UUID, id string) error
	DailySummary(ctx context.Context, userID uuid.UUID, date string) (*DailySummary, error)
}

type service struct {
	repo       Repository
	cache      cache.Service
	summaryTTL time.Duration
}

// NewService creates the nutrition service; cacheService may be nil, in which
// case every summary is computed from the store.
func NewService(repo Repository, cacheService cache.Service, summaryTTL time.Duration) Service {
	return &service{
		repo:       repo,
		cache:      cacheService,
		summaryTTL: summaryTTL,
	}
}

func summaryCacheKey(userID uuid.UUID, date string) string {
	return fmt.Sprintf("fittrack:nutrition:summary:%s:%s", userID, date)
}

func (s *service) LogMeal(ctx context.Context, userID uuid.UUID, req *LogMealRequest) (*MealLog, error) {
	meal := &MealLog{
		UserID:   userID,
		Date:     req.Date,
		MealType: MealType(req.MealType),
		Name:     strings.TrimSpace(req.Name),
		Calories: req.Calories,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatG:     req.FatG,
	}

	if err := s.repo.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("failed to log meal: %w", err)
	}

	s.invalidateSummary(ctx, userID, req.Date)

	return meal, nil
}

func (s *service) ListByDate(ctx context.Context, userID uuid.UUID, date string) ([]MealLog, error) {
	meals, err := s.repo.ListByUserAndDate(ctx, userID.String(), date)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}

func (s *service) DeleteMeal(ctx context.Context, userID uuid.UUID, id string) error {
	meal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMealNotFound
		}
		return fmt.Errorf("failed to get meal: %w", err)
	}
	if meal.UserID != userID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	s.invalidateSummary(ctx, userID, meal.Date)

	return nil
}

func (s *service) DailySummary(ctx context.Context, userID uuid.UUID, date string) (*DailySummary, error) {
	if s.cache == nil {
		return s.computeSummary(ctx, userID, date)
	}

	var summary DailySummary
	err := s.cache.GetOrSet(ctx, summaryCacheKey(userID, date), s.summaryTTL, func() (interface{}, error) {
		return s.computeSummary(ctx, userID, date)
	}, &summary)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *service) computeSummary(ctx context.Context, userID uuid.UUID, date string) (*DailySummary, error) {
	meals, err := s.repo.ListByUserAndDate(ctx, userID.String(), date)
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}

	summary := &DailySummary{
		Date:       date,
		ByMealType: make(map[MealType]int),
		Meals:      meals,
	}
	for _, meal := range meals {
		summary.TotalCalories += meal.Calories
		summary.TotalProteinG += meal.ProteinG
		summary.TotalCarbsG += meal.CarbsG
		summary.TotalFatG += meal.FatG
		summary.ByMealType[meal.MealType] += meal.Calories
	}

	return summary, nil
}

// invalidateSummary drops the cached summary for that user+date after a write
func (s *service) invalidateSummary(ctx context.Context, userID uuid.UUID, date string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, summaryCacheKey(userID, date)); err != nil {
		logger.GetDefault().Warn("failed to invalidate summary cache", slog.Any("error", err))
	}
}
