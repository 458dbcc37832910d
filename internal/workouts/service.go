package workouts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"fittrack/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrNotOwner        = errors.New("workout does not belong to user")
)

// ActivityPublisher decouples the workout service from the event pipeline.
// A nil publisher disables publishing without touching the write path.
type ActivityPublisher interface {
	PublishWorkoutCompleted(ctx context.Context, userID, workoutID, name string, calories int) error
}

type Service interface {
	SetActivityPublisher(publisher ActivityPublisher)
	Create(ctx context.Context, userID uuid.UUID, req *CreateWorkoutRequest) (*WorkoutResponse, error)
	GetByID(ctx context.Context, userID uuid.UUID, id string) (*WorkoutResponse, error)
	List(ctx context.Context, userID uuid.UUID, query WorkoutListQuery) (*PaginatedWorkouts, error)
	Update(ctx context.Context, userID uuid.UUID, id string, req *UpdateWorkoutRequest) (*WorkoutResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id string) error
	WeeklyStats(ctx context.Context, userID uuid.UUID) (*WeeklyStats, error)
}

type service struct {
	repo      Repository
	publisher ActivityPublisher
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetActivityPublisher wires the event pipeline after construction; the router
// injects it once the notification service is available.
func (s *service) SetActivityPublisher(publisher ActivityPublisher) {
	s.publisher = publisher
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req *CreateWorkoutRequest) (*WorkoutResponse, error) {
	performedAt := time.Now()
	if req.PerformedAt != nil {
		performedAt = *req.PerformedAt
	}

	workout := &Workout{
		UserID:         userID,
		Name:           strings.TrimSpace(req.Name),
		Type:           WorkoutType(req.Type),
		DurationMin:    req.DurationMin,
		CaloriesBurned: req.CaloriesBurned,
		Notes:          strings.TrimSpace(req.Notes),
		Exercises:      toExerciseList(req.Exercises),
		PerformedAt:    performedAt,
	}

	if err := s.repo.Create(ctx, workout); err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}

	logger.GetDefault().LogWorkoutLogged(ctx, workout.ID.String(), userID.String())

	if s.publisher != nil {
		if err := s.publisher.PublishWorkoutCompleted(ctx, userID.String(), workout.ID.String(), workout.Name, workout.CaloriesBurned); err != nil {
			// The workout is persisted; a failed publish must not fail the request
			logger.GetDefault().Warn("failed to publish workout event", slog.Any("error", err))
		}
	}

	resp := workout.ToResponse()
	return &resp, nil
}

func (s *service) GetByID(ctx context.Context, userID uuid.UUID, id string) (*WorkoutResponse, error) {
	workout, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := workout.ToResponse()
	return &resp, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, query WorkoutListQuery) (*PaginatedWorkouts, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	workouts, totalCount, err := s.repo.ListByUser(ctx, userID.String(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	responses := make([]WorkoutResponse, len(workouts))
	for i, workout := range workouts {
		responses[i] = workout.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedWorkouts{
		Workouts:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, id string, req *UpdateWorkoutRequest) (*WorkoutResponse, error) {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.DurationMin != nil {
		updates["duration_min"] = *req.DurationMin
	}
	if req.CaloriesBurned != nil {
		updates["calories_burned"] = *req.CaloriesBurned
	}
	if req.Notes != nil {
		updates["notes"] = strings.TrimSpace(*req.Notes)
	}
	if req.Exercises != nil {
		updates["exercises"] = toExerciseList(req.Exercises)
	}
	if req.PerformedAt != nil {
		updates["performed_at"] = *req.PerformedAt
	}

	if len(updates) == 0 {
		return s.GetByID(ctx, userID, id)
	}
	updates["updated_at"] = time.Now()

	workout, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update workout: %w", err)
	}

	resp := workout.ToResponse()
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	return nil
}

func (s *service) WeeklyStats(ctx context.Context, userID uuid.UUID) (*WeeklyStats, error) {
	since := time.Now().AddDate(0, 0, -7)
	stats, err := s.repo.StatsSince(ctx, userID.String(), since)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly stats: %w", err)
	}
	return stats, nil
}

// getOwned loads a workout and enforces ownership
func (s *service) getOwned(ctx context.Context, userID uuid.UUID, id string) (*Workout, error) {
	workout, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}
	if workout.UserID != userID {
		return nil, ErrNotOwner
	}
	return workout, nil
}

func toExerciseList(inputs []ExerciseInput) ExerciseList {
	list := make(ExerciseList, len(inputs))
	for i, in := range inputs {
		list[i] = Exercise{
			Name:     strings.TrimSpace(in.Name),
			Sets:     in.Sets,
			Reps:     in.Reps,
			WeightKG: in.WeightKG,
		}
	}
	return list
}
