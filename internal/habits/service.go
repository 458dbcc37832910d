package habits

import (
	"context"
	"errors"
	"time"

	"fittrack/pkg/logger"

	"github.com/google/uuid"
)

var ErrNotOwner = errors.New("habit does not belong to user")

const dateLayout = "2006-01-02"

// ActivityPublisher pushes habit milestone events onto the activity pipeline.
type ActivityPublisher interface {
	PublishHabitMilestone(ctx context.Context, userID, habitID uuid.UUID, name string, streak int) error
}

type Service interface {
	SetActivityPublisher(publisher ActivityPublisher)
	Create(ctx context.Context, userID uuid.UUID, req *CreateHabitRequest) (*HabitResponse, error)
	List(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]HabitResponse, error)
	Get(ctx context.Context, userID uuid.UUID, habitID string) (*HabitResponse, error)
	Update(ctx context.Context, userID uuid.UUID, habitID string, req *UpdateHabitRequest) (*HabitResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, habitID string) error
	CheckIn(ctx context.Context, userID uuid.UUID, habitID string, req *CheckinRequest) (*CheckinResponse, error)
}

type service struct {
	repo      Repository
	publisher ActivityPublisher
	logger    *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, logger: log}
}

// SetActivityPublisher wires the event pipeline after construction so the
// service works without one in tests and when Kafka is disabled.
func (s *service) SetActivityPublisher(publisher ActivityPublisher) {
	s.publisher = publisher
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req *CreateHabitRequest) (*HabitResponse, error) {
	frequency := FrequencyDaily
	if req.Frequency != "" {
		frequency = Frequency(req.Frequency)
	}

	habit := &Habit{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Frequency:   frequency,
	}
	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit.ToResponse(0, false), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]HabitResponse, error) {
	habits, err := s.repo.ListByUser(ctx, userID, includeArchived)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(dateLayout)
	responses := make([]HabitResponse, 0, len(habits))
	for i := range habits {
		streak, checkedIn, err := s.currentStreak(ctx, habits[i].ID, today)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *habits[i].ToResponse(streak, checkedIn))
	}
	return responses, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID, habitID string) (*HabitResponse, error) {
	habit, err := s.getOwned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(dateLayout)
	streak, checkedIn, err := s.currentStreak(ctx, habit.ID, today)
	if err != nil {
		return nil, err
	}
	return habit.ToResponse(streak, checkedIn), nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, habitID string, req *UpdateHabitRequest) (*HabitResponse, error) {
	habit, err := s.getOwned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		habit.Name = *req.Name
	}
	if req.Description != nil {
		habit.Description = *req.Description
	}
	if req.Frequency != nil {
		habit.Frequency = Frequency(*req.Frequency)
	}
	if req.Archived != nil {
		habit.Archived = *req.Archived
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	today := time.Now().Format(dateLayout)
	streak, checkedIn, err := s.currentStreak(ctx, habit.ID, today)
	if err != nil {
		return nil, err
	}
	return habit.ToResponse(streak, checkedIn), nil
}

func (s *service) Delete(ctx context.Context, userID uuid.UUID, habitID string) error {
	habit, err := s.getOwned(ctx, userID, habitID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, habit.ID)
}

func (s *service) CheckIn(ctx context.Context, userID uuid.UUID, habitID string, req *CheckinRequest) (*CheckinResponse, error) {
	habit, err := s.getOwned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	}

	checkin := &Checkin{
		HabitID: habit.ID,
		UserID:  userID,
		Date:    date,
	}
	if err := s.repo.CreateCheckin(ctx, checkin); err != nil {
		return nil, err
	}

	checkins, err := s.repo.ListCheckins(ctx, habit.ID, 400)
	if err != nil {
		return nil, err
	}
	streak := computeStreak(checkins, date)

	milestone := isMilestone(streak)
	if milestone && s.publisher != nil {
		if err := s.publisher.PublishHabitMilestone(ctx, userID, habit.ID, habit.Name, streak); err != nil {
			// Event delivery is best-effort, the check-in itself stands
			s.logger.ErrorWithContext(ctx, "Failed to publish habit milestone event", err, map[string]interface{}{
				"habit_id": habit.ID.String(),
				"streak":   streak,
			})
		}
	}

	s.logger.LogHabitCheckin(ctx, habit.ID.String(), userID.String(), streak)

	return &CheckinResponse{
		ID:        checkin.ID,
		HabitID:   checkin.HabitID,
		Date:      checkin.Date,
		Streak:    streak,
		Milestone: milestone,
		CreatedAt: checkin.CreatedAt,
	}, nil
}

func (s *service) getOwned(ctx context.Context, userID uuid.UUID, habitID string) (*Habit, error) {
	id, err := uuid.Parse(habitID)
	if err != nil {
		return nil, ErrHabitNotFound
	}

	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, ErrNotOwner
	}
	return habit, nil
}

// currentStreak reports the streak as of today. A streak is still alive if
// the latest check-in was today or yesterday.
func (s *service) currentStreak(ctx context.Context, habitID uuid.UUID, today string) (int, bool, error) {
	checkins, err := s.repo.ListCheckins(ctx, habitID, 400)
	if err != nil {
		return 0, false, err
	}
	if len(checkins) == 0 {
		return 0, false, nil
	}

	checkedInToday := checkins[0].Date == today
	anchor := checkins[0].Date
	if !checkedInToday {
		yesterday, err := time.Parse(dateLayout, today)
		if err != nil {
			return 0, false, err
		}
		if anchor != yesterday.AddDate(0, 0, -1).Format(dateLayout) {
			return 0, checkedInToday, nil
		}
	}

	return computeStreak(checkins, anchor), checkedInToday, nil
}

// computeStreak counts consecutive days ending at anchor, given check-ins
// sorted by date descending.
func computeStreak(checkins []Checkin, anchor string) int {
	expected, err := time.Parse(dateLayout, anchor)
	if err != nil {
		return 0
	}

	streak := 0
	for _, c := range checkins {
		d, err := time.Parse(dateLayout, c.Date)
		if err != nil {
			return streak
		}
		if d.After(expected) {
			continue // check-ins dated after the anchor don't break the chain
		}
		if !d.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}
