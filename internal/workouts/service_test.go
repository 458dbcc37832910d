package workouts

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepository struct {
	workouts map[string]*Workout
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{workouts: make(map[string]*Workout)}
}

func (f *fakeRepository) Create(ctx context.Context, workout *Workout) error {
	if workout.ID == uuid.Nil {
		workout.ID = uuid.New()
	}
	workout.CreatedAt = time.Now()
	workout.UpdatedAt = workout.CreatedAt
	f.workouts[workout.ID.String()] = workout
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*Workout, error) {
	workout, ok := f.workouts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return workout, nil
}

func (f *fakeRepository) ListByUser(ctx context.Context, userID string, query WorkoutListQuery) ([]Workout, int64, error) {
	var matched []Workout
	for _, w := range f.workouts {
		if w.UserID.String() != userID {
			continue
		}
		if query.Type != "" && string(w.Type) != query.Type {
			continue
		}
		matched = append(matched, *w)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PerformedAt.After(matched[j].PerformedAt)
	})

	total := int64(len(matched))
	offset := (query.Page - 1) * query.Limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + query.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*Workout, error) {
	workout, ok := f.workouts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		workout.Name = name
	}
	if dur, ok := updates["duration_min"].(int); ok {
		workout.DurationMin = dur
	}
	if notes, ok := updates["notes"].(string); ok {
		workout.Notes = notes
	}
	return workout, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := f.workouts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.workouts, id)
	return nil
}

func (f *fakeRepository) StatsSince(ctx context.Context, userID string, since time.Time) (*WeeklyStats, error) {
	stats := &WeeklyStats{}
	days := make(map[string]struct{})
	for _, w := range f.workouts {
		if w.UserID.String() != userID || w.PerformedAt.Before(since) {
			continue
		}
		stats.WorkoutCount++
		stats.TotalMinutes += int64(w.DurationMin)
		stats.TotalCalories += int64(w.CaloriesBurned)
		days[w.PerformedAt.Format("2006-01-02")] = struct{}{}
	}
	stats.ActiveDayCount = int64(len(days))
	return stats, nil
}

type recordingPublisher struct {
	workoutIDs []string
	calories   []int
}

func (p *recordingPublisher) PublishWorkoutCompleted(ctx context.Context, userID, workoutID, name string, calories int) error {
	p.workoutIDs = append(p.workoutIDs, workoutID)
	p.calories = append(p.calories, calories)
	return nil
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo), repo
}

func createTestWorkout(t *testing.T, svc Service, userID uuid.UUID, name, workoutType string, performedAt time.Time) *WorkoutResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), userID, &CreateWorkoutRequest{
		Name:           name,
		Type:           workoutType,
		DurationMin:    45,
		CaloriesBurned: 350,
		Exercises: []ExerciseInput{
			{Name: "Bench press", Sets: 4, Reps: 8, WeightKG: 60},
		},
		PerformedAt: &performedAt,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateWorkout(t *testing.T) {
	svc, repo := newTestService()
	publisher := &recordingPublisher{}
	svc.SetActivityPublisher(publisher)
	userID := uuid.New()

	resp := createTestWorkout(t, svc, userID, "  Push Day  ", "strength", time.Now())

	assert.Equal(t, "Push Day", resp.Name)
	assert.Len(t, resp.Exercises, 1)
	assert.Len(t, repo.workouts, 1)

	// Completing a workout emits an activity event
	require.Len(t, publisher.workoutIDs, 1)
	assert.Equal(t, resp.ID, publisher.workoutIDs[0])
	assert.Equal(t, []int{350}, publisher.calories)
}

func TestCreateWorkoutWithoutPublisher(t *testing.T) {
	svc, _ := newTestService()

	// No publisher wired; the write path must still work
	resp := createTestWorkout(t, svc, uuid.New(), "Easy Run", "cardio", time.Now())
	assert.NotEmpty(t, resp.ID)
}

func TestGetByIDOwnership(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()
	resp := createTestWorkout(t, svc, owner, "Push Day", "strength", time.Now())

	got, err := svc.GetByID(context.Background(), owner, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	_, err = svc.GetByID(context.Background(), uuid.New(), resp.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.GetByID(context.Background(), owner, uuid.NewString())
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestListPaginationAndFilter(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	now := time.Now()
	for i := 0; i < 5; i++ {
		createTestWorkout(t, svc, userID, "Push Day", "strength", now.Add(-time.Duration(i)*time.Hour))
	}
	createTestWorkout(t, svc, userID, "Easy Run", "cardio", now)

	page, err := svc.List(context.Background(), userID, WorkoutListQuery{Page: 1, Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(6), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Workouts, 4)

	page, err = svc.List(context.Background(), userID, WorkoutListQuery{Page: 2, Limit: 4})
	require.NoError(t, err)
	assert.Len(t, page.Workouts, 2)

	page, err = svc.List(context.Background(), userID, WorkoutListQuery{Type: "cardio"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalCount)
	require.Len(t, page.Workouts, 1)
	assert.Equal(t, "Easy Run", page.Workouts[0].Name)
}

func TestListDefaultsPageAndLimit(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	createTestWorkout(t, svc, userID, "Push Day", "strength", time.Now())

	page, err := svc.List(context.Background(), userID, WorkoutListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
}

func TestUpdateWorkout(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	resp := createTestWorkout(t, svc, userID, "Push Day", "strength", time.Now())

	name := "  Pull Day  "
	updated, err := svc.Update(context.Background(), userID, resp.ID, &UpdateWorkoutRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Pull Day", updated.Name)

	_, err = svc.Update(context.Background(), uuid.New(), resp.ID, &UpdateWorkoutRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestUpdateWorkoutNoFields(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	resp := createTestWorkout(t, svc, userID, "Push Day", "strength", time.Now())

	// An empty patch is a no-op read
	updated, err := svc.Update(context.Background(), userID, resp.ID, &UpdateWorkoutRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Push Day", updated.Name)
}

func TestDeleteWorkout(t *testing.T) {
	svc, repo := newTestService()
	userID := uuid.New()
	resp := createTestWorkout(t, svc, userID, "Push Day", "strength", time.Now())

	require.NoError(t, svc.Delete(context.Background(), userID, resp.ID))
	assert.Empty(t, repo.workouts)

	err := svc.Delete(context.Background(), userID, resp.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestWeeklyStats(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	now := time.Now()
	createTestWorkout(t, svc, userID, "Push Day", "strength", now)
	createTestWorkout(t, svc, userID, "Easy Run", "cardio", now.AddDate(0, 0, -2))
	// Outside the 7-day window
	createTestWorkout(t, svc, userID, "Old Session", "strength", now.AddDate(0, 0, -10))

	stats, err := svc.WeeklyStats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.WorkoutCount)
	assert.Equal(t, int64(90), stats.TotalMinutes)
	assert.Equal(t, int64(700), stats.TotalCalories)
	assert.Equal(t, int64(2), stats.ActiveDayCount)
}
