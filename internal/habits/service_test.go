package habits

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/pkg/logger"
)

type fakeRepository struct {
	habits   map[uuid.UUID]*Habit
	checkins map[uuid.UUID][]Checkin
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		habits:   make(map[uuid.UUID]*Habit),
		checkins: make(map[uuid.UUID][]Checkin),
	}
}

func (f *fakeRepository) Create(ctx context.Context, habit *Habit) error {
	if habit.ID == uuid.Nil {
		habit.ID = uuid.New()
	}
	habit.CreatedAt = time.Now()
	f.habits[habit.ID] = habit
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Habit, error) {
	habit, ok := f.habits[id]
	if !ok {
		return nil, ErrHabitNotFound
	}
	return habit, nil
}

func (f *fakeRepository) ListByUser(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]Habit, error) {
	var out []Habit
	for _, h := range f.habits {
		if h.UserID != userID {
			continue
		}
		if h.Archived && !includeArchived {
			continue
		}
		out = append(out, *h)
	}
	return out, nil
}

func (f *fakeRepository) Update(ctx context.Context, habit *Habit) error {
	if _, ok := f.habits[habit.ID]; !ok {
		return ErrHabitNotFound
	}
	f.habits[habit.ID] = habit
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.habits[id]; !ok {
		return ErrHabitNotFound
	}
	delete(f.habits, id)
	delete(f.checkins, id)
	return nil
}

func (f *fakeRepository) CreateCheckin(ctx context.Context, checkin *Checkin) error {
	for _, c := range f.checkins[checkin.HabitID] {
		if c.Date == checkin.Date {
			return ErrAlreadyChecked
		}
	}
	checkin.ID = uuid.New()
	checkin.CreatedAt = time.Now()
	f.checkins[checkin.HabitID] = append(f.checkins[checkin.HabitID], *checkin)
	return nil
}

func (f *fakeRepository) ListCheckins(ctx context.Context, habitID uuid.UUID, limit int) ([]Checkin, error) {
	checkins := append([]Checkin(nil), f.checkins[habitID]...)
	sort.Slice(checkins, func(i, j int) bool { return checkins[i].Date > checkins[j].Date })
	if limit > 0 && len(checkins) > limit {
		checkins = checkins[:limit]
	}
	return checkins, nil
}

func (f *fakeRepository) HasCheckin(ctx context.Context, habitID uuid.UUID, date string) (bool, error) {
	for _, c := range f.checkins[habitID] {
		if c.Date == date {
			return true, nil
		}
	}
	return false, nil
}

type recordingPublisher struct {
	streaks []int
}

func (p *recordingPublisher) PublishHabitMilestone(ctx context.Context, userID, habitID uuid.UUID, name string, streak int) error {
	p.streaks = append(p.streaks, streak)
	return nil
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, logger.GetDefault()), repo
}

func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format(dateLayout)
}

func checkinsFor(dates ...string) []Checkin {
	out := make([]Checkin, 0, len(dates))
	for _, d := range dates {
		out = append(out, Checkin{Date: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name     string
		checkins []Checkin
		anchor   string
		want     int
	}{
		{
			name:     "no checkins",
			checkins: nil,
			anchor:   "2026-08-31",
			want:     0,
		},
		{
			name:     "single day",
			checkins: checkinsFor("2026-08-31"),
			anchor:   "2026-08-31",
			want:     1,
		},
		{
			name:     "consecutive run",
			checkins: checkinsFor("2026-08-29", "2026-08-30", "2026-08-31"),
			anchor:   "2026-08-31",
			want:     3,
		},
		{
			name:     "gap breaks the chain",
			checkins: checkinsFor("2026-08-27", "2026-08-30", "2026-08-31"),
			anchor:   "2026-08-31",
			want:     2,
		},
		{
			name:     "anchor missing from checkins",
			checkins: checkinsFor("2026-08-29", "2026-08-30"),
			anchor:   "2026-08-31",
			want:     0,
		},
		{
			name:     "checkins after the anchor are skipped",
			checkins: checkinsFor("2026-08-29", "2026-08-30", "2026-08-31"),
			anchor:   "2026-08-30",
			want:     2,
		},
		{
			name:     "spans a month boundary",
			checkins: checkinsFor("2026-07-30", "2026-07-31", "2026-08-01"),
			anchor:   "2026-08-01",
			want:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeStreak(tt.checkins, tt.anchor))
		})
	}
}

func TestCheckIn(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()

	habit, err := svc.Create(context.Background(), userID, &CreateHabitRequest{Name: "Morning run"})
	require.NoError(t, err)

	resp, err := svc.CheckIn(context.Background(), userID, habit.ID.String(), &CheckinRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Streak)
	assert.False(t, resp.Milestone)
	assert.Equal(t, time.Now().Format(dateLayout), resp.Date)
}

func TestCheckInDuplicateDay(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()

	habit, err := svc.Create(context.Background(), userID, &CreateHabitRequest{Name: "Morning run"})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), userID, habit.ID.String(), &CheckinRequest{})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), userID, habit.ID.String(), &CheckinRequest{})
	assert.ErrorIs(t, err, ErrAlreadyChecked)
}

func TestCheckInMilestonePublishes(t *testing.T) {
	svc, repo := newTestService()
	publisher := &recordingPublisher{}
	svc.SetActivityPublisher(publisher)
	userID := uuid.New()

	habit, err := svc.Create(context.Background(), userID, &CreateHabitRequest{Name: "Meditation"})
	require.NoError(t, err)
	habitID := repoHabitID(t, repo, userID)

	// Six prior consecutive days, today makes seven
	for i := 1; i <= 6; i++ {
		repo.checkins[habitID] = append(repo.checkins[habitID], Checkin{
			HabitID: habitID,
			UserID:  userID,
			Date:    daysAgo(i),
		})
	}

	resp, err := svc.CheckIn(context.Background(), userID, habit.ID.String(), &CheckinRequest{})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Streak)
	assert.True(t, resp.Milestone)
	assert.Equal(t, []int{7}, publisher.streaks)
}

func repoHabitID(t *testing.T, repo *fakeRepository, userID uuid.UUID) uuid.UUID {
	t.Helper()
	for id, h := range repo.habits {
		if h.UserID == userID {
			return id
		}
	}
	t.Fatal("habit not found in fake repository")
	return uuid.Nil
}

func TestCheckInOtherUsersHabit(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()

	habit, err := svc.Create(context.Background(), owner, &CreateHabitRequest{Name: "Stretching"})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), uuid.New(), habit.ID.String(), &CheckinRequest{})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestListReportsLiveStreak(t *testing.T) {
	svc, repo := newTestService()
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, &CreateHabitRequest{Name: "Reading"})
	require.NoError(t, err)
	habitID := repoHabitID(t, repo, userID)

	// Checked in yesterday and the day before: streak alive, not checked today
	repo.checkins[habitID] = []Checkin{
		{HabitID: habitID, UserID: userID, Date: daysAgo(1)},
		{HabitID: habitID, UserID: userID, Date: daysAgo(2)},
	}

	list, err := svc.List(context.Background(), userID, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Streak)
	assert.False(t, list[0].CheckedIn)
}

func TestListStaleStreakIsZero(t *testing.T) {
	svc, repo := newTestService()
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, &CreateHabitRequest{Name: "Reading"})
	require.NoError(t, err)
	habitID := repoHabitID(t, repo, userID)

	// Last check-in three days ago: the streak is dead
	repo.checkins[habitID] = []Checkin{
		{HabitID: habitID, UserID: userID, Date: daysAgo(3)},
		{HabitID: habitID, UserID: userID, Date: daysAgo(4)},
	}

	list, err := svc.List(context.Background(), userID, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].Streak)
}

func TestUpdateArchive(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()

	habit, err := svc.Create(context.Background(), userID, &CreateHabitRequest{Name: "Journaling"})
	require.NoError(t, err)

	archived := true
	updated, err := svc.Update(context.Background(), userID, habit.ID.String(), &UpdateHabitRequest{Archived: &archived})
	require.NoError(t, err)
	assert.True(t, updated.Archived)

	list, err := svc.List(context.Background(), userID, false)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = svc.List(context.Background(), userID, true)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
