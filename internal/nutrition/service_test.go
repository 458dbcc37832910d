package nutrition

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepository struct {
	meals map[string]*MealLog
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{meals: make(map[string]*MealLog)}
}

func (f *fakeRepository) Create(ctx context.Context, meal *MealLog) error {
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	meal.CreatedAt = time.Now()
	f.meals[meal.ID.String()] = meal
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*MealLog, error) {
	meal, ok := f.meals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return meal, nil
}

func (f *fakeRepository) ListByUserAndDate(ctx context.Context, userID, date string) ([]MealLog, error) {
	var out []MealLog
	for _, m := range f.meals {
		if m.UserID.String() == userID && m.Date == date {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := f.meals[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.meals, id)
	return nil
}

// The cache is nil in these tests, every summary comes straight from the store.
func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, nil, time.Minute), repo
}

func logTestMeal(t *testing.T, svc Service, userID uuid.UUID, mealType string, calories int, protein float64) *MealLog {
	t.Helper()
	meal, err := svc.LogMeal(context.Background(), userID, &LogMealRequest{
		Date:     "2026-08-31",
		MealType: mealType,
		Name:     "Test meal",
		Calories: calories,
		ProteinG: protein,
	})
	require.NoError(t, err)
	return meal
}

func TestLogMeal(t *testing.T) {
	svc, repo := newTestService()
	userID := uuid.New()

	meal, err := svc.LogMeal(context.Background(), userID, &LogMealRequest{
		Date:     "2026-08-31",
		MealType: "breakfast",
		Name:     "  Oatmeal with berries  ",
		Calories: 320,
		ProteinG: 12.5,
		CarbsG:   54,
		FatG:     6,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, meal.ID)
	assert.Equal(t, "Oatmeal with berries", meal.Name)
	assert.Equal(t, MealTypeBreakfast, meal.MealType)
	assert.Len(t, repo.meals, 1)
}

func TestListByDate(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	logTestMeal(t, svc, userID, "breakfast", 300, 10)
	logTestMeal(t, svc, userID, "lunch", 600, 30)
	logTestMeal(t, svc, uuid.New(), "lunch", 500, 20)

	meals, err := svc.ListByDate(context.Background(), userID, "2026-08-31")
	require.NoError(t, err)
	assert.Len(t, meals, 2)

	meals, err = svc.ListByDate(context.Background(), userID, "2026-09-01")
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestDeleteMeal(t *testing.T) {
	svc, repo := newTestService()
	userID := uuid.New()
	meal := logTestMeal(t, svc, userID, "dinner", 700, 40)

	require.NoError(t, svc.DeleteMeal(context.Background(), userID, meal.ID.String()))
	assert.Empty(t, repo.meals)
}

func TestDeleteMealNotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.DeleteMeal(context.Background(), uuid.New(), uuid.NewString())
	assert.ErrorIs(t, err, ErrMealNotFound)
}

func TestDeleteMealNotOwner(t *testing.T) {
	svc, _ := newTestService()
	meal := logTestMeal(t, svc, uuid.New(), "snack", 150, 5)

	err := svc.DeleteMeal(context.Background(), uuid.New(), meal.ID.String())
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestDailySummary(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	logTestMeal(t, svc, userID, "breakfast", 300, 10)
	logTestMeal(t, svc, userID, "lunch", 600, 30)
	logTestMeal(t, svc, userID, "lunch", 200, 8)
	logTestMeal(t, svc, userID, "dinner", 700, 40)

	summary, err := svc.DailySummary(context.Background(), userID, "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", summary.Date)
	assert.Equal(t, 1800, summary.TotalCalories)
	assert.InDelta(t, 88.0, summary.TotalProteinG, 0.001)
	assert.Equal(t, 300, summary.ByMealType[MealTypeBreakfast])
	assert.Equal(t, 800, summary.ByMealType[MealTypeLunch])
	assert.Equal(t, 700, summary.ByMealType[MealTypeDinner])
	assert.Len(t, summary.Meals, 4)
}

func TestDailySummaryEmptyDay(t *testing.T) {
	svc, _ := newTestService()

	summary, err := svc.DailySummary(context.Background(), uuid.New(), "2026-08-31")
	require.NoError(t, err)
	assert.Zero(t, summary.TotalCalories)
	assert.Empty(t, summary.Meals)
}
