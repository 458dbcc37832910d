package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"fittrack/internal/habits"
	"fittrack/internal/shared/config"
	"fittrack/internal/shared/database"
	"fittrack/internal/shop"
	"fittrack/internal/users"
	"fittrack/internal/workouts"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting FitTrack database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\nCleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned")

	fmt.Println("\nSeeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("Database seeded")

	fmt.Println("\nSeeding completed. Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"order_items",
		"orders",
		"products",
		"feed_comments",
		"feed_likes",
		"feed_posts",
		"habit_checkins",
		"habits",
		"meal_logs",
		"workouts",
		"onboarding_progresses",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err := s.SeedHabits(userIDs["demo"]); err != nil {
		return fmt.Errorf("failed to seed habits: %w", err)
	}

	if err := s.SeedWorkouts(userIDs["demo"]); err != nil {
		return fmt.Errorf("failed to seed workouts: %w", err)
	}

	// Clear Redis so cached catalogs and stock counters start fresh
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates a demo user and a friend account for feed testing.
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
	}{
		{"demo", "Demo", "User", "demo@fittrack.dev"},
		{"friend", "Jamie", "Runner", "jamie@fittrack.dev"},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    Created user: %s\n", user.Email)
	}

	return userIDs, nil
}

// SeedProducts fills the shop catalog.
func (s *Seeder) SeedProducts() error {
	fmt.Println("  Seeding products...")

	productsData := []struct {
		name        string
		description string
		priceCents  int64
		stock       int
	}{
		{"Whey Protein 2kg", "Vanilla whey protein isolate, 30 servings.", 4999, 50},
		{"Resistance Band Set", "Five bands from extra light to extra heavy.", 2499, 120},
		{"Yoga Mat", "6mm non-slip mat with carry strap.", 2999, 80},
		{"Shaker Bottle 700ml", "Leak-proof shaker with mixing ball.", 999, 200},
		{"Foam Roller", "High-density roller for recovery sessions.", 1899, 60},
		{"Jump Rope", "Adjustable speed rope with ball bearings.", 1299, 150},
	}

	for _, productData := range productsData {
		product := shop.Product{
			ID:          uuid.New(),
			Name:        productData.name,
			Description: productData.description,
			PriceCents:  productData.priceCents,
			Stock:       productData.stock,
			Active:      true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to create product %s: %w", product.Name, err)
		}

		fmt.Printf("    Created product: %s\n", product.Name)
	}

	return nil
}

// SeedHabits creates starter habits with a short check-in history.
func (s *Seeder) SeedHabits(userID uuid.UUID) error {
	fmt.Println("  Seeding habits...")

	habitsData := []struct {
		name        string
		description string
		checkinDays int
	}{
		{"Drink 2L of water", "Stay hydrated throughout the day.", 5},
		{"Morning stretch", "Ten minutes of mobility before breakfast.", 3},
		{"10k steps", "Hit the daily step goal.", 0},
	}

	for _, habitData := range habitsData {
		habit := habits.Habit{
			ID:          uuid.New(),
			UserID:      userID,
			Name:        habitData.name,
			Description: habitData.description,
			Frequency:   habits.FrequencyDaily,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&habit).Error; err != nil {
			return fmt.Errorf("failed to create habit %s: %w", habit.Name, err)
		}

		// Check-ins for the last N days so streaks show up immediately
		for day := 0; day < habitData.checkinDays; day++ {
			checkin := habits.Checkin{
				ID:        uuid.New(),
				HabitID:   habit.ID,
				UserID:    userID,
				Date:      time.Now().AddDate(0, 0, -day).Format("2006-01-02"),
				CreatedAt: time.Now(),
			}
			if err := s.db.PostgreSQL.Create(&checkin).Error; err != nil {
				return fmt.Errorf("failed to create check-in for habit %s: %w", habit.Name, err)
			}
		}

		fmt.Printf("    Created habit: %s (%d check-ins)\n", habit.Name, habitData.checkinDays)
	}

	return nil
}

// SeedWorkouts creates a small workout history for the demo user.
func (s *Seeder) SeedWorkouts(userID uuid.UUID) error {
	fmt.Println("  Seeding workouts...")

	workoutsData := []struct {
		name        string
		workoutType workouts.WorkoutType
		duration    int
		calories    int
		daysAgo     int
		exercises   workouts.ExerciseList
	}{
		{
			name:        "Push Day",
			workoutType: workouts.WorkoutTypeStrength,
			duration:    55,
			calories:    420,
			daysAgo:     1,
			exercises: workouts.ExerciseList{
				{Name: "Bench Press", Sets: 4, Reps: 8, WeightKG: 70},
				{Name: "Overhead Press", Sets: 3, Reps: 10, WeightKG: 40},
				{Name: "Dips", Sets: 3, Reps: 12},
			},
		},
		{
			name:        "Easy Run",
			workoutType: workouts.WorkoutTypeCardio,
			duration:    35,
			calories:    310,
			daysAgo:     2,
			exercises:   workouts.ExerciseList{},
		},
		{
			name:        "Full Body Mobility",
			workoutType: workouts.WorkoutTypeMobility,
			duration:    25,
			calories:    90,
			daysAgo:     4,
			exercises:   workouts.ExerciseList{},
		},
	}

	for _, workoutData := range workoutsData {
		workout := workouts.Workout{
			ID:             uuid.New(),
			UserID:         userID,
			Name:           workoutData.name,
			Type:           workoutData.workoutType,
			DurationMin:    workoutData.duration,
			CaloriesBurned: workoutData.calories,
			Exercises:      workoutData.exercises,
			PerformedAt:    time.Now().AddDate(0, 0, -workoutData.daysAgo),
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&workout).Error; err != nil {
			return fmt.Errorf("failed to create workout %s: %w", workout.Name, err)
		}

		fmt.Printf("    Created workout: %s\n", workout.Name)
	}

	return nil
}
