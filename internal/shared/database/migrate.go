package database

import (
	"fittrack/internal/feed"
	"fittrack/internal/habits"
	"fittrack/internal/nutrition"
	"fittrack/internal/shop"
	"fittrack/internal/users"
	"fittrack/internal/workouts"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&users.OnboardingProgress{},
		&workouts.Workout{},
		&nutrition.MealLog{},
		&habits.Habit{},
		&habits.Checkin{},
		&feed.Post{},
		&feed.Like{},
		&feed.Comment{},
		&shop.Product{},
		&shop.Order{},
		&shop.OrderItem{},
	)
}
