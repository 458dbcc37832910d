package notifications

import (
	"context"

	"fittrack/internal/feed"
	"fittrack/internal/users"

	"github.com/google/uuid"
)

// feedServiceAdapter lets the consumer write posts without depending on the
// full feed service surface.
type feedServiceAdapter struct {
	service feed.Service
}

func NewFeedWriter(service feed.Service) FeedWriter {
	return &feedServiceAdapter{service: service}
}

func (a *feedServiceAdapter) WriteActivityPost(ctx context.Context, userID uuid.UUID, content string) error {
	_, err := a.service.CreateActivityPost(ctx, userID, content)
	return err
}

// userRepositoryDirectory resolves email addresses through the users store.
type userRepositoryDirectory struct {
	repo users.Repository
}

func NewUserDirectory(repo users.Repository) UserDirectory {
	return &userRepositoryDirectory{repo: repo}
}

func (d *userRepositoryDirectory) GetUserEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := d.repo.GetByID(ctx, userID.String())
	if err != nil {
		return "", err
	}
	return user.Email, nil
}
