package feed

import (
	"time"

	"github.com/google/uuid"
)

type PostType string

const (
	PostTypeUser     PostType = "user"
	PostTypeActivity PostType = "activity"
)

type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Type      PostType  `json:"type" gorm:"type:varchar(20);not null;default:'user'"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_posts_created"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "feed_posts"
}

// Like is idempotent per user per post thanks to the unique index.
type Like struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	PostID    uuid.UUID `json:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_post_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_post_user"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "feed_likes"
}

type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	PostID    uuid.UUID `json:"post_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string {
	return "feed_comments"
}
