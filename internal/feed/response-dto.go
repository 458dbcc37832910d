package feed

import (
	"time"

	"github.com/google/uuid"
)

type PostResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Type         PostType  `json:"type"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"image_url,omitempty"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	Liked        bool      `json:"liked"`
	CreatedAt    time.Time `json:"created_at"`
}

type PaginatedPosts struct {
	Posts      []PostResponse `json:"posts"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Post) ToResponse(likeCount, commentCount int64, liked bool) *PostResponse {
	return &PostResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		Type:         p.Type,
		Content:      p.Content,
		ImageURL:     p.ImageURL,
		LikeCount:    likeCount,
		CommentCount: commentCount,
		Liked:        liked,
		CreatedAt:    p.CreatedAt,
	}
}

func (c *Comment) ToResponse() *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
