package feed

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
)

var ErrNotOwner = errors.New("resource does not belong to user")

type Service interface {
	CreatePost(ctx context.Context, userID uuid.UUID, req *CreatePostRequest) (*PostResponse, error)
	CreateActivityPost(ctx context.Context, userID uuid.UUID, content string) (*PostResponse, error)
	ListPosts(ctx context.Context, viewerID uuid.UUID, query *FeedQuery) (*PaginatedPosts, error)
	GetPost(ctx context.Context, viewerID uuid.UUID, postID string) (*PostResponse, error)
	DeletePost(ctx context.Context, userID uuid.UUID, postID string) error

	Like(ctx context.Context, userID uuid.UUID, postID string) (*PostResponse, error)
	Unlike(ctx context.Context, userID uuid.UUID, postID string) (*PostResponse, error)

	AddComment(ctx context.Context, userID uuid.UUID, postID string, req *CreateCommentRequest) (*CommentResponse, error)
	ListComments(ctx context.Context, postID string) ([]CommentResponse, error)
	DeleteComment(ctx context.Context, userID uuid.UUID, commentID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreatePost(ctx context.Context, userID uuid.UUID, req *CreatePostRequest) (*PostResponse, error) {
	post := &Post{
		UserID:   userID,
		Type:     PostTypeUser,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post.ToResponse(0, 0, false), nil
}

// CreateActivityPost materializes a feed post from an activity event.
// Called by the event consumer, not by a handler.
func (s *service) CreateActivityPost(ctx context.Context, userID uuid.UUID, content string) (*PostResponse, error) {
	post := &Post{
		UserID:  userID,
		Type:    PostTypeActivity,
		Content: content,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post.ToResponse(0, 0, false), nil
}

func (s *service) ListPosts(ctx context.Context, viewerID uuid.UUID, query *FeedQuery) (*PaginatedPosts, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	posts, total, err := s.repo.ListPosts(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]PostResponse, 0, len(posts))
	for i := range posts {
		resp, err := s.decorate(ctx, &posts[i], viewerID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}

	return &PaginatedPosts{
		Posts:      responses,
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *service) GetPost(ctx context.Context, viewerID uuid.UUID, postID string) (*PostResponse, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, post, viewerID)
}

func (s *service) DeletePost(ctx context.Context, userID uuid.UUID, postID string) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.DeletePost(ctx, post.ID)
}

func (s *service) Like(ctx context.Context, userID uuid.UUID, postID string) (*PostResponse, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	like := &Like{PostID: post.ID, UserID: userID}
	if err := s.repo.CreateLike(ctx, like); err != nil && !errors.Is(err, ErrAlreadyLiked) {
		// Liking twice is a no-op, not an error
		return nil, err
	}

	return s.decorate(ctx, post, userID)
}

func (s *service) Unlike(ctx context.Context, userID uuid.UUID, postID string) (*PostResponse, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteLike(ctx, post.ID, userID); err != nil {
		return nil, err
	}

	return s.decorate(ctx, post, userID)
}

func (s *service) AddComment(ctx context.Context, userID uuid.UUID, postID string, req *CreateCommentRequest) (*CommentResponse, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		PostID:  post.ID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment.ToResponse(), nil
}

func (s *service) ListComments(ctx context.Context, postID string) ([]CommentResponse, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *comments[i].ToResponse())
	}
	return responses, nil
}

func (s *service) DeleteComment(ctx context.Context, userID uuid.UUID, commentID string) error {
	id, err := uuid.Parse(commentID)
	if err != nil {
		return ErrCommentNotFound
	}

	comment, err := s.repo.GetCommentByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.DeleteComment(ctx, comment.ID)
}

func (s *service) getPost(ctx context.Context, postID string) (*Post, error) {
	id, err := uuid.Parse(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}
	return s.repo.GetPostByID(ctx, id)
}

func (s *service) decorate(ctx context.Context, post *Post, viewerID uuid.UUID) (*PostResponse, error) {
	likes, err := s.repo.CountLikes(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.CountComments(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	liked := false
	if viewerID != uuid.Nil {
		liked, err = s.repo.HasLiked(ctx, post.ID, viewerID)
		if err != nil {
			return nil, err
		}
	}
	return post.ToResponse(likes, comments, liked), nil
}
