package feed

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	posts    map[uuid.UUID]*Post
	likes    map[uuid.UUID]map[uuid.UUID]bool
	comments map[uuid.UUID]*Comment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		posts:    make(map[uuid.UUID]*Post),
		likes:    make(map[uuid.UUID]map[uuid.UUID]bool),
		comments: make(map[uuid.UUID]*Comment),
	}
}

func (f *fakeRepository) CreatePost(ctx context.Context, post *Post) error {
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	f.posts[post.ID] = post
	return nil
}

func (f *fakeRepository) GetPostByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (f *fakeRepository) ListPosts(ctx context.Context, page, limit int) ([]Post, int64, error) {
	var all []Post
	for _, p := range f.posts {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	offset := (page - 1) * limit
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeRepository) DeletePost(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.posts[id]; !ok {
		return ErrPostNotFound
	}
	delete(f.posts, id)
	delete(f.likes, id)
	return nil
}

func (f *fakeRepository) CreateLike(ctx context.Context, like *Like) error {
	if f.likes[like.PostID] == nil {
		f.likes[like.PostID] = make(map[uuid.UUID]bool)
	}
	if f.likes[like.PostID][like.UserID] {
		return ErrAlreadyLiked
	}
	f.likes[like.PostID][like.UserID] = true
	return nil
}

func (f *fakeRepository) DeleteLike(ctx context.Context, postID, userID uuid.UUID) error {
	delete(f.likes[postID], userID)
	return nil
}

func (f *fakeRepository) CountLikes(ctx context.Context, postID uuid.UUID) (int64, error) {
	return int64(len(f.likes[postID])), nil
}

func (f *fakeRepository) HasLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	return f.likes[postID][userID], nil
}

func (f *fakeRepository) CreateComment(ctx context.Context, comment *Comment) error {
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeRepository) GetCommentByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}

func (f *fakeRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]Comment, error) {
	var out []Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.comments[id]; !ok {
		return ErrCommentNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeRepository) CountComments(ctx context.Context, postID uuid.UUID) (int64, error) {
	count := int64(0)
	for _, c := range f.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count, nil
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo), repo
}

func createTestPost(t *testing.T, svc Service, userID uuid.UUID, content string) *PostResponse {
	t.Helper()
	post, err := svc.CreatePost(context.Background(), userID, &CreatePostRequest{Content: content})
	require.NoError(t, err)
	return post
}

func TestCreatePost(t *testing.T) {
	svc, _ := newTestService()

	post := createTestPost(t, svc, uuid.New(), "Crushed leg day")
	assert.Equal(t, PostTypeUser, post.Type)
	assert.Zero(t, post.LikeCount)
}

func TestCreateActivityPost(t *testing.T) {
	svc, _ := newTestService()

	post, err := svc.CreateActivityPost(context.Background(), uuid.New(), "Completed a workout: Push Day (350 kcal burned)")
	require.NoError(t, err)
	assert.Equal(t, PostTypeActivity, post.Type)
}

func TestLikeIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	post := createTestPost(t, svc, userID, "Crushed leg day")

	liked, err := svc.Like(context.Background(), userID, post.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), liked.LikeCount)
	assert.True(t, liked.Liked)

	// A second like changes nothing
	liked, err = svc.Like(context.Background(), userID, post.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), liked.LikeCount)
}

func TestUnlike(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	post := createTestPost(t, svc, userID, "Crushed leg day")

	_, err := svc.Like(context.Background(), userID, post.ID.String())
	require.NoError(t, err)

	unliked, err := svc.Unlike(context.Background(), userID, post.ID.String())
	require.NoError(t, err)
	assert.Zero(t, unliked.LikeCount)
	assert.False(t, unliked.Liked)
}

func TestDeletePostOwnership(t *testing.T) {
	svc, repo := newTestService()
	owner := uuid.New()
	post := createTestPost(t, svc, owner, "Crushed leg day")

	err := svc.DeletePost(context.Background(), uuid.New(), post.ID.String())
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.DeletePost(context.Background(), owner, post.ID.String()))
	assert.Empty(t, repo.posts)
}

func TestComments(t *testing.T) {
	svc, _ := newTestService()
	author := uuid.New()
	commenter := uuid.New()
	post := createTestPost(t, svc, author, "Crushed leg day")

	comment, err := svc.AddComment(context.Background(), commenter, post.ID.String(), &CreateCommentRequest{Content: "Nice work!"})
	require.NoError(t, err)
	assert.Equal(t, "Nice work!", comment.Content)

	comments, err := svc.ListComments(context.Background(), post.ID.String())
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	// Only the comment's author may remove it
	err = svc.DeleteComment(context.Background(), author, comment.ID.String())
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.DeleteComment(context.Background(), commenter, comment.ID.String()))
}

func TestListPostsPagination(t *testing.T) {
	svc, _ := newTestService()
	viewer := uuid.New()
	for i := 0; i < 25; i++ {
		createTestPost(t, svc, uuid.New(), "post")
	}

	page, err := svc.ListPosts(context.Background(), viewer, &FeedQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, int64(25), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Posts, 20)

	page, err = svc.ListPosts(context.Background(), viewer, &FeedQuery{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page.Posts, 5)
}

func TestGetPostUnknown(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetPost(context.Background(), uuid.New(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.GetPost(context.Background(), uuid.New(), uuid.NewString())
	assert.ErrorIs(t, err, ErrPostNotFound)
}
