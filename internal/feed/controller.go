package feed

import (
	"errors"
	"net/http"

	"fittrack/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *Controller) CreatePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	post, err := c.service.CreatePost(ctx.Request.Context(), userID, &req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create post", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Post created successfully", post, nil)
}

func (c *Controller) ListPosts(ctx *gin.Context) {
	userID, _ := currentUserID(ctx)

	var query FeedQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	posts, err := c.service.ListPosts(ctx.Request.Context(), userID, &query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load feed", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Feed retrieved successfully", posts, nil)
}

func (c *Controller) GetPost(ctx *gin.Context) {
	userID, _ := currentUserID(ctx)

	post, err := c.service.GetPost(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to get post")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Post retrieved successfully", post, nil)
}

func (c *Controller) DeletePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := c.service.DeletePost(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		c.respondServiceError(ctx, err, "Failed to delete post")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Post deleted successfully", nil, nil)
}

func (c *Controller) Like(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	post, err := c.service.Like(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to like post")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Post liked successfully", post, nil)
}

func (c *Controller) Unlike(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	post, err := c.service.Unlike(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to unlike post")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Post unliked successfully", post, nil)
}

func (c *Controller) AddComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	comment, err := c.service.AddComment(ctx.Request.Context(), userID, ctx.Param("id"), &req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to add comment")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Comment added successfully", comment, nil)
}

func (c *Controller) ListComments(ctx *gin.Context) {
	comments, err := c.service.ListComments(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to list comments")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Comments retrieved successfully", comments, nil)
}

func (c *Controller) DeleteComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := c.service.DeleteComment(ctx.Request.Context(), userID, ctx.Param("commentId")); err != nil {
		c.respondServiceError(ctx, err, "Failed to delete comment")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Comment deleted successfully", nil, nil)
}

func (c *Controller) respondServiceError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPostNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Post not found", nil, nil)
	case errors.Is(err, ErrCommentNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Comment not found", nil, nil)
	case errors.Is(err, ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Resource does not belong to user", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
