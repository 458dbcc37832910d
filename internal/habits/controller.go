package habits

import (
	"errors"
	"io"
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

func (c *Controller) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateHabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	habit, err := c.service.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create habit", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Habit created successfully", habit, nil)
}

func (c *Controller) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	includeArchived := ctx.Query("include_archived") == "true"

	habits, err := c.service.List(ctx.Request.Context(), userID, includeArchived)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list habits", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Habits retrieved successfully", habits, nil)
}

func (c *Controller) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	habit, err := c.service.Get(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to get habit")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Habit retrieved successfully", habit, nil)
}

func (c *Controller) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req UpdateHabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	habit, err := c.service.Update(ctx.Request.Context(), userID, ctx.Param("id"), &req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to update habit")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Habit updated successfully", habit, nil)
}

func (c *Controller) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		c.respondServiceError(ctx, err, "Failed to delete habit")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Habit deleted successfully", nil, nil)
}

func (c *Controller) CheckIn(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	// Body is optional, an empty one checks in for today
	var req CheckinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	checkin, err := c.service.CheckIn(ctx.Request.Context(), userID, ctx.Param("id"), &req)
	if err != nil {
		if errors.Is(err, ErrAlreadyChecked) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Habit already checked in for this date", nil, nil)
			return
		}
		c.respondServiceError(ctx, err, "Failed to check in")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Checked in successfully", checkin, nil)
}

func (c *Controller) respondServiceError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrHabitNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Habit not found", nil, nil)
	case errors.Is(err, ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Habit does not belong to user", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
