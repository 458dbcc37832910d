package nutrition

import (
	"errors"
	"net/http"
	"time"

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

// queryDate returns the requested date or defaults to today
func queryDate(ctx *gin.Context) (string, bool) {
	date := ctx.Query("date")
	if date == "" {
		return time.Now().Format("2006-01-02"), true
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", false
	}
	return date, true
}

func (c *Controller) LogMeal(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req LogMealRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	meal, err := c.service.LogMeal(ctx.Request.Context(), userID, &req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to log meal", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Meal logged successfully", meal, nil)
}

func (c *Controller) ListMeals(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	date, ok := queryDate(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil, nil)
		return
	}

	meals, err := c.service.ListByDate(ctx.Request.Context(), userID, date)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list meals", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Meals retrieved successfully", meals, nil)
}

func (c *Controller) DeleteMeal(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := c.service.DeleteMeal(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrMealNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Meal log not found", nil, nil)
		case errors.Is(err, ErrNotOwner):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Meal log does not belong to user", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete meal", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Meal deleted successfully", nil, nil)
}

func (c *Controller) DailySummary(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	date, ok := queryDate(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil, nil)
		return
	}

	summary, err := c.service.DailySummary(ctx.Request.Context(), userID, date)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load daily summary", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Daily summary retrieved successfully", summary, nil)
}
