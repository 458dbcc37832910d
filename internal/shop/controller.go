package shop

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

func (c *Controller) ListProducts(ctx *gin.Context) {
	products, err := c.service.ListProducts(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list products", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Products retrieved successfully", products, nil)
}

func (c *Controller) GetProduct(ctx *gin.Context) {
	product, err := c.service.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Product not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get product", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Product retrieved successfully", product, nil)
}

func (c *Controller) PlaceOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	order, err := c.service.PlaceOrder(ctx.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Product not found", nil, nil)
		case errors.Is(err, ErrInsufficientStock):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Insufficient stock for one or more products", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to place order", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Order placed successfully", order, nil)
}

func (c *Controller) ListOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	orders, err := c.service.ListOrders(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list orders", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Orders retrieved successfully", orders, nil)
}

func (c *Controller) GetOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	order, err := c.service.GetOrder(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		c.respondOrderError(ctx, err, "Failed to get order")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Order retrieved successfully", order, nil)
}

func (c *Controller) CancelOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	order, err := c.service.CancelOrder(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotCancellable) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Order is not in a cancellable state", nil, nil)
			return
		}
		c.respondOrderError(ctx, err, "Failed to cancel order")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Order cancelled successfully", order, nil)
}

func (c *Controller) respondOrderError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Order not found", nil, nil)
	case errors.Is(err, ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Order does not belong to user", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
