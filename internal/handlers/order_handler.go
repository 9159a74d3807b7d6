package handlers

import (
	"errors"
	"net/http"

	"golang-food-gateway/internal/middleware"
	"golang-food-gateway/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService OrderServiceInterface
	authService  AuthServiceInterface
}

func NewOrderHandler(orderService OrderServiceInterface, authService AuthServiceInterface) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		authService:  authService,
	}
}

// RegisterRoutes registers the routes for order history
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	orders := router.Group("/orders", authMiddleware.AuthRequired())
	{
		// List the user's orders, optimistic entries included
		orders.GET("", h.ListOrders)
		// Get one order by ID
		orders.GET("/:id", h.GetOrder)
		// Re-fetch orders from the restaurant backend
		orders.POST("/refresh", h.RefreshOrders)
	}
}

// ListOrders godoc
// @Summary List user's orders
// @Description List the user's order history, newest first
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Failure 401 {object} ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)

	token, ok := h.upstreamToken(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.orderService.List(c.Request.Context(), userID, token))
}

// GetOrder godoc
// @Summary Get order by ID
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	token, ok := h.upstreamToken(c)
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), userID, token, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "Order not found",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to get order",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, order)
}

// RefreshOrders godoc
// @Summary Refresh order history
// @Description Replace cached orders with the restaurant backend's current state
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /orders/refresh [post]
func (h *OrderHandler) RefreshOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)

	token, ok := h.upstreamToken(c)
	if !ok {
		return
	}

	if err := h.orderService.Refresh(c.Request.Context(), userID, token); err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "Failed to refresh orders",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, h.orderService.List(c.Request.Context(), userID, token))
}

func (h *OrderHandler) upstreamToken(c *gin.Context) (string, bool) {
	token, err := h.authService.UpstreamToken(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: err.Error(),
		})
		return "", false
	}
	return token, true
}
