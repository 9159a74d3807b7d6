package handlers

import (
	"net/http"

	"golang-food-gateway/internal/middleware"
	"golang-food-gateway/internal/models"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService ReviewServiceInterface
	authService   AuthServiceInterface
}

func NewReviewHandler(reviewService ReviewServiceInterface, authService AuthServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		authService:   authService,
	}
}

// RegisterRoutes registers the routes for reviews
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	reviews := router.Group("/reviews", authMiddleware.AuthRequired())
	{
		// Submit a review for a completed order
		reviews.POST("", h.CreateReview)
		// List the user's reviews
		reviews.GET("/my-reviews", h.MyReviews)
	}
}

// CreateReview godoc
// @Summary Create review
// @Description Submit a review for a completed order's restaurant
// @Tags reviews
// @Accept json
// @Produce json
// @Param review body models.Review true "Review data"
// @Success 201 {object} models.Review
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	token, ok := h.upstreamToken(c)
	if !ok {
		return
	}

	created, err := h.reviewService.CreateReview(c.Request.Context(), token, review)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to create review",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// MyReviews godoc
// @Summary List user's reviews
// @Tags reviews
// @Produce json
// @Success 200 {array} models.Review
// @Failure 401 {object} ErrorResponse
// @Router /reviews/my-reviews [get]
func (h *ReviewHandler) MyReviews(c *gin.Context) {
	token, ok := h.upstreamToken(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.reviewService.MyReviews(c.Request.Context(), token))
}

func (h *ReviewHandler) upstreamToken(c *gin.Context) (string, bool) {
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
