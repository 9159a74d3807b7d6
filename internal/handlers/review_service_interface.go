package handlers

import (
	"context"

	"golang-food-gateway/internal/models"
)

// ReviewServiceInterface defines review operations used by handlers
type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, token string, review models.Review) (*models.Review, error)
	MyReviews(ctx context.Context, token string) []models.Review
}
