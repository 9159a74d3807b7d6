package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang-food-gateway/internal/models"
)

// ReviewAPI is the slice of the upstream client the review service consumes
type ReviewAPI interface {
	CreateReview(ctx context.Context, token string, review models.Review) (*models.Review, error)
	GetMyReviews(ctx context.Context, token string) ([]models.Review, error)
}

type ReviewService struct {
	api ReviewAPI
}

func NewReviewService(api ReviewAPI) *ReviewService {
	return &ReviewService{api: api}
}

// CreateReview validates locally and forwards to the upstream
func (s *ReviewService) CreateReview(ctx context.Context, token string, review models.Review) (*models.Review, error) {
	if review.TransactionID == "" {
		return nil, errors.New("transaction id is required")
	}
	if review.RestaurantID <= 0 {
		return nil, errors.New("restaurant id is required")
	}
	if review.Star < 1 || review.Star > 5 {
		return nil, errors.New("star rating must be between 1 and 5")
	}
	if strings.TrimSpace(review.Comment) == "" {
		return nil, errors.New("comment is required")
	}

	return s.api.CreateReview(ctx, token, review)
}

// MyReviews lists the user's reviews, tolerating upstream failures as an
// empty list
func (s *ReviewService) MyReviews(ctx context.Context, token string) []models.Review {
	reviews, err := s.api.GetMyReviews(ctx, token)
	if err != nil {
		log.Printf("reviews: failed to fetch reviews: %v", err)
		return []models.Review{}
	}
	if reviews == nil {
		return []models.Review{}
	}
	return reviews
}
