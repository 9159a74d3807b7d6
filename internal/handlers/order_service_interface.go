package handlers

import (
	"context"

	"golang-food-gateway/internal/models"
)

// OrderServiceInterface defines order history operations used by handlers
type OrderServiceInterface interface {
	List(ctx context.Context, userID, token string) []models.Order
	Get(ctx context.Context, userID, token, orderID string) (*models.Order, error)
	Refresh(ctx context.Context, userID, token string) error
}
