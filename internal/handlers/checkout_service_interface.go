package handlers

import (
	"context"

	"golang-food-gateway/internal/models"
	"golang-food-gateway/internal/services"
)

// CheckoutServiceInterface defines the order submission operation used by
// the cart handler
type CheckoutServiceInterface interface {
	Submit(ctx context.Context, userID, token string, req *services.CheckoutRequest) (*models.Order, error)
}
