package handlers

import (
	"context"

	"golang-food-gateway/internal/models"
)

// CartServiceInterface defines cart operations used by handlers
type CartServiceInterface interface {
	GetCart(ctx context.Context, userID string) *models.CartState
	AddItem(ctx context.Context, userID string, menuItem models.MenuItem, quantity int, notes string) *models.CartState
	RemoveItem(ctx context.Context, userID string, menuItemID int) *models.CartState
	SetQuantity(ctx context.Context, userID string, menuItemID, quantity int) *models.CartState
	IncrementItem(ctx context.Context, userID string, menuItemID int) *models.CartState
	DecrementItem(ctx context.Context, userID string, menuItemID int) *models.CartState
	UpdateNotes(ctx context.Context, userID string, menuItemID int, notes string) *models.CartState
	ClearCart(ctx context.Context, userID string) *models.CartState
	RemoveItemsByRestaurant(ctx context.Context, userID, restaurantName string) *models.CartState
	SelectRestaurantForCheckout(userID, restaurantName string)
	SelectedRestaurant(userID string) string
}
