package handlers

import (
	"context"

	"golang-food-gateway/internal/models"
)

// MenuServiceInterface defines catalog operations used by handlers
type MenuServiceInterface interface {
	GetMenus(ctx context.Context) []models.MenuItem
	GetMenu(ctx context.Context, id int) (*models.MenuItem, error)
	GetCategories(ctx context.Context) []models.Category
	GetCategory(ctx context.Context, id int) (*models.Category, error)
}
