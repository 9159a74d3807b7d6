package services

import (
	"context"
	"errors"
	"log"
	"time"

	"golang-food-gateway/internal/models"
	"golang-food-gateway/internal/upstream"
	"golang-food-gateway/pkg/storage"
)

// CatalogAPI is the slice of the upstream client the menu service consumes
type CatalogAPI interface {
	GetMenus(ctx context.Context) ([]models.MenuItem, error)
	GetMenu(ctx context.Context, id int) (*models.MenuItem, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
}

const catalogCacheTTL = 10 * time.Minute

// MenuService serves the browse catalog: upstream data cached in the store,
// with the static mock catalog as a last resort so browse pages keep working
// when the upstream is down.
type MenuService struct {
	store storage.Store
	api   CatalogAPI
}

func NewMenuService(store storage.Store, api CatalogAPI) *MenuService {
	return &MenuService{store: store, api: api}
}

// GetMenus lists the catalog. Never fails: cache, then upstream, then mocks.
func (s *MenuService) GetMenus(ctx context.Context) []models.MenuItem {
	var cached []models.MenuItem
	if err := s.store.Get(ctx, "menus", &cached); err == nil && len(cached) > 0 {
		return cached
	}

	menus, err := s.api.GetMenus(ctx)
	if err != nil || len(menus) == 0 {
		if err != nil {
			log.Printf("menus: upstream fetch failed, serving mock catalog: %v", err)
		}
		return upstream.MockMenus
	}

	if err := s.store.Set(ctx, "menus", menus, catalogCacheTTL); err != nil {
		log.Printf("menus: failed to cache catalog: %v", err)
	}
	return menus
}

// GetMenu looks up one menu entry by ID, falling back to the mock catalog
func (s *MenuService) GetMenu(ctx context.Context, id int) (*models.MenuItem, error) {
	menu, err := s.api.GetMenu(ctx, id)
	if err == nil {
		return menu, nil
	}

	for _, mock := range upstream.MockMenus {
		if mock.ID == id {
			found := mock
			return &found, nil
		}
	}
	return nil, err
}

// GetCategory looks up one category by ID from the category list
func (s *MenuService) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	for _, category := range s.GetCategories(ctx) {
		if category.ID == id {
			found := category
			return &found, nil
		}
	}
	return nil, errors.New("category not found")
}

// GetCategories lists catalog categories with the same degradation ladder as
// GetMenus
func (s *MenuService) GetCategories(ctx context.Context) []models.Category {
	var cached []models.Category
	if err := s.store.Get(ctx, "categories", &cached); err == nil && len(cached) > 0 {
		return cached
	}

	categories, err := s.api.GetCategories(ctx)
	if err != nil || len(categories) == 0 {
		if err != nil {
			log.Printf("categories: upstream fetch failed, serving mock list: %v", err)
		}
		return upstream.MockCategories
	}

	if err := s.store.Set(ctx, "categories", categories, catalogCacheTTL); err != nil {
		log.Printf("categories: failed to cache list: %v", err)
	}
	return categories
}
