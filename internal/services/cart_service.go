package services

import (
	"context"
	"log"
	"sync"

	"golang-food-gateway/internal/models"
	"golang-food-gateway/internal/pricing"
	"golang-food-gateway/pkg/storage"

	"github.com/google/uuid"
)

// CartService holds the authoritative per-user cart. Mutations are
// synchronous, total functions over the current state: they cannot fail, and
// a storage write failure degrades durability but never the returned state.
//
// The selected-restaurant pointer is transient navigation state and is kept
// in memory only, never persisted.
type CartService struct {
	store   storage.Store
	taxRate float64

	mu       sync.Mutex
	selected map[string]string // userID -> restaurant name for checkout
}

func NewCartService(store storage.Store, taxRate float64) *CartService {
	if taxRate <= 0 {
		taxRate = pricing.DefaultTaxRate
	}
	return &CartService{
		store:    store,
		taxRate:  taxRate,
		selected: make(map[string]string),
	}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// loadLines hydrates the cart line list from storage. Missing or unreadable
// data is treated as an empty cart.
func (s *CartService) loadLines(ctx context.Context, userID string) []models.CartLine {
	var lines []models.CartLine
	if err := s.store.Get(ctx, cartKey(userID), &lines); err != nil {
		if err != storage.ErrNotFound {
			log.Printf("cart: failed to load cart for user %s: %v", userID, err)
		}
		return []models.CartLine{}
	}
	if lines == nil {
		return []models.CartLine{}
	}
	return lines
}

// persistLines writes the line list back. Failures are logged and swallowed:
// the in-memory result of the mutation still stands.
func (s *CartService) persistLines(ctx context.Context, userID string, lines []models.CartLine) {
	if err := s.store.Set(ctx, cartKey(userID), lines, 0); err != nil {
		log.Printf("cart: failed to persist cart for user %s: %v", userID, err)
	}
}

// buildState recomputes the derived totals from the line list
func (s *CartService) buildState(lines []models.CartLine, selected string) *models.CartState {
	priced := make([]pricing.Line, len(lines))
	for i, line := range lines {
		priced[i] = pricing.Line{Price: line.MenuItem.Price, Quantity: line.Quantity}
	}
	subtotal := pricing.Subtotal(priced)
	tax := pricing.Tax(subtotal, s.taxRate)

	return &models.CartState{
		Items:                         lines,
		Subtotal:                      subtotal,
		Tax:                           tax,
		Total:                         pricing.Total(subtotal, tax),
		SelectedRestaurantForCheckout: selected,
	}
}

// GetCart hydrates the cart from storage and recomputes totals. Safe to call
// any number of times.
func (s *CartService) GetCart(ctx context.Context, userID string) *models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildState(s.loadLines(ctx, userID), s.selected[userID])
}

// AddItem merges into an existing line with the same menu item ID, otherwise
// appends a new line with a fresh identifier. Notes overwrite only when
// provided. Non-positive quantity is clamped to 1.
func (s *CartService) AddItem(ctx context.Context, userID string, menuItem models.MenuItem, quantity int, notes string) *models.CartState {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.loadLines(ctx, userID)
	found := false
	for i := range lines {
		if lines[i].MenuItem.ID == menuItem.ID {
			lines[i].Quantity += quantity
			if notes != "" {
				lines[i].Notes = notes
			}
			found = true
			break
		}
	}

	if !found {
		lines = append(lines, models.CartLine{
			ID:       uuid.New(),
			MenuItem: menuItem,
			Quantity: quantity,
			Notes:    notes,
		})
	}

	s.persistLines(ctx, userID, lines)
	return s.buildState(lines, s.selected[userID])
}

// RemoveItem deletes the line for the given menu item ID. No-op if absent.
func (s *CartService) RemoveItem(ctx context.Context, userID string, menuItemID int) *models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.loadLines(ctx, userID)
	filtered := lines[:0]
	for _, line := range lines {
		if line.MenuItem.ID != menuItemID {
			filtered = append(filtered, line)
		}
	}

	s.persistLines(ctx, userID, filtered)
	return s.buildState(filtered, s.selected[userID])
}

// SetQuantity sets a line's quantity exactly; zero or below removes the
// line. No-op if the line does not exist.
func (s *CartService) SetQuantity(ctx context.Context, userID string, menuItemID, quantity int) *models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.loadLines(ctx, userID)
	for i := range lines {
		if lines[i].MenuItem.ID == menuItemID {
			if quantity <= 0 {
				lines = append(lines[:i], lines[i+1:]...)
			} else {
				lines[i].Quantity = quantity
			}
			s.persistLines(ctx, userID, lines)
			break
		}
	}

	return s.buildState(lines, s.selected[userID])
}

// IncrementItem raises a line's quantity by one. No-op if absent.
func (s *CartService) IncrementItem(ctx context.Context, userID string, menuItemID int) *models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.loadLines(ctx, userID)
	for i := range lines {
		if lines[i].MenuItem.ID == menuItemID {
			lines[i].Quantity++
			s.persistLines(ctx, userID, lines)
			break
		}
	}

	return s.buildState(lines, s.selected[userID])
}

// DecrementItem lowers a line's quantity by one; at quantity 1 the line is
// removed, so quantity never reaches zero while the line exists.
func (s *CartService) DecrementItem(ctx context.Context, userID string, menuItemID int) *models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.loadLines(ctx, userID)
	for i := range lines {
		if lines[i].MenuItem.ID == menuItemID {
			if lines[i].Quantity > 1 {
				lines[i].Quantity--
			} else {
				lines = append(lines[:i], lines[i+1:]...)
			}
			s.persistLines(ctx, userID, lines)
			break
		}
	}

	return s.buildState(lines, s.selected[userID])
}

// UpdateNotes replaces the free-text annotation on a line. Totals are
// unaffected.
func (s *CartService) UpdateNotes(ctx context.Context, userID string, menuItemID int, notes string) *models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.loadLines(ctx, userID)
	for i := range lines {
		if lines[i].MenuItem.ID == menuItemID {
			lines[i].Notes = notes
			s.persistLines(ctx, userID, lines)
			break
		}
	}

	return s.buildState(lines, s.selected[userID])
}

// ClearCart empties the cart, zeroes totals and drops the checkout selection
func (s *CartService) ClearCart(ctx context.Context, userID string) *models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.selected, userID)
	lines := []models.CartLine{}
	s.persistLines(ctx, userID, lines)
	return s.buildState(lines, "")
}

// RemoveItemsByRestaurant deletes every line whose owning restaurant name
// matches, leaving all other lines in their original order.
func (s *CartService) RemoveItemsByRestaurant(ctx context.Context, userID, restaurantName string) *models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.loadLines(ctx, userID)
	filtered := lines[:0]
	for _, line := range lines {
		if line.MenuItem.RestaurantName != restaurantName {
			filtered = append(filtered, line)
		}
	}

	s.persistLines(ctx, userID, filtered)
	return s.buildState(filtered, s.selected[userID])
}

// SelectRestaurantForCheckout points the checkout flow at one restaurant's
// lines. An empty name clears the selection. Purely transient state.
func (s *CartService) SelectRestaurantForCheckout(userID, restaurantName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if restaurantName == "" {
		delete(s.selected, userID)
		return
	}
	s.selected[userID] = restaurantName
}

// SelectedRestaurant returns the current checkout selection, or ""
func (s *CartService) SelectedRestaurant(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected[userID]
}
