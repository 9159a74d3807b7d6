package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang-food-gateway/internal/models"
	"golang-food-gateway/pkg/storage"
)

// OrderAPI is the slice of the upstream client the order service consumes
type OrderAPI interface {
	GetMyOrders(ctx context.Context, token string) ([]models.Order, error)
	CreateOrder(ctx context.Context, token string, payload models.CreateOrderPayload) (*models.Order, error)
}

var ErrOrderNotFound = errors.New("order not found")

// The cached list expires so order statuses (pending → completed) converge
// to upstream truth without an explicit refresh. Long enough to cover the
// optimistic-insert window of a submission.
const ordersCacheTTL = time.Minute

// OrderService keeps a per-user order list that mirrors the upstream's
// my-order endpoint, plus the optimistic records the checkout flow inserts
// before the upstream confirms them. The cached list is what order pages
// render; Refresh converges it back to server truth.
type OrderService struct {
	store storage.Store
	api   OrderAPI

	mu sync.Mutex
}

func NewOrderService(store storage.Store, api OrderAPI) *OrderService {
	return &OrderService{store: store, api: api}
}

func ordersKey(userID string) string {
	return "orders:" + userID
}

func (s *OrderService) loadOrders(ctx context.Context, userID string) []models.Order {
	var orders []models.Order
	if err := s.store.Get(ctx, ordersKey(userID), &orders); err != nil {
		if err != storage.ErrNotFound {
			log.Printf("orders: failed to load cached orders for user %s: %v", userID, err)
		}
		return nil
	}
	return orders
}

func (s *OrderService) persistOrders(ctx context.Context, userID string, orders []models.Order) {
	if err := s.store.Set(ctx, ordersKey(userID), orders, ordersCacheTTL); err != nil {
		log.Printf("orders: failed to persist order list for user %s: %v", userID, err)
	}
}

// List returns the user's orders: the cached list while it is fresh,
// otherwise a new fetch. Upstream failures degrade to whatever is cached
// (possibly empty) rather than erroring, matching the tolerant listing
// contract.
func (s *OrderService) List(ctx context.Context, userID, token string) []models.Order {
	s.mu.Lock()
	cached := s.loadOrders(ctx, userID)
	s.mu.Unlock()

	if cached != nil {
		return cached
	}
	if err := s.Refresh(ctx, userID, token); err != nil {
		log.Printf("orders: refresh failed for user %s: %v", userID, err)
		return []models.Order{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if orders := s.loadOrders(ctx, userID); orders != nil {
		return orders
	}
	return []models.Order{}
}

// Get finds one order by ID in the cached list, refreshing once on a miss
func (s *OrderService) Get(ctx context.Context, userID, token, orderID string) (*models.Order, error) {
	if order := s.find(ctx, userID, orderID); order != nil {
		return order, nil
	}

	if err := s.Refresh(ctx, userID, token); err != nil {
		return nil, err
	}
	if order := s.find(ctx, userID, orderID); order != nil {
		return order, nil
	}
	return nil, ErrOrderNotFound
}

func (s *OrderService) find(ctx context.Context, userID, orderID string) *models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.loadOrders(ctx, userID) {
		if order.ID == orderID {
			found := order
			return &found
		}
	}
	return nil
}

// Refresh replaces the cached list with the upstream's current truth
func (s *OrderService) Refresh(ctx context.Context, userID, token string) error {
	orders, err := s.api.GetMyOrders(ctx, token)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []models.Order{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistOrders(ctx, userID, orders)
	return nil
}

// Snapshot returns a copy of the cached list for rollback
func (s *OrderService) Snapshot(ctx context.Context, userID string) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.loadOrders(ctx, userID)
	snapshot := make([]models.Order, len(orders))
	copy(snapshot, orders)
	return snapshot
}

// InsertOptimistic prepends a provisional order record so listings reflect a
// submission attempt before the upstream responds
func (s *OrderService) InsertOptimistic(ctx context.Context, userID string, order models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := append([]models.Order{order}, s.loadOrders(ctx, userID)...)
	s.persistOrders(ctx, userID, orders)
}

// Confirm swaps the optimistic record for the server-confirmed one
func (s *OrderService) Confirm(ctx context.Context, userID, tempID string, confirmed models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.loadOrders(ctx, userID)
	for i := range orders {
		if orders[i].ID == tempID {
			orders[i] = confirmed
			s.persistOrders(ctx, userID, orders)
			return
		}
	}

	// Optimistic record already gone (e.g. a refresh raced it); prepend the
	// confirmed record so it is not lost before the next refresh.
	orders = append([]models.Order{confirmed}, orders...)
	s.persistOrders(ctx, userID, orders)
}

// Restore rolls the cached list back to a pre-submission snapshot
func (s *OrderService) Restore(ctx context.Context, userID string, snapshot []models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot == nil {
		snapshot = []models.Order{}
	}
	s.persistOrders(ctx, userID, snapshot)
}
