package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang-food-gateway/internal/models"
	"golang-food-gateway/pkg/messaging"

	"github.com/google/uuid"
)

// Indonesian mobile number shape, after stripping spaces and dashes
var phonePattern = regexp.MustCompile(`^(\+62|62|0)8[1-9][0-9]{6,10}$`)

var (
	ErrCartEmpty            = errors.New("your cart is empty")
	ErrNoValidItems         = errors.New("no valid items to checkout")
	ErrSubmissionInProgress = errors.New("an order submission is already in progress")
)

type CheckoutRequest struct {
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
}

// CheckoutService turns the active subset of a user's cart into an upstream
// checkout payload and reconciles local state with the outcome. The order
// list is updated optimistically before the network call so listings reflect
// the attempt immediately, and rolled back if the upstream rejects it.
type CheckoutService struct {
	cart   *CartService
	orders *OrderService
	api    OrderAPI

	producer *messaging.KafkaProducer

	mu       sync.Mutex
	inflight map[string]bool
}

func NewCheckoutService(cart *CartService, orders *OrderService, api OrderAPI, producer *messaging.KafkaProducer) *CheckoutService {
	return &CheckoutService{
		cart:     cart,
		orders:   orders,
		api:      api,
		producer: producer,
		inflight: make(map[string]bool),
	}
}

func (s *CheckoutService) begin(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[userID] {
		return false
	}
	s.inflight[userID] = true
	return true
}

func (s *CheckoutService) end(userID string) {
	s.mu.Lock()
	delete(s.inflight, userID)
	s.mu.Unlock()
}

// Validate checks the delivery details locally, before any network call
func (req *CheckoutRequest) Validate() error {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return errors.New("name is required")
	}
	if len(name) < 3 {
		return errors.New("name must be at least 3 characters")
	}

	phone := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(req.CustomerPhone))
	if phone == "" {
		return errors.New("phone number is required")
	}
	if !phonePattern.MatchString(phone) {
		return errors.New("please enter a valid phone number")
	}

	address := strings.TrimSpace(req.DeliveryAddress)
	if address == "" {
		return errors.New("address is required")
	}
	if len(address) < 10 {
		return errors.New("please enter a complete address")
	}
	return nil
}

// activeLines returns the cart lines the checkout operates on: the selected
// restaurant's lines, or all lines when nothing is selected.
func activeLines(state *models.CartState, selected string) []models.CartLine {
	if selected == "" {
		return state.Items
	}
	var active []models.CartLine
	for _, line := range state.Items {
		if line.MenuItem.RestaurantName == selected {
			active = append(active, line)
		}
	}
	return active
}

// groupByRestaurant partitions lines into checkout groups, preserving
// first-seen restaurant order
func groupByRestaurant(lines []models.CartLine) []models.RestaurantGroup {
	var groups []models.RestaurantGroup
	index := make(map[int]int)

	for _, line := range lines {
		restaurantID := line.MenuItem.RestaurantID
		i, seen := index[restaurantID]
		if !seen {
			i = len(groups)
			index[restaurantID] = i
			groups = append(groups, models.RestaurantGroup{RestaurantID: restaurantID})
		}
		groups[i].Items = append(groups[i].Items, models.OrderItemRef{
			MenuID:   line.MenuItem.ID,
			Quantity: line.Quantity,
		})
	}
	return groups
}

// Submit runs one submission attempt end to end. Attempts for the same user
// are serialized; a second trigger while one is in flight is rejected rather
// than queued.
func (s *CheckoutService) Submit(ctx context.Context, userID, token string, req *CheckoutRequest) (*models.Order, error) {
	if !s.begin(userID) {
		return nil, ErrSubmissionInProgress
	}
	defer s.end(userID)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	selected := s.cart.SelectedRestaurant(userID)
	state := s.cart.GetCart(ctx, userID)
	active := activeLines(state, selected)
	if len(active) == 0 {
		return nil, ErrCartEmpty
	}

	groups := groupByRestaurant(active)
	// Unreachable if the active set was non-empty, kept as a defensive check
	if len(groups) == 0 {
		return nil, ErrNoValidItems
	}
	for _, group := range groups {
		if len(group.Items) == 0 {
			return nil, ErrNoValidItems
		}
	}

	payload := models.CreateOrderPayload{
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		Restaurants:     groups,
	}

	// Optimistic insert: a provisional pending record with zeroed pricing,
	// visible to order listings before the upstream responds
	snapshot := s.orders.Snapshot(ctx, userID)
	provisional := s.provisionalOrder(active, payload.DeliveryAddress, selected)
	s.orders.InsertOptimistic(ctx, userID, provisional)

	created, err := s.api.CreateOrder(ctx, token, payload)
	if err != nil {
		// Roll back the optimistic insert; the cart is untouched
		s.orders.Restore(ctx, userID, snapshot)
		s.publishEvent("order_failed", provisional.ID, userID, err.Error())
		s.refresh(ctx, userID, token)
		return nil, err
	}

	// Drop only what was submitted: the targeted restaurant's lines, or the
	// whole cart when no restaurant was selected
	if selected != "" {
		s.cart.RemoveItemsByRestaurant(ctx, userID, selected)
		s.cart.SelectRestaurantForCheckout(userID, "")
	} else {
		s.cart.ClearCart(ctx, userID)
	}

	s.orders.Confirm(ctx, userID, provisional.ID, *created)
	s.publishEvent("order_placed", created.ID, userID, payload)
	s.refresh(ctx, userID, token)

	return created, nil
}

func (s *CheckoutService) provisionalOrder(active []models.CartLine, address, restaurantName string) models.Order {
	items := make([]models.OrderItem, 0, len(active))
	for _, line := range active {
		items = append(items, models.OrderItem{
			MenuID:   line.MenuItem.ID,
			MenuName: line.MenuItem.Name,
			Image:    line.MenuItem.Image,
			Quantity: line.Quantity,
		})
	}

	return models.Order{
		ID:              "tmp-" + uuid.NewString(),
		DeliveryAddress: address,
		RestaurantName:  restaurantName,
		Items:           items,
		Status:          models.StatusPending,
		CreatedAt:       time.Now(),
		Optimistic:      true,
	}
}

// refresh converges the cached order list to server truth, best effort
func (s *CheckoutService) refresh(ctx context.Context, userID, token string) {
	if err := s.orders.Refresh(ctx, userID, token); err != nil {
		log.Printf("checkout: order list refresh failed for user %s: %v", userID, err)
	}
}

func (s *CheckoutService) publishEvent(eventType, orderID, userID string, data interface{}) {
	if s.producer == nil {
		return
	}
	event := messaging.OrderEvent{
		Type:    eventType,
		OrderID: orderID,
		UserID:  userID,
		Data:    data,
	}
	if err := s.producer.SendMessage("order-events", userID, event); err != nil {
		log.Printf("checkout: failed to publish %s event: %v", eventType, err)
	}
}
