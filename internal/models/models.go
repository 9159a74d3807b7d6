package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is a snapshot of a menu entry as served by the upstream catalog.
// Cart lines keep the full snapshot so the cart stays renderable even when
// the upstream is unreachable.
type MenuItem struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Price          float64 `json:"price"`
	Image          string  `json:"image,omitempty"`
	CategoryID     int     `json:"category_id,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
	Location       string  `json:"location,omitempty"`
	Distance       string  `json:"distance,omitempty"`
	RestaurantID   int     `json:"restaurant_id,omitempty"`
	RestaurantName string  `json:"restaurant_name,omitempty"`
	RestaurantLogo string  `json:"restaurant_logo,omitempty"`
}

// CartLine pairs a menu item snapshot with a quantity. At most one line
// exists per MenuItem.ID within a cart.
type CartLine struct {
	ID       uuid.UUID `json:"id"`
	MenuItem MenuItem  `json:"menu_item"`
	Quantity int       `json:"quantity"`
	Notes    string    `json:"notes,omitempty"`
}

// CartState is the full cart as returned to clients. Subtotal, Tax and Total
// are derived from Items and never settable independently.
type CartState struct {
	Items                         []CartLine `json:"items"`
	Subtotal                      float64    `json:"subtotal"`
	Tax                           float64    `json:"tax"`
	Total                         float64    `json:"total"`
	SelectedRestaurantForCheckout string     `json:"selected_restaurant_for_checkout,omitempty"`
}

// Category model from the upstream catalog
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Order status values. The upstream reports "done" for finished orders,
// which the gateway maps to StatusCompleted.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// OrderItem is a single line of a placed order
type OrderItem struct {
	MenuID   int     `json:"menu_id"`
	MenuName string  `json:"menu_name"`
	Image    string  `json:"image,omitempty"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

// Order is an order record as shown to the user. Optimistic records carry a
// temporary ID and zeroed pricing until the upstream confirms them.
type Order struct {
	ID              string      `json:"id"`
	TransactionID   string      `json:"transaction_id,omitempty"`
	DeliveryAddress string      `json:"delivery_address"`
	RestaurantID    int         `json:"restaurant_id,omitempty"`
	RestaurantName  string      `json:"restaurant_name,omitempty"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	Tax             float64     `json:"tax"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       *time.Time  `json:"updated_at,omitempty"`
	Review          *Review     `json:"review,omitempty"`
	Optimistic      bool        `json:"optimistic,omitempty"`
}

// Review model. Field tags match the upstream wire shape (camelCase, "star"
// rather than "rating") so payloads pass through unchanged.
type Review struct {
	ID            int       `json:"id,omitempty"`
	TransactionID string    `json:"transactionId"`
	RestaurantID  int       `json:"restaurantId"`
	Star          int       `json:"star"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// OrderItemRef identifies one ordered menu entry inside a checkout payload
type OrderItemRef struct {
	MenuID   int `json:"menuId"`
	Quantity int `json:"quantity"`
}

// RestaurantGroup is a checkout payload segment grouping ordered items by
// their owning restaurant
type RestaurantGroup struct {
	RestaurantID int            `json:"restaurantId"`
	Items        []OrderItemRef `json:"items"`
}

// CreateOrderPayload is the wire shape the upstream checkout endpoint accepts
type CreateOrderPayload struct {
	DeliveryAddress string            `json:"deliveryAddress"`
	Restaurants     []RestaurantGroup `json:"restaurants"`
}

// UserProfile as returned by the upstream auth endpoints
type UserProfile struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}
