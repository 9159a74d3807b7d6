// Package upstream talks to the external restaurant backend. The gateway
// never owns catalog, order or account data; everything here is a consumed
// contract.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-food-gateway/internal/models"
)

// Error carries a non-success upstream response. Message is surfaced to the
// user verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope is the upstream's standard response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		// Not every endpoint wraps its payload; treat the raw body as data
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return json.RawMessage(respBody), nil
		}
		return nil, &Error{Status: resp.StatusCode, Message: string(respBody)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Status: resp.StatusCode, Message: env.Message}
	}

	if env.Data != nil {
		return env.Data, nil
	}
	return json.RawMessage(respBody), nil
}

// ---- Auth ----

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// AuthResult is the upstream login/register payload: the bearer token plus
// the user record it belongs to.
type AuthResult struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", creds)
	if err != nil {
		return nil, err
	}

	var result AuthResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/auth/register", "", reg)
	if err != nil {
		return nil, err
	}

	var result AuthResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetProfile(ctx context.Context, token string) (*models.UserProfile, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/auth/profile", token, nil)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, profile models.UserProfile) (*models.UserProfile, error) {
	data, err := c.do(ctx, http.MethodPut, "/api/auth/profile", token, profile)
	if err != nil {
		return nil, err
	}

	var updated models.UserProfile
	if err := json.Unmarshal(data, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ---- Catalog ----

// restaurantRecord is the upstream /api/resto shape
type restaurantRecord struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Logo       string   `json:"logo"`
	Images     []string `json:"images"`
	Place      string   `json:"place"`
	Star       float64  `json:"star"`
	PriceRange struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"priceRange"`
}

type restaurantList struct {
	Restaurants []restaurantRecord `json:"restaurants"`
}

func menuItemFromRestaurant(r restaurantRecord) models.MenuItem {
	image := r.Logo
	if image == "" && len(r.Images) > 0 {
		image = r.Images[0]
	}
	return models.MenuItem{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Category,
		Price:          r.PriceRange.Min,
		Image:          image,
		Rating:         r.Star,
		Location:       r.Place,
		RestaurantID:   r.ID,
		RestaurantName: r.Name,
		RestaurantLogo: r.Logo,
	}
}

func (c *Client) GetMenus(ctx context.Context) ([]models.MenuItem, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/resto", "", nil)
	if err != nil {
		return nil, err
	}

	var list restaurantList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}

	menus := make([]models.MenuItem, 0, len(list.Restaurants))
	for _, r := range list.Restaurants {
		menus = append(menus, menuItemFromRestaurant(r))
	}
	return menus, nil
}

func (c *Client) GetMenu(ctx context.Context, id int) (*models.MenuItem, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/resto/%d", id), "", nil)
	if err != nil {
		return nil, err
	}

	var record restaurantRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	menu := menuItemFromRestaurant(record)
	return &menu, nil
}

func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/categories", "", nil)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ---- Orders ----

// apiOrder is the upstream order record: items are grouped per restaurant
// and pricing is computed server side.
type apiOrder struct {
	ID              int    `json:"id"`
	TransactionID   string `json:"transactionId"`
	Status          string `json:"status"`
	DeliveryAddress string `json:"deliveryAddress"`
	Pricing         struct {
		Subtotal   float64 `json:"subtotal"`
		ServiceFee float64 `json:"serviceFee"`
		TotalPrice float64 `json:"totalPrice"`
	} `json:"pricing"`
	Restaurants []struct {
		Restaurant struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
			Logo string `json:"logo"`
		} `json:"restaurant"`
		Items []struct {
			MenuID    int     `json:"menuId"`
			MenuName  string  `json:"menuName"`
			Image     string  `json:"image"`
			Quantity  int     `json:"quantity"`
			Price     float64 `json:"price"`
			ItemTotal float64 `json:"itemTotal"`
		} `json:"items"`
	} `json:"restaurants"`
	Review    *models.Review `json:"review"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt *time.Time     `json:"updatedAt"`
}

func orderFromAPI(a apiOrder) models.Order {
	// Flatten restaurant groups into a single item list for display
	var items []models.OrderItem
	for _, group := range a.Restaurants {
		for _, item := range group.Items {
			items = append(items, models.OrderItem{
				MenuID:   item.MenuID,
				MenuName: item.MenuName,
				Image:    item.Image,
				Quantity: item.Quantity,
				Price:    item.Price,
				Subtotal: item.ItemTotal,
			})
		}
	}

	status := a.Status
	if status == "done" {
		status = models.StatusCompleted
	}
	if status == "" {
		status = models.StatusPending
	}

	order := models.Order{
		ID:              fmt.Sprintf("%d", a.ID),
		TransactionID:   a.TransactionID,
		DeliveryAddress: a.DeliveryAddress,
		Items:           items,
		Subtotal:        a.Pricing.Subtotal,
		Tax:             a.Pricing.ServiceFee,
		Total:           a.Pricing.TotalPrice,
		Status:          status,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		Review:          a.Review,
	}
	if len(a.Restaurants) > 0 {
		order.RestaurantID = a.Restaurants[0].Restaurant.ID
		order.RestaurantName = a.Restaurants[0].Restaurant.Name
	}
	return order
}

type orderList struct {
	Orders []apiOrder `json:"orders"`
}

func (c *Client) GetMyOrders(ctx context.Context, token string) ([]models.Order, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/order/my-order", token, nil)
	if err != nil {
		return nil, err
	}

	// The endpoint has shipped both {orders: [...]} and a bare array
	var list orderList
	if err := json.Unmarshal(data, &list); err != nil || list.Orders == nil {
		var bare []apiOrder
		if err := json.Unmarshal(data, &bare); err != nil {
			return []models.Order{}, nil
		}
		list.Orders = bare
	}

	orders := make([]models.Order, 0, len(list.Orders))
	for _, a := range list.Orders {
		orders = append(orders, orderFromAPI(a))
	}
	return orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, token string, payload models.CreateOrderPayload) (*models.Order, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/order/checkout", token, payload)
	if err != nil {
		return nil, err
	}

	var created apiOrder
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, err
	}
	order := orderFromAPI(created)
	return &order, nil
}

// ---- Reviews ----

func (c *Client) CreateReview(ctx context.Context, token string, review models.Review) (*models.Review, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/review", token, review)
	if err != nil {
		return nil, err
	}

	var created models.Review
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetMyReviews(ctx context.Context, token string) ([]models.Review, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/review/my-reviews", token, nil)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Reviews []models.Review `json:"reviews"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Reviews != nil {
		return wrapped.Reviews, nil
	}

	var reviews []models.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return []models.Review{}, nil
	}
	return reviews, nil
}
