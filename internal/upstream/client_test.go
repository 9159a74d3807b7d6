package upstream_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-food-gateway/internal/models"
	"golang-food-gateway/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*upstream.Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return upstream.NewClient(server.URL, 5*time.Second), server
}

func TestClient_Login(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var creds upstream.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "budi@example.com", creds.Email)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "login success",
			"data": map[string]interface{}{
				"token": "bearer-abc",
				"user":  map[string]interface{}{"id": 7, "name": "Budi", "email": "budi@example.com"},
			},
		})
	}))
	defer server.Close()

	result, err := client.Login(context.Background(), upstream.Credentials{Email: "budi@example.com", Password: "rahasia"})

	require.NoError(t, err)
	assert.Equal(t, "bearer-abc", result.Token)
	assert.Equal(t, 7, result.User.ID)
}

func TestClient_ErrorMessageSurfacedVerbatim(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "email atau password salah",
		})
	}))
	defer server.Close()

	_, err := client.Login(context.Background(), upstream.Credentials{Email: "x@example.com", Password: "nope"})

	require.Error(t, err)
	var upstreamErr *upstream.Error
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusUnauthorized, upstreamErr.Status)
	assert.Equal(t, "email atau password salah", err.Error())
}

func TestClient_GetMenus(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/resto", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"restaurants": []map[string]interface{}{
					{
						"id":         10,
						"name":       "Warung Tekko",
						"category":   "Indonesian",
						"logo":       "https://cdn.example.com/tekko.png",
						"place":      "Jakarta Selatan",
						"star":       4.6,
						"priceRange": map[string]float64{"min": 25000, "max": 120000},
					},
				},
			},
		})
	}))
	defer server.Close()

	menus, err := client.GetMenus(context.Background())

	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, 10, menus[0].ID)
	assert.Equal(t, "Warung Tekko", menus[0].Name)
	assert.Equal(t, "Indonesian", menus[0].Description)
	assert.Equal(t, 25000.0, menus[0].Price)
	assert.Equal(t, 4.6, menus[0].Rating)
	assert.Equal(t, "https://cdn.example.com/tekko.png", menus[0].Image)
	assert.Equal(t, 10, menus[0].RestaurantID)
	assert.Equal(t, "Warung Tekko", menus[0].RestaurantName)
}

func TestClient_GetMyOrdersStatusMapping(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/order/my-order", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"orders": []map[string]interface{}{
					{
						"id":              41,
						"transactionId":   "TRX-001",
						"status":          "done",
						"deliveryAddress": "Jl. Sudirman No. 12",
						"pricing":         map[string]float64{"subtotal": 50000, "serviceFee": 5500, "totalPrice": 55500},
						"restaurants": []map[string]interface{}{
							{
								"restaurant": map[string]interface{}{"id": 10, "name": "Warung Tekko"},
								"items": []map[string]interface{}{
									{"menuId": 1, "menuName": "Nasi Goreng", "quantity": 2, "price": 25000, "itemTotal": 50000},
								},
							},
						},
					},
				},
			},
		})
	}))
	defer server.Close()

	orders, err := client.GetMyOrders(context.Background(), "token-abc")

	require.NoError(t, err)
	require.Len(t, orders, 1)
	// Upstream "done" maps to the gateway's completed status
	assert.Equal(t, models.StatusCompleted, orders[0].Status)
	assert.Equal(t, "41", orders[0].ID)
	assert.Equal(t, "Warung Tekko", orders[0].RestaurantName)
	assert.Equal(t, 55500.0, orders[0].Total)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
	assert.Equal(t, 50000.0, orders[0].Items[0].Subtotal)
}

func TestClient_GetMyOrdersBareArray(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The endpoint has also shipped a bare array payload
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": []map[string]interface{}{
				{"id": 42, "status": "pending"},
			},
		})
	}))
	defer server.Close()

	orders, err := client.GetMyOrders(context.Background(), "token-abc")

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "42", orders[0].ID)
	assert.Equal(t, models.StatusPending, orders[0].Status)
}

func TestClient_CreateOrderSendsPayload(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/order/checkout", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Jl. Sudirman No. 12", payload["deliveryAddress"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"id": 42, "status": "pending"},
		})
	}))
	defer server.Close()

	order, err := client.CreateOrder(context.Background(), "token-abc", models.CreateOrderPayload{
		DeliveryAddress: "Jl. Sudirman No. 12",
		Restaurants: []models.RestaurantGroup{
			{RestaurantID: 10, Items: []models.OrderItemRef{{MenuID: 1, Quantity: 2}}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "42", order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestClient_UnwrappedResponseBody(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No {success, message, data} wrapper
		json.NewEncoder(w).Encode([]models.Category{{ID: 1, Name: "Indonesian"}})
	}))
	defer server.Close()

	categories, err := client.GetCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Indonesian", categories[0].Name)
}
