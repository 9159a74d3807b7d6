package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-food-gateway/internal/handlers"
	"golang-food-gateway/internal/middleware"
	"golang-food-gateway/internal/models"
	"golang-food-gateway/internal/services"
	"golang-food-gateway/pkg/auth"
	"golang-food-gateway/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Submit(ctx context.Context, userID, token string, req *services.CheckoutRequest) (*models.Order, error) {
	args := m.Called(ctx, userID, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.LoginResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, name, email, phone, password string) (*services.LoginResponse, error) {
	args := m.Called(ctx, name, email, phone, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResponse), args.Error(1)
}

func (m *MockAuthService) GetProfile(ctx context.Context, sessionID string) (*models.UserProfile, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, sessionID string, profile models.UserProfile) (*models.UserProfile, error) {
	args := m.Called(ctx, sessionID, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockAuthService) RefreshToken(refreshToken string) (string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) UpstreamToken(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type cartHandlerFixture struct {
	router      *gin.Engine
	checkout    *MockCheckoutService
	authService *MockAuthService
	accessToken string
}

func newCartHandlerFixture(t *testing.T) *cartHandlerFixture {
	gin.SetMode(gin.TestMode)

	jwtManager := auth.NewJWTManager("test-secret", 1, 30)
	tokens, err := jwtManager.GenerateTokenPair("7", "sess-1", "budi@example.com")
	require.NoError(t, err)

	cartService := services.NewCartService(storage.NewMemoryStore(), 0.11)
	checkout := new(MockCheckoutService)
	authService := new(MockAuthService)

	handler := handlers.NewCartHandler(cartService, checkout, authService)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), middleware.NewAuthMiddleware(jwtManager))

	return &cartHandlerFixture{
		router:      router,
		checkout:    checkout,
		authService: authService,
		accessToken: tokens.AccessToken,
	}
}

func (f *cartHandlerFixture) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.accessToken)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeCartState(t *testing.T, w *httptest.ResponseRecorder) models.CartState {
	var state models.CartState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	return state
}

func addItemBody() map[string]interface{} {
	return map[string]interface{}{
		"menu_item": map[string]interface{}{
			"id":              1,
			"name":            "Nasi Goreng Spesial",
			"price":           25000,
			"restaurant_id":   10,
			"restaurant_name": "Warung Tekko",
		},
		"quantity": 2,
	}
}

func TestCartHandler_RequiresAuth(t *testing.T) {
	fixture := newCartHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	fixture.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartHandler_AddItem(t *testing.T) {
	fixture := newCartHandlerFixture(t)

	w := fixture.request(t, http.MethodPost, "/api/v1/cart/items", addItemBody())

	require.Equal(t, http.StatusOK, w.Code)
	state := decodeCartState(t, w)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)
	assert.Equal(t, 50000.0, state.Subtotal)
	assert.Equal(t, 5500.0, state.Tax)
	assert.Equal(t, 55500.0, state.Total)
}

func TestCartHandler_AddItemInvalidBody(t *testing.T) {
	fixture := newCartHandlerFixture(t)

	w := fixture.request(t, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"quantity": 2,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_DecrementRemovesLastItem(t *testing.T) {
	fixture := newCartHandlerFixture(t)

	body := addItemBody()
	body["quantity"] = 1
	fixture.request(t, http.MethodPost, "/api/v1/cart/items", body)

	w := fixture.request(t, http.MethodPost, "/api/v1/cart/items/1/decrement", nil)

	require.Equal(t, http.StatusOK, w.Code)
	state := decodeCartState(t, w)
	assert.Empty(t, state.Items)
	assert.Equal(t, 0.0, state.Total)
}

func TestCartHandler_SetQuantityInvalidID(t *testing.T) {
	fixture := newCartHandlerFixture(t)

	w := fixture.request(t, http.MethodPut, "/api/v1/cart/items/abc", map[string]interface{}{
		"quantity": 3,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_Checkout(t *testing.T) {
	fixture := newCartHandlerFixture(t)

	fixture.authService.On("UpstreamToken", mock.Anything, "sess-1").
		Return("upstream-token", nil).
		Once()
	fixture.checkout.On("Submit", mock.Anything, "7", "upstream-token", mock.AnythingOfType("*services.CheckoutRequest")).
		Return(&models.Order{ID: "42", Status: models.StatusPending}, nil).
		Once()

	w := fixture.request(t, http.MethodPost, "/api/v1/cart/checkout", map[string]interface{}{
		"customer_name":    "Budi Santoso",
		"customer_phone":   "081234567890",
		"delivery_address": "Jl. Sudirman No. 12, Jakarta Pusat",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, "42", order.ID)
	fixture.checkout.AssertExpectations(t)
}

func TestCartHandler_CheckoutConflict(t *testing.T) {
	fixture := newCartHandlerFixture(t)

	fixture.authService.On("UpstreamToken", mock.Anything, "sess-1").
		Return("upstream-token", nil).
		Once()
	fixture.checkout.On("Submit", mock.Anything, "7", "upstream-token", mock.Anything).
		Return(nil, services.ErrSubmissionInProgress).
		Once()

	w := fixture.request(t, http.MethodPost, "/api/v1/cart/checkout", map[string]interface{}{
		"customer_name":    "Budi Santoso",
		"customer_phone":   "081234567890",
		"delivery_address": "Jl. Sudirman No. 12, Jakarta Pusat",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCartHandler_SelectRestaurant(t *testing.T) {
	fixture := newCartHandlerFixture(t)

	fixture.request(t, http.MethodPost, "/api/v1/cart/items", addItemBody())

	w := fixture.request(t, http.MethodPut, "/api/v1/cart/checkout-restaurant", map[string]interface{}{
		"restaurant_name": "Warung Tekko",
	})

	require.Equal(t, http.StatusOK, w.Code)
	state := decodeCartState(t, w)
	assert.Equal(t, "Warung Tekko", state.SelectedRestaurantForCheckout)
}
