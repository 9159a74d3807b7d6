package services_test

import (
	"context"
	"testing"
	"time"

	"golang-food-gateway/internal/models"
	"golang-food-gateway/internal/services"
	"golang-food-gateway/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderAPI struct {
	mock.Mock
}

func (m *MockOrderAPI) GetMyOrders(ctx context.Context, token string) ([]models.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderAPI) CreateOrder(ctx context.Context, token string, payload models.CreateOrderPayload) (*models.Order, error) {
	args := m.Called(ctx, token, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func serverOrder(id string) models.Order {
	return models.Order{
		ID:             id,
		RestaurantName: "Warung Tekko",
		Status:         models.StatusCompleted,
		Total:          55500,
		CreatedAt:      time.Now(),
	}
}

func TestOrderService_ListFetchesOnEmptyCache(t *testing.T) {
	api := new(MockOrderAPI)
	svc := services.NewOrderService(storage.NewMemoryStore(), api)

	api.On("GetMyOrders", mock.Anything, "token").
		Return([]models.Order{serverOrder("41")}, nil).
		Once()

	orders := svc.List(context.Background(), "user-1", "token")

	require.Len(t, orders, 1)
	assert.Equal(t, "41", orders[0].ID)
	api.AssertExpectations(t)
}

func TestOrderService_ListUsesCache(t *testing.T) {
	api := new(MockOrderAPI)
	svc := services.NewOrderService(storage.NewMemoryStore(), api)
	ctx := context.Background()

	api.On("GetMyOrders", mock.Anything, "token").
		Return([]models.Order{serverOrder("41")}, nil).
		Once()

	svc.List(ctx, "user-1", "token")
	svc.List(ctx, "user-1", "token")

	// The second listing is served from cache, not a second fetch
	api.AssertNumberOfCalls(t, "GetMyOrders", 1)
}

func TestOrderService_ListDegradesOnUpstreamFailure(t *testing.T) {
	api := new(MockOrderAPI)
	svc := services.NewOrderService(storage.NewMemoryStore(), api)

	api.On("GetMyOrders", mock.Anything, "token").
		Return(nil, assert.AnError)

	orders := svc.List(context.Background(), "user-1", "token")

	assert.Empty(t, orders)
}

func TestOrderService_GetRefreshesOnMiss(t *testing.T) {
	api := new(MockOrderAPI)
	svc := services.NewOrderService(storage.NewMemoryStore(), api)

	api.On("GetMyOrders", mock.Anything, "token").
		Return([]models.Order{serverOrder("41")}, nil)

	order, err := svc.Get(context.Background(), "user-1", "token", "41")

	require.NoError(t, err)
	assert.Equal(t, "41", order.ID)
}

func TestOrderService_GetUnknownOrder(t *testing.T) {
	api := new(MockOrderAPI)
	svc := services.NewOrderService(storage.NewMemoryStore(), api)

	api.On("GetMyOrders", mock.Anything, "token").
		Return([]models.Order{}, nil)

	_, err := svc.Get(context.Background(), "user-1", "token", "nope")

	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestOrderService_OptimisticInsertAndConfirm(t *testing.T) {
	api := new(MockOrderAPI)
	svc := services.NewOrderService(storage.NewMemoryStore(), api)
	ctx := context.Background()

	api.On("GetMyOrders", mock.Anything, "token").
		Return([]models.Order{serverOrder("41")}, nil).
		Once()
	require.NoError(t, svc.Refresh(ctx, "user-1", "token"))

	provisional := models.Order{ID: "tmp-abc", Status: models.StatusPending, Optimistic: true}
	svc.InsertOptimistic(ctx, "user-1", provisional)

	orders := svc.List(ctx, "user-1", "token")
	require.Len(t, orders, 2)
	assert.Equal(t, "tmp-abc", orders[0].ID)
	assert.True(t, orders[0].Optimistic)

	svc.Confirm(ctx, "user-1", "tmp-abc", serverOrder("42"))

	orders = svc.List(ctx, "user-1", "token")
	require.Len(t, orders, 2)
	assert.Equal(t, "42", orders[0].ID)
	assert.False(t, orders[0].Optimistic)
}

func TestOrderService_ConfirmWhenOptimisticRecordGone(t *testing.T) {
	api := new(MockOrderAPI)
	svc := services.NewOrderService(storage.NewMemoryStore(), api)
	ctx := context.Background()

	// No optimistic record exists; the confirmed order is prepended instead
	svc.Confirm(ctx, "user-1", "tmp-gone", serverOrder("42"))

	orders := svc.List(ctx, "user-1", "token")
	require.Len(t, orders, 1)
	assert.Equal(t, "42", orders[0].ID)
}

// expirationRecordingStore captures the expiration passed to Set
type expirationRecordingStore struct {
	*storage.MemoryStore
	expirations map[string]time.Duration
}

func newExpirationRecordingStore() *expirationRecordingStore {
	return &expirationRecordingStore{
		MemoryStore: storage.NewMemoryStore(),
		expirations: make(map[string]time.Duration),
	}
}

func (s *expirationRecordingStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	s.expirations[key] = expiration
	return s.MemoryStore.Set(ctx, key, value, expiration)
}

func TestOrderService_CachedListExpires(t *testing.T) {
	api := new(MockOrderAPI)
	store := newExpirationRecordingStore()
	svc := services.NewOrderService(store, api)

	api.On("GetMyOrders", mock.Anything, "token").
		Return([]models.Order{serverOrder("41")}, nil).
		Once()
	require.NoError(t, svc.Refresh(context.Background(), "user-1", "token"))

	// The cached list carries a bounded TTL so stale statuses fall out and
	// the next listing re-fetches from the upstream
	ttl := store.expirations["orders:user-1"]
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 10*time.Minute)
}

func TestOrderService_RestoreRollsBack(t *testing.T) {
	api := new(MockOrderAPI)
	svc := services.NewOrderService(storage.NewMemoryStore(), api)
	ctx := context.Background()

	api.On("GetMyOrders", mock.Anything, "token").
		Return([]models.Order{serverOrder("41")}, nil).
		Once()
	require.NoError(t, svc.Refresh(ctx, "user-1", "token"))

	snapshot := svc.Snapshot(ctx, "user-1")
	svc.InsertOptimistic(ctx, "user-1", models.Order{ID: "tmp-abc", Optimistic: true})
	svc.Restore(ctx, "user-1", snapshot)

	orders := svc.List(ctx, "user-1", "token")
	require.Len(t, orders, 1)
	assert.Equal(t, "41", orders[0].ID)
}
