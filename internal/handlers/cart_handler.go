package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"golang-food-gateway/internal/middleware"
	"golang-food-gateway/internal/models"
	"golang-food-gateway/internal/services"
	"golang-food-gateway/internal/upstream"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService     CartServiceInterface
	checkoutService CheckoutServiceInterface
	authService     AuthServiceInterface
}

func NewCartHandler(cartService CartServiceInterface, checkoutService CheckoutServiceInterface, authService AuthServiceInterface) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
		authService:     authService,
	}
}

// RegisterRoutes registers the routes for cart management
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	// All cart routes require authentication
	cart := router.Group("/cart", authMiddleware.AuthRequired())
	{
		// Get the user's cart
		cart.GET("", h.GetCart)
		// Add item to cart
		cart.POST("/items", h.AddItem)
		// Set item quantity exactly
		cart.PUT("/items/:menu_id", h.SetQuantity)
		// Remove item from cart
		cart.DELETE("/items/:menu_id", h.RemoveItem)
		// Increment / decrement quantity by one
		cart.POST("/items/:menu_id/increment", h.IncrementItem)
		cart.POST("/items/:menu_id/decrement", h.DecrementItem)
		// Update item notes
		cart.PUT("/items/:menu_id/notes", h.UpdateNotes)
		// Clear cart
		cart.DELETE("", h.ClearCart)
		// Remove all items of one restaurant
		cart.DELETE("/restaurants/:name", h.RemoveItemsByRestaurant)
		// Select restaurant for checkout
		cart.PUT("/checkout-restaurant", h.SelectRestaurant)
		// Checkout cart
		cart.POST("/checkout", h.Checkout)
	}
}

// GetCart godoc
// @Summary Get user's cart
// @Description Get current user's cart with derived totals
// @Tags cart
// @Produce json
// @Success 200 {object} models.CartState
// @Failure 401 {object} ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	c.JSON(http.StatusOK, h.cartService.GetCart(c.Request.Context(), userID))
}

// AddItem godoc
// @Summary Add item to cart
// @Description Add a menu item; quantity merges into an existing line
// @Tags cart
// @Accept json
// @Produce json
// @Param item body AddItemRequest true "Cart item data"
// @Success 200 {object} models.CartState
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	userID := middleware.GetUserID(c)
	state := h.cartService.AddItem(c.Request.Context(), userID, req.MenuItem, quantity, req.Notes)
	c.JSON(http.StatusOK, state)
}

// SetQuantity godoc
// @Summary Set cart item quantity
// @Description Set a line's quantity exactly; zero removes the line
// @Tags cart
// @Accept json
// @Produce json
// @Param menu_id path int true "Menu item ID"
// @Param quantity body SetQuantityRequest true "Quantity data"
// @Success 200 {object} models.CartState
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart/items/{menu_id} [put]
func (h *CartHandler) SetQuantity(c *gin.Context) {
	menuID, ok := h.menuIDParam(c)
	if !ok {
		return
	}

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	userID := middleware.GetUserID(c)
	state := h.cartService.SetQuantity(c.Request.Context(), userID, menuID, *req.Quantity)
	c.JSON(http.StatusOK, state)
}

// RemoveItem godoc
// @Summary Remove item from cart
// @Tags cart
// @Produce json
// @Param menu_id path int true "Menu item ID"
// @Success 200 {object} models.CartState
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart/items/{menu_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	menuID, ok := h.menuIDParam(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	state := h.cartService.RemoveItem(c.Request.Context(), userID, menuID)
	c.JSON(http.StatusOK, state)
}

// IncrementItem godoc
// @Summary Increment cart item quantity
// @Tags cart
// @Produce json
// @Param menu_id path int true "Menu item ID"
// @Success 200 {object} models.CartState
// @Failure 400 {object} ErrorResponse
// @Router /cart/items/{menu_id}/increment [post]
func (h *CartHandler) IncrementItem(c *gin.Context) {
	menuID, ok := h.menuIDParam(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	state := h.cartService.IncrementItem(c.Request.Context(), userID, menuID)
	c.JSON(http.StatusOK, state)
}

// DecrementItem godoc
// @Summary Decrement cart item quantity
// @Description Decrement by one; a line at quantity 1 is removed
// @Tags cart
// @Produce json
// @Param menu_id path int true "Menu item ID"
// @Success 200 {object} models.CartState
// @Failure 400 {object} ErrorResponse
// @Router /cart/items/{menu_id}/decrement [post]
func (h *CartHandler) DecrementItem(c *gin.Context) {
	menuID, ok := h.menuIDParam(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	state := h.cartService.DecrementItem(c.Request.Context(), userID, menuID)
	c.JSON(http.StatusOK, state)
}

// UpdateNotes godoc
// @Summary Update cart item notes
// @Tags cart
// @Accept json
// @Produce json
// @Param menu_id path int true "Menu item ID"
// @Param notes body UpdateNotesRequest true "Notes data"
// @Success 200 {object} models.CartState
// @Failure 400 {object} ErrorResponse
// @Router /cart/items/{menu_id}/notes [put]
func (h *CartHandler) UpdateNotes(c *gin.Context) {
	menuID, ok := h.menuIDParam(c)
	if !ok {
		return
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	userID := middleware.GetUserID(c)
	state := h.cartService.UpdateNotes(c.Request.Context(), userID, menuID, req.Notes)
	c.JSON(http.StatusOK, state)
}

// ClearCart godoc
// @Summary Clear user's cart
// @Description Remove all items and reset the checkout selection
// @Tags cart
// @Produce json
// @Success 200 {object} models.CartState
// @Failure 401 {object} ErrorResponse
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	state := h.cartService.ClearCart(c.Request.Context(), userID)
	c.JSON(http.StatusOK, state)
}

// RemoveItemsByRestaurant godoc
// @Summary Remove one restaurant's items from the cart
// @Tags cart
// @Produce json
// @Param name path string true "Restaurant name"
// @Success 200 {object} models.CartState
// @Failure 401 {object} ErrorResponse
// @Router /cart/restaurants/{name} [delete]
func (h *CartHandler) RemoveItemsByRestaurant(c *gin.Context) {
	name := c.Param("name")
	userID := middleware.GetUserID(c)
	state := h.cartService.RemoveItemsByRestaurant(c.Request.Context(), userID, name)
	c.JSON(http.StatusOK, state)
}

// SelectRestaurant godoc
// @Summary Select restaurant for checkout
// @Description Point the checkout flow at one restaurant's lines; empty
// @Description name clears the selection
// @Tags cart
// @Accept json
// @Produce json
// @Param selection body SelectRestaurantRequest true "Selection data"
// @Success 200 {object} models.CartState
// @Failure 400 {object} ErrorResponse
// @Router /cart/checkout-restaurant [put]
func (h *CartHandler) SelectRestaurant(c *gin.Context) {
	var req SelectRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	userID := middleware.GetUserID(c)
	h.cartService.SelectRestaurantForCheckout(userID, req.RestaurantName)
	c.JSON(http.StatusOK, h.cartService.GetCart(c.Request.Context(), userID))
}

// Checkout godoc
// @Summary Checkout cart
// @Description Submit the active cart lines as an order
// @Tags cart
// @Accept json
// @Produce json
// @Param checkout body services.CheckoutRequest true "Checkout data"
// @Success 201 {object} models.Order
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	userID := middleware.GetUserID(c)
	sessionID := middleware.GetSessionID(c)

	token, err := h.authService.UpstreamToken(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: err.Error(),
		})
		return
	}

	order, err := h.checkoutService.Submit(c.Request.Context(), userID, token, &req)
	if err != nil {
		c.JSON(checkoutErrorStatus(err), ErrorResponse{
			Error:   "Failed to place order",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *CartHandler) menuIDParam(c *gin.Context) (int, bool) {
	menuID, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid menu item ID",
			Message: "Menu item ID must be a number",
		})
		return 0, false
	}
	return menuID, true
}

// checkoutErrorStatus maps submission failures to HTTP statuses. Upstream
// rejections keep their original status so backend messages surface with the
// right semantics.
func checkoutErrorStatus(err error) int {
	var upstreamErr *upstream.Error
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Status
	}
	if errors.Is(err, services.ErrSubmissionInProgress) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

// Request and Response structs
type AddItemRequest struct {
	MenuItem models.MenuItem `json:"menu_item" binding:"required"`
	Quantity int             `json:"quantity" binding:"omitempty,min=1"`
	Notes    string          `json:"notes"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

type SelectRestaurantRequest struct {
	RestaurantName string `json:"restaurant_name"`
}

// ErrorResponse is the common error body for all handlers
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
