package handlers

import (
	"net/http"
	"strconv"

	"golang-food-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	menuService MenuServiceInterface
}

func NewMenuHandler(menuService MenuServiceInterface) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// RegisterRoutes registers the routes for the menu catalog
func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup, _ *middleware.AuthMiddleware) {
	// Catalog routes are public
	router.GET("/menus", h.GetMenus)
	router.GET("/menus/:id", h.GetMenu)
	router.GET("/categories", h.GetCategories)
	router.GET("/categories/:id", h.GetCategory)
}

// GetMenus godoc
// @Summary List menu items
// @Description List all menu items, served from cache or bundled data when
// @Description the restaurant backend is unreachable
// @Tags menus
// @Produce json
// @Success 200 {array} models.MenuItem
// @Router /menus [get]
func (h *MenuHandler) GetMenus(c *gin.Context) {
	c.JSON(http.StatusOK, h.menuService.GetMenus(c.Request.Context()))
}

// GetMenu godoc
// @Summary Get menu item by ID
// @Tags menus
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /menus/{id} [get]
func (h *MenuHandler) GetMenu(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid menu item ID",
			Message: "Menu item ID must be a number",
		})
		return
	}

	menu, err := h.menuService.GetMenu(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Menu item not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, menu)
}

// GetCategories godoc
// @Summary List menu categories
// @Tags menus
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (h *MenuHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.menuService.GetCategories(c.Request.Context()))
}

// GetCategory godoc
// @Summary Get category by ID
// @Tags menus
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /categories/{id} [get]
func (h *MenuHandler) GetCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid category ID",
			Message: "Category ID must be a number",
		})
		return
	}

	category, err := h.menuService.GetCategory(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Category not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, category)
}
