package handlers

import (
	"net/http"

	"gigmarket/internal/common"
	"gigmarket/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers serves the category catalog.
type CategoryHandlers struct {
	catalogService services.CatalogService
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(catalogService services.CatalogService) *CategoryHandlers {
	return &CategoryHandlers{catalogService: catalogService}
}

// SeedResponse reports whether a seed ran.
type SeedResponse struct {
	Seeded bool `json:"seeded"`
}

// SeedCategories inserts the catalog when no categories exist.
//
// @Summary  Seed categories if the store is empty
// @Tags     categories
// @Produce  json
// @Success  200 {object} SeedResponse
// @Router   /v1/categories/seed [post]
func (h *CategoryHandlers) SeedCategories(c echo.Context) error {
	seeded, err := h.catalogService.SeedIfEmpty(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to seed categories")
	}
	return c.JSON(http.StatusOK, SeedResponse{Seeded: seeded})
}

// ForceReseed replaces every category and subcategory with the catalog.
//
// @Summary  Replace all categories with the catalog
// @Tags     categories
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} models.SeedResult
// @Failure  401,403,429,500 {object} common.ErrorResponse
// @Router   /v1/categories/reseed [post]
func (h *CategoryHandlers) ForceReseed(c echo.Context) error {
	result, err := h.catalogService.ForceReseed(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to reseed categories")
	}
	return c.JSON(http.StatusOK, result)
}

// ListCategories returns every category with its subcategories.
//
// @Summary  List categories with subcategories
// @Tags     categories
// @Produce  json
// @Success  200 {array} models.Category
// @Success  304
// @Router   /v1/categories [get]
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to list categories")
	}
	return common.JSONWithETag(c, http.StatusOK, categories)
}

// ListSubcategories returns the subcategories of one category, [] when it does not exist.
//
// @Summary  List subcategories of a category
// @Tags     categories
// @Produce  json
// @Param    id path string true "Category ID"
// @Success  200 {array} models.Subcategory
// @Failure  400 {object} common.ErrorResponse
// @Router   /v1/categories/{id}/subcategories [get]
func (h *CategoryHandlers) ListSubcategories(c echo.Context) error {
	categoryID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	subcategories, err := h.catalogService.ListSubcategories(c.Request().Context(), categoryID)
	if err != nil {
		return common.SendServerError(c, "Failed to list subcategories")
	}
	return common.JSONWithETag(c, http.StatusOK, subcategories)
}
