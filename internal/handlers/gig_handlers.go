package handlers

import (
	"net/http"
	"strconv"

	"gigmarket/internal/common"
	"gigmarket/internal/models"
	"gigmarket/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	defaultGigLimit = 20
	maxGigLimit     = 100
)

// GigHandlers handles HTTP requests for gigs
type GigHandlers struct {
	gigService services.GigService
}

// NewGigHandlers creates a new gig handlers instance
func NewGigHandlers(gigService services.GigService) *GigHandlers {
	return &GigHandlers{gigService: gigService}
}

// GigRequest is the create and update payload.
type GigRequest struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	SubcategoryID string           `json:"subcategoryId"`
	Price         *decimal.Decimal `json:"price" swaggertype:"string"`
}

func (h *GigHandlers) bindGig(c echo.Context) (services.GigInput, bool, error) {
	var req GigRequest
	if err := c.Bind(&req); err != nil {
		return services.GigInput{}, false, common.SendClientError(c, "Invalid request format")
	}
	subcategoryID, err := common.ValidateUUID(req.SubcategoryID, "subcategoryId")
	if err != nil {
		return services.GigInput{}, false, common.SendValidationError(c, "subcategoryId", err.Error())
	}
	return services.GigInput{
		Title:         req.Title,
		Description:   req.Description,
		SubcategoryID: subcategoryID,
		Price:         req.Price,
	}, true, nil
}

// pathGigID reads the :id parameter. ok is false once a 400 response has been written.
func pathGigID(c echo.Context) (uuid.UUID, bool, error) {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return uuid.Nil, false, common.SendValidationError(c, "id", err.Error())
	}
	return id, true, nil
}

// CreateGig
//
// @Summary  Create a gig
// @Tags     gigs
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    gig body GigRequest true "Gig"
// @Success  201 {object} models.Gig
// @Failure  400,404 {object} common.ErrorResponse
// @Router   /v1/gigs [post]
func (h *GigHandlers) CreateGig(c echo.Context) error {
	caller := callerIdentity(c)
	if caller == nil {
		return common.SendUnauthorizedError(c)
	}
	input, ok, err := h.bindGig(c)
	if !ok {
		return err
	}
	gig, err := h.gigService.Create(c.Request().Context(), caller, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, gig)
}

// GetGig
//
// @Summary  Get a gig with its images
// @Tags     gigs
// @Produce  json
// @Param    id path string true "Gig ID"
// @Success  200 {object} models.Gig
// @Failure  400,404 {object} common.ErrorResponse
// @Router   /v1/gigs/{id} [get]
func (h *GigHandlers) GetGig(c echo.Context) error {
	id, ok, err := pathGigID(c)
	if !ok {
		return err
	}
	gig, err := h.gigService.Get(c.Request().Context(), callerIdentity(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, gig)
}

// UpdateGig
//
// @Summary  Update a gig
// @Tags     gigs
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Gig ID"
// @Param    gig body GigRequest true "Gig"
// @Success  200 {object} models.Gig
// @Failure  400,403,404 {object} common.ErrorResponse
// @Router   /v1/gigs/{id} [put]
func (h *GigHandlers) UpdateGig(c echo.Context) error {
	caller := callerIdentity(c)
	if caller == nil {
		return common.SendUnauthorizedError(c)
	}
	id, ok, err := pathGigID(c)
	if !ok {
		return err
	}
	input, ok, err := h.bindGig(c)
	if !ok {
		return err
	}
	gig, err := h.gigService.Update(c.Request().Context(), caller, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, gig)
}

// PublishGig
//
// @Summary  Publish a gig
// @Tags     gigs
// @Security BearerAuth
// @Param    id path string true "Gig ID"
// @Success  204
// @Failure  400,403,404 {object} common.ErrorResponse
// @Router   /v1/gigs/{id}/publish [post]
func (h *GigHandlers) PublishGig(c echo.Context) error {
	return h.setPublished(c, true)
}

// UnpublishGig
//
// @Summary  Unpublish a gig
// @Tags     gigs
// @Security BearerAuth
// @Param    id path string true "Gig ID"
// @Success  204
// @Failure  400,403,404 {object} common.ErrorResponse
// @Router   /v1/gigs/{id}/unpublish [post]
func (h *GigHandlers) UnpublishGig(c echo.Context) error {
	return h.setPublished(c, false)
}

func (h *GigHandlers) setPublished(c echo.Context, published bool) error {
	caller := callerIdentity(c)
	if caller == nil {
		return common.SendUnauthorizedError(c)
	}
	id, ok, err := pathGigID(c)
	if !ok {
		return err
	}
	if err := h.gigService.SetPublished(c.Request().Context(), caller, id, published); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteGig
//
// @Summary  Delete a gig and its images
// @Tags     gigs
// @Security BearerAuth
// @Param    id path string true "Gig ID"
// @Success  204
// @Failure  400,403,404 {object} common.ErrorResponse
// @Router   /v1/gigs/{id} [delete]
func (h *GigHandlers) DeleteGig(c echo.Context) error {
	caller := callerIdentity(c)
	if caller == nil {
		return common.SendUnauthorizedError(c)
	}
	id, ok, err := pathGigID(c)
	if !ok {
		return err
	}
	if err := h.gigService.Delete(c.Request().Context(), caller, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListGigs
//
// @Summary  List published gigs
// @Tags     gigs
// @Produce  json
// @Param    search    query string false "Title substring"
// @Param    filter    query string false "Category name"
// @Param    favorites query bool   false "Only the caller's favourites"
// @Param    limit     query int    false "Page size (max 100)"
// @Param    offset    query int    false "Offset"
// @Success  200 {array} models.Gig
// @Failure  400,401 {object} common.ErrorResponse
// @Router   /v1/gigs [get]
func (h *GigHandlers) ListGigs(c echo.Context) error {
	limit, offset, err := common.ParsePagination(c, defaultGigLimit, maxGigLimit)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	favorites := false
	if v := c.QueryParam("favorites"); v != "" {
		favorites, err = strconv.ParseBool(v)
		if err != nil {
			return common.SendValidationError(c, "favorites", "must be true or false")
		}
	}
	caller := callerIdentity(c)
	if favorites && caller == nil {
		return common.SendUnauthorizedError(c)
	}

	gigs, err := h.gigService.List(c.Request().Context(), caller, favorites, models.GigFilter{
		Search:       c.QueryParam("search"),
		CategoryName: c.QueryParam("filter"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, gigs)
}

// FavoriteGig
//
// @Summary  Add a gig to the caller's favourites
// @Tags     gigs
// @Security BearerAuth
// @Param    id path string true "Gig ID"
// @Success  204
// @Router   /v1/gigs/{id}/favorite [post]
func (h *GigHandlers) FavoriteGig(c echo.Context) error {
	caller := callerIdentity(c)
	if caller == nil {
		return common.SendUnauthorizedError(c)
	}
	id, ok, err := pathGigID(c)
	if !ok {
		return err
	}
	if err := h.gigService.Favorite(c.Request().Context(), caller, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UnfavoriteGig
//
// @Summary  Remove a gig from the caller's favourites
// @Tags     gigs
// @Security BearerAuth
// @Param    id path string true "Gig ID"
// @Success  204
// @Router   /v1/gigs/{id}/favorite [delete]
func (h *GigHandlers) UnfavoriteGig(c echo.Context) error {
	caller := callerIdentity(c)
	if caller == nil {
		return common.SendUnauthorizedError(c)
	}
	id, ok, err := pathGigID(c)
	if !ok {
		return err
	}
	if err := h.gigService.Unfavorite(c.Request().Context(), caller, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadGigImage stores one image from the multipart "file" field.
//
// @Summary  Upload a gig image
// @Tags     gigs
// @Accept   multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param    id   path     string true "Gig ID"
// @Param    file formData file   true "Image (max 5 MiB)"
// @Success  201 {object} models.GigImage
// @Failure  400,403,404 {object} common.ErrorResponse
// @Router   /v1/gigs/{id}/images [post]
func (h *GigHandlers) UploadGigImage(c echo.Context) error {
	caller := callerIdentity(c)
	if caller == nil {
		return common.SendUnauthorizedError(c)
	}
	id, ok, err := pathGigID(c)
	if !ok {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return common.SendValidationError(c, "file", "file is required")
	}
	if file.Size > services.MaxImageSize {
		return common.SendValidationError(c, "file", "file exceeds 5 MiB")
	}
	src, err := file.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read upload")
	}
	defer src.Close()

	image, err := h.gigService.UploadImage(c.Request().Context(), caller, id, services.ImageUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get(echo.HeaderContentType),
		Size:        file.Size,
		Reader:      src,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, image)
}
