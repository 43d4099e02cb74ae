package handlers

import (
	"net/http"
	"strings"

	"gigmarket/internal/common"
	"gigmarket/internal/models"
	"gigmarket/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles user and profile requests
type UserHandlers struct {
	userService services.UserService
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// StoreUserResponse carries the stored user's id.
type StoreUserResponse struct {
	ID string `json:"id"`
}

// UpdateProfileRequest is the profile payload.
type UpdateProfileRequest struct {
	Bio       string `json:"bio"`
	Country   string `json:"country"`
	Languages string `json:"languages"`
}

// StoreUser creates or refreshes the caller from their token claims.
//
// @Summary  Store the calling user
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} StoreUserResponse
// @Router   /v1/users/store [post]
func (h *UserHandlers) StoreUser(c echo.Context) error {
	caller := callerIdentity(c)
	if caller == nil {
		return common.SendUnauthorizedError(c)
	}
	user, err := h.userService.Store(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, StoreUserResponse{ID: user.ID.String()})
}

// Me returns the calling user.
//
// @Summary  Current user
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} models.User
// @Failure  404 {object} common.ErrorResponse
// @Router   /v1/users/me [get]
func (h *UserHandlers) Me(c echo.Context) error {
	caller := callerIdentity(c)
	if caller == nil {
		return common.SendUnauthorizedError(c)
	}
	user, err := h.userService.Current(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile sets the caller's bio, country and languages.
//
// @Summary  Update profile
// @Tags     users
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    profile body UpdateProfileRequest true "Profile"
// @Success  200 {object} models.User
// @Failure  400,404 {object} common.ErrorResponse
// @Router   /v1/users/me/profile [put]
func (h *UserHandlers) UpdateProfile(c echo.Context) error {
	caller := callerIdentity(c)
	if caller == nil {
		return common.SendUnauthorizedError(c)
	}
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	user, err := h.userService.UpdateProfile(c.Request().Context(), caller, models.ProfileUpdate{
		Bio:       req.Bio,
		Country:   req.Country,
		Languages: req.Languages,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUser returns a public profile by username.
//
// @Summary  Public profile
// @Tags     users
// @Produce  json
// @Param    username path string true "Username"
// @Success  200 {object} models.User
// @Failure  404 {object} common.ErrorResponse
// @Router   /v1/users/{username} [get]
func (h *UserHandlers) GetUser(c echo.Context) error {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		return common.SendValidationError(c, "username", "username is required")
	}
	user, err := h.userService.GetByUsername(c.Request().Context(), username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
