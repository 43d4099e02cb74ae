package handlers

import (
	"errors"
	"log"
	"net/http"

	"gigmarket/internal/common"
	"gigmarket/internal/services"

	"github.com/labstack/echo/v4"
)

// respondError maps service errors onto the standard error envelope.
func respondError(c echo.Context, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return common.SendValidationError(c, validationErr.Field, validationErr.Message)
	case errors.Is(err, services.ErrUnknownCategory):
		return common.SendValidationError(c, "subcategoryId", err.Error())
	case errors.Is(err, services.ErrUserNotStored):
		return common.SendNotFoundError(c, "User")
	case errors.Is(err, services.ErrUserNotFound):
		return common.SendNotFoundError(c, "User")
	case errors.Is(err, services.ErrGigNotFound):
		return common.SendNotFoundError(c, "Gig")
	case errors.Is(err, services.ErrSkillNotFound):
		return common.SendNotFoundError(c, "Skill")
	case errors.Is(err, services.ErrNotOwner):
		return common.SendForbiddenError(c, err.Error())
	case errors.Is(err, services.ErrDuplicateSkill):
		return c.JSON(http.StatusConflict, common.CreateErrorResponse("CONFLICT", err.Error(), nil))
	}
	log.Printf("ERROR: %s %s: %v", c.Request().Method, c.Path(), err)
	return common.SendServerError(c, "Internal server error")
}

func callerIdentity(c echo.Context) *common.Identity {
	identity, _ := common.IdentityFromContext(c.Request().Context())
	return identity
}
