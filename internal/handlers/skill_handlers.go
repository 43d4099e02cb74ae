package handlers

import (
	"net/http"

	"gigmarket/internal/common"
	"gigmarket/internal/services"

	"github.com/labstack/echo/v4"
)

type SkillHandlers struct {
	skillService services.SkillService
}

func NewSkillHandlers(skillService services.SkillService) *SkillHandlers {
	return &SkillHandlers{skillService: skillService}
}

type AddSkillRequest struct {
	Name string `json:"name"`
}

// ListSkills returns a user's skills. Anonymous callers get [].
//
// @Summary  List a user's skills
// @Tags     skills
// @Produce  json
// @Param    username path string true "Username"
// @Success  200 {array} models.Skill
// @Router   /v1/users/{username}/skills [get]
func (h *SkillHandlers) ListSkills(c echo.Context) error {
	skills, err := h.skillService.ListByUsername(c.Request().Context(), callerIdentity(c), c.Param("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, skills)
}

// AddSkill
//
// @Summary  Add a skill to the caller
// @Tags     skills
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    skill body AddSkillRequest true "Skill"
// @Success  201 {object} models.Skill
// @Failure  400,404,409 {object} common.ErrorResponse
// @Router   /v1/users/me/skills [post]
func (h *SkillHandlers) AddSkill(c echo.Context) error {
	caller := callerIdentity(c)
	if caller == nil {
		return common.SendUnauthorizedError(c)
	}
	var req AddSkillRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	skill, err := h.skillService.Add(c.Request().Context(), caller, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, skill)
}

// RemoveSkill
//
// @Summary  Remove one of the caller's skills
// @Tags     skills
// @Security BearerAuth
// @Param    id path string true "Skill ID"
// @Success  204
// @Failure  400,404 {object} common.ErrorResponse
// @Router   /v1/users/me/skills/{id} [delete]
func (h *SkillHandlers) RemoveSkill(c echo.Context) error {
	caller := callerIdentity(c)
	if caller == nil {
		return common.SendUnauthorizedError(c)
	}
	skillID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	if err := h.skillService.Remove(c.Request().Context(), caller, skillID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
