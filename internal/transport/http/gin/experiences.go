package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/tripslot/internal/service"
)

// @Summary  List experiences
// @Tags     experiences
// @Produce  json
// @Success  200  {array}  domain.Experience
// @Router   /experiences [get]
func handleListExperiences(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Query.ListExperiences(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, list, cacheCatalog)
	}
}

// @Summary  Get experience
// @Tags     experiences
// @Produce  json
// @Param    id  path  string  true  "Experience ID (uuid)"
// @Success  200  {object}  domain.Experience
// @Failure  404  {object}  ErrorResponse
// @Router   /experiences/{id} [get]
func handleGetExperience(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseExperienceID(c)
		if !ok {
			return
		}
		e, err := svcs.Query.GetExperience(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, e, cacheExperience)
	}
}

// @Summary  Create experience
// @Tags     experiences
// @Accept   json
// @Produce  json
// @Param    req body  CreateExperienceRequest true "payload"
// @Success  201 {object} domain.Experience
// @Failure  400 {object} ErrorResponse
// @Router   /experiences [post]
func handleCreateExperience(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateExperienceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, bindingMessage(err))
			return
		}
		in, err := req.toInput()
		if err != nil {
			respondErr(c, err)
			return
		}
		e, err := svcs.Admin.CreateExperience(c.Request.Context(), in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, e)
	}
}

// @Summary  Update experience
// @Description Absent fields keep their value. availableDates replaces the schedule.
// @Tags     experiences
// @Accept   json
// @Produce  json
// @Param    id  path  string  true  "Experience ID (uuid)"
// @Param    req body  UpdateExperienceRequest true "payload"
// @Success  200 {object} domain.Experience
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /experiences/{id} [put]
func handleUpdateExperience(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseExperienceID(c)
		if !ok {
			return
		}
		var req UpdateExperienceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, bindingMessage(err))
			return
		}
		patch, err := req.toPatch()
		if err != nil {
			respondErr(c, err)
			return
		}
		e, err := svcs.Admin.UpdateExperience(c.Request.Context(), id, patch)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

// @Summary  Delete experience
// @Tags     experiences
// @Produce  json
// @Param    id  path  string  true  "Experience ID (uuid)"
// @Success  200 {object} MessageResponse
// @Failure  404 {object} ErrorResponse
// @Router   /experiences/{id} [delete]
func handleDeleteExperience(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseExperienceID(c)
		if !ok {
			return
		}
		if err := svcs.Admin.DeleteExperience(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, MessageResponse{Message: "Experience deleted successfully"})
	}
}
