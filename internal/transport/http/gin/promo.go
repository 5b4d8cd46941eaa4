package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/tripslot/internal/service"
)

// @Summary  Validate promo code
// @Tags     checkout
// @Accept   json
// @Produce  json
// @Param    req body  ValidatePromoRequest true "payload"
// @Success  200 {object} promo.Discount
// @Failure  400 {object} ErrorResponse
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /promo/validate [post]
func handleValidatePromo(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValidatePromoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, bindingMessage(err))
			return
		}
		d, err := svcs.Promo.Validate(c.Request.Context(), req.Code, *req.TotalAmount)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// @Summary  List promo codes
// @Tags     admin
// @Produce  json
// @Success  200 {array} domain.PromoCode
// @Router   /admin/promo-codes [get]
func handleListPromoCodes(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Admin.ListPromoCodes(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// @Summary  Get promo code
// @Tags     admin
// @Produce  json
// @Param    id  path  string  true  "Promo code ID (uuid)"
// @Success  200 {object} domain.PromoCode
// @Failure  404 {object} ErrorResponse
// @Router   /admin/promo-codes/{id} [get]
func handleGetPromoCode(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parsePromoCodeID(c)
		if !ok {
			return
		}
		p, err := svcs.Admin.GetPromoCode(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// @Summary  Create promo code
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    req body  CreatePromoCodeRequest true "payload"
// @Success  201 {object} domain.PromoCode
// @Failure  400 {object} ErrorResponse "invalid or duplicate code"
// @Router   /admin/promo-codes [post]
func handleCreatePromoCode(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePromoCodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, bindingMessage(err))
			return
		}
		p, err := svcs.Admin.CreatePromoCode(c.Request.Context(), req.toInput())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// @Summary  Update promo code
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    id  path  string  true  "Promo code ID (uuid)"
// @Param    req body  UpdatePromoCodeRequest true "payload"
// @Success  200 {object} domain.PromoCode
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /admin/promo-codes/{id} [put]
func handleUpdatePromoCode(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parsePromoCodeID(c)
		if !ok {
			return
		}
		var req UpdatePromoCodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, bindingMessage(err))
			return
		}
		p, err := svcs.Admin.UpdatePromoCode(c.Request.Context(), id, req.toPatch())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// @Summary  Delete promo code
// @Tags     admin
// @Produce  json
// @Param    id  path  string  true  "Promo code ID (uuid)"
// @Success  200 {object} MessageResponse
// @Failure  404 {object} ErrorResponse
// @Router   /admin/promo-codes/{id} [delete]
func handleDeletePromoCode(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parsePromoCodeID(c)
		if !ok {
			return
		}
		if err := svcs.Admin.DeletePromoCode(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, MessageResponse{Message: "Promo code deleted"})
	}
}
