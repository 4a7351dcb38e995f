package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/elevate-careers-api/internal/service"
	"github.com/noah-isme/elevate-careers-api/pkg/response"
)

// PricingHandler exposes the public program price listing.
type PricingHandler struct {
	pricing *service.PricingService
}

// NewPricingHandler constructs PricingHandler.
func NewPricingHandler(pricing *service.PricingService) *PricingHandler {
	return &PricingHandler{pricing: pricing}
}

// List godoc
// @Summary List training programs with prices
// @Tags Pricing
// @Produce json
// @Param currency query string false "Currency code, defaults to USD"
// @Success 200 {object} response.Envelope
// @Router /training-programs [get]
func (h *PricingHandler) List(c *gin.Context) {
	prices, err := h.pricing.ListPrices(c.Request.Context(), c.Query("currency"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prices, nil)
}
