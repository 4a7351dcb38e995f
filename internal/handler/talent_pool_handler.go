package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/elevate-careers-api/internal/service"
	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
	"github.com/noah-isme/elevate-careers-api/pkg/response"
)

// TalentPoolHandler exposes talent pool registration.
type TalentPoolHandler struct {
	pool *service.TalentPoolService
}

// NewTalentPoolHandler constructs TalentPoolHandler.
func NewTalentPoolHandler(pool *service.TalentPoolService) *TalentPoolHandler {
	return &TalentPoolHandler{pool: pool}
}

// Create godoc
// @Summary Register in the talent pool
// @Tags TalentPool
// @Accept json
// @Produce json
// @Param payload body service.CreateTalentProfileRequest true "Talent profile payload"
// @Success 201 {object} response.Envelope
// @Router /talent-pool [post]
func (h *TalentPoolHandler) Create(c *gin.Context) {
	var req service.CreateTalentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	profile, err := h.pool.CreateTalentProfile(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, profile)
}
