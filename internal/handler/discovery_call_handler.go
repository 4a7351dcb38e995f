package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/elevate-careers-api/internal/models"
	"github.com/noah-isme/elevate-careers-api/internal/service"
	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
	"github.com/noah-isme/elevate-careers-api/pkg/response"
)

// DiscoveryCallHandler exposes discovery call endpoints.
type DiscoveryCallHandler struct {
	calls *service.DiscoveryCallService
}

// NewDiscoveryCallHandler constructs DiscoveryCallHandler.
func NewDiscoveryCallHandler(calls *service.DiscoveryCallService) *DiscoveryCallHandler {
	return &DiscoveryCallHandler{calls: calls}
}

// Create godoc
// @Summary Request a discovery call
// @Tags DiscoveryCalls
// @Accept json
// @Produce json
// @Param payload body service.CreateDiscoveryCallRequest true "Discovery call payload"
// @Success 201 {object} response.Envelope
// @Router /discovery-calls [post]
func (h *DiscoveryCallHandler) Create(c *gin.Context) {
	var req service.CreateDiscoveryCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	call, err := h.calls.CreateDiscoveryCall(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, call)
}

// List godoc
// @Summary List discovery call requests
// @Tags DiscoveryCalls
// @Produce json
// @Param status query string false "Filter by status"
// @Param service query string false "Filter by service"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /discovery-calls [get]
func (h *DiscoveryCallHandler) List(c *gin.Context) {
	var filter models.DiscoveryCallFilter
	filter.Status = models.DiscoveryCallStatus(c.Query("status"))
	filter.Service = c.Query("service")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	calls, total, err := h.calls.ListDiscoveryCalls(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, calls, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	})
}
