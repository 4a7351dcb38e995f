package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/elevate-careers-api/internal/service"
	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
	"github.com/noah-isme/elevate-careers-api/pkg/export"
	"github.com/noah-isme/elevate-careers-api/pkg/response"
)

// PaymentHandler exposes the payment lifecycle endpoints.
type PaymentHandler struct {
	payments *service.PaymentService
	receipts *export.ReceiptRenderer
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments *service.PaymentService, receipts *export.ReceiptRenderer) *PaymentHandler {
	return &PaymentHandler{payments: payments, receipts: receipts}
}

// Initialize godoc
// @Summary Initialize a gateway transaction
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.InitializePaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Router /payments/initialize [post]
func (h *PaymentHandler) Initialize(c *gin.Context) {
	var req service.InitializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.payments.Initialize(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Verify godoc
// @Summary Verify a transaction against the gateway
// @Tags Payments
// @Produce json
// @Param reference path string true "Payment reference"
// @Success 200 {object} response.Envelope
// @Router /payments/verify/{reference} [get]
func (h *PaymentHandler) Verify(c *gin.Context) {
	result, err := h.payments.VerifyByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Status godoc
// @Summary Fetch stored payment state
// @Tags Payments
// @Produce json
// @Param reference path string true "Payment reference"
// @Success 200 {object} response.Envelope
// @Router /payments/{reference} [get]
func (h *PaymentHandler) Status(c *gin.Context) {
	payment, err := h.payments.StatusByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment, nil)
}

// Receipt godoc
// @Summary Download the PDF receipt for a completed payment
// @Tags Payments
// @Produce application/pdf
// @Param reference path string true "Payment reference"
// @Success 200 {file} binary
// @Router /payments/{reference}/receipt [get]
func (h *PaymentHandler) Receipt(c *gin.Context) {
	receipt, err := h.payments.Receipt(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}
	pdf, err := h.receipts.Render(*receipt)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render receipt"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", receipt.Reference))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
