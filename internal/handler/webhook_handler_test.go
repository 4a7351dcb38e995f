package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/elevate-careers-api/internal/service"
	"github.com/noah-isme/elevate-careers-api/pkg/paystack"
)

const webhookSecret = "sk_test_secret"

func newWebhookRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	// The payment service is only reached after the signature gate, so
	// an empty one is enough for events it ignores.
	payments := service.NewPaymentService(nil, nil, nil, nil, nil, nil, nil, nil)
	h := NewWebhookHandler(payments, secret, nil)

	router := gin.New()
	router.POST("/payments/webhook", h.Handle)
	return router
}

func postWebhook(router *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(paystack.SignatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	router := newWebhookRouter(webhookSecret)

	rec := postWebhook(router, []byte(`{"event":"charge.success"}`), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Body.String(), "rejection carries no detail")
}

func TestWebhookRejectsForgedSignature(t *testing.T) {
	router := newWebhookRouter(webhookSecret)
	body := []byte(`{"event":"charge.success","data":{"reference":"EA_TRAIN_1_ABC123"}}`)

	rec := postWebhook(router, body, paystack.ComputeSignature("wrong-secret", body))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWebhookRejectsMutatedBody(t *testing.T) {
	router := newWebhookRouter(webhookSecret)
	original := []byte(`{"event":"charge.success","data":{"reference":"EA_TRAIN_1_ABC123","amount":2900}}`)
	signature := paystack.ComputeSignature(webhookSecret, original)
	mutated := bytes.Replace(original, []byte("2900"), []byte("100"), 1)

	rec := postWebhook(router, mutated, signature)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookRejectsWhenSecretUnconfigured(t *testing.T) {
	router := newWebhookRouter("")
	body := []byte(`{"event":"charge.success","data":{"reference":"EA_TRAIN_1_ABC123"}}`)

	rec := postWebhook(router, body, paystack.ComputeSignature("", body))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookBadPayloadAfterValidSignature(t *testing.T) {
	router := newWebhookRouter(webhookSecret)
	body := []byte(`{"no_event_field":true}`)

	rec := postWebhook(router, body, paystack.ComputeSignature(webhookSecret, body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookAcknowledgesIgnoredEvent(t *testing.T) {
	router := newWebhookRouter(webhookSecret)
	body := []byte(`{"event":"transfer.success","data":{"amount":1000}}`)

	rec := postWebhook(router, body, paystack.ComputeSignature(webhookSecret, body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "processed")
}
