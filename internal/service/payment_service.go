package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/elevate-careers-api/internal/models"
	"github.com/noah-isme/elevate-careers-api/internal/pricing"
	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
	"github.com/noah-isme/elevate-careers-api/pkg/export"
	"github.com/noah-isme/elevate-careers-api/pkg/paystack"
)

// paymentRepository is the persistence surface the payment service
// depends on.
type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByReference(ctx context.Context, reference string) (*models.Payment, error)
	UpdateStatus(ctx context.Context, reference string, status models.PaymentStatus, update models.PaymentUpdate) (*models.Payment, error)
}

// paymentEnrollmentStore is the slice of the enrollment repository the
// payment service needs.
type paymentEnrollmentStore interface {
	FindByID(ctx context.Context, id string) (*models.TrainingEnrollment, error)
	FindByPaymentReference(ctx context.Context, reference string) (*models.TrainingEnrollment, error)
	UpdateStatuses(ctx context.Context, id string, paymentStatus models.PaymentStatus, enrollmentStatus models.EnrollmentStatus) error
}

// paymentGateway abstracts the remote gateway's transaction API.
type paymentGateway interface {
	Configured() bool
	InitializeTransaction(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeData, error)
	VerifyTransaction(ctx context.Context, reference string) (*paystack.ChargeData, error)
}

// uniqueViolationChecker lets the service classify reference collisions
// without importing the driver.
type uniqueViolationChecker func(error) bool

// InitializePaymentRequest starts the gateway leg of a paid enrollment.
// The amount is the client's claim and is checked against the catalog
// before anything leaves this service.
type InitializePaymentRequest struct {
	Reference       string  `json:"reference" validate:"required,min=8,max=100"`
	Email           string  `json:"email" validate:"required,email"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Currency        string  `json:"currency" validate:"omitempty,len=3"`
	TrainingProgram string  `json:"training_program" validate:"required,min=2,max=100"`
	CustomerName    string  `json:"customer_name" validate:"omitempty,max=200"`
	CallbackURL     string  `json:"callback_url" validate:"omitempty,url"`
}

// InitializePaymentResult carries the redirect handle back to the client.
type InitializePaymentResult struct {
	Reference        string  `json:"reference"`
	AccessCode       string  `json:"access_code"`
	AuthorizationURL string  `json:"authorization_url"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
}

// VerificationResult is the outcome of a pull-side verification.
type VerificationResult struct {
	GatewayStatus string          `json:"gateway_status"`
	Payment       *models.Payment `json:"payment"`
}

// PaymentService orchestrates the payment lifecycle: initialize against
// the gateway, settle through verification or webhook delivery, and
// keep the enrollment in step. Verification and webhook processing
// write the same field set for a successful charge, so whichever lands
// first the row converges to the same terminal state.
type PaymentService struct {
	payments      paymentRepository
	enrollments   paymentEnrollmentStore
	gateway       paymentGateway
	catalog       *pricing.Catalog
	notifications *NotificationService
	metrics       *MetricsService
	isUnique      uniqueViolationChecker
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewPaymentService constructs the orchestrator.
func NewPaymentService(
	payments paymentRepository,
	enrollments paymentEnrollmentStore,
	gateway paymentGateway,
	catalog *pricing.Catalog,
	notifications *NotificationService,
	metrics *MetricsService,
	isUnique uniqueViolationChecker,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if isUnique == nil {
		isUnique = func(error) bool { return false }
	}
	return &PaymentService{
		payments:      payments,
		enrollments:   enrollments,
		gateway:       gateway,
		catalog:       catalog,
		notifications: notifications,
		metrics:       metrics,
		isUnique:      isUnique,
		validate:      validator.New(),
		logger:        logger,
	}
}

// Initialize validates the claimed amount against the catalog, opens a
// transaction at the gateway and records the pending payment. The
// catalog is the only price authority; a client-side price is never
// trusted.
func (s *PaymentService) Initialize(ctx context.Context, req InitializePaymentRequest) (*InitializePaymentResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	currency := req.Currency
	if currency == "" {
		currency = paystack.DefaultCurrency
	}
	if !paystack.IsSupported(currency) {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			fmt.Sprintf("unsupported currency %q", currency))
	}

	detail := s.catalog.ValidateAmountWithDetail(req.Amount, req.TrainingProgram, currency)
	if !detail.Valid {
		s.metrics.AmountMismatch()
		s.logger.Warn("payment amount rejected",
			zap.String("reference", req.Reference),
			zap.String("program", req.TrainingProgram),
			zap.Float64("expected", detail.ExpectedPrice),
			zap.Float64("claimed", detail.ActualAmount))
		return nil, appErrors.New(appErrors.ErrAmountMismatch.Code, appErrors.ErrAmountMismatch.Status, detail.ErrorMessage())
	}

	if !s.gateway.Configured() {
		return nil, appErrors.ErrNotConfigured
	}

	enrollment, err := s.enrollments.FindByPaymentReference(ctx, req.Reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.New(appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status,
				"no enrollment found for payment reference")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}

	init, err := s.gateway.InitializeTransaction(ctx, paystack.InitializeRequest{
		Reference:   req.Reference,
		Amount:      paystack.ToMinorUnits(req.Amount, currency),
		Email:       req.Email,
		Currency:    currency,
		CallbackURL: req.CallbackURL,
		Metadata: paystack.TransactionMetadata{
			EnrollmentID:    enrollment.ID,
			TrainingProgram: req.TrainingProgram,
			CustomerName:    req.CustomerName,
		},
	})
	if err != nil {
		var apiErr *paystack.APIError
		if errors.As(err, &apiErr) {
			return nil, appErrors.Wrap(err, appErrors.ErrGateway.Code, appErrors.ErrGateway.Status, apiErr.Message)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reach payment gateway")
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"customer_name": req.CustomerName,
		"paystack_data": init,
	})

	payment := &models.Payment{
		EnrollmentID:       enrollment.ID,
		TrainingProgram:    req.TrainingProgram,
		Amount:             req.Amount,
		Currency:           currency,
		PaymentStatus:      models.PaymentStatusPending,
		PaystackReference:  req.Reference,
		PaystackAccessCode: init.AccessCode,
		PaymentMethod:      "card",
		PaymentGateway:     "paystack",
		Metadata:           metadata,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		if s.isUnique(err) {
			return nil, appErrors.New(appErrors.ErrConflict.Code, appErrors.ErrConflict.Status,
				"payment already initialized for this reference")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
	}

	s.metrics.PaymentInitialized()
	s.logger.Info("payment initialized",
		zap.String("reference", req.Reference),
		zap.String("enrollment_id", enrollment.ID),
		zap.Float64("amount", req.Amount),
		zap.String("currency", currency))

	return &InitializePaymentResult{
		Reference:        req.Reference,
		AccessCode:       init.AccessCode,
		AuthorizationURL: init.AuthorizationURL,
		Amount:           req.Amount,
		Currency:         currency,
	}, nil
}

// VerifyByReference pulls the live transaction state from the gateway
// and settles the payment accordingly. Re-verifying an already settled
// payment re-persists the same terminal fields, so the call is
// idempotent.
func (s *PaymentService) VerifyByReference(ctx context.Context, reference string) (*VerificationResult, error) {
	if reference == "" {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "payment reference required")
	}
	if !s.gateway.Configured() {
		return nil, appErrors.ErrNotConfigured
	}

	payment, err := s.payments.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.New(appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "payment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payment")
	}

	charge, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		// Record the failed attempt on the payment before surfacing the
		// error; the write is best-effort and never masks it.
		s.markFailure(ctx, payment, "verification failed", nil)
		var apiErr *paystack.APIError
		if errors.As(err, &apiErr) {
			return nil, appErrors.Wrap(err, appErrors.ErrGateway.Code, appErrors.ErrGateway.Status, apiErr.Message)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify transaction")
	}

	if charge.Status != "success" {
		updated, err := s.settleFailure(ctx, payment, charge.GatewayResponse, charge)
		if err != nil {
			return nil, err
		}
		return &VerificationResult{GatewayStatus: charge.Status, Payment: updated}, nil
	}

	actual := paystack.FromMinorUnits(charge.Amount, payment.Currency)
	detail := s.catalog.ValidateAmountWithDetail(actual, payment.TrainingProgram, payment.Currency)
	if !detail.Valid {
		s.metrics.AmountMismatch()
		s.rejectMismatch(ctx, payment, detail.ErrorMessage(), charge)
		return nil, appErrors.New(appErrors.ErrAmountMismatch.Code, appErrors.ErrAmountMismatch.Status, detail.ErrorMessage())
	}

	updated, err := s.payments.UpdateStatus(ctx, reference, models.PaymentStatusCompleted, buildSuccessUpdate(charge, payment.Currency))
	if err != nil {
		original := appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist verified payment")
		s.markFailure(ctx, payment, "verification persistence failed", charge)
		return nil, original
	}

	s.settleEnrollmentCompleted(ctx, updated)
	s.metrics.PaymentCompleted()
	s.logger.Info("payment verified",
		zap.String("reference", reference),
		zap.Float64("amount", actual),
		zap.String("currency", payment.Currency))

	return &VerificationResult{GatewayStatus: charge.Status, Payment: updated}, nil
}

// HandleWebhookEvent settles payments from push-side deliveries. The
// caller has already authenticated the delivery. Returning nil
// acknowledges the event; returning an error makes the gateway retry.
func (s *PaymentService) HandleWebhookEvent(ctx context.Context, event *paystack.Event) error {
	s.metrics.WebhookEvent(event.Type)

	if !event.IsCharge() {
		s.logger.Info("ignoring webhook event", zap.String("event", event.Type))
		return nil
	}

	charge := event.Charge
	payment, err := s.payments.FindByReference(ctx, charge.Reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("webhook for unknown reference %s", charge.Reference)
		}
		return fmt.Errorf("load payment for webhook: %w", err)
	}

	switch event.Type {
	case paystack.EventChargeSuccess:
		return s.handleChargeSuccess(ctx, payment, charge)
	case paystack.EventChargeFailed:
		_, err := s.settleFailure(ctx, payment, charge.GatewayResponse, charge)
		return err
	case paystack.EventChargePending:
		metadata, _ := json.Marshal(map[string]interface{}{"gateway_data": charge})
		if _, err := s.payments.UpdateStatus(ctx, charge.Reference, models.PaymentStatusPending, models.PaymentUpdate{
			Metadata: metadata,
		}); err != nil {
			return fmt.Errorf("refresh pending payment: %w", err)
		}
		return nil
	default:
		return nil
	}
}

func (s *PaymentService) handleChargeSuccess(ctx context.Context, payment *models.Payment, charge *paystack.ChargeData) error {
	actual := paystack.FromMinorUnits(charge.Amount, payment.Currency)
	detail := s.catalog.ValidateAmountWithDetail(actual, payment.TrainingProgram, payment.Currency)
	if !detail.Valid {
		// A tampered or mispriced charge got through the gateway.
		// Record the failure and acknowledge the delivery; retrying
		// cannot make the amount right.
		s.metrics.AmountMismatch()
		s.logger.Error("webhook amount mismatch",
			zap.String("reference", payment.PaystackReference),
			zap.Float64("expected", detail.ExpectedPrice),
			zap.Float64("received", detail.ActualAmount))
		s.rejectMismatch(ctx, payment, detail.ErrorMessage(), charge)
		return nil
	}

	updated, err := s.payments.UpdateStatus(ctx, payment.PaystackReference, models.PaymentStatusCompleted, buildSuccessUpdate(charge, payment.Currency))
	if err != nil {
		return fmt.Errorf("persist webhook payment: %w", err)
	}

	s.settleEnrollmentCompleted(ctx, updated)
	s.metrics.PaymentCompleted()
	s.logger.Info("payment completed via webhook",
		zap.String("reference", payment.PaystackReference),
		zap.Float64("amount", actual))
	return nil
}

// settleFailure marks the payment failed and returns the updated row.
// The enrollment is left alone: a declined or abandoned charge can
// still be retried against the same enrollment.
func (s *PaymentService) settleFailure(ctx context.Context, payment *models.Payment, reason string, charge *paystack.ChargeData) (*models.Payment, error) {
	updated, err := s.payments.UpdateStatus(ctx, payment.PaystackReference, models.PaymentStatusFailed, buildFailureUpdate(reason, charge))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist failed payment")
	}
	s.metrics.PaymentFailed()
	return updated, nil
}

// markFailure is the best-effort fallback after a processing error. It
// never returns an error so it cannot mask the condition that led here.
func (s *PaymentService) markFailure(ctx context.Context, payment *models.Payment, reason string, charge *paystack.ChargeData) {
	if _, err := s.settleFailure(ctx, payment, reason, charge); err != nil {
		s.logger.Error("failed to mark payment failed",
			zap.String("reference", payment.PaystackReference),
			zap.String("reason", reason),
			zap.Error(err))
	}
}

// rejectMismatch handles a charge whose settled amount disagrees with
// the catalog. The payment is failed and the enrollment cancelled; no
// other failure path touches the enrollment.
func (s *PaymentService) rejectMismatch(ctx context.Context, payment *models.Payment, reason string, charge *paystack.ChargeData) {
	s.markFailure(ctx, payment, reason, charge)
	if err := s.enrollments.UpdateStatuses(ctx, payment.EnrollmentID, models.PaymentStatusFailed, models.EnrollmentStatusCancelled); err != nil {
		s.logger.Error("failed to cancel enrollment after amount mismatch",
			zap.String("enrollment_id", payment.EnrollmentID), zap.Error(err))
	}
}

func (s *PaymentService) settleEnrollmentCompleted(ctx context.Context, payment *models.Payment) {
	if err := s.enrollments.UpdateStatuses(ctx, payment.EnrollmentID, models.PaymentStatusCompleted, models.EnrollmentStatusActive); err != nil {
		s.logger.Error("failed to complete enrollment after payment",
			zap.String("enrollment_id", payment.EnrollmentID), zap.Error(err))
		return
	}
	if enrollment, err := s.enrollments.FindByID(ctx, payment.EnrollmentID); err == nil {
		s.notifications.DispatchEnrollment(enrollment)
	}
}

// buildSuccessUpdate derives the persisted fields from a successful
// charge snapshot. Verification and webhook processing both call this,
// which is what makes concurrent settlement converge.
func buildSuccessUpdate(charge *paystack.ChargeData, currency string) models.PaymentUpdate {
	txID := charge.ID
	authCode := charge.Authorization.AuthorizationCode
	gatewayResp := charge.GatewayResponse
	paidAt := parseGatewayTime(charge.PaidAt)
	fees := paystack.FromMinorUnits(charge.Fees, currency)
	actual := paystack.FromMinorUnits(charge.Amount, currency)
	metadata, _ := json.Marshal(map[string]interface{}{"gateway_data": charge})

	return models.PaymentUpdate{
		PaystackTransactionID: &txID,
		AuthorizationCode:     &authCode,
		GatewayResponse:       &gatewayResp,
		PaidAt:                &paidAt,
		Fees:                  &fees,
		ActualAmount:          &actual,
		Metadata:              metadata,
	}
}

func buildFailureUpdate(reason string, charge *paystack.ChargeData) models.PaymentUpdate {
	payload := map[string]interface{}{
		"failure_reason": reason,
		"failed_at":      time.Now().UTC().Format(time.RFC3339),
	}
	if charge != nil {
		payload["gateway_data"] = charge
	}
	metadata, _ := json.Marshal(payload)

	update := models.PaymentUpdate{Metadata: metadata}
	if reason != "" {
		update.GatewayResponse = &reason
	}
	return update
}

func parseGatewayTime(raw string) time.Time {
	if raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

// StatusByReference returns the stored payment without touching the
// gateway.
func (s *PaymentService) StatusByReference(ctx context.Context, reference string) (*models.Payment, error) {
	payment, err := s.payments.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.New(appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "payment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payment")
	}
	return payment, nil
}

// Receipt assembles the receipt data for a completed payment.
func (s *PaymentService) Receipt(ctx context.Context, reference string) (*export.Receipt, error) {
	payment, err := s.StatusByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if payment.PaymentStatus != models.PaymentStatusCompleted {
		return nil, appErrors.New(appErrors.ErrConflict.Code, appErrors.ErrConflict.Status,
			"receipt is only available for completed payments")
	}

	receipt := &export.Receipt{
		Reference:       payment.PaystackReference,
		TrainingProgram: payment.TrainingProgram,
		Amount:          fmt.Sprintf("%g", payment.Amount),
		Currency:        payment.Currency,
		PaidAt:          payment.PaidAt,
	}
	if payment.PaystackTransactionID != nil {
		receipt.TransactionID = fmt.Sprintf("%d", *payment.PaystackTransactionID)
	}
	if enrollment, err := s.enrollments.FindByID(ctx, payment.EnrollmentID); err == nil {
		receipt.CustomerName = enrollment.FullName()
		receipt.CustomerEmail = enrollment.Email
	}
	return receipt, nil
}
