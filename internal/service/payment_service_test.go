package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/elevate-careers-api/internal/models"
	"github.com/noah-isme/elevate-careers-api/internal/pricing"
	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
	"github.com/noah-isme/elevate-careers-api/pkg/paystack"
)

type paymentUpdateCall struct {
	status models.PaymentStatus
	update models.PaymentUpdate
}

type fakePaymentRepo struct {
	payment     *models.Payment
	createErr   error
	updateErr   error
	created     []*models.Payment
	updateCalls []paymentUpdateCall
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, payment)
	f.payment = payment
	return nil
}

func (f *fakePaymentRepo) FindByReference(_ context.Context, reference string) (*models.Payment, error) {
	if f.payment == nil || f.payment.PaystackReference != reference {
		return nil, sql.ErrNoRows
	}
	copied := *f.payment
	return &copied, nil
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, reference string, status models.PaymentStatus, update models.PaymentUpdate) (*models.Payment, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.payment == nil || f.payment.PaystackReference != reference {
		return nil, sql.ErrNoRows
	}
	f.updateCalls = append(f.updateCalls, paymentUpdateCall{status: status, update: update})

	f.payment.PaymentStatus = status
	if update.PaystackTransactionID != nil {
		f.payment.PaystackTransactionID = update.PaystackTransactionID
	}
	if update.AuthorizationCode != nil {
		f.payment.AuthorizationCode = update.AuthorizationCode
	}
	if update.GatewayResponse != nil {
		f.payment.GatewayResponse = update.GatewayResponse
	}
	if update.PaidAt != nil {
		f.payment.PaidAt = update.PaidAt
	}
	if update.Fees != nil {
		f.payment.Fees = update.Fees
	}
	if update.ActualAmount != nil {
		f.payment.ActualAmount = update.ActualAmount
	}
	if update.Metadata != nil {
		f.payment.Metadata = update.Metadata
	}
	if status == models.PaymentStatusCompleted && f.payment.CompletedAt == nil {
		now := time.Now().UTC()
		f.payment.CompletedAt = &now
	}
	copied := *f.payment
	return &copied, nil
}

type enrollmentStatusCall struct {
	id               string
	paymentStatus    models.PaymentStatus
	enrollmentStatus models.EnrollmentStatus
}

type fakeEnrollmentStore struct {
	enrollment  *models.TrainingEnrollment
	statusCalls []enrollmentStatusCall
}

func (f *fakeEnrollmentStore) FindByID(_ context.Context, id string) (*models.TrainingEnrollment, error) {
	if f.enrollment == nil || f.enrollment.ID != id {
		return nil, sql.ErrNoRows
	}
	copied := *f.enrollment
	return &copied, nil
}

func (f *fakeEnrollmentStore) FindByPaymentReference(_ context.Context, reference string) (*models.TrainingEnrollment, error) {
	if f.enrollment == nil || f.enrollment.PaymentReference == nil || *f.enrollment.PaymentReference != reference {
		return nil, sql.ErrNoRows
	}
	copied := *f.enrollment
	return &copied, nil
}

func (f *fakeEnrollmentStore) UpdateStatuses(_ context.Context, id string, paymentStatus models.PaymentStatus, enrollmentStatus models.EnrollmentStatus) error {
	f.statusCalls = append(f.statusCalls, enrollmentStatusCall{id: id, paymentStatus: paymentStatus, enrollmentStatus: enrollmentStatus})
	return nil
}

type fakeGateway struct {
	configured bool
	initData   *paystack.InitializeData
	initErr    error
	initCalls  int
	charge     *paystack.ChargeData
	verifyErr  error
}

func (f *fakeGateway) Configured() bool { return f.configured }

func (f *fakeGateway) InitializeTransaction(_ context.Context, _ paystack.InitializeRequest) (*paystack.InitializeData, error) {
	f.initCalls++
	if f.initErr != nil {
		return nil, f.initErr
	}
	return f.initData, nil
}

func (f *fakeGateway) VerifyTransaction(_ context.Context, _ string) (*paystack.ChargeData, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.charge, nil
}

const testReference = "EA_TRAIN_1700000000000_AB12CD"

func testEnrollment() *models.TrainingEnrollment {
	reference := testReference
	return &models.TrainingEnrollment{
		ID:               "enr-1",
		FirstName:        "Jane",
		LastName:         "Doe",
		Email:            "jane@example.com",
		TrainingProgram:  "CV Optimization",
		Price:            29,
		Currency:         "USD",
		PaymentReference: &reference,
		EnrollmentStatus: models.EnrollmentStatusActive,
		PaymentStatus:    models.PaymentStatusPending,
	}
}

func testPendingPayment() *models.Payment {
	return &models.Payment{
		ID:                "pay-1",
		EnrollmentID:      "enr-1",
		TrainingProgram:   "CV Optimization",
		Amount:            29,
		Currency:          "USD",
		PaymentStatus:     models.PaymentStatusPending,
		PaystackReference: testReference,
		PaymentMethod:     "card",
		PaymentGateway:    "paystack",
	}
}

func successCharge() *paystack.ChargeData {
	return &paystack.ChargeData{
		ID:              302961,
		Reference:       testReference,
		Amount:          2900,
		Currency:        "USD",
		Status:          "success",
		GatewayResponse: "Successful",
		PaidAt:          "2026-08-30T10:00:00Z",
		Fees:            44,
		Authorization:   paystack.Authorization{AuthorizationCode: "AUTH_xyz"},
		Customer:        paystack.Customer{Email: "jane@example.com"},
	}
}

func newTestService(payments *fakePaymentRepo, enrollments *fakeEnrollmentStore, gateway *fakeGateway) *PaymentService {
	return NewPaymentService(payments, enrollments, gateway, pricing.NewCatalog(), nil, nil, nil, nil)
}

func TestInitializeRejectsTamperedAmount(t *testing.T) {
	payments := &fakePaymentRepo{}
	enrollments := &fakeEnrollmentStore{enrollment: testEnrollment()}
	gateway := &fakeGateway{configured: true}
	svc := newTestService(payments, enrollments, gateway)

	_, err := svc.Initialize(context.Background(), InitializePaymentRequest{
		Reference:       testReference,
		Email:           "jane@example.com",
		Amount:          9.99,
		Currency:        "USD",
		TrainingProgram: "CV Optimization",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AMOUNT_MISMATCH", appErr.Code)
	assert.Contains(t, appErr.Message, "Expected 29 USD")
	assert.Zero(t, gateway.initCalls, "tampered amount must never reach the gateway")
	assert.Empty(t, payments.created)
}

func TestInitializeCreatesPendingPayment(t *testing.T) {
	payments := &fakePaymentRepo{}
	enrollments := &fakeEnrollmentStore{enrollment: testEnrollment()}
	gateway := &fakeGateway{
		configured: true,
		initData: &paystack.InitializeData{
			AccessCode:       "ac_123",
			AuthorizationURL: "https://checkout.paystack.com/ac_123",
			Reference:        testReference,
		},
	}
	svc := newTestService(payments, enrollments, gateway)

	result, err := svc.Initialize(context.Background(), InitializePaymentRequest{
		Reference:       testReference,
		Email:           "jane@example.com",
		Amount:          29,
		Currency:        "USD",
		TrainingProgram: "CV Optimization",
		CustomerName:    "Jane Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "ac_123", result.AccessCode)
	assert.Equal(t, "https://checkout.paystack.com/ac_123", result.AuthorizationURL)

	require.Len(t, payments.created, 1)
	created := payments.created[0]
	assert.Equal(t, models.PaymentStatusPending, created.PaymentStatus)
	assert.Equal(t, "enr-1", created.EnrollmentID)
	assert.Equal(t, "ac_123", created.PaystackAccessCode)
	assert.JSONEq(t, `{"customer_name":"Jane Doe","paystack_data":{"access_code":"ac_123","authorization_url":"https://checkout.paystack.com/ac_123","reference":"`+testReference+`"}}`, string(created.Metadata))
}

func TestInitializeNotConfigured(t *testing.T) {
	svc := newTestService(&fakePaymentRepo{}, &fakeEnrollmentStore{enrollment: testEnrollment()}, &fakeGateway{configured: false})

	_, err := svc.Initialize(context.Background(), InitializePaymentRequest{
		Reference:       testReference,
		Email:           "jane@example.com",
		Amount:          29,
		TrainingProgram: "CV Optimization",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_CONFIGURED", appErr.Code)
}

func TestInitializeGatewayRejection(t *testing.T) {
	gateway := &fakeGateway{configured: true, initErr: &paystack.APIError{Message: "Invalid key"}}
	svc := newTestService(&fakePaymentRepo{}, &fakeEnrollmentStore{enrollment: testEnrollment()}, gateway)

	_, err := svc.Initialize(context.Background(), InitializePaymentRequest{
		Reference:       testReference,
		Email:           "jane@example.com",
		Amount:          29,
		TrainingProgram: "CV Optimization",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "GATEWAY_ERROR", appErr.Code)
	assert.Equal(t, "Invalid key", appErr.Message)
}

func TestInitializeUnknownReference(t *testing.T) {
	svc := newTestService(&fakePaymentRepo{}, &fakeEnrollmentStore{}, &fakeGateway{configured: true})

	_, err := svc.Initialize(context.Background(), InitializePaymentRequest{
		Reference:       testReference,
		Email:           "jane@example.com",
		Amount:          29,
		TrainingProgram: "CV Optimization",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestInitializeDuplicateReference(t *testing.T) {
	dup := errors.New("duplicate key value violates unique constraint")
	payments := &fakePaymentRepo{createErr: dup}
	enrollments := &fakeEnrollmentStore{enrollment: testEnrollment()}
	gateway := &fakeGateway{configured: true, initData: &paystack.InitializeData{AccessCode: "ac_123"}}
	svc := NewPaymentService(payments, enrollments, gateway, pricing.NewCatalog(), nil, nil,
		func(err error) bool { return errors.Is(err, dup) }, nil)

	_, err := svc.Initialize(context.Background(), InitializePaymentRequest{
		Reference:       testReference,
		Email:           "jane@example.com",
		Amount:          29,
		TrainingProgram: "CV Optimization",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestVerifySettlesCompleted(t *testing.T) {
	payments := &fakePaymentRepo{payment: testPendingPayment()}
	enrollments := &fakeEnrollmentStore{enrollment: testEnrollment()}
	gateway := &fakeGateway{configured: true, charge: successCharge()}
	svc := newTestService(payments, enrollments, gateway)

	result, err := svc.VerifyByReference(context.Background(), testReference)
	require.NoError(t, err)
	assert.Equal(t, "success", result.GatewayStatus)
	assert.Equal(t, models.PaymentStatusCompleted, result.Payment.PaymentStatus)
	require.NotNil(t, result.Payment.CompletedAt)
	require.NotNil(t, result.Payment.ActualAmount)
	assert.InDelta(t, 29.0, *result.Payment.ActualAmount, 0.001)
	require.NotNil(t, result.Payment.Fees)
	assert.InDelta(t, 0.44, *result.Payment.Fees, 0.001)

	require.Len(t, enrollments.statusCalls, 1)
	assert.Equal(t, models.PaymentStatusCompleted, enrollments.statusCalls[0].paymentStatus)
	assert.Equal(t, models.EnrollmentStatusActive, enrollments.statusCalls[0].enrollmentStatus)
}

func TestVerifyUnknownReference(t *testing.T) {
	svc := newTestService(&fakePaymentRepo{}, &fakeEnrollmentStore{}, &fakeGateway{configured: true, charge: successCharge()})

	_, err := svc.VerifyByReference(context.Background(), "missing")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestVerifyGatewayFailureMarksPaymentFailed(t *testing.T) {
	payments := &fakePaymentRepo{payment: testPendingPayment()}
	enrollments := &fakeEnrollmentStore{enrollment: testEnrollment()}
	gateway := &fakeGateway{configured: true, verifyErr: errors.New("connection timed out")}
	svc := newTestService(payments, enrollments, gateway)

	_, err := svc.VerifyByReference(context.Background(), testReference)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
	assert.Contains(t, appErr.Message, "failed to verify transaction")

	// The attempt is still recorded on the payment, and only there.
	require.Len(t, payments.updateCalls, 1)
	assert.Equal(t, models.PaymentStatusFailed, payments.updateCalls[0].status)
	assert.Equal(t, models.PaymentStatusFailed, payments.payment.PaymentStatus)
	assert.Empty(t, enrollments.statusCalls)
}

func TestVerifyDeclinedChargeLeavesEnrollment(t *testing.T) {
	charge := successCharge()
	charge.Status = "failed"
	charge.GatewayResponse = "Declined"
	payments := &fakePaymentRepo{payment: testPendingPayment()}
	enrollments := &fakeEnrollmentStore{enrollment: testEnrollment()}
	svc := newTestService(payments, enrollments, &fakeGateway{configured: true, charge: charge})

	result, err := svc.VerifyByReference(context.Background(), testReference)
	require.NoError(t, err)
	assert.Equal(t, "failed", result.GatewayStatus)
	assert.Equal(t, models.PaymentStatusFailed, result.Payment.PaymentStatus)
	assert.Empty(t, enrollments.statusCalls)
}

func TestVerifyAmountMismatchMarksFailed(t *testing.T) {
	charge := successCharge()
	charge.Amount = 100
	payments := &fakePaymentRepo{payment: testPendingPayment()}
	enrollments := &fakeEnrollmentStore{enrollment: testEnrollment()}
	svc := newTestService(payments, enrollments, &fakeGateway{configured: true, charge: charge})

	_, err := svc.VerifyByReference(context.Background(), testReference)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AMOUNT_MISMATCH", appErr.Code)
	assert.Equal(t, models.PaymentStatusFailed, payments.payment.PaymentStatus)
	require.Len(t, enrollments.statusCalls, 1)
	assert.Equal(t, models.EnrollmentStatusCancelled, enrollments.statusCalls[0].enrollmentStatus)
}

func TestVerifyPersistFailureIsNotMasked(t *testing.T) {
	payments := &fakePaymentRepo{payment: testPendingPayment(), updateErr: errors.New("connection reset")}
	enrollments := &fakeEnrollmentStore{enrollment: testEnrollment()}
	svc := newTestService(payments, enrollments, &fakeGateway{configured: true, charge: successCharge()})

	_, err := svc.VerifyByReference(context.Background(), testReference)

	// The fallback mark-failed write also fails here; the caller must
	// still see the original persistence error.
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
	assert.Contains(t, appErr.Message, "failed to persist verified payment")
}

func TestWebhookChargeSuccessIsIdempotent(t *testing.T) {
	payments := &fakePaymentRepo{payment: testPendingPayment()}
	enrollments := &fakeEnrollmentStore{enrollment: testEnrollment()}
	svc := newTestService(payments, enrollments, &fakeGateway{configured: true})

	event := &paystack.Event{Type: paystack.EventChargeSuccess, Charge: successCharge()}
	require.NoError(t, svc.HandleWebhookEvent(context.Background(), event))
	require.NotNil(t, payments.payment.CompletedAt)
	firstCompletedAt := payments.payment.CompletedAt

	require.NoError(t, svc.HandleWebhookEvent(context.Background(), event))

	assert.Equal(t, models.PaymentStatusCompleted, payments.payment.PaymentStatus)
	require.Len(t, payments.updateCalls, 2)
	assert.Equal(t, payments.updateCalls[0].update, payments.updateCalls[1].update)
	assert.Same(t, firstCompletedAt, payments.payment.CompletedAt,
		"re-delivery must not move the settlement time")
}

func TestWebhookAndVerifyConvergeOnSameFields(t *testing.T) {
	payments := &fakePaymentRepo{payment: testPendingPayment()}
	enrollments := &fakeEnrollmentStore{enrollment: testEnrollment()}
	gateway := &fakeGateway{configured: true, charge: successCharge()}
	svc := newTestService(payments, enrollments, gateway)

	_, err := svc.VerifyByReference(context.Background(), testReference)
	require.NoError(t, err)
	require.NoError(t, svc.HandleWebhookEvent(context.Background(), &paystack.Event{
		Type:   paystack.EventChargeSuccess,
		Charge: successCharge(),
	}))

	require.Len(t, payments.updateCalls, 2)
	assert.Equal(t, payments.updateCalls[0].status, payments.updateCalls[1].status)
	assert.Equal(t, payments.updateCalls[0].update, payments.updateCalls[1].update)
}

func TestWebhookAmountMismatchIsAcknowledged(t *testing.T) {
	charge := successCharge()
	charge.Amount = 50000
	payments := &fakePaymentRepo{payment: testPendingPayment()}
	enrollments := &fakeEnrollmentStore{enrollment: testEnrollment()}
	svc := newTestService(payments, enrollments, &fakeGateway{configured: true})

	err := svc.HandleWebhookEvent(context.Background(), &paystack.Event{
		Type:   paystack.EventChargeSuccess,
		Charge: charge,
	})

	require.NoError(t, err, "mismatch is recorded, not retried")
	assert.Equal(t, models.PaymentStatusFailed, payments.payment.PaymentStatus)
	require.NotNil(t, payments.payment.GatewayResponse)
	assert.Contains(t, *payments.payment.GatewayResponse, "Invalid payment amount")
	require.Len(t, enrollments.statusCalls, 1)
	assert.Equal(t, models.EnrollmentStatusCancelled, enrollments.statusCalls[0].enrollmentStatus)
}

func TestWebhookUnknownReferenceErrors(t *testing.T) {
	svc := newTestService(&fakePaymentRepo{}, &fakeEnrollmentStore{}, &fakeGateway{configured: true})

	err := svc.HandleWebhookEvent(context.Background(), &paystack.Event{
		Type:   paystack.EventChargeSuccess,
		Charge: successCharge(),
	})
	require.Error(t, err)
}

func TestWebhookChargeFailed(t *testing.T) {
	charge := successCharge()
	charge.Status = "failed"
	charge.GatewayResponse = "Declined"
	payments := &fakePaymentRepo{payment: testPendingPayment()}
	enrollments := &fakeEnrollmentStore{enrollment: testEnrollment()}
	svc := newTestService(payments, enrollments, &fakeGateway{configured: true})

	err := svc.HandleWebhookEvent(context.Background(), &paystack.Event{
		Type:   paystack.EventChargeFailed,
		Charge: charge,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, payments.payment.PaymentStatus)
	require.NotNil(t, payments.payment.GatewayResponse)
	assert.Equal(t, "Declined", *payments.payment.GatewayResponse)
	assert.Empty(t, enrollments.statusCalls, "a declined charge is retryable; the enrollment stays put")
}

func TestWebhookNonChargeEventIgnored(t *testing.T) {
	payments := &fakePaymentRepo{payment: testPendingPayment()}
	svc := newTestService(payments, &fakeEnrollmentStore{}, &fakeGateway{configured: true})

	err := svc.HandleWebhookEvent(context.Background(), &paystack.Event{Type: "transfer.success"})
	require.NoError(t, err)
	assert.Empty(t, payments.updateCalls)
	assert.Equal(t, models.PaymentStatusPending, payments.payment.PaymentStatus)
}

func TestStatusByReference(t *testing.T) {
	payments := &fakePaymentRepo{payment: testPendingPayment()}
	svc := newTestService(payments, &fakeEnrollmentStore{}, &fakeGateway{})

	payment, err := svc.StatusByReference(context.Background(), testReference)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.PaymentStatus)

	_, err = svc.StatusByReference(context.Background(), "missing")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestReceiptRequiresCompletedPayment(t *testing.T) {
	payments := &fakePaymentRepo{payment: testPendingPayment()}
	enrollments := &fakeEnrollmentStore{enrollment: testEnrollment()}
	svc := newTestService(payments, enrollments, &fakeGateway{})

	_, err := svc.Receipt(context.Background(), testReference)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	paidAt := time.Now().UTC()
	txID := int64(302961)
	payments.payment.PaymentStatus = models.PaymentStatusCompleted
	payments.payment.PaidAt = &paidAt
	payments.payment.PaystackTransactionID = &txID

	receipt, err := svc.Receipt(context.Background(), testReference)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", receipt.CustomerName)
	assert.Equal(t, "jane@example.com", receipt.CustomerEmail)
	assert.Equal(t, "302961", receipt.TransactionID)
	assert.Equal(t, "29", receipt.Amount)
}
