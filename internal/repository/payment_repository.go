package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/elevate-careers-api/internal/models"
)

const paymentColumns = `id, enrollment_id, training_program, amount, currency, payment_status,
        paystack_reference, paystack_access_code, paystack_transaction_id, authorization_code,
        gateway_response, payment_method, payment_gateway, paid_at, fees, actual_amount,
        metadata, completed_at, created_at, updated_at`

// PaymentRepository handles persistence of gateway payment records,
// keyed externally by paystack_reference.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create persists a new payment record. The payments table enforces
// uniqueness of paystack_reference; callers treat a unique violation as
// a fatal reference collision, never an overwrite.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now

	const query = `INSERT INTO payments (id, enrollment_id, training_program, amount, currency, payment_status,
        paystack_reference, paystack_access_code, paystack_transaction_id, authorization_code,
        gateway_response, payment_method, payment_gateway, paid_at, fees, actual_amount,
        metadata, completed_at, created_at, updated_at)
        VALUES (:id, :enrollment_id, :training_program, :amount, :currency, :payment_status,
        :paystack_reference, :paystack_access_code, :paystack_transaction_id, :authorization_code,
        :gateway_response, :payment_method, :payment_gateway, :paid_at, :fees, :actual_amount,
        :metadata, :completed_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// FindByReference returns the payment holding a gateway reference.
func (r *PaymentRepository) FindByReference(ctx context.Context, reference string) (*models.Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM payments WHERE paystack_reference = $1", paymentColumns)
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, reference); err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdateStatus applies a status change plus the gateway-derived fields
// to the payment row keyed by reference. completed_at is stamped only
// on the first transition into completed; re-delivery of the same
// terminal event re-persists the row without moving it. The metadata
// snapshot, when provided, replaces the stored one.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, reference string, status models.PaymentStatus, update models.PaymentUpdate) (*models.Payment, error) {
	sets := []string{"payment_status = $2", "updated_at = NOW()"}
	args := []interface{}{reference, status}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.PaystackTransactionID != nil {
		add("paystack_transaction_id", *update.PaystackTransactionID)
	}
	if update.AuthorizationCode != nil {
		add("authorization_code", *update.AuthorizationCode)
	}
	if update.GatewayResponse != nil {
		add("gateway_response", *update.GatewayResponse)
	}
	if update.PaidAt != nil {
		add("paid_at", *update.PaidAt)
	}
	if update.Fees != nil {
		add("fees", *update.Fees)
	}
	if update.ActualAmount != nil {
		add("actual_amount", *update.ActualAmount)
	}
	if update.Metadata != nil {
		add("metadata", update.Metadata)
	}
	if status == models.PaymentStatusCompleted {
		sets = append(sets, "completed_at = COALESCE(completed_at, NOW())")
	}

	query := fmt.Sprintf("UPDATE payments SET %s WHERE paystack_reference = $1 RETURNING %s",
		strings.Join(sets, ", "), paymentColumns)

	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, args...); err != nil {
		return nil, err
	}
	return &payment, nil
}
