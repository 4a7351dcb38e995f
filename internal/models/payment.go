package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Payment records one gateway transaction attempt. It is externally
// keyed by PaystackReference, which is unique and immutable once set;
// exactly one payment exists per paid enrollment in this design.
type Payment struct {
	ID                    string         `db:"id" json:"id"`
	EnrollmentID          string         `db:"enrollment_id" json:"enrollment_id"`
	TrainingProgram       string         `db:"training_program" json:"training_program"`
	Amount                float64        `db:"amount" json:"amount"`
	Currency              string         `db:"currency" json:"currency"`
	PaymentStatus         PaymentStatus  `db:"payment_status" json:"payment_status"`
	PaystackReference     string         `db:"paystack_reference" json:"paystack_reference"`
	PaystackAccessCode    string         `db:"paystack_access_code" json:"paystack_access_code,omitempty"`
	PaystackTransactionID *int64         `db:"paystack_transaction_id" json:"paystack_transaction_id,omitempty"`
	AuthorizationCode     *string        `db:"authorization_code" json:"authorization_code,omitempty"`
	GatewayResponse       *string        `db:"gateway_response" json:"gateway_response,omitempty"`
	PaymentMethod         string         `db:"payment_method" json:"payment_method"`
	PaymentGateway        string         `db:"payment_gateway" json:"payment_gateway"`
	PaidAt                *time.Time     `db:"paid_at" json:"paid_at,omitempty"`
	Fees                  *float64       `db:"fees" json:"fees,omitempty"`
	ActualAmount          *float64       `db:"actual_amount" json:"actual_amount,omitempty"`
	Metadata              types.JSONText `db:"metadata" json:"metadata,omitempty"`
	CompletedAt           *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt             time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at" json:"updated_at"`
}

// PaymentUpdate carries the gateway-derived fields written alongside a
// status change. Nil pointers leave the stored column untouched;
// Metadata, when set, replaces the stored snapshot wholesale.
type PaymentUpdate struct {
	PaystackTransactionID *int64
	AuthorizationCode     *string
	GatewayResponse       *string
	PaidAt                *time.Time
	Fees                  *float64
	ActualAmount          *float64
	Metadata              types.JSONText
}
