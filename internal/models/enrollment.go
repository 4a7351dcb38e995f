package models

import (
	"time"

	"github.com/lib/pq"
)

// EnrollmentStatus represents the lifecycle of a training enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
)

// PaymentStatus is shared between enrollments and payments.
type PaymentStatus string

// Possible payment statuses. Transitions are pending → completed or
// pending → failed; re-delivery of the same terminal status re-persists
// identical fields.
const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// TrainingEnrollment captures a candidate's registration to a training
// program together with its payment lifecycle. Free programs are
// created already completed with no payment reference; paid programs
// start pending with a reference assigned at creation.
type TrainingEnrollment struct {
	ID                string           `db:"id" json:"id"`
	FirstName         string           `db:"first_name" json:"first_name"`
	LastName          string           `db:"last_name" json:"last_name"`
	Email             string           `db:"email" json:"email"`
	Phone             string           `db:"phone" json:"phone"`
	Country           string           `db:"country" json:"country"`
	FieldOfExperience string           `db:"field_of_experience" json:"field_of_experience,omitempty"`
	ExperienceLevel   string           `db:"experience_level" json:"experience_level,omitempty"`
	Skills            pq.StringArray   `db:"skills" json:"skills,omitempty"`
	AreaOfStudy       string           `db:"area_of_study" json:"area_of_study,omitempty"`
	TrainingProgram   string           `db:"training_program" json:"training_program"`
	Price             float64          `db:"price" json:"price"`
	Currency          string           `db:"currency" json:"currency"`
	PaymentReference  *string          `db:"payment_reference" json:"payment_reference,omitempty"`
	EnrollmentStatus  EnrollmentStatus `db:"enrollment_status" json:"enrollment_status"`
	PaymentStatus     PaymentStatus    `db:"payment_status" json:"payment_status"`
	CreatedAt         time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at" json:"updated_at"`
}

// FullName joins the candidate name fields for notifications.
func (e *TrainingEnrollment) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EnrollmentFilter provides filters for the operator listing.
type EnrollmentFilter struct {
	TrainingProgram  string
	PaymentStatus    PaymentStatus
	EnrollmentStatus EnrollmentStatus
	Email            string
	Page             int
	PageSize         int
}
