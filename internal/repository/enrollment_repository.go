package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/elevate-careers-api/internal/models"
)

const enrollmentColumns = `id, first_name, last_name, email, phone, country, field_of_experience,
        experience_level, skills, area_of_study, training_program, price, currency,
        payment_reference, enrollment_status, payment_status, created_at, updated_at`

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation. Reference collisions surface through this.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// EnrollmentRepository handles persistence of training enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create persists a new enrollment record.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.TrainingEnrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = now
	}
	enrollment.UpdatedAt = now

	const query = `INSERT INTO training_enrollments (id, first_name, last_name, email, phone, country,
        field_of_experience, experience_level, skills, area_of_study, training_program, price, currency,
        payment_reference, enrollment_status, payment_status, created_at, updated_at)
        VALUES (:id, :first_name, :last_name, :email, :phone, :country,
        :field_of_experience, :experience_level, :skills, :area_of_study, :training_program, :price, :currency,
        :payment_reference, :enrollment_status, :payment_status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// FindByID returns an enrollment by its ID.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*models.TrainingEnrollment, error) {
	query := fmt.Sprintf("SELECT %s FROM training_enrollments WHERE id = $1", enrollmentColumns)
	var enrollment models.TrainingEnrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// FindByPaymentReference returns the enrollment holding a payment reference.
func (r *EnrollmentRepository) FindByPaymentReference(ctx context.Context, reference string) (*models.TrainingEnrollment, error) {
	query := fmt.Sprintf("SELECT %s FROM training_enrollments WHERE payment_reference = $1", enrollmentColumns)
	var enrollment models.TrainingEnrollment
	if err := r.db.GetContext(ctx, &enrollment, query, reference); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// UpdateStatuses sets the payment and enrollment status pair. Only the
// payment orchestrator calls this after enrollment creation.
func (r *EnrollmentRepository) UpdateStatuses(ctx context.Context, id string, paymentStatus models.PaymentStatus, enrollmentStatus models.EnrollmentStatus) error {
	const query = `UPDATE training_enrollments SET payment_status = $2, enrollment_status = $3, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, paymentStatus, enrollmentStatus); err != nil {
		return fmt.Errorf("update enrollment statuses: %w", err)
	}
	return nil
}

// List returns enrollments filtered by the provided criteria for the
// operator view.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.TrainingEnrollment, int, error) {
	var conditions []string
	var args []interface{}

	if filter.TrainingProgram != "" {
		conditions = append(conditions, fmt.Sprintf("training_program = $%d", len(args)+1))
		args = append(args, filter.TrainingProgram)
	}
	if filter.PaymentStatus != "" {
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", len(args)+1))
		args = append(args, filter.PaymentStatus)
	}
	if filter.EnrollmentStatus != "" {
		conditions = append(conditions, fmt.Sprintf("enrollment_status = $%d", len(args)+1))
		args = append(args, filter.EnrollmentStatus)
	}
	if filter.Email != "" {
		conditions = append(conditions, fmt.Sprintf("email = $%d", len(args)+1))
		args = append(args, filter.Email)
	}

	clause := ""
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM training_enrollments%s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		enrollmentColumns, clause, size, offset)

	var enrollments []models.TrainingEnrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list enrollments: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM training_enrollments" + clause
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count enrollments: %w", err)
	}
	return enrollments, total, nil
}
