package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/elevate-careers-api/internal/models"
	"github.com/noah-isme/elevate-careers-api/internal/pricing"
	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
	"github.com/noah-isme/elevate-careers-api/pkg/paystack"
)

// enrollmentRepository is the persistence surface the enrollment
// service depends on.
type enrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.TrainingEnrollment) error
	FindByID(ctx context.Context, id string) (*models.TrainingEnrollment, error)
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.TrainingEnrollment, int, error)
}

// CreateEnrollmentRequest carries a candidate's enrollment submission.
type CreateEnrollmentRequest struct {
	FirstName         string   `json:"first_name" validate:"required,min=2,max=100"`
	LastName          string   `json:"last_name" validate:"required,min=2,max=100"`
	Email             string   `json:"email" validate:"required,email"`
	Phone             string   `json:"phone" validate:"required,min=7,max=20"`
	Country           string   `json:"country" validate:"required,min=2,max=100"`
	FieldOfExperience string   `json:"field_of_experience" validate:"omitempty,max=200"`
	ExperienceLevel   string   `json:"experience_level" validate:"omitempty,max=50"`
	Skills            []string `json:"skills" validate:"omitempty,dive,max=100"`
	AreaOfStudy       string   `json:"area_of_study" validate:"omitempty,max=200"`
	TrainingProgram   string   `json:"training_program" validate:"required,min=2,max=100"`
	Currency          string   `json:"currency" validate:"omitempty,len=3"`
}

// EnrollmentResult is returned after a successful enrollment. Paid
// programs carry the reference the client must pass to payment
// initialization.
type EnrollmentResult struct {
	EnrollmentID     string  `json:"enrollment_id"`
	PaymentReference *string `json:"payment_reference,omitempty"`
	RequiresPayment  bool    `json:"requires_payment"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
}

// EnrollmentService creates enrollments and prices them from the
// catalog. Clients never supply a price; the server decides.
type EnrollmentService struct {
	repo          enrollmentRepository
	catalog       *pricing.Catalog
	notifications *NotificationService
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewEnrollmentService constructs the service.
func NewEnrollmentService(repo enrollmentRepository, catalog *pricing.Catalog, notifications *NotificationService, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		repo:          repo,
		catalog:       catalog,
		notifications: notifications,
		validate:      validator.New(),
		logger:        logger,
	}
}

// CreateEnrollment registers a candidate for a training program. Free
// programs complete immediately; paid programs are created pending with
// a fresh payment reference.
func (s *EnrollmentService) CreateEnrollment(ctx context.Context, req CreateEnrollmentRequest) (*EnrollmentResult, error) {
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

	price := s.catalog.PriceOf(req.TrainingProgram, currency)

	enrollment := &models.TrainingEnrollment{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		Country:           req.Country,
		FieldOfExperience: req.FieldOfExperience,
		ExperienceLevel:   req.ExperienceLevel,
		Skills:            pq.StringArray(req.Skills),
		AreaOfStudy:       req.AreaOfStudy,
		TrainingProgram:   req.TrainingProgram,
		Price:             price,
		Currency:          currency,
		EnrollmentStatus:  models.EnrollmentStatusActive,
	}

	requiresPayment := price > 0
	if requiresPayment {
		reference := paystack.NewReference(paystack.DefaultReferencePrefix)
		enrollment.PaymentReference = &reference
		enrollment.PaymentStatus = models.PaymentStatusPending
	} else {
		enrollment.PaymentStatus = models.PaymentStatusCompleted
	}

	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}

	s.logger.Info("enrollment created",
		zap.String("enrollment_id", enrollment.ID),
		zap.String("program", enrollment.TrainingProgram),
		zap.String("currency", currency),
		zap.Float64("price", price),
		zap.Bool("requires_payment", requiresPayment))

	// Free programs are final at creation, so notify right away. Paid
	// programs notify once payment completes.
	if !requiresPayment {
		s.notifications.DispatchEnrollment(enrollment)
	}

	return &EnrollmentResult{
		EnrollmentID:     enrollment.ID,
		PaymentReference: enrollment.PaymentReference,
		RequiresPayment:  requiresPayment,
		Amount:           price,
		Currency:         currency,
	}, nil
}

// GetEnrollment returns a single enrollment by ID.
func (s *EnrollmentService) GetEnrollment(ctx context.Context, id string) (*models.TrainingEnrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.New(appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	return enrollment, nil
}

// ListEnrollments returns the operator listing with pagination totals.
func (s *EnrollmentService) ListEnrollments(ctx context.Context, filter models.EnrollmentFilter) ([]models.TrainingEnrollment, int, error) {
	enrollments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	return enrollments, total, nil
}
