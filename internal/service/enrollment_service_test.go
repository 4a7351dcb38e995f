package service

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/elevate-careers-api/internal/models"
	"github.com/noah-isme/elevate-careers-api/internal/pricing"
	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
)

type fakeEnrollmentRepo struct {
	created   []*models.TrainingEnrollment
	createErr error
	listed    []models.TrainingEnrollment
	total     int
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.TrainingEnrollment) error {
	if f.createErr != nil {
		return f.createErr
	}
	enrollment.ID = "enr-1"
	f.created = append(f.created, enrollment)
	return nil
}

func (f *fakeEnrollmentRepo) FindByID(_ context.Context, id string) (*models.TrainingEnrollment, error) {
	for _, e := range f.created {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEnrollmentRepo) List(_ context.Context, _ models.EnrollmentFilter) ([]models.TrainingEnrollment, int, error) {
	return f.listed, f.total, nil
}

func validEnrollmentRequest() CreateEnrollmentRequest {
	return CreateEnrollmentRequest{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		Phone:           "+2348012345678",
		Country:         "Nigeria",
		TrainingProgram: "CV Optimization",
		Currency:        "USD",
	}
}

func TestCreateEnrollmentPaidProgram(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewEnrollmentService(repo, pricing.NewCatalog(), nil, nil)

	result, err := svc.CreateEnrollment(context.Background(), validEnrollmentRequest())
	require.NoError(t, err)
	assert.True(t, result.RequiresPayment)
	assert.Equal(t, 29.0, result.Amount)
	assert.Equal(t, "USD", result.Currency)
	require.NotNil(t, result.PaymentReference)
	assert.Regexp(t, regexp.MustCompile(`^EA_TRAIN_\d+_[A-Z0-9]{6}$`), *result.PaymentReference)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, models.PaymentStatusPending, created.PaymentStatus)
	assert.Equal(t, models.EnrollmentStatusActive, created.EnrollmentStatus)
	assert.Equal(t, 29.0, created.Price)
}

func TestCreateEnrollmentFreeProgram(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewEnrollmentService(repo, pricing.NewCatalog(), nil, nil)

	req := validEnrollmentRequest()
	req.TrainingProgram = "Job Opportunities"
	result, err := svc.CreateEnrollment(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.RequiresPayment)
	assert.Zero(t, result.Amount)
	assert.Nil(t, result.PaymentReference)

	require.Len(t, repo.created, 1)
	assert.Equal(t, models.PaymentStatusCompleted, repo.created[0].PaymentStatus)
	assert.Equal(t, models.EnrollmentStatusActive, repo.created[0].EnrollmentStatus)
}

func TestCreateEnrollmentConvertsCurrency(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewEnrollmentService(repo, pricing.NewCatalog(), nil, nil)

	req := validEnrollmentRequest()
	req.Currency = "NGN"
	result, err := svc.CreateEnrollment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 47850.0, result.Amount)
	assert.Equal(t, "NGN", result.Currency)
}

func TestCreateEnrollmentDefaultsCurrency(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewEnrollmentService(repo, pricing.NewCatalog(), nil, nil)

	req := validEnrollmentRequest()
	req.Currency = ""
	result, err := svc.CreateEnrollment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "USD", result.Currency)
}

func TestCreateEnrollmentRejectsUnsupportedCurrency(t *testing.T) {
	svc := NewEnrollmentService(&fakeEnrollmentRepo{}, pricing.NewCatalog(), nil, nil)

	req := validEnrollmentRequest()
	req.Currency = "EUR"
	_, err := svc.CreateEnrollment(context.Background(), req)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Contains(t, appErr.Message, "EUR")
}

func TestCreateEnrollmentValidatesInput(t *testing.T) {
	svc := NewEnrollmentService(&fakeEnrollmentRepo{}, pricing.NewCatalog(), nil, nil)

	req := validEnrollmentRequest()
	req.Email = "not-an-email"
	_, err := svc.CreateEnrollment(context.Background(), req)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestGetEnrollmentNotFound(t *testing.T) {
	svc := NewEnrollmentService(&fakeEnrollmentRepo{}, pricing.NewCatalog(), nil, nil)

	_, err := svc.GetEnrollment(context.Background(), "missing")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
