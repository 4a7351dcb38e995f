package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/elevate-careers-api/internal/models"
	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
)

type discoveryCallRepository interface {
	Create(ctx context.Context, call *models.DiscoveryCall) error
	List(ctx context.Context, filter models.DiscoveryCallFilter) ([]models.DiscoveryCall, int, error)
}

// CreateDiscoveryCallRequest is a prospective client's submission.
type CreateDiscoveryCallRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	BusinessName string `json:"business_name" validate:"required,min=2,max=200"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,min=7,max=20"`
	WhatsApp     string `json:"whatsapp" validate:"omitempty,max=20"`
	Service      string `json:"service" validate:"required,min=2,max=100"`
	Requirements string `json:"requirements" validate:"required,min=10,max=2000"`
}

// DiscoveryCallService captures and lists discovery call requests.
type DiscoveryCallService struct {
	repo          discoveryCallRepository
	notifications *NotificationService
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewDiscoveryCallService constructs the service.
func NewDiscoveryCallService(repo discoveryCallRepository, notifications *NotificationService, logger *zap.Logger) *DiscoveryCallService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscoveryCallService{
		repo:          repo,
		notifications: notifications,
		validate:      validator.New(),
		logger:        logger,
	}
}

// CreateDiscoveryCall records a request and notifies both sides.
func (s *DiscoveryCallService) CreateDiscoveryCall(ctx context.Context, req CreateDiscoveryCallRequest) (*models.DiscoveryCall, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	call := &models.DiscoveryCall{
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Phone:        req.Phone,
		WhatsApp:     req.WhatsApp,
		Service:      req.Service,
		Requirements: req.Requirements,
		Status:       models.DiscoveryCallStatusPending,
	}
	if err := s.repo.Create(ctx, call); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create discovery call")
	}

	s.logger.Info("discovery call created",
		zap.String("id", call.ID),
		zap.String("service", call.Service))
	s.notifications.DispatchDiscoveryCall(call)
	return call, nil
}

// ListDiscoveryCalls returns the operator listing with totals.
func (s *DiscoveryCallService) ListDiscoveryCalls(ctx context.Context, filter models.DiscoveryCallFilter) ([]models.DiscoveryCall, int, error) {
	calls, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list discovery calls")
	}
	return calls, total, nil
}
