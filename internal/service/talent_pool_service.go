package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/elevate-careers-api/internal/models"
	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
)

type talentPoolRepository interface {
	Create(ctx context.Context, profile *models.TalentProfile) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CreateTalentProfileRequest is a candidate's talent pool registration.
type CreateTalentProfileRequest struct {
	FullName          string   `json:"full_name" validate:"required,min=2,max=200"`
	Email             string   `json:"email" validate:"required,email"`
	Country           string   `json:"country" validate:"required,min=2,max=100"`
	FieldOfExperience string   `json:"field_of_experience" validate:"required,min=2,max=200"`
	ExperienceLevel   string   `json:"experience_level" validate:"required,min=2,max=50"`
	Skills            []string `json:"skills" validate:"omitempty,dive,max=100"`
	CVURL             string   `json:"cv_url" validate:"omitempty,url"`
	VideoURL          string   `json:"video_url" validate:"omitempty,url"`
}

// TalentPoolService registers candidates into the talent pool. Email is
// the dedup key; a second registration under the same email conflicts.
type TalentPoolService struct {
	repo          talentPoolRepository
	notifications *NotificationService
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewTalentPoolService constructs the service.
func NewTalentPoolService(repo talentPoolRepository, notifications *NotificationService, logger *zap.Logger) *TalentPoolService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TalentPoolService{
		repo:          repo,
		notifications: notifications,
		validate:      validator.New(),
		logger:        logger,
	}
}

// CreateTalentProfile registers a candidate, rejecting duplicate emails.
func (s *TalentPoolService) CreateTalentProfile(ctx context.Context, req CreateTalentProfileRequest) (*models.TalentProfile, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing profile")
	}
	if exists {
		return nil, appErrors.New(appErrors.ErrConflict.Code, appErrors.ErrConflict.Status,
			"a profile is already registered under this email")
	}

	profile := &models.TalentProfile{
		FullName:          req.FullName,
		Email:             req.Email,
		Country:           req.Country,
		FieldOfExperience: req.FieldOfExperience,
		ExperienceLevel:   req.ExperienceLevel,
		Skills:            pq.StringArray(req.Skills),
		CVURL:             req.CVURL,
		VideoURL:          req.VideoURL,
		ProfileStatus:     models.TalentProfileStatusPending,
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		// The unique index can still fire under a concurrent double
		// submit that passed the existence check.
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create talent profile")
	}

	s.logger.Info("talent profile created",
		zap.String("id", profile.ID),
		zap.String("field", profile.FieldOfExperience))
	s.notifications.DispatchTalentPool(profile)
	return profile, nil
}
