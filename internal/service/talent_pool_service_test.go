package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/elevate-careers-api/internal/models"
	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
)

type fakeTalentPoolRepo struct {
	existing map[string]bool
	created  []*models.TalentProfile
}

func (f *fakeTalentPoolRepo) Create(_ context.Context, profile *models.TalentProfile) error {
	profile.ID = "tal-1"
	f.created = append(f.created, profile)
	return nil
}

func (f *fakeTalentPoolRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return f.existing[email], nil
}

func validTalentRequest() CreateTalentProfileRequest {
	return CreateTalentProfileRequest{
		FullName:          "Jane Doe",
		Email:             "jane@example.com",
		Country:           "Nigeria",
		FieldOfExperience: "Software Engineering",
		ExperienceLevel:   "senior",
		Skills:            []string{"go", "sql"},
	}
}

func TestCreateTalentProfile(t *testing.T) {
	repo := &fakeTalentPoolRepo{existing: map[string]bool{}}
	svc := NewTalentPoolService(repo, nil, nil)

	profile, err := svc.CreateTalentProfile(context.Background(), validTalentRequest())
	require.NoError(t, err)
	assert.Equal(t, models.TalentProfileStatusPending, profile.ProfileStatus)
	require.Len(t, repo.created, 1)
}

func TestCreateTalentProfileDuplicateEmail(t *testing.T) {
	repo := &fakeTalentPoolRepo{existing: map[string]bool{"jane@example.com": true}}
	svc := NewTalentPoolService(repo, nil, nil)

	_, err := svc.CreateTalentProfile(context.Background(), validTalentRequest())

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Empty(t, repo.created)
}

func TestCreateTalentProfileValidatesInput(t *testing.T) {
	svc := NewTalentPoolService(&fakeTalentPoolRepo{existing: map[string]bool{}}, nil, nil)

	req := validTalentRequest()
	req.Email = "bad"
	_, err := svc.CreateTalentProfile(context.Background(), req)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
