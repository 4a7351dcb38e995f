package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/elevate-careers-api/internal/models"
)

const talentProfileColumns = `id, full_name, email, country, field_of_experience, experience_level,
        skills, cv_url, video_url, profile_status, created_at, updated_at`

// TalentPoolRepository handles persistence of talent pool profiles.
type TalentPoolRepository struct {
	db *sqlx.DB
}

// NewTalentPoolRepository constructs the repository.
func NewTalentPoolRepository(db *sqlx.DB) *TalentPoolRepository {
	return &TalentPoolRepository{db: db}
}

// Create persists a new talent pool profile.
func (r *TalentPoolRepository) Create(ctx context.Context, profile *models.TalentProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.ProfileStatus == "" {
		profile.ProfileStatus = models.TalentProfileStatusPending
	}
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	const query = `INSERT INTO talent_pool_profiles (id, full_name, email, country, field_of_experience,
        experience_level, skills, cv_url, video_url, profile_status, created_at, updated_at)
        VALUES (:id, :full_name, :email, :country, :field_of_experience,
        :experience_level, :skills, :cv_url, :video_url, :profile_status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("create talent profile: %w", err)
	}
	return nil
}

// ExistsByEmail reports whether a profile is already registered under
// the email.
func (r *TalentPoolRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT 1 FROM talent_pool_profiles WHERE email = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check talent profile email: %w", err)
	}
	return true, nil
}

// FindByEmail returns the profile registered under the email.
func (r *TalentPoolRepository) FindByEmail(ctx context.Context, email string) (*models.TalentProfile, error) {
	query := fmt.Sprintf("SELECT %s FROM talent_pool_profiles WHERE email = $1", talentProfileColumns)
	var profile models.TalentProfile
	if err := r.db.GetContext(ctx, &profile, query, email); err != nil {
		return nil, err
	}
	return &profile, nil
}
