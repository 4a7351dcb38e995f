package models

import (
	"time"

	"github.com/lib/pq"
)

// TalentProfileStatus tracks vetting of a talent pool profile.
type TalentProfileStatus string

// Possible profile statuses.
const (
	TalentProfileStatusPending  TalentProfileStatus = "pending"
	TalentProfileStatusApproved TalentProfileStatus = "approved"
	TalentProfileStatusRejected TalentProfileStatus = "rejected"
)

// TalentProfile is a candidate's registration in the talent pool.
// Email is unique; duplicate registrations are rejected.
type TalentProfile struct {
	ID                string              `db:"id" json:"id"`
	FullName          string              `db:"full_name" json:"full_name"`
	Email             string              `db:"email" json:"email"`
	Country           string              `db:"country" json:"country"`
	FieldOfExperience string              `db:"field_of_experience" json:"field_of_experience"`
	ExperienceLevel   string              `db:"experience_level" json:"experience_level"`
	Skills            pq.StringArray      `db:"skills" json:"skills,omitempty"`
	CVURL             string              `db:"cv_url" json:"cv_url,omitempty"`
	VideoURL          string              `db:"video_url" json:"video_url,omitempty"`
	ProfileStatus     TalentProfileStatus `db:"profile_status" json:"profile_status"`
	CreatedAt         time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time           `db:"updated_at" json:"updated_at"`
}
