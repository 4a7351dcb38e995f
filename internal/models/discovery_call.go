package models

import "time"

// DiscoveryCallStatus tracks operator follow-up on a request.
type DiscoveryCallStatus string

// Possible discovery call statuses.
const (
	DiscoveryCallStatusPending   DiscoveryCallStatus = "pending"
	DiscoveryCallStatusScheduled DiscoveryCallStatus = "scheduled"
	DiscoveryCallStatusClosed    DiscoveryCallStatus = "closed"
)

// DiscoveryCall is a prospective client's request for a services call.
type DiscoveryCall struct {
	ID           string              `db:"id" json:"id"`
	Name         string              `db:"name" json:"name"`
	BusinessName string              `db:"business_name" json:"business_name"`
	Email        string              `db:"email" json:"email"`
	Phone        string              `db:"phone" json:"phone"`
	WhatsApp     string              `db:"whatsapp" json:"whatsapp,omitempty"`
	Service      string              `db:"service" json:"service"`
	Requirements string              `db:"requirements" json:"requirements"`
	Status       DiscoveryCallStatus `db:"status" json:"status"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `db:"updated_at" json:"updated_at"`
}

// DiscoveryCallFilter provides filters for the operator listing.
type DiscoveryCallFilter struct {
	Status   DiscoveryCallStatus
	Service  string
	Page     int
	PageSize int
}
