package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/elevate-careers-api/internal/models"
)

const discoveryCallColumns = `id, name, business_name, email, phone, whatsapp, service, requirements,
        status, created_at, updated_at`

// DiscoveryCallRepository handles persistence of discovery call requests.
type DiscoveryCallRepository struct {
	db *sqlx.DB
}

// NewDiscoveryCallRepository constructs the repository.
func NewDiscoveryCallRepository(db *sqlx.DB) *DiscoveryCallRepository {
	return &DiscoveryCallRepository{db: db}
}

// Create persists a new discovery call request.
func (r *DiscoveryCallRepository) Create(ctx context.Context, call *models.DiscoveryCall) error {
	if call.ID == "" {
		call.ID = uuid.NewString()
	}
	if call.Status == "" {
		call.Status = models.DiscoveryCallStatusPending
	}
	now := time.Now().UTC()
	if call.CreatedAt.IsZero() {
		call.CreatedAt = now
	}
	call.UpdatedAt = now

	const query = `INSERT INTO discovery_calls (id, name, business_name, email, phone, whatsapp, service,
        requirements, status, created_at, updated_at)
        VALUES (:id, :name, :business_name, :email, :phone, :whatsapp, :service,
        :requirements, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, call); err != nil {
		return fmt.Errorf("create discovery call: %w", err)
	}
	return nil
}

// List returns discovery calls filtered by the provided criteria.
func (r *DiscoveryCallRepository) List(ctx context.Context, filter models.DiscoveryCallFilter) ([]models.DiscoveryCall, int, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Service != "" {
		conditions = append(conditions, fmt.Sprintf("service = $%d", len(args)+1))
		args = append(args, filter.Service)
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

	query := fmt.Sprintf("SELECT %s FROM discovery_calls%s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		discoveryCallColumns, clause, size, offset)

	var calls []models.DiscoveryCall
	if err := r.db.SelectContext(ctx, &calls, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list discovery calls: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM discovery_calls" + clause
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count discovery calls: %w", err)
	}
	return calls, total, nil
}
