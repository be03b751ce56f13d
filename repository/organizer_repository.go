package repository

import (
	"context"
	"fmt"

	"raffler/database"
	"raffler/domain/entities"
	"raffler/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const organizerColumns = `id, email, name, venmo_handle, role, status, created_at`

// OrganizerRepository implements organizer account data access over postgres
type OrganizerRepository struct {
	q Queryable
}

// NewOrganizerRepository creates a new organizer repository on the pool
func NewOrganizerRepository(db *database.DB) interfaces.OrganizerRepository {
	return &OrganizerRepository{q: db.Pool}
}

// newOrganizerRepositoryWithTx creates a transaction-scoped organizer repository
func newOrganizerRepositoryWithTx(tx Queryable) interfaces.OrganizerRepository {
	return &OrganizerRepository{q: tx}
}

// GetByID retrieves an organizer by ID
func (r *OrganizerRepository) GetByID(ctx context.Context, id int64) (*entities.Organizer, error) {
	query := `SELECT ` + organizerColumns + ` FROM organizers WHERE id = $1`
	return r.scanOrganizer(r.q.QueryRow(ctx, query, id), fmt.Sprintf("ID %d", id))
}

// GetByEmail retrieves an organizer by email
func (r *OrganizerRepository) GetByEmail(ctx context.Context, email string) (*entities.Organizer, error) {
	query := `SELECT ` + organizerColumns + ` FROM organizers WHERE email = $1`
	return r.scanOrganizer(r.q.QueryRow(ctx, query, email), fmt.Sprintf("email %s", email))
}

// Create persists a new organizer and assigns its ID
func (r *OrganizerRepository) Create(ctx context.Context, organizer *entities.Organizer) error {
	query := `
		INSERT INTO organizers (email, name, venmo_handle, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		organizer.Email,
		organizer.Name,
		organizer.VenmoHandle,
		organizer.Role,
		organizer.Status,
		organizer.CreatedAt,
	).Scan(&organizer.ID)
	if err != nil {
		return fmt.Errorf("failed to create organizer: %w", err)
	}

	return nil
}

// UpdateStatus changes an organizer's account status
func (r *OrganizerRepository) UpdateStatus(ctx context.Context, id int64, status entities.AccountStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE organizers SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update organizer %d status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("organizer %d not found for update", id)
	}

	return nil
}

func (r *OrganizerRepository) scanOrganizer(row pgx.Row, desc string) (*entities.Organizer, error) {
	var organizer entities.Organizer
	err := row.Scan(
		&organizer.ID,
		&organizer.Email,
		&organizer.Name,
		&organizer.VenmoHandle,
		&organizer.Role,
		&organizer.Status,
		&organizer.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organizer by %s: %w", desc, err)
	}
	return &organizer, nil
}
