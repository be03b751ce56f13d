package repository

import (
	"context"
	"fmt"

	"raffler/database"
	"raffler/domain/entities"
	"raffler/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// SettingsRepository reads the single platform settings row
type SettingsRepository struct {
	q Queryable
}

// NewSettingsRepository creates a new settings repository on the pool
func NewSettingsRepository(db *database.DB) interfaces.SettingsRepository {
	return &SettingsRepository{q: db.Pool}
}

// newSettingsRepositoryWithTx creates a transaction-scoped settings repository
func newSettingsRepositoryWithTx(tx Queryable) interfaces.SettingsRepository {
	return &SettingsRepository{q: tx}
}

// Get returns the platform settings row. Defaults apply if the row is
// somehow missing.
func (r *SettingsRepository) Get(ctx context.Context) (*entities.Settings, error) {
	query := `SELECT id, max_redraws, owner_venmo, default_owner_prime FROM platform_settings WHERE id = 1`

	var settings entities.Settings
	err := r.q.QueryRow(ctx, query).Scan(
		&settings.ID,
		&settings.MaxRedraws,
		&settings.OwnerVenmo,
		&settings.DefaultOwnerPrime,
	)
	if err == pgx.ErrNoRows {
		return &entities.Settings{
			MaxRedraws:        entities.DefaultMaxRedraws,
			DefaultOwnerPrime: entities.DefaultOwnerPrime,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get platform settings: %w", err)
	}

	return &settings, nil
}
