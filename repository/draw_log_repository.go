package repository

import (
	"context"
	"fmt"

	"raffler/database"
	"raffler/domain/entities"
	"raffler/domain/interfaces"
)

// DrawLogRepository implements the append-only draw audit log over
// postgres. The schema enforces gapless uniqueness of draw numbers and
// the single-Winner invariant per raffle.
type DrawLogRepository struct {
	q Queryable
}

// NewDrawLogRepository creates a new draw log repository on the pool
func NewDrawLogRepository(db *database.DB) interfaces.DrawLogRepository {
	return &DrawLogRepository{q: db.Pool}
}

// newDrawLogRepositoryWithTx creates a transaction-scoped draw log repository
func newDrawLogRepositoryWithTx(tx Queryable) interfaces.DrawLogRepository {
	return &DrawLogRepository{q: tx}
}

// Append persists a new draw log entry
func (r *DrawLogRepository) Append(ctx context.Context, entry *entities.DrawLogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO draw_log (raffle_id, ticket_id, draw_number, result, reason, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		entry.RaffleID,
		entry.TicketID,
		entry.DrawNumber,
		entry.Result,
		entry.Reason,
		entry.Timestamp,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to append draw log entry: %w", err)
	}

	return nil
}

// CountByRaffle returns the number of entries logged for a raffle
func (r *DrawLogRepository) CountByRaffle(ctx context.Context, raffleID int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM draw_log WHERE raffle_id = $1`, raffleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count draw log entries for raffle %d: %w", raffleID, err)
	}
	return count, nil
}

// ListByRaffle returns the raffle's entries ordered by draw number
func (r *DrawLogRepository) ListByRaffle(ctx context.Context, raffleID int64) ([]*entities.DrawLogEntry, error) {
	query := `
		SELECT id, raffle_id, ticket_id, draw_number, result, reason, timestamp
		FROM draw_log
		WHERE raffle_id = $1
		ORDER BY draw_number
	`

	rows, err := r.q.Query(ctx, query, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draw log for raffle %d: %w", raffleID, err)
	}
	defer rows.Close()

	var entries []*entities.DrawLogEntry
	for rows.Next() {
		var entry entities.DrawLogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.RaffleID,
			&entry.TicketID,
			&entry.DrawNumber,
			&entry.Result,
			&entry.Reason,
			&entry.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan draw log entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
