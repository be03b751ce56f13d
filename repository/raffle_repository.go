package repository

import (
	"context"
	"fmt"

	"raffler/database"
	"raffler/domain/entities"
	"raffler/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const raffleColumns = `
	id, public_id, organizer_id, name, ticket_prefix, ticket_price_cents,
	max_tickets, tickets_sold, owner_prime, redraw_count, status,
	winning_ticket_id, drawn_at, min_tickets_enabled, min_tickets,
	organizer_venmo, created_at`

// RaffleRepository implements raffle data access over postgres
type RaffleRepository struct {
	q Queryable
}

// NewRaffleRepository creates a new raffle repository on the pool
func NewRaffleRepository(db *database.DB) interfaces.RaffleRepository {
	return &RaffleRepository{q: db.Pool}
}

// newRaffleRepositoryWithTx creates a transaction-scoped raffle repository
func newRaffleRepositoryWithTx(tx Queryable) interfaces.RaffleRepository {
	return &RaffleRepository{q: tx}
}

// GetByID retrieves a raffle by its ID
func (r *RaffleRepository) GetByID(ctx context.Context, id int64) (*entities.Raffle, error) {
	query := `SELECT ` + raffleColumns + ` FROM raffles WHERE id = $1`
	return r.scanRaffle(r.q.QueryRow(ctx, query, id), fmt.Sprintf("ID %d", id))
}

// GetByPublicID retrieves a raffle by its public share code
func (r *RaffleRepository) GetByPublicID(ctx context.Context, publicID string) (*entities.Raffle, error) {
	query := `SELECT ` + raffleColumns + ` FROM raffles WHERE public_id = $1`
	return r.scanRaffle(r.q.QueryRow(ctx, query, publicID), fmt.Sprintf("public ID %s", publicID))
}

// Create persists a new raffle and assigns its ID
func (r *RaffleRepository) Create(ctx context.Context, raffle *entities.Raffle) error {
	query := `
		INSERT INTO raffles (
			public_id, organizer_id, name, ticket_prefix, ticket_price_cents,
			max_tickets, tickets_sold, owner_prime, redraw_count, status,
			min_tickets_enabled, min_tickets, organizer_venmo, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		raffle.PublicID,
		raffle.OrganizerID,
		raffle.Name,
		raffle.TicketPrefix,
		raffle.TicketPriceCents,
		raffle.MaxTickets,
		raffle.TicketsSold,
		raffle.OwnerPrime,
		raffle.RedrawCount,
		raffle.Status,
		raffle.MinTicketsEnabled,
		raffle.MinTickets,
		raffle.OrganizerVenmo,
		raffle.CreatedAt,
	).Scan(&raffle.ID)
	if err != nil {
		return fmt.Errorf("failed to create raffle: %w", err)
	}

	return nil
}

// Update persists the raffle's mutable fields
func (r *RaffleRepository) Update(ctx context.Context, raffle *entities.Raffle) error {
	query := `
		UPDATE raffles
		SET tickets_sold = $2,
		    redraw_count = $3,
		    status = $4,
		    winning_ticket_id = $5,
		    drawn_at = $6,
		    min_tickets_enabled = $7,
		    min_tickets = $8,
		    organizer_venmo = $9
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		raffle.ID,
		raffle.TicketsSold,
		raffle.RedrawCount,
		raffle.Status,
		raffle.WinningTicketID,
		raffle.DrawnAt,
		raffle.MinTicketsEnabled,
		raffle.MinTickets,
		raffle.OrganizerVenmo,
	)
	if err != nil {
		return fmt.Errorf("failed to update raffle %d: %w", raffle.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("raffle %d not found for update", raffle.ID)
	}

	return nil
}

// ListByOrganizer returns all raffles created by an organizer, newest first
func (r *RaffleRepository) ListByOrganizer(ctx context.Context, organizerID int64) ([]*entities.Raffle, error) {
	query := `SELECT ` + raffleColumns + ` FROM raffles WHERE organizer_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list raffles for organizer %d: %w", organizerID, err)
	}
	defer rows.Close()

	var raffles []*entities.Raffle
	for rows.Next() {
		var raffle entities.Raffle
		if err := scanRaffleFields(rows, &raffle); err != nil {
			return nil, fmt.Errorf("failed to scan raffle: %w", err)
		}
		raffles = append(raffles, &raffle)
	}

	return raffles, rows.Err()
}

func (r *RaffleRepository) scanRaffle(row pgx.Row, desc string) (*entities.Raffle, error) {
	var raffle entities.Raffle
	err := scanRaffleFields(row, &raffle)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle by %s: %w", desc, err)
	}
	return &raffle, nil
}

func scanRaffleFields(row pgx.Row, raffle *entities.Raffle) error {
	return row.Scan(
		&raffle.ID,
		&raffle.PublicID,
		&raffle.OrganizerID,
		&raffle.Name,
		&raffle.TicketPrefix,
		&raffle.TicketPriceCents,
		&raffle.MaxTickets,
		&raffle.TicketsSold,
		&raffle.OwnerPrime,
		&raffle.RedrawCount,
		&raffle.Status,
		&raffle.WinningTicketID,
		&raffle.DrawnAt,
		&raffle.MinTicketsEnabled,
		&raffle.MinTickets,
		&raffle.OrganizerVenmo,
		&raffle.CreatedAt,
	)
}
