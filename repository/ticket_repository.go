package repository

import (
	"context"
	"fmt"

	"raffler/database"
	"raffler/domain/entities"
	"raffler/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const ticketColumns = `
	id, raffle_id, sequence_number, ticket_number, status, recipient,
	recipient_handle, player_email, player_venmo, venmo_txn_id,
	screenshot_url, created_at, verified_at`

// TicketRepository implements ticket data access over postgres
type TicketRepository struct {
	q Queryable
}

// NewTicketRepository creates a new ticket repository on the pool
func NewTicketRepository(db *database.DB) interfaces.TicketRepository {
	return &TicketRepository{q: db.Pool}
}

// newTicketRepositoryWithTx creates a transaction-scoped ticket repository
func newTicketRepositoryWithTx(tx Queryable) interfaces.TicketRepository {
	return &TicketRepository{q: tx}
}

// GetByID retrieves a ticket by its ID
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*entities.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	return r.scanTicket(r.q.QueryRow(ctx, query, id), fmt.Sprintf("ID %d", id))
}

// GetByTicketNumber retrieves a ticket by its human-readable number
func (r *TicketRepository) GetByTicketNumber(ctx context.Context, ticketNumber string) (*entities.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_number = $1`
	return r.scanTicket(r.q.QueryRow(ctx, query, ticketNumber), fmt.Sprintf("number %s", ticketNumber))
}

// Create persists a new ticket and assigns its ID
func (r *TicketRepository) Create(ctx context.Context, ticket *entities.Ticket) error {
	query := `
		INSERT INTO tickets (
			raffle_id, sequence_number, ticket_number, status, recipient,
			recipient_handle, player_email, player_venmo, venmo_txn_id,
			screenshot_url, created_at, verified_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		ticket.RaffleID,
		ticket.SequenceNumber,
		ticket.TicketNumber,
		ticket.Status,
		ticket.Recipient,
		ticket.RecipientHandle,
		ticket.PlayerEmail,
		ticket.PlayerVenmo,
		ticket.VenmoTxnID,
		ticket.ScreenshotURL,
		ticket.CreatedAt,
		ticket.VerifiedAt,
	).Scan(&ticket.ID)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

// Update persists the ticket's mutable fields. Sequence number, ticket
// number and recipient are fixed at creation and never updated.
func (r *TicketRepository) Update(ctx context.Context, ticket *entities.Ticket) error {
	query := `
		UPDATE tickets
		SET status = $2,
		    venmo_txn_id = $3,
		    screenshot_url = $4,
		    verified_at = $5
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		ticket.ID,
		ticket.Status,
		ticket.VenmoTxnID,
		ticket.ScreenshotURL,
		ticket.VerifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket %d: %w", ticket.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ticket %d not found for update", ticket.ID)
	}

	return nil
}

// EligibleTickets returns the raffle's tickets whose status is Verified
// or Confirmed, ordered by sequence number. No caching: each call reads
// the current persisted state.
func (r *TicketRepository) EligibleTickets(ctx context.Context, raffleID int64) ([]*entities.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE raffle_id = $1 AND status IN ('Verified', 'Confirmed')
		ORDER BY sequence_number
	`
	return r.queryTickets(ctx, query, raffleID)
}

// ListByRaffle returns all tickets for a raffle ordered by sequence
func (r *TicketRepository) ListByRaffle(ctx context.Context, raffleID int64) ([]*entities.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE raffle_id = $1 ORDER BY sequence_number`
	return r.queryTickets(ctx, query, raffleID)
}

func (r *TicketRepository) queryTickets(ctx context.Context, query string, raffleID int64) ([]*entities.Ticket, error) {
	rows, err := r.q.Query(ctx, query, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets for raffle %d: %w", raffleID, err)
	}
	defer rows.Close()

	var tickets []*entities.Ticket
	for rows.Next() {
		var ticket entities.Ticket
		if err := scanTicketFields(rows, &ticket); err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	return tickets, rows.Err()
}

func (r *TicketRepository) scanTicket(row pgx.Row, desc string) (*entities.Ticket, error) {
	var ticket entities.Ticket
	err := scanTicketFields(row, &ticket)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket by %s: %w", desc, err)
	}
	return &ticket, nil
}

func scanTicketFields(row pgx.Row, ticket *entities.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.RaffleID,
		&ticket.SequenceNumber,
		&ticket.TicketNumber,
		&ticket.Status,
		&ticket.Recipient,
		&ticket.RecipientHandle,
		&ticket.PlayerEmail,
		&ticket.PlayerVenmo,
		&ticket.VenmoTxnID,
		&ticket.ScreenshotURL,
		&ticket.CreatedAt,
		&ticket.VerifiedAt,
	)
}
