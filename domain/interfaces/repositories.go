package interfaces

import (
	"context"

	"raffler/domain/entities"
)

// RaffleRepository defines the interface for raffle data access
type RaffleRepository interface {
	// GetByID retrieves a raffle by its ID
	GetByID(ctx context.Context, id int64) (*entities.Raffle, error)

	// GetByPublicID retrieves a raffle by its public share code
	GetByPublicID(ctx context.Context, publicID string) (*entities.Raffle, error)

	// Create persists a new raffle and assigns its ID
	Create(ctx context.Context, raffle *entities.Raffle) error

	// Update persists the raffle's mutable fields
	Update(ctx context.Context, raffle *entities.Raffle) error

	// ListByOrganizer returns all raffles created by an organizer
	ListByOrganizer(ctx context.Context, organizerID int64) ([]*entities.Raffle, error)
}

// TicketRepository defines the interface for ticket data access
type TicketRepository interface {
	// GetByID retrieves a ticket by its ID
	GetByID(ctx context.Context, id int64) (*entities.Ticket, error)

	// GetByTicketNumber retrieves a ticket by its human-readable number
	GetByTicketNumber(ctx context.Context, ticketNumber string) (*entities.Ticket, error)

	// Create persists a new ticket and assigns its ID
	Create(ctx context.Context, ticket *entities.Ticket) error

	// Update persists the ticket's mutable fields
	Update(ctx context.Context, ticket *entities.Ticket) error

	// EligibleTickets returns the raffle's tickets whose status is
	// Verified or Confirmed, ordered by sequence number. The result
	// reflects the latest persisted state at call time.
	EligibleTickets(ctx context.Context, raffleID int64) ([]*entities.Ticket, error)

	// ListByRaffle returns all tickets for a raffle ordered by sequence
	ListByRaffle(ctx context.Context, raffleID int64) ([]*entities.Ticket, error)
}

// DrawLogRepository defines the interface for the append-only draw audit log
type DrawLogRepository interface {
	// Append persists a new draw log entry. Entries are never updated
	// or deleted.
	Append(ctx context.Context, entry *entities.DrawLogEntry) error

	// CountByRaffle returns the number of entries logged for a raffle
	CountByRaffle(ctx context.Context, raffleID int64) (int, error)

	// ListByRaffle returns the raffle's entries ordered by draw number
	ListByRaffle(ctx context.Context, raffleID int64) ([]*entities.DrawLogEntry, error)
}

// OrganizerRepository defines the interface for organizer account data access
type OrganizerRepository interface {
	// GetByID retrieves an organizer by ID
	GetByID(ctx context.Context, id int64) (*entities.Organizer, error)

	// GetByEmail retrieves an organizer by email
	GetByEmail(ctx context.Context, email string) (*entities.Organizer, error)

	// Create persists a new organizer and assigns its ID
	Create(ctx context.Context, organizer *entities.Organizer) error

	// UpdateStatus changes an organizer's account status
	UpdateStatus(ctx context.Context, id int64, status entities.AccountStatus) error
}

// SettingsRepository provides read access to platform settings
type SettingsRepository interface {
	// Get returns the platform settings row
	Get(ctx context.Context) (*entities.Settings, error)
}
