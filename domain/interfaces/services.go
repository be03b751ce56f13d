package interfaces

import (
	"context"
	"time"

	"raffler/domain/entities"
	"raffler/domain/events"
)

// RandomSource yields uniform random indexes for ticket selection. The
// quality of the source is the integrator's explicit choice: production
// wiring uses a cryptographically strong source, tests may inject a
// seeded deterministic one.
type RandomSource interface {
	// IntN returns a uniform random integer in [0, n). n must be > 0.
	IntN(n int) (int, error)
}

// Clock is an injectable time source
type Clock interface {
	Now() time.Time
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events until the surrounding
// transaction commits, then flushes them best-effort.
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush publishes all buffered events after a successful commit
	Flush(ctx context.Context) error

	// Discard drops buffered events on rollback
	Discard()
}

// Notifier delivers result notifications. All methods are best-effort
// from the core's perspective: failures are logged, never propagated
// into the draw/redraw/confirm outcome.
type Notifier interface {
	NotifyWinner(ctx context.Context, ticket *entities.Ticket, raffle *entities.Raffle) error
	NotifyPayoutDue(ctx context.Context, organizer *entities.Organizer, raffle *entities.Raffle, ticket *entities.Ticket) error
	NotifyPlayersOfResult(ctx context.Context, raffle *entities.Raffle, drawLog []*entities.DrawLogEntry, winningTicket *entities.Ticket) error
}

// DrawEngine selects an unpredictable eligible ticket. Selection is a
// pure read: log writes and status mutation belong to the orchestrator.
type DrawEngine interface {
	// SelectTicket picks one ticket uniformly at random over the
	// raffle's current eligible set. Returns nil when the set is empty.
	SelectTicket(ctx context.Context, raffleID int64) (*entities.Ticket, error)
}

// DrawCandidate is a tentative selection: the ticket plus the draw
// number it would occupy. Nothing is persisted until the organizer
// confirms or redraws.
type DrawCandidate struct {
	Ticket     *entities.Ticket
	DrawNumber int
}

// RedrawResult reports a completed redraw
type RedrawResult struct {
	Raffle           *entities.Raffle
	NewTicket        *entities.Ticket
	DrawNumber       int // Number the new candidate would occupy
	RedrawsRemaining int
}

// DrawingStatus summarizes drawing progress for status surfaces
type DrawingStatus struct {
	DrawCount        int
	Redraws          int
	RedrawsRemaining int
	MaxRedraws       int
	NeedsEscalation  bool
	DrawLog          []*entities.DrawLogEntry
}

// DrawingService orchestrates the two-phase draw, the bounded redraw
// protocol and winner confirmation.
type DrawingService interface {
	// ExecuteDraw selects a candidate ticket without committing a log
	// entry. Transitions Active -> Drawing on the first attempt.
	ExecuteDraw(ctx context.Context, raffleID int64, actor *entities.Organizer) (*DrawCandidate, error)

	// Redraw invalidates the given ticket, logs the invalidation and
	// selects a new candidate. Bounded by settings.MaxRedraws.
	Redraw(ctx context.Context, raffleID, ticketID int64, reason string, actor *entities.Organizer) (*RedrawResult, error)

	// ConfirmWinner logs the Winner entry and completes the raffle.
	// Exactly-once: a Complete raffle rejects further confirms.
	ConfirmWinner(ctx context.Context, raffleID, ticketID int64, actor *entities.Organizer) error

	// Status reports drawing progress and the audit log
	Status(ctx context.Context, raffleID int64) (*DrawingStatus, error)
}

// PurchaseResult reports a completed ticket purchase
type PurchaseResult struct {
	Ticket       *entities.Ticket
	PaymentLink  string
	JackpotCents int64
}

// TicketService handles ticket sales and payment verification
type TicketService interface {
	// PurchaseTicket sells the next ticket in sequence, routing its
	// payment once and deriving the Venmo deep link.
	PurchaseTicket(ctx context.Context, raffleID int64, playerEmail, playerVenmo string) (*PurchaseResult, error)

	// VerifyTicket marks a pending ticket's payment as verified
	VerifyTicket(ctx context.Context, ticketID int64, venmoTxnID string, actor *entities.Organizer) (*entities.Ticket, error)

	// RejectTicket permanently rejects a pending ticket
	RejectTicket(ctx context.Context, ticketID int64, actor *entities.Organizer) error
}

// CreateRaffleParams carries organizer input for raffle creation
type CreateRaffleParams struct {
	Name              string
	TicketPrefix      string
	TicketPriceCents  int64
	OwnerPrime        int // 0 means platform default
	MinTicketsEnabled bool
	MinTickets        int // 0 means default to owner prime
	OrganizerVenmo    string
}

// RaffleService manages raffle creation and lifecycle transitions
// outside of drawing.
type RaffleService interface {
	// CreateRaffle creates a Draft raffle with a server-derived ticket cap
	CreateRaffle(ctx context.Context, params CreateRaffleParams, actor *entities.Organizer) (*entities.Raffle, error)

	// ActivateRaffle transitions Draft -> Active
	ActivateRaffle(ctx context.Context, raffleID int64, actor *entities.Organizer) (*entities.Raffle, error)

	// CancelRaffle transitions Draft or Active -> Cancelled
	CancelRaffle(ctx context.Context, raffleID int64, actor *entities.Organizer) error
}
