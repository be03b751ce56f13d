package entities

import (
	"time"
)

// RaffleStatus represents the lifecycle state of a raffle
type RaffleStatus string

const (
	RaffleStatusDraft     RaffleStatus = "Draft"
	RaffleStatusActive    RaffleStatus = "Active"
	RaffleStatusDrawing   RaffleStatus = "Drawing"
	RaffleStatusComplete  RaffleStatus = "Complete"
	RaffleStatusCancelled RaffleStatus = "Cancelled"
)

const (
	// MaxGrossCents caps gross ticket sales at $1200 so the 50% jackpot
	// never exceeds $600.
	MaxGrossCents int64 = 120000

	// DefaultOwnerPrime is the routing prime used when a raffle doesn't
	// specify one.
	DefaultOwnerPrime = 11
)

// Raffle represents a single 50/50 raffle
type Raffle struct {
	ID                int64        `db:"id"`
	PublicID          string       `db:"public_id"` // UUID used in entry links
	OrganizerID       int64        `db:"organizer_id"`
	Name              string       `db:"name"`
	TicketPrefix      string       `db:"ticket_prefix"`
	TicketPriceCents  int64        `db:"ticket_price_cents"`
	MaxTickets        int          `db:"max_tickets"` // Fixed at creation
	TicketsSold       int          `db:"tickets_sold"`
	OwnerPrime        int          `db:"owner_prime"`
	RedrawCount       int          `db:"redraw_count"`
	Status            RaffleStatus `db:"status"`
	WinningTicketID   *int64       `db:"winning_ticket_id"` // NULL until confirmed
	DrawnAt           *time.Time   `db:"drawn_at"`          // NULL until confirmed
	MinTicketsEnabled bool         `db:"min_tickets_enabled"`
	MinTickets        int          `db:"min_tickets"`
	OrganizerVenmo    string       `db:"organizer_venmo"`
	CreatedAt         time.Time    `db:"created_at"`
}

// MaxTicketsForPrice returns the ticket cap that keeps gross sales at or
// under MaxGrossCents for the given price.
func MaxTicketsForPrice(priceCents int64) int {
	if priceCents <= 0 {
		return 0
	}
	return int(MaxGrossCents / priceCents)
}

// IsDraft returns true while the raffle has not been activated
func (r *Raffle) IsDraft() bool {
	return r.Status == RaffleStatusDraft
}

// IsActive returns true while tickets are on sale
func (r *Raffle) IsActive() bool {
	return r.Status == RaffleStatusActive
}

// IsDrawing returns true while a drawing is in progress
func (r *Raffle) IsDrawing() bool {
	return r.Status == RaffleStatusDrawing
}

// IsComplete returns true once a winner has been confirmed
func (r *Raffle) IsComplete() bool {
	return r.Status == RaffleStatusComplete
}

// IsTerminal returns true if the raffle can no longer change state
func (r *Raffle) IsTerminal() bool {
	return r.Status == RaffleStatusComplete || r.Status == RaffleStatusCancelled
}

// CanSellTickets returns true if another ticket may be sold
func (r *Raffle) CanSellTickets() bool {
	return r.IsActive() && r.TicketsSold < r.MaxTickets
}

// NextSequence returns the sequence number the next sold ticket receives
func (r *Raffle) NextSequence() int {
	return r.TicketsSold + 1
}

// GrossCents returns total ticket revenue so far
func (r *Raffle) GrossCents() int64 {
	return int64(r.TicketsSold) * r.TicketPriceCents
}

// JackpotCents returns the winner's share: 50% of gross
func (r *Raffle) JackpotCents() int64 {
	return r.GrossCents() / 2
}

// TicketsRemaining returns how many tickets can still be sold
func (r *Raffle) TicketsRemaining() int {
	remaining := r.MaxTickets - r.TicketsSold
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Activate transitions Draft -> Active
func (r *Raffle) Activate() error {
	if r.Status != RaffleStatusDraft {
		return &InvalidStateError{Status: r.Status, Operation: "activate"}
	}
	r.Status = RaffleStatusActive
	return nil
}

// BeginDrawing transitions Active -> Drawing. Calling it while already
// Drawing is a no-op so that redraws stay in place.
func (r *Raffle) BeginDrawing() error {
	switch r.Status {
	case RaffleStatusActive:
		r.Status = RaffleStatusDrawing
		return nil
	case RaffleStatusDrawing:
		return nil
	default:
		return &InvalidStateError{Status: r.Status, Operation: "draw"}
	}
}

// Complete transitions Drawing -> Complete, recording the winning ticket
// and the drawing timestamp. A raffle completes exactly once.
func (r *Raffle) Complete(winningTicketID int64, now time.Time) error {
	if r.Status == RaffleStatusComplete {
		return ErrAlreadyComplete
	}
	if r.Status != RaffleStatusDrawing {
		return &InvalidStateError{Status: r.Status, Operation: "confirm"}
	}
	r.Status = RaffleStatusComplete
	r.WinningTicketID = &winningTicketID
	r.DrawnAt = &now
	return nil
}

// Cancel transitions Draft or Active -> Cancelled. Complete raffles can
// never be cancelled.
func (r *Raffle) Cancel() error {
	switch r.Status {
	case RaffleStatusDraft, RaffleStatusActive:
		r.Status = RaffleStatusCancelled
		return nil
	case RaffleStatusComplete:
		return ErrAlreadyComplete
	default:
		return &InvalidStateError{Status: r.Status, Operation: "cancel"}
	}
}

// CheckMinimumTickets enforces the minimum-ticket gate. It returns a
// BelowMinimumError naming the exact shortfall when the gate fails.
func (r *Raffle) CheckMinimumTickets() error {
	if !r.MinTicketsEnabled {
		return nil
	}
	required := r.MinTickets
	if required <= 0 {
		required = r.OwnerPrime
	}
	if required <= 0 {
		required = DefaultOwnerPrime
	}
	if r.TicketsSold < required {
		return &BelowMinimumError{Required: required, Sold: r.TicketsSold}
	}
	return nil
}
