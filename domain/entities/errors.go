package entities

import (
	"errors"
	"fmt"
)

// Conditions the orchestrating layer distinguishes with errors.Is/As.
// All of these are expected, caller-recoverable outcomes; only transport
// failures from collaborators propagate as generic wrapped errors.
var (
	ErrRaffleNotFound          = errors.New("raffle not found")
	ErrTicketNotFound          = errors.New("ticket not found")
	ErrOrganizerNotFound       = errors.New("organizer not found")
	ErrNotAuthorized           = errors.New("not authorized")
	ErrPendingAccountForbidden = errors.New("account is pending approval")
	ErrNoEligibleTickets       = errors.New("no eligible tickets")
	ErrAlreadyComplete         = errors.New("raffle is already complete")
	ErrRaffleSoldOut           = errors.New("raffle is sold out")
	ErrInvalidDrawNumber       = errors.New("draw number must be positive")
	ErrReasonRequired          = errors.New("reason required for invalid draw result")
	ErrInvalidVenmoHandle      = errors.New("invalid venmo handle")
)

// InvalidStateError reports a raffle lifecycle guard failure
type InvalidStateError struct {
	Status    RaffleStatus
	Operation string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s raffle in %s state", e.Operation, e.Status)
}

// TicketStateError reports an illegal ticket status transition
type TicketStateError struct {
	Status    TicketStatus
	Operation string
}

func (e *TicketStateError) Error() string {
	return fmt.Sprintf("cannot %s ticket in %s state", e.Operation, e.Status)
}

// BelowMinimumError reports the minimum-ticket gate failure with the
// exact shortfall so callers can surface the number, not just a string.
type BelowMinimumError struct {
	Required int
	Sold     int
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("minimum of %d tickets required, currently sold: %d", e.Required, e.Sold)
}

// Shortfall returns how many more tickets must sell before a draw
func (e *BelowMinimumError) Shortfall() int {
	return e.Required - e.Sold
}

// MaxRedrawsExceededError reports redraw exhaustion. It always requires
// owner escalation.
type MaxRedrawsExceededError struct {
	Max int
}

func (e *MaxRedrawsExceededError) Error() string {
	return fmt.Sprintf("maximum of %d redraws reached, owner intervention required", e.Max)
}

// NeedsEscalation reports whether the caller should surface an owner
// escalation path. Always true for this condition.
func (e *MaxRedrawsExceededError) NeedsEscalation() bool {
	return true
}
