package entities

import (
	"fmt"
	"strings"
	"time"
)

// TicketStatus represents the verification state of a ticket
type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "Pending"
	TicketStatusVerified  TicketStatus = "Verified"
	TicketStatusConfirmed TicketStatus = "Confirmed"
	TicketStatusInvalid   TicketStatus = "Invalid"
	TicketStatusRejected  TicketStatus = "Rejected"
)

// PaymentRecipient identifies which party receives a ticket's payment
type PaymentRecipient string

const (
	RecipientOrganizer PaymentRecipient = "Organizer"
	RecipientOwner     PaymentRecipient = "Owner"
)

// Ticket represents a single purchased raffle ticket
type Ticket struct {
	ID              int64            `db:"id"`
	RaffleID        int64            `db:"raffle_id"`
	SequenceNumber  int              `db:"sequence_number"` // 1-based, dense per raffle
	TicketNumber    string           `db:"ticket_number"`   // PREFIX-YYYYMMDD-NNNN
	Status          TicketStatus     `db:"status"`
	Recipient       PaymentRecipient `db:"recipient"` // Routed once at creation
	RecipientHandle string           `db:"recipient_handle"`
	PlayerEmail     string           `db:"player_email"`
	PlayerVenmo     string           `db:"player_venmo"`
	VenmoTxnID      *string          `db:"venmo_txn_id"`
	ScreenshotURL   *string          `db:"screenshot_url"`
	CreatedAt       time.Time        `db:"created_at"`
	VerifiedAt      *time.Time       `db:"verified_at"`
}

// FormatTicketNumber builds the human-readable ticket number from the
// raffle prefix, the purchase date and the zero-padded sequence.
func FormatTicketNumber(prefix string, purchasedAt time.Time, sequence int) string {
	return fmt.Sprintf("%s-%s-%04d", strings.ToUpper(prefix), purchasedAt.Format("20060102"), sequence)
}

// IsEligible returns true if the ticket is a candidate for drawing
func (t *Ticket) IsEligible() bool {
	return t.Status == TicketStatusVerified || t.Status == TicketStatusConfirmed
}

// IsPending returns true while payment has not been checked
func (t *Ticket) IsPending() bool {
	return t.Status == TicketStatusPending
}

// Verify transitions Pending -> Verified, recording the Venmo transaction
// reference and verification time.
func (t *Ticket) Verify(venmoTxnID string, now time.Time) error {
	if t.Status != TicketStatusPending {
		return &TicketStateError{Status: t.Status, Operation: "verify"}
	}
	t.Status = TicketStatusVerified
	if venmoTxnID != "" {
		t.VenmoTxnID = &venmoTxnID
	}
	t.VerifiedAt = &now
	return nil
}

// Reject transitions Pending -> Rejected. Rejected tickets never become
// eligible for drawing.
func (t *Ticket) Reject() error {
	if t.Status != TicketStatusPending {
		return &TicketStateError{Status: t.Status, Operation: "reject"}
	}
	t.Status = TicketStatusRejected
	return nil
}

// Invalidate marks a drawn ticket as Invalid during a redraw. Only an
// eligible ticket can be invalidated; the transition is permanent.
func (t *Ticket) Invalidate() error {
	if !t.IsEligible() {
		return &TicketStateError{Status: t.Status, Operation: "invalidate"}
	}
	t.Status = TicketStatusInvalid
	return nil
}

// Confirm transitions Verified -> Confirmed when the ticket is confirmed
// as the winner.
func (t *Ticket) Confirm(now time.Time) error {
	switch t.Status {
	case TicketStatusVerified:
		t.Status = TicketStatusConfirmed
		t.VerifiedAt = &now
		return nil
	case TicketStatusConfirmed:
		return nil
	default:
		return &TicketStateError{Status: t.Status, Operation: "confirm"}
	}
}
