package entities

import (
	"time"
)

// DrawResult represents the outcome recorded for one draw
type DrawResult string

const (
	DrawResultWinner  DrawResult = "Winner"
	DrawResultInvalid DrawResult = "Invalid"
)

// DrawLogEntry is one append-only audit record of a draw or redraw
// decision. Entries are never mutated or deleted; draw numbers are
// strictly increasing and gapless per raffle.
type DrawLogEntry struct {
	ID         int64      `db:"id"`
	RaffleID   int64      `db:"raffle_id"`
	TicketID   int64      `db:"ticket_id"`
	DrawNumber int        `db:"draw_number"` // 1-based per raffle
	Result     DrawResult `db:"result"`
	Reason     string     `db:"reason"` // Required when Result is Invalid
	Timestamp  time.Time  `db:"timestamp"`
}

// Validate checks the entry's internal consistency before it is appended
func (e *DrawLogEntry) Validate() error {
	if e.DrawNumber < 1 {
		return ErrInvalidDrawNumber
	}
	if e.Result == DrawResultInvalid && e.Reason == "" {
		return ErrReasonRequired
	}
	return nil
}
