package infrastructure

import (
	"context"

	"raffler/domain/entities"
	"raffler/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// LogNotifier records notifications in the structured log. It stands in
// for a real delivery channel (email, SMS) which lives outside this
// core; the contract only requires best-effort dispatch.
type LogNotifier struct{}

// NewLogNotifier creates a new log-backed notifier
func NewLogNotifier() interfaces.Notifier {
	return &LogNotifier{}
}

// NotifyWinner records the winner notification
func (n *LogNotifier) NotifyWinner(ctx context.Context, ticket *entities.Ticket, raffle *entities.Raffle) error {
	log.WithFields(log.Fields{
		"raffleID":     raffle.ID,
		"ticketNumber": ticket.TicketNumber,
		"playerEmail":  ticket.PlayerEmail,
		"jackpotCents": raffle.JackpotCents(),
	}).Info("NOTIFY winner")
	return nil
}

// NotifyPayoutDue records the organizer payout notification
func (n *LogNotifier) NotifyPayoutDue(ctx context.Context, organizer *entities.Organizer, raffle *entities.Raffle, ticket *entities.Ticket) error {
	log.WithFields(log.Fields{
		"raffleID":       raffle.ID,
		"organizerEmail": organizer.Email,
		"ticketNumber":   ticket.TicketNumber,
		"jackpotCents":   raffle.JackpotCents(),
	}).Info("NOTIFY payout due")
	return nil
}

// NotifyPlayersOfResult records the drawing report notification
func (n *LogNotifier) NotifyPlayersOfResult(ctx context.Context, raffle *entities.Raffle, drawLog []*entities.DrawLogEntry, winningTicket *entities.Ticket) error {
	log.WithFields(log.Fields{
		"raffleID":      raffle.ID,
		"drawCount":     len(drawLog),
		"winningTicket": winningTicket.TicketNumber,
	}).Info("NOTIFY players of result")
	return nil
}
