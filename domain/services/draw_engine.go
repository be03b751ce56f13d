package services

import (
	"context"
	"fmt"

	"raffler/domain/entities"
	"raffler/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// drawEngine selects an unpredictable eligible ticket for a raffle.
// Selection is a pure read; committing the outcome belongs to the
// drawing service.
type drawEngine struct {
	ticketRepo interfaces.TicketRepository
	random     interfaces.RandomSource
}

// NewDrawEngine creates a draw engine with the given random source. The
// source's quality is the integrator's choice; production wiring should
// pass NewCryptoRandomSource.
func NewDrawEngine(ticketRepo interfaces.TicketRepository, random interfaces.RandomSource) interfaces.DrawEngine {
	return &drawEngine{
		ticketRepo: ticketRepo,
		random:     random,
	}
}

// SelectTicket picks one ticket uniformly at random over the raffle's
// current eligible set. Every call re-reads eligibility, so tickets
// invalidated by a prior redraw are excluded on the next call. Returns
// nil when no ticket is eligible.
func (e *drawEngine) SelectTicket(ctx context.Context, raffleID int64) (*entities.Ticket, error) {
	eligible, err := e.ticketRepo.EligibleTickets(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible tickets: %w", err)
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	idx, err := e.random.IntN(len(eligible))
	if err != nil {
		return nil, fmt.Errorf("failed to select ticket index: %w", err)
	}

	selected := eligible[idx]
	log.WithFields(log.Fields{
		"raffleID":     raffleID,
		"eligible":     len(eligible),
		"ticketID":     selected.ID,
		"ticketNumber": selected.TicketNumber,
	}).Debug("Selected draw candidate")

	return selected, nil
}
