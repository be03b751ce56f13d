package services

import (
	"context"
	"fmt"

	"raffler/domain/entities"
	"raffler/domain/events"
	"raffler/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// DefaultRedrawReason is recorded when an organizer doesn't supply one.
const DefaultRedrawReason = "Payment not confirmed"

// drawingService orchestrates the two-phase draw, the bounded redraw
// protocol and winner confirmation for a raffle.
type drawingService struct {
	raffleRepo     interfaces.RaffleRepository
	ticketRepo     interfaces.TicketRepository
	drawLogRepo    interfaces.DrawLogRepository
	settingsRepo   interfaces.SettingsRepository
	engine         interfaces.DrawEngine
	eventPublisher interfaces.EventPublisher
	clock          interfaces.Clock
}

// NewDrawingService creates a new drawing service
func NewDrawingService(
	raffleRepo interfaces.RaffleRepository,
	ticketRepo interfaces.TicketRepository,
	drawLogRepo interfaces.DrawLogRepository,
	settingsRepo interfaces.SettingsRepository,
	engine interfaces.DrawEngine,
	eventPublisher interfaces.EventPublisher,
	clock interfaces.Clock,
) interfaces.DrawingService {
	return &drawingService{
		raffleRepo:     raffleRepo,
		ticketRepo:     ticketRepo,
		drawLogRepo:    drawLogRepo,
		settingsRepo:   settingsRepo,
		engine:         engine,
		eventPublisher: eventPublisher,
		clock:          clock,
	}
}

// ExecuteDraw selects a candidate ticket for the raffle. The candidate
// and its tentative draw number are returned without writing a log
// entry; the organizer inspects the candidate and then either confirms
// or redraws.
func (s *drawingService) ExecuteDraw(ctx context.Context, raffleID int64, actor *entities.Organizer) (*interfaces.DrawCandidate, error) {
	raffle, err := s.getRaffle(ctx, raffleID)
	if err != nil {
		return nil, err
	}
	if err := authorizeDrawAction(actor, raffle); err != nil {
		return nil, err
	}

	if !raffle.IsActive() && !raffle.IsDrawing() {
		return nil, &entities.InvalidStateError{Status: raffle.Status, Operation: "draw"}
	}
	if err := raffle.CheckMinimumTickets(); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	maxRedraws := settings.MaxRedrawsOrDefault()
	if raffle.RedrawCount >= maxRedraws {
		return nil, &entities.MaxRedrawsExceededError{Max: maxRedraws}
	}

	if raffle.IsActive() {
		if err := raffle.BeginDrawing(); err != nil {
			return nil, err
		}
		if err := s.raffleRepo.Update(ctx, raffle); err != nil {
			return nil, fmt.Errorf("failed to update raffle status: %w", err)
		}
	}

	drawCount, err := s.drawLogRepo.CountByRaffle(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to count draw log entries: %w", err)
	}

	ticket, err := s.engine.SelectTicket(ctx, raffleID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, entities.ErrNoEligibleTickets
	}

	log.WithFields(log.Fields{
		"raffleID":     raffleID,
		"ticketNumber": ticket.TicketNumber,
		"drawNumber":   drawCount + 1,
	}).Info("Draw candidate selected")

	return &interfaces.DrawCandidate{
		Ticket:     ticket,
		DrawNumber: drawCount + 1,
	}, nil
}

// Redraw invalidates a previously drawn ticket and selects a new
// candidate. The invalidation is logged with a human reason and the
// redraw counter is incremented before the new selection, so a failed
// selection still consumes an attempt.
func (s *drawingService) Redraw(ctx context.Context, raffleID, ticketID int64, reason string, actor *entities.Organizer) (*interfaces.RedrawResult, error) {
	raffle, err := s.getRaffle(ctx, raffleID)
	if err != nil {
		return nil, err
	}
	if err := authorizeDrawAction(actor, raffle); err != nil {
		return nil, err
	}
	if !raffle.IsDrawing() {
		return nil, &entities.InvalidStateError{Status: raffle.Status, Operation: "redraw"}
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	maxRedraws := settings.MaxRedrawsOrDefault()
	if raffle.RedrawCount >= maxRedraws {
		return nil, &entities.MaxRedrawsExceededError{Max: maxRedraws}
	}

	ticket, err := s.getRaffleTicket(ctx, raffle, ticketID)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = DefaultRedrawReason
	}

	drawCount, err := s.drawLogRepo.CountByRaffle(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to count draw log entries: %w", err)
	}
	drawNumber := drawCount + 1

	entry := &entities.DrawLogEntry{
		RaffleID:   raffleID,
		TicketID:   ticket.ID,
		DrawNumber: drawNumber,
		Result:     entities.DrawResultInvalid,
		Reason:     reason,
		Timestamp:  s.clock.Now(),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.drawLogRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append draw log entry: %w", err)
	}

	if err := ticket.Invalidate(); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to invalidate ticket: %w", err)
	}

	raffle.RedrawCount++
	if err := s.raffleRepo.Update(ctx, raffle); err != nil {
		return nil, fmt.Errorf("failed to update redraw count: %w", err)
	}

	if err := s.eventPublisher.Publish(events.TicketInvalidatedEvent{
		RaffleID:     raffleID,
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		DrawNumber:   drawNumber,
		Reason:       reason,
	}); err != nil {
		log.WithError(err).Error("Failed to publish ticket invalidated event")
	}

	log.WithFields(log.Fields{
		"raffleID":     raffleID,
		"ticketNumber": ticket.TicketNumber,
		"drawNumber":   drawNumber,
		"reason":       reason,
		"redrawCount":  raffle.RedrawCount,
	}).Info("Ticket invalidated, redrawing")

	newTicket, err := s.engine.SelectTicket(ctx, raffleID)
	if err != nil {
		return nil, err
	}
	if newTicket == nil {
		// The attempt is already consumed: the invalidation is logged
		// and the counter incremented. The raffle stays in Drawing.
		return nil, entities.ErrNoEligibleTickets
	}

	return &interfaces.RedrawResult{
		Raffle:           raffle,
		NewTicket:        newTicket,
		DrawNumber:       drawNumber + 1,
		RedrawsRemaining: maxRedraws - raffle.RedrawCount,
	}, nil
}

// ConfirmWinner commits the candidate as the winner: it appends the
// Winner log entry, confirms the ticket and completes the raffle.
// A Complete raffle rejects further confirms so payout notifications
// can never double-fire.
func (s *drawingService) ConfirmWinner(ctx context.Context, raffleID, ticketID int64, actor *entities.Organizer) error {
	raffle, err := s.getRaffle(ctx, raffleID)
	if err != nil {
		return err
	}
	if err := authorizeDrawAction(actor, raffle); err != nil {
		return err
	}
	if raffle.IsComplete() {
		return entities.ErrAlreadyComplete
	}
	if !raffle.IsDrawing() {
		return &entities.InvalidStateError{Status: raffle.Status, Operation: "confirm"}
	}

	ticket, err := s.getRaffleTicket(ctx, raffle, ticketID)
	if err != nil {
		return err
	}
	if !ticket.IsEligible() {
		return &entities.TicketStateError{Status: ticket.Status, Operation: "confirm"}
	}

	drawCount, err := s.drawLogRepo.CountByRaffle(ctx, raffleID)
	if err != nil {
		return fmt.Errorf("failed to count draw log entries: %w", err)
	}
	drawNumber := drawCount + 1
	now := s.clock.Now()

	entry := &entities.DrawLogEntry{
		RaffleID:   raffleID,
		TicketID:   ticket.ID,
		DrawNumber: drawNumber,
		Result:     entities.DrawResultWinner,
		Timestamp:  now,
	}
	if err := s.drawLogRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append winner log entry: %w", err)
	}

	if err := ticket.Confirm(now); err != nil {
		return err
	}
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return fmt.Errorf("failed to confirm ticket: %w", err)
	}

	if err := raffle.Complete(ticket.ID, now); err != nil {
		return err
	}
	if err := s.raffleRepo.Update(ctx, raffle); err != nil {
		return fmt.Errorf("failed to complete raffle: %w", err)
	}

	if err := s.eventPublisher.Publish(events.WinnerConfirmedEvent{
		RaffleID:     raffleID,
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		DrawNumber:   drawNumber,
		JackpotCents: raffle.JackpotCents(),
		DrawnAt:      now,
	}); err != nil {
		log.WithError(err).Error("Failed to publish winner confirmed event")
	}

	log.WithFields(log.Fields{
		"raffleID":     raffleID,
		"ticketNumber": ticket.TicketNumber,
		"drawNumber":   drawNumber,
		"jackpotCents": raffle.JackpotCents(),
	}).Info("Winner confirmed, raffle complete")

	return nil
}

// Status reports drawing progress: draw count, redraws used and
// remaining, the escalation flag and the full audit log.
func (s *drawingService) Status(ctx context.Context, raffleID int64) (*interfaces.DrawingStatus, error) {
	raffle, err := s.getRaffle(ctx, raffleID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	maxRedraws := settings.MaxRedrawsOrDefault()

	drawLog, err := s.drawLogRepo.ListByRaffle(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draw log: %w", err)
	}

	return &interfaces.DrawingStatus{
		DrawCount:        len(drawLog),
		Redraws:          raffle.RedrawCount,
		RedrawsRemaining: maxRedraws - raffle.RedrawCount,
		MaxRedraws:       maxRedraws,
		NeedsEscalation:  raffle.RedrawCount >= maxRedraws,
		DrawLog:          drawLog,
	}, nil
}

func (s *drawingService) getRaffle(ctx context.Context, raffleID int64) (*entities.Raffle, error) {
	raffle, err := s.raffleRepo.GetByID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle: %w", err)
	}
	if raffle == nil {
		return nil, entities.ErrRaffleNotFound
	}
	return raffle, nil
}

// getRaffleTicket fetches a ticket and checks it belongs to the raffle
func (s *drawingService) getRaffleTicket(ctx context.Context, raffle *entities.Raffle, ticketID int64) (*entities.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil || ticket.RaffleID != raffle.ID {
		return nil, entities.ErrTicketNotFound
	}
	return ticket, nil
}
