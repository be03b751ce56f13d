package services

import (
	"context"
	"fmt"

	"raffler/domain/entities"
	"raffler/domain/events"
	"raffler/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// ticketService handles ticket sales and payment verification
type ticketService struct {
	raffleRepo     interfaces.RaffleRepository
	ticketRepo     interfaces.TicketRepository
	settingsRepo   interfaces.SettingsRepository
	eventPublisher interfaces.EventPublisher
	clock          interfaces.Clock
}

// NewTicketService creates a new ticket service
func NewTicketService(
	raffleRepo interfaces.RaffleRepository,
	ticketRepo interfaces.TicketRepository,
	settingsRepo interfaces.SettingsRepository,
	eventPublisher interfaces.EventPublisher,
	clock interfaces.Clock,
) interfaces.TicketService {
	return &ticketService{
		raffleRepo:     raffleRepo,
		ticketRepo:     ticketRepo,
		settingsRepo:   settingsRepo,
		eventPublisher: eventPublisher,
		clock:          clock,
	}
}

// PurchaseTicket sells the next ticket in sequence. The payment route is
// decided exactly once here and stored on the ticket; it is never
// recomputed afterwards.
func (s *ticketService) PurchaseTicket(ctx context.Context, raffleID int64, playerEmail, playerVenmo string) (*interfaces.PurchaseResult, error) {
	raffle, err := s.raffleRepo.GetByID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle: %w", err)
	}
	if raffle == nil {
		return nil, entities.ErrRaffleNotFound
	}
	if !raffle.IsActive() {
		return nil, &entities.InvalidStateError{Status: raffle.Status, Operation: "sell ticket"}
	}
	if raffle.TicketsSold >= raffle.MaxTickets {
		return nil, entities.ErrRaffleSoldOut
	}

	cleanedVenmo, err := ValidateVenmoHandle(playerVenmo)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	now := s.clock.Now()
	sequence := raffle.NextSequence()
	ticketNumber := entities.FormatTicketNumber(raffle.TicketPrefix, now, sequence)
	recipientHandle, recipient := RoutePayment(sequence, raffle.OwnerPrime, settings.OwnerVenmo, raffle.OrganizerVenmo)

	ticket := &entities.Ticket{
		RaffleID:        raffleID,
		SequenceNumber:  sequence,
		TicketNumber:    ticketNumber,
		Status:          entities.TicketStatusPending,
		Recipient:       recipient,
		RecipientHandle: recipientHandle,
		PlayerEmail:     playerEmail,
		PlayerVenmo:     cleanedVenmo,
		CreatedAt:       now,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	raffle.TicketsSold = sequence
	if err := s.raffleRepo.Update(ctx, raffle); err != nil {
		return nil, fmt.Errorf("failed to update tickets sold: %w", err)
	}

	if err := s.eventPublisher.Publish(events.TicketPurchasedEvent{
		RaffleID:       raffleID,
		TicketID:       ticket.ID,
		SequenceNumber: sequence,
		TicketNumber:   ticketNumber,
		Recipient:      string(recipient),
		AmountCents:    raffle.TicketPriceCents,
	}); err != nil {
		log.WithError(err).Error("Failed to publish ticket purchased event")
	}

	log.WithFields(log.Fields{
		"raffleID":     raffleID,
		"ticketNumber": ticketNumber,
		"sequence":     sequence,
		"recipient":    recipient,
	}).Info("Ticket purchased")

	return &interfaces.PurchaseResult{
		Ticket:       ticket,
		PaymentLink:  VenmoLink(recipientHandle, raffle.TicketPriceCents, ticketNumber),
		JackpotCents: raffle.JackpotCents(),
	}, nil
}

// VerifyTicket marks a pending ticket's payment as verified, making it
// eligible for drawing.
func (s *ticketService) VerifyTicket(ctx context.Context, ticketID int64, venmoTxnID string, actor *entities.Organizer) (*entities.Ticket, error) {
	ticket, raffle, err := s.getTicketWithRaffle(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := authorizeManage(actor, raffle); err != nil {
		return nil, err
	}

	if err := ticket.Verify(venmoTxnID, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	if err := s.eventPublisher.Publish(events.TicketVerifiedEvent{
		RaffleID:     ticket.RaffleID,
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		VenmoTxnID:   venmoTxnID,
	}); err != nil {
		log.WithError(err).Error("Failed to publish ticket verified event")
	}

	return ticket, nil
}

// RejectTicket permanently rejects a pending ticket. Rejected tickets
// are never eligible for drawing.
func (s *ticketService) RejectTicket(ctx context.Context, ticketID int64, actor *entities.Organizer) error {
	ticket, raffle, err := s.getTicketWithRaffle(ctx, ticketID)
	if err != nil {
		return err
	}
	if err := authorizeManage(actor, raffle); err != nil {
		return err
	}

	if err := ticket.Reject(); err != nil {
		return err
	}
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	if err := s.eventPublisher.Publish(events.TicketRejectedEvent{
		RaffleID:     ticket.RaffleID,
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
	}); err != nil {
		log.WithError(err).Error("Failed to publish ticket rejected event")
	}

	return nil
}

func (s *ticketService) getTicketWithRaffle(ctx context.Context, ticketID int64) (*entities.Ticket, *entities.Raffle, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, nil, entities.ErrTicketNotFound
	}

	raffle, err := s.raffleRepo.GetByID(ctx, ticket.RaffleID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get raffle: %w", err)
	}
	if raffle == nil {
		return nil, nil, entities.ErrRaffleNotFound
	}

	return ticket, raffle, nil
}
