package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"raffler/domain/entities"
	"raffler/domain/events"
	"raffler/domain/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// raffleService manages raffle creation and the lifecycle transitions
// that happen outside of drawing.
type raffleService struct {
	raffleRepo     interfaces.RaffleRepository
	settingsRepo   interfaces.SettingsRepository
	eventPublisher interfaces.EventPublisher
	clock          interfaces.Clock
}

// NewRaffleService creates a new raffle service
func NewRaffleService(
	raffleRepo interfaces.RaffleRepository,
	settingsRepo interfaces.SettingsRepository,
	eventPublisher interfaces.EventPublisher,
	clock interfaces.Clock,
) interfaces.RaffleService {
	return &raffleService{
		raffleRepo:     raffleRepo,
		settingsRepo:   settingsRepo,
		eventPublisher: eventPublisher,
		clock:          clock,
	}
}

// CreateRaffle creates a Draft raffle. The ticket cap is derived server
// side from the price so the jackpot can never exceed $600, regardless
// of what the organizer asked for.
func (s *raffleService) CreateRaffle(ctx context.Context, params interfaces.CreateRaffleParams, actor *entities.Organizer) (*entities.Raffle, error) {
	if actor == nil {
		return nil, entities.ErrNotAuthorized
	}
	if params.TicketPriceCents <= 0 {
		return nil, errors.New("ticket price must be positive")
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, errors.New("raffle name is required")
	}
	prefix := strings.ToUpper(strings.TrimSpace(params.TicketPrefix))
	if prefix == "" {
		return nil, errors.New("ticket prefix is required")
	}

	organizerVenmo, err := ValidateVenmoHandle(params.OrganizerVenmo)
	if err != nil {
		return nil, err
	}

	maxTickets := entities.MaxTicketsForPrice(params.TicketPriceCents)
	if maxTickets < 1 {
		return nil, errors.New("ticket price exceeds the maximum jackpot cap")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	ownerPrime := params.OwnerPrime
	if ownerPrime < 2 {
		ownerPrime = settings.OwnerPrimeOrDefault()
	}
	minTickets := params.MinTickets
	if minTickets <= 0 {
		minTickets = ownerPrime
	}

	raffle := &entities.Raffle{
		PublicID:          uuid.NewString(),
		OrganizerID:       actor.ID,
		Name:              strings.TrimSpace(params.Name),
		TicketPrefix:      prefix,
		TicketPriceCents:  params.TicketPriceCents,
		MaxTickets:        maxTickets,
		OwnerPrime:        ownerPrime,
		Status:            entities.RaffleStatusDraft,
		MinTicketsEnabled: params.MinTicketsEnabled,
		MinTickets:        minTickets,
		OrganizerVenmo:    organizerVenmo,
		CreatedAt:         s.clock.Now(),
	}
	if err := s.raffleRepo.Create(ctx, raffle); err != nil {
		return nil, fmt.Errorf("failed to create raffle: %w", err)
	}

	log.WithFields(log.Fields{
		"raffleID":   raffle.ID,
		"publicID":   raffle.PublicID,
		"maxTickets": maxTickets,
		"ownerPrime": ownerPrime,
	}).Info("Raffle created")

	return raffle, nil
}

// ActivateRaffle opens a Draft raffle for ticket sales
func (s *raffleService) ActivateRaffle(ctx context.Context, raffleID int64, actor *entities.Organizer) (*entities.Raffle, error) {
	raffle, err := s.getRaffle(ctx, raffleID)
	if err != nil {
		return nil, err
	}
	if err := authorizeManage(actor, raffle); err != nil {
		return nil, err
	}

	if err := raffle.Activate(); err != nil {
		return nil, err
	}
	if err := s.raffleRepo.Update(ctx, raffle); err != nil {
		return nil, fmt.Errorf("failed to update raffle: %w", err)
	}

	if err := s.eventPublisher.Publish(events.RaffleActivatedEvent{
		RaffleID: raffle.ID,
		PublicID: raffle.PublicID,
	}); err != nil {
		log.WithError(err).Error("Failed to publish raffle activated event")
	}

	return raffle, nil
}

// CancelRaffle cancels a Draft or Active raffle. Cancellation is a
// status transition, never erasure: tickets and logs are retained.
func (s *raffleService) CancelRaffle(ctx context.Context, raffleID int64, actor *entities.Organizer) error {
	raffle, err := s.getRaffle(ctx, raffleID)
	if err != nil {
		return err
	}
	if err := authorizeManage(actor, raffle); err != nil {
		return err
	}

	if err := raffle.Cancel(); err != nil {
		return err
	}
	if err := s.raffleRepo.Update(ctx, raffle); err != nil {
		return fmt.Errorf("failed to update raffle: %w", err)
	}

	if err := s.eventPublisher.Publish(events.RaffleCancelledEvent{
		RaffleID:    raffle.ID,
		TicketsSold: raffle.TicketsSold,
	}); err != nil {
		log.WithError(err).Error("Failed to publish raffle cancelled event")
	}

	log.WithFields(log.Fields{
		"raffleID":    raffle.ID,
		"ticketsSold": raffle.TicketsSold,
	}).Info("Raffle cancelled")

	return nil
}

func (s *raffleService) getRaffle(ctx context.Context, raffleID int64) (*entities.Raffle, error) {
	raffle, err := s.raffleRepo.GetByID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle: %w", err)
	}
	if raffle == nil {
		return nil, entities.ErrRaffleNotFound
	}
	return raffle, nil
}
