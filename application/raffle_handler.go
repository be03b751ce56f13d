package application

import (
	"context"
	"fmt"

	"raffler/domain/entities"
	"raffler/domain/interfaces"
	"raffler/domain/services"

	log "github.com/sirupsen/logrus"
)

// RaffleHandler exposes raffle creation and lifecycle management to the
// outer layer.
type RaffleHandler struct {
	uowFactory UnitOfWorkFactory
	clock      interfaces.Clock
}

// NewRaffleHandler creates a new raffle handler
func NewRaffleHandler(uowFactory UnitOfWorkFactory, clock interfaces.Clock) *RaffleHandler {
	return &RaffleHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// CreateRaffle creates a Draft raffle for the actor
func (h *RaffleHandler) CreateRaffle(ctx context.Context, params interfaces.CreateRaffleParams, actorID int64) (*entities.Raffle, error) {
	var raffle *entities.Raffle
	err := h.withUnitOfWork(ctx, func(ctx context.Context, uow UnitOfWork) error {
		actor, err := h.getActor(ctx, uow, actorID)
		if err != nil {
			return err
		}
		raffle, err = h.raffleService(uow).CreateRaffle(ctx, params, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	return raffle, nil
}

// ActivateRaffle opens a Draft raffle for ticket sales
func (h *RaffleHandler) ActivateRaffle(ctx context.Context, raffleID, actorID int64) (*entities.Raffle, error) {
	var raffle *entities.Raffle
	err := h.withUnitOfWork(ctx, func(ctx context.Context, uow UnitOfWork) error {
		actor, err := h.getActor(ctx, uow, actorID)
		if err != nil {
			return err
		}
		raffle, err = h.raffleService(uow).ActivateRaffle(ctx, raffleID, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	return raffle, nil
}

// CancelRaffle cancels a Draft or Active raffle
func (h *RaffleHandler) CancelRaffle(ctx context.Context, raffleID, actorID int64) error {
	return h.withUnitOfWork(ctx, func(ctx context.Context, uow UnitOfWork) error {
		actor, err := h.getActor(ctx, uow, actorID)
		if err != nil {
			return err
		}
		return h.raffleService(uow).CancelRaffle(ctx, raffleID, actor)
	})
}

func (h *RaffleHandler) raffleService(uow UnitOfWork) interfaces.RaffleService {
	return services.NewRaffleService(
		uow.RaffleRepository(),
		uow.SettingsRepository(),
		uow.EventBus(),
		h.clock,
	)
}

func (h *RaffleHandler) getActor(ctx context.Context, uow UnitOfWork, actorID int64) (*entities.Organizer, error) {
	actor, err := uow.OrganizerRepository().GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}
	if actor == nil {
		return nil, entities.ErrOrganizerNotFound
	}
	return actor, nil
}

func (h *RaffleHandler) withUnitOfWork(ctx context.Context, fn func(context.Context, UnitOfWork) error) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if err := fn(ctx, uow); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			log.WithError(rbErr).Error("Rollback failed")
		}
		return err
	}

	return uow.Commit()
}
