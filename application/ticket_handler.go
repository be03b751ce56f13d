package application

import (
	"context"
	"fmt"

	"raffler/domain/entities"
	"raffler/domain/interfaces"
	"raffler/domain/services"

	log "github.com/sirupsen/logrus"
)

// TicketHandler exposes ticket purchase and verification to the outer
// layer. Purchases run under the per-raffle lock so sequence numbers
// stay dense under concurrent sales.
type TicketHandler struct {
	uowFactory UnitOfWorkFactory
	clock      interfaces.Clock
	locks      *raffleLocks
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(uowFactory UnitOfWorkFactory, clock interfaces.Clock) *TicketHandler {
	return &TicketHandler{
		uowFactory: uowFactory,
		clock:      clock,
		locks:      newRaffleLocks(),
	}
}

// PurchaseTicket sells the next ticket for the raffle
func (h *TicketHandler) PurchaseTicket(ctx context.Context, raffleID int64, playerEmail, playerVenmo string) (*interfaces.PurchaseResult, error) {
	unlock := h.locks.Lock(raffleID)
	defer unlock()

	var result *interfaces.PurchaseResult
	err := h.withUnitOfWork(ctx, func(ctx context.Context, uow UnitOfWork) error {
		var err error
		result, err = h.ticketService(uow).PurchaseTicket(ctx, raffleID, playerEmail, playerVenmo)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// VerifyTicket marks a pending ticket's payment as verified
func (h *TicketHandler) VerifyTicket(ctx context.Context, ticketID int64, venmoTxnID string, actorID int64) (*entities.Ticket, error) {
	var ticket *entities.Ticket
	err := h.withUnitOfWork(ctx, func(ctx context.Context, uow UnitOfWork) error {
		actor, err := h.getActor(ctx, uow, actorID)
		if err != nil {
			return err
		}
		ticket, err = h.ticketService(uow).VerifyTicket(ctx, ticketID, venmoTxnID, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	return ticket, nil
}

// RejectTicket permanently rejects a pending ticket
func (h *TicketHandler) RejectTicket(ctx context.Context, ticketID int64, actorID int64) error {
	return h.withUnitOfWork(ctx, func(ctx context.Context, uow UnitOfWork) error {
		actor, err := h.getActor(ctx, uow, actorID)
		if err != nil {
			return err
		}
		return h.ticketService(uow).RejectTicket(ctx, ticketID, actor)
	})
}

func (h *TicketHandler) ticketService(uow UnitOfWork) interfaces.TicketService {
	return services.NewTicketService(
		uow.RaffleRepository(),
		uow.TicketRepository(),
		uow.SettingsRepository(),
		uow.EventBus(),
		h.clock,
	)
}

func (h *TicketHandler) getActor(ctx context.Context, uow UnitOfWork, actorID int64) (*entities.Organizer, error) {
	actor, err := uow.OrganizerRepository().GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}
	if actor == nil {
		return nil, entities.ErrOrganizerNotFound
	}
	return actor, nil
}

func (h *TicketHandler) withUnitOfWork(ctx context.Context, fn func(context.Context, UnitOfWork) error) error {
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
