package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"raffler/domain/entities"
	"raffler/domain/interfaces"
	"raffler/domain/services"

	log "github.com/sirupsen/logrus"
)

// notifyTimeout bounds each best-effort notification call
const notifyTimeout = 10 * time.Second

// DrawingHandler exposes the three drawing operations to the outer
// layer (CLI, HTTP, whatever hosts the core). Each operation runs under
// the per-raffle lock inside one unit of work.
type DrawingHandler struct {
	uowFactory UnitOfWorkFactory
	notifier   interfaces.Notifier
	random     interfaces.RandomSource
	clock      interfaces.Clock
	locks      *raffleLocks
}

// NewDrawingHandler creates a new drawing handler
func NewDrawingHandler(
	uowFactory UnitOfWorkFactory,
	notifier interfaces.Notifier,
	random interfaces.RandomSource,
	clock interfaces.Clock,
) *DrawingHandler {
	return &DrawingHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		random:     random,
		clock:      clock,
		locks:      newRaffleLocks(),
	}
}

// ExecuteDraw selects a draw candidate for the raffle on behalf of the
// given actor.
func (h *DrawingHandler) ExecuteDraw(ctx context.Context, raffleID, actorID int64) (*interfaces.DrawCandidate, error) {
	unlock := h.locks.Lock(raffleID)
	defer unlock()

	var candidate *interfaces.DrawCandidate
	err := h.withUnitOfWork(ctx, func(ctx context.Context, uow UnitOfWork) error {
		actor, err := h.getActor(ctx, uow, actorID)
		if err != nil {
			return err
		}

		svc := h.drawingService(uow)
		candidate, err = svc.ExecuteDraw(ctx, raffleID, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	return candidate, nil
}

// Redraw invalidates a drawn ticket and selects a new candidate. A
// redraw whose re-selection finds no eligible ticket still commits:
// the invalidation entry, the ticket's Invalid status and the redraw
// counter are consumed state, not a transaction failure.
func (h *DrawingHandler) Redraw(ctx context.Context, raffleID, ticketID int64, reason string, actorID int64) (*interfaces.RedrawResult, error) {
	unlock := h.locks.Lock(raffleID)
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	actor, err := h.getActor(ctx, uow, actorID)
	if err != nil {
		h.rollback(uow)
		return nil, err
	}

	result, err := h.drawingService(uow).Redraw(ctx, raffleID, ticketID, reason, actor)
	if err != nil {
		if errors.Is(err, entities.ErrNoEligibleTickets) {
			if commitErr := uow.Commit(); commitErr != nil {
				return nil, commitErr
			}
			return nil, err
		}
		h.rollback(uow)
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// ConfirmWinner commits the candidate as the winner and dispatches
// result notifications. Notification failures never fail the confirm:
// the raffle is Complete once the transaction commits.
func (h *DrawingHandler) ConfirmWinner(ctx context.Context, raffleID, ticketID, actorID int64) error {
	unlock := h.locks.Lock(raffleID)
	defer unlock()

	var (
		raffle    *entities.Raffle
		ticket    *entities.Ticket
		organizer *entities.Organizer
		drawLog   []*entities.DrawLogEntry
	)
	err := h.withUnitOfWork(ctx, func(ctx context.Context, uow UnitOfWork) error {
		actor, err := h.getActor(ctx, uow, actorID)
		if err != nil {
			return err
		}

		svc := h.drawingService(uow)
		if err := svc.ConfirmWinner(ctx, raffleID, ticketID, actor); err != nil {
			return err
		}

		// Capture notification payloads inside the transaction so they
		// reflect the committed outcome.
		if raffle, err = uow.RaffleRepository().GetByID(ctx, raffleID); err != nil {
			return err
		}
		if ticket, err = uow.TicketRepository().GetByID(ctx, ticketID); err != nil {
			return err
		}
		if organizer, err = uow.OrganizerRepository().GetByID(ctx, raffle.OrganizerID); err != nil {
			return err
		}
		if drawLog, err = uow.DrawLogRepository().ListByRaffle(ctx, raffleID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	h.dispatchResultNotifications(raffle, ticket, organizer, drawLog)
	return nil
}

// Status reports drawing progress for the raffle
func (h *DrawingHandler) Status(ctx context.Context, raffleID int64) (*interfaces.DrawingStatus, error) {
	var status *interfaces.DrawingStatus
	err := h.withUnitOfWork(ctx, func(ctx context.Context, uow UnitOfWork) error {
		var err error
		status, err = h.drawingService(uow).Status(ctx, raffleID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return status, nil
}

// dispatchResultNotifications delivers the post-confirm notifications
// best-effort. Failures are logged and swallowed.
func (h *DrawingHandler) dispatchResultNotifications(
	raffle *entities.Raffle,
	ticket *entities.Ticket,
	organizer *entities.Organizer,
	drawLog []*entities.DrawLogEntry,
) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := h.notifier.NotifyWinner(ctx, ticket, raffle); err != nil {
		log.WithError(err).WithField("raffleID", raffle.ID).Warn("Winner notification failed")
	}
	if err := h.notifier.NotifyPayoutDue(ctx, organizer, raffle, ticket); err != nil {
		log.WithError(err).WithField("raffleID", raffle.ID).Warn("Payout notification failed")
	}
	if err := h.notifier.NotifyPlayersOfResult(ctx, raffle, drawLog, ticket); err != nil {
		log.WithError(err).WithField("raffleID", raffle.ID).Warn("Player result notification failed")
	}
}

func (h *DrawingHandler) drawingService(uow UnitOfWork) interfaces.DrawingService {
	engine := services.NewDrawEngine(uow.TicketRepository(), h.random)
	return services.NewDrawingService(
		uow.RaffleRepository(),
		uow.TicketRepository(),
		uow.DrawLogRepository(),
		uow.SettingsRepository(),
		engine,
		uow.EventBus(),
		h.clock,
	)
}

func (h *DrawingHandler) getActor(ctx context.Context, uow UnitOfWork, actorID int64) (*entities.Organizer, error) {
	actor, err := uow.OrganizerRepository().GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}
	if actor == nil {
		return nil, entities.ErrOrganizerNotFound
	}
	return actor, nil
}

// withUnitOfWork runs fn inside one transaction, committing on success
// and rolling back on any error.
func (h *DrawingHandler) withUnitOfWork(ctx context.Context, fn func(context.Context, UnitOfWork) error) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if err := fn(ctx, uow); err != nil {
		h.rollback(uow)
		return err
	}

	return uow.Commit()
}

func (h *DrawingHandler) rollback(uow UnitOfWork) {
	if err := uow.Rollback(); err != nil {
		log.WithError(err).Error("Rollback failed")
	}
}
