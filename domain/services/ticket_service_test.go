package services

import (
	"context"
	"testing"
	"time"

	"raffler/domain/entities"
	"raffler/domain/interfaces"
	"raffler/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ticketServiceFixture struct {
	raffleRepo   *testhelpers.MockRaffleRepository
	ticketRepo   *testhelpers.MockTicketRepository
	settingsRepo *testhelpers.MockSettingsRepository
	publisher    *testhelpers.MockEventPublisher
	clock        *testhelpers.FixedClock
	service      interfaces.TicketService
}

func newTicketServiceFixture() *ticketServiceFixture {
	f := &ticketServiceFixture{
		raffleRepo:   new(testhelpers.MockRaffleRepository),
		ticketRepo:   new(testhelpers.MockTicketRepository),
		settingsRepo: new(testhelpers.MockSettingsRepository),
		publisher:    new(testhelpers.MockEventPublisher),
		clock:        &testhelpers.FixedClock{Time: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)},
	}
	f.service = NewTicketService(f.raffleRepo, f.ticketRepo, f.settingsRepo, f.publisher, f.clock)
	return f
}

func TestTicketService_PurchaseTicket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores sequence, number and payment route on the ticket", func(t *testing.T) {
		t.Parallel()

		f := newTicketServiceFixture()
		raffle := testRaffle(entities.RaffleStatusActive, func(r *entities.Raffle) {
			r.TicketsSold = 21 // next sequence 22 = 2 * 11, routed to owner
			r.OrganizerVenmo = "pta-treasurer"
		})

		f.raffleRepo.On("GetByID", ctx, int64(1)).Return(raffle, nil)
		f.settingsRepo.On("Get", ctx).Return(defaultSettings(), nil)
		f.ticketRepo.On("Create", ctx, mock.AnythingOfType("*entities.Ticket")).Return(nil)
		f.raffleRepo.On("Update", ctx, raffle).Return(nil)
		f.publisher.On("Publish", mock.AnythingOfType("events.TicketPurchasedEvent")).Return(nil)

		result, err := f.service.PurchaseTicket(ctx, 1, "player@example.com", "@player-venmo")

		require.NoError(t, err)
		ticket := result.Ticket
		assert.Equal(t, 22, ticket.SequenceNumber)
		assert.Equal(t, "FALL-20250615-0022", ticket.TicketNumber)
		assert.Equal(t, entities.TicketStatusPending, ticket.Status)
		assert.Equal(t, entities.RecipientOwner, ticket.Recipient)
		assert.Equal(t, "platform-owner", ticket.RecipientHandle)
		assert.Equal(t, "player-venmo", ticket.PlayerVenmo)
		assert.Equal(t, 22, raffle.TicketsSold)
		assert.Equal(t, int64(5500), result.JackpotCents)
		assert.Contains(t, result.PaymentLink, "https://venmo.com/platform-owner?txn=pay&amount=5.00")
		assert.Contains(t, result.PaymentLink, "note=FIDDYFIDDY-FALL-20250615-0022")
		f.raffleRepo.AssertExpectations(t)
		f.ticketRepo.AssertExpectations(t)
	})

	t.Run("ordinary sequence routes to the organizer", func(t *testing.T) {
		t.Parallel()

		f := newTicketServiceFixture()
		raffle := testRaffle(entities.RaffleStatusActive, func(r *entities.Raffle) {
			r.TicketsSold = 22 // next sequence 23, not a multiple of 11
			r.OrganizerVenmo = "pta-treasurer"
		})

		f.raffleRepo.On("GetByID", ctx, int64(1)).Return(raffle, nil)
		f.settingsRepo.On("Get", ctx).Return(defaultSettings(), nil)
		f.ticketRepo.On("Create", ctx, mock.Anything).Return(nil)
		f.raffleRepo.On("Update", ctx, raffle).Return(nil)
		f.publisher.On("Publish", mock.Anything).Return(nil)

		result, err := f.service.PurchaseTicket(ctx, 1, "player@example.com", "player-venmo")

		require.NoError(t, err)
		assert.Equal(t, entities.RecipientOrganizer, result.Ticket.Recipient)
		assert.Equal(t, "pta-treasurer", result.Ticket.RecipientHandle)
	})

	t.Run("inactive raffle cannot sell", func(t *testing.T) {
		t.Parallel()

		for _, status := range []entities.RaffleStatus{
			entities.RaffleStatusDraft,
			entities.RaffleStatusDrawing,
			entities.RaffleStatusComplete,
			entities.RaffleStatusCancelled,
		} {
			f := newTicketServiceFixture()
			f.raffleRepo.On("GetByID", ctx, int64(1)).Return(testRaffle(status), nil)

			_, err := f.service.PurchaseTicket(ctx, 1, "p@example.com", "player-venmo")

			var stateErr *entities.InvalidStateError
			require.ErrorAs(t, err, &stateErr)
			assert.Equal(t, status, stateErr.Status)
		}
	})

	t.Run("sold out raffle rejects purchase", func(t *testing.T) {
		t.Parallel()

		f := newTicketServiceFixture()
		raffle := testRaffle(entities.RaffleStatusActive, func(r *entities.Raffle) {
			r.TicketsSold = r.MaxTickets
		})
		f.raffleRepo.On("GetByID", ctx, int64(1)).Return(raffle, nil)

		_, err := f.service.PurchaseTicket(ctx, 1, "p@example.com", "player-venmo")
		assert.ErrorIs(t, err, entities.ErrRaffleSoldOut)
	})

	t.Run("invalid venmo handle rejects purchase before any write", func(t *testing.T) {
		t.Parallel()

		f := newTicketServiceFixture()
		f.raffleRepo.On("GetByID", ctx, int64(1)).Return(testRaffle(entities.RaffleStatusActive), nil)

		_, err := f.service.PurchaseTicket(ctx, 1, "p@example.com", "no spaces allowed")

		assert.ErrorIs(t, err, entities.ErrInvalidVenmoHandle)
		f.ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing raffle", func(t *testing.T) {
		t.Parallel()

		f := newTicketServiceFixture()
		f.raffleRepo.On("GetByID", ctx, int64(1)).Return(nil, nil)

		_, err := f.service.PurchaseTicket(ctx, 1, "p@example.com", "player-venmo")
		assert.ErrorIs(t, err, entities.ErrRaffleNotFound)
	})
}

func TestTicketService_VerifyTicket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	actor := testOrganizer(10)

	t.Run("pending ticket becomes verified", func(t *testing.T) {
		t.Parallel()

		f := newTicketServiceFixture()
		raffle := testRaffle(entities.RaffleStatusActive)
		ticket := &entities.Ticket{ID: 5, RaffleID: 1, Status: entities.TicketStatusPending}

		f.ticketRepo.On("GetByID", ctx, int64(5)).Return(ticket, nil)
		f.raffleRepo.On("GetByID", ctx, int64(1)).Return(raffle, nil)
		f.ticketRepo.On("Update", ctx, ticket).Return(nil)
		f.publisher.On("Publish", mock.AnythingOfType("events.TicketVerifiedEvent")).Return(nil)

		got, err := f.service.VerifyTicket(ctx, 5, "venmo-txn-42", actor)

		require.NoError(t, err)
		assert.Equal(t, entities.TicketStatusVerified, got.Status)
		require.NotNil(t, got.VenmoTxnID)
		assert.Equal(t, "venmo-txn-42", *got.VenmoTxnID)
		require.NotNil(t, got.VerifiedAt)
		assert.Equal(t, f.clock.Time, *got.VerifiedAt)
	})

	t.Run("unrelated organizer cannot verify", func(t *testing.T) {
		t.Parallel()

		f := newTicketServiceFixture()
		ticket := &entities.Ticket{ID: 5, RaffleID: 1, Status: entities.TicketStatusPending}

		f.ticketRepo.On("GetByID", ctx, int64(5)).Return(ticket, nil)
		f.raffleRepo.On("GetByID", ctx, int64(1)).Return(testRaffle(entities.RaffleStatusActive), nil)

		_, err := f.service.VerifyTicket(ctx, 5, "txn", testOrganizer(99))
		assert.ErrorIs(t, err, entities.ErrNotAuthorized)
	})

	t.Run("already verified ticket fails", func(t *testing.T) {
		t.Parallel()

		f := newTicketServiceFixture()
		ticket := &entities.Ticket{ID: 5, RaffleID: 1, Status: entities.TicketStatusVerified}

		f.ticketRepo.On("GetByID", ctx, int64(5)).Return(ticket, nil)
		f.raffleRepo.On("GetByID", ctx, int64(1)).Return(testRaffle(entities.RaffleStatusActive), nil)

		_, err := f.service.VerifyTicket(ctx, 5, "txn", actor)

		var stateErr *entities.TicketStateError
		assert.ErrorAs(t, err, &stateErr)
	})
}

func TestTicketService_RejectTicket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	actor := testOrganizer(10)

	t.Run("pending ticket is rejected", func(t *testing.T) {
		t.Parallel()

		f := newTicketServiceFixture()
		ticket := &entities.Ticket{ID: 5, RaffleID: 1, Status: entities.TicketStatusPending}

		f.ticketRepo.On("GetByID", ctx, int64(5)).Return(ticket, nil)
		f.raffleRepo.On("GetByID", ctx, int64(1)).Return(testRaffle(entities.RaffleStatusActive), nil)
		f.ticketRepo.On("Update", ctx, ticket).Return(nil)
		f.publisher.On("Publish", mock.AnythingOfType("events.TicketRejectedEvent")).Return(nil)

		require.NoError(t, f.service.RejectTicket(ctx, 5, actor))
		assert.Equal(t, entities.TicketStatusRejected, ticket.Status)
	})

	t.Run("missing ticket", func(t *testing.T) {
		t.Parallel()

		f := newTicketServiceFixture()
		f.ticketRepo.On("GetByID", ctx, int64(5)).Return(nil, nil)

		err := f.service.RejectTicket(ctx, 5, actor)
		assert.ErrorIs(t, err, entities.ErrTicketNotFound)
	})
}
