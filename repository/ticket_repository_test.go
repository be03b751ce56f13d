package repository

import (
	"context"
	"testing"
	"time"

	"raffler/domain/entities"
	"raffler/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRaffleForTickets(t *testing.T, testDB *testutil.TestDatabase) *entities.Raffle {
	t.Helper()
	ctx := context.Background()

	organizer := testutil.CreateTestOrganizer("treasurer@example.com")
	require.NoError(t, NewOrganizerRepository(testDB.DB).Create(ctx, organizer))

	raffle := testutil.CreateTestRaffle(organizer.ID, uuid.NewString())
	require.NoError(t, NewRaffleRepository(testDB.DB).Create(ctx, raffle))
	return raffle
}

func TestTicketRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTicketRepository(testDB.DB)
	ctx := context.Background()
	raffle := setupRaffleForTickets(t, testDB)

	t.Run("ticket not found", func(t *testing.T) {
		ticket, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, ticket)
	})

	t.Run("round trip by ID and number", func(t *testing.T) {
		ticket := testutil.CreateTestTicket(raffle.ID, 1)
		require.NoError(t, repo.Create(ctx, ticket))
		require.NotZero(t, ticket.ID)

		byID, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, ticket.TicketNumber, byID.TicketNumber)
		assert.Equal(t, 1, byID.SequenceNumber)
		assert.Equal(t, entities.TicketStatusPending, byID.Status)
		assert.Equal(t, entities.RecipientOrganizer, byID.Recipient)
		assert.Nil(t, byID.VenmoTxnID)

		byNumber, err := repo.GetByTicketNumber(ctx, ticket.TicketNumber)
		require.NoError(t, err)
		require.NotNil(t, byNumber)
		assert.Equal(t, ticket.ID, byNumber.ID)
	})

	t.Run("duplicate sequence within a raffle is rejected", func(t *testing.T) {
		first := testutil.CreateTestTicket(raffle.ID, 50)
		require.NoError(t, repo.Create(ctx, first))

		dup := testutil.CreateTestTicket(raffle.ID, 50)
		dup.TicketNumber = "TEST-20250615-9999"
		assert.Error(t, repo.Create(ctx, dup))
	})
}

func TestTicketRepository_Update(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTicketRepository(testDB.DB)
	ctx := context.Background()
	raffle := setupRaffleForTickets(t, testDB)

	ticket := testutil.CreateTestTicket(raffle.ID, 1)
	require.NoError(t, repo.Create(ctx, ticket))

	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, ticket.Verify("venmo-txn-77", now))
	require.NoError(t, repo.Update(ctx, ticket))

	got, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TicketStatusVerified, got.Status)
	require.NotNil(t, got.VenmoTxnID)
	assert.Equal(t, "venmo-txn-77", *got.VenmoTxnID)
	require.NotNil(t, got.VerifiedAt)
	assert.WithinDuration(t, now, *got.VerifiedAt, time.Second)
}

func TestTicketRepository_EligibleTickets(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTicketRepository(testDB.DB)
	ctx := context.Background()
	raffle := setupRaffleForTickets(t, testDB)

	// One ticket in each status; only Verified and Confirmed may draw
	statuses := []entities.TicketStatus{
		entities.TicketStatusPending,
		entities.TicketStatusVerified,
		entities.TicketStatusConfirmed,
		entities.TicketStatusInvalid,
		entities.TicketStatusRejected,
	}
	for i, status := range statuses {
		ticket := testutil.CreateTestTicket(raffle.ID, i+1)
		ticket.Status = status
		require.NoError(t, repo.Create(ctx, ticket))
	}

	eligible, err := repo.EligibleTickets(ctx, raffle.ID)
	require.NoError(t, err)
	require.Len(t, eligible, 2)

	// Ordered by sequence: Verified (seq 2) before Confirmed (seq 3)
	assert.Equal(t, entities.TicketStatusVerified, eligible[0].Status)
	assert.Equal(t, 2, eligible[0].SequenceNumber)
	assert.Equal(t, entities.TicketStatusConfirmed, eligible[1].Status)
	assert.Equal(t, 3, eligible[1].SequenceNumber)

	all, err := repo.ListByRaffle(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
