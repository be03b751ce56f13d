package repository

import (
	"context"
	"testing"

	"raffler/domain/events"
	"raffler/domain/interfaces"
	"raffler/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher counts flushed and discarded events
type recordingPublisher struct {
	buffered  []events.Event
	flushed   []events.Event
	discarded int
}

func (p *recordingPublisher) Publish(event events.Event) error {
	p.buffered = append(p.buffered, event)
	return nil
}

func (p *recordingPublisher) Flush(ctx context.Context) error {
	p.flushed = append(p.flushed, p.buffered...)
	p.buffered = nil
	return nil
}

func (p *recordingPublisher) Discard() {
	p.discarded += len(p.buffered)
	p.buffered = nil
}

func TestUnitOfWork_CommitPersistsAndFlushes(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	organizer := testutil.CreateTestOrganizer("treasurer@example.com")
	require.NoError(t, NewOrganizerRepository(testDB.DB).Create(ctx, organizer))

	publisher := &recordingPublisher{}
	factory := NewUnitOfWorkFactory(testDB.DB, func() interfaces.TransactionalEventPublisher {
		return publisher
	})

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	raffle := testutil.CreateTestRaffle(organizer.ID, uuid.NewString())
	require.NoError(t, uow.RaffleRepository().Create(ctx, raffle))
	require.NoError(t, uow.EventBus().Publish(events.RaffleActivatedEvent{
		RaffleID: raffle.ID,
		PublicID: raffle.PublicID,
	}))

	// Nothing leaves the buffer until the transaction commits
	assert.Empty(t, publisher.flushed)

	require.NoError(t, uow.Commit())

	got, err := NewRaffleRepository(testDB.DB).GetByID(ctx, raffle.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, raffle.PublicID, got.PublicID)
	assert.Len(t, publisher.flushed, 1)
}

func TestUnitOfWork_RollbackDiscardsEverything(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	organizer := testutil.CreateTestOrganizer("treasurer@example.com")
	require.NoError(t, NewOrganizerRepository(testDB.DB).Create(ctx, organizer))

	publisher := &recordingPublisher{}
	factory := NewUnitOfWorkFactory(testDB.DB, func() interfaces.TransactionalEventPublisher {
		return publisher
	})

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	raffle := testutil.CreateTestRaffle(organizer.ID, uuid.NewString())
	require.NoError(t, uow.RaffleRepository().Create(ctx, raffle))
	require.NoError(t, uow.EventBus().Publish(events.RaffleActivatedEvent{
		RaffleID: raffle.ID,
		PublicID: raffle.PublicID,
	}))

	require.NoError(t, uow.Rollback())

	got, err := NewRaffleRepository(testDB.DB).GetByID(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, publisher.flushed)
	assert.Equal(t, 1, publisher.discarded)
}

func TestUnitOfWork_BeginTwiceFails(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	factory := NewUnitOfWorkFactory(testDB.DB, func() interfaces.TransactionalEventPublisher {
		return &recordingPublisher{}
	})

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback() }()

	assert.Error(t, uow.Begin(ctx))
}

func TestUnitOfWork_TransactionIsolation(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	organizer := testutil.CreateTestOrganizer("treasurer@example.com")
	require.NoError(t, NewOrganizerRepository(testDB.DB).Create(ctx, organizer))

	factory := NewUnitOfWorkFactory(testDB.DB, func() interfaces.TransactionalEventPublisher {
		return &recordingPublisher{}
	})

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	raffle := testutil.CreateTestRaffle(organizer.ID, uuid.NewString())
	require.NoError(t, uow.RaffleRepository().Create(ctx, raffle))

	// Uncommitted rows are invisible outside the transaction
	outside, err := NewRaffleRepository(testDB.DB).GetByID(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Nil(t, outside)

	require.NoError(t, uow.Commit())
}

func TestUnitOfWork_CommitWithoutBeginFails(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, func() interfaces.TransactionalEventPublisher {
		return &recordingPublisher{}
	})

	uow := factory.Create()
	assert.Error(t, uow.Commit())
	// Rollback without begin is a no-op
	assert.NoError(t, uow.Rollback())
}
