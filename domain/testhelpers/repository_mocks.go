package testhelpers

import (
	"context"

	"raffler/domain/entities"
	"raffler/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockRaffleRepository is a mock implementation of RaffleRepository
type MockRaffleRepository struct {
	mock.Mock
}

func (m *MockRaffleRepository) GetByID(ctx context.Context, id int64) (*entities.Raffle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Raffle), args.Error(1)
}

func (m *MockRaffleRepository) GetByPublicID(ctx context.Context, publicID string) (*entities.Raffle, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Raffle), args.Error(1)
}

func (m *MockRaffleRepository) Create(ctx context.Context, raffle *entities.Raffle) error {
	args := m.Called(ctx, raffle)
	return args.Error(0)
}

func (m *MockRaffleRepository) Update(ctx context.Context, raffle *entities.Raffle) error {
	args := m.Called(ctx, raffle)
	return args.Error(0)
}

func (m *MockRaffleRepository) ListByOrganizer(ctx context.Context, organizerID int64) ([]*entities.Raffle, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Raffle), args.Error(1)
}

// MockTicketRepository is a mock implementation of TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id int64) (*entities.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByTicketNumber(ctx context.Context, ticketNumber string) (*entities.Ticket, error) {
	args := m.Called(ctx, ticketNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *entities.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) Update(ctx context.Context, ticket *entities.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) EligibleTickets(ctx context.Context, raffleID int64) ([]*entities.Ticket, error) {
	args := m.Called(ctx, raffleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) ListByRaffle(ctx context.Context, raffleID int64) ([]*entities.Ticket, error) {
	args := m.Called(ctx, raffleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ticket), args.Error(1)
}

// MockDrawLogRepository is a mock implementation of DrawLogRepository
type MockDrawLogRepository struct {
	mock.Mock
}

func (m *MockDrawLogRepository) Append(ctx context.Context, entry *entities.DrawLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockDrawLogRepository) CountByRaffle(ctx context.Context, raffleID int64) (int, error) {
	args := m.Called(ctx, raffleID)
	return args.Int(0), args.Error(1)
}

func (m *MockDrawLogRepository) ListByRaffle(ctx context.Context, raffleID int64) ([]*entities.DrawLogEntry, error) {
	args := m.Called(ctx, raffleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DrawLogEntry), args.Error(1)
}

// MockOrganizerRepository is a mock implementation of OrganizerRepository
type MockOrganizerRepository struct {
	mock.Mock
}

func (m *MockOrganizerRepository) GetByID(ctx context.Context, id int64) (*entities.Organizer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Organizer), args.Error(1)
}

func (m *MockOrganizerRepository) GetByEmail(ctx context.Context, email string) (*entities.Organizer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Organizer), args.Error(1)
}

func (m *MockOrganizerRepository) Create(ctx context.Context, organizer *entities.Organizer) error {
	args := m.Called(ctx, organizer)
	return args.Error(0)
}

func (m *MockOrganizerRepository) UpdateStatus(ctx context.Context, id int64, status entities.AccountStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*entities.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Settings), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyWinner(ctx context.Context, ticket *entities.Ticket, raffle *entities.Raffle) error {
	args := m.Called(ctx, ticket, raffle)
	return args.Error(0)
}

func (m *MockNotifier) NotifyPayoutDue(ctx context.Context, organizer *entities.Organizer, raffle *entities.Raffle, ticket *entities.Ticket) error {
	args := m.Called(ctx, organizer, raffle, ticket)
	return args.Error(0)
}

func (m *MockNotifier) NotifyPlayersOfResult(ctx context.Context, raffle *entities.Raffle, drawLog []*entities.DrawLogEntry, winningTicket *entities.Ticket) error {
	args := m.Called(ctx, raffle, drawLog, winningTicket)
	return args.Error(0)
}
