package application

import (
	"context"

	"raffler/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository
// operations. One unit of work brackets exactly one draw, redraw,
// confirm or purchase so the read-modify-write sequence either fully
// persists or fully rolls back.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes buffered events
	Commit() error

	// Rollback rolls back the transaction and discards buffered events
	Rollback() error

	// Repository getters
	RaffleRepository() interfaces.RaffleRepository
	TicketRepository() interfaces.TicketRepository
	DrawLogRepository() interfaces.DrawLogRepository
	OrganizerRepository() interfaces.OrganizerRepository
	SettingsRepository() interfaces.SettingsRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
