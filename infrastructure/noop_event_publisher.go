package infrastructure

import (
	"context"

	"raffler/domain/events"
	"raffler/domain/interfaces"
)

// NoopEventPublisher discards all events. Used when NATS is not
// configured and in tests that don't care about events.
type NoopEventPublisher struct{}

// NewNoopEventPublisher creates a new no-op event publisher
func NewNoopEventPublisher() *NoopEventPublisher {
	return &NoopEventPublisher{}
}

// Publish discards the event
func (p *NoopEventPublisher) Publish(event events.Event) error {
	return nil
}

// Flush does nothing
func (p *NoopEventPublisher) Flush(ctx context.Context) error {
	return nil
}

// Discard does nothing
func (p *NoopEventPublisher) Discard() {}

var _ interfaces.TransactionalEventPublisher = (*NoopEventPublisher)(nil)
