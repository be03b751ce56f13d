package events

import "time"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeTicketPurchased   EventType = "ticket_purchased"
	EventTypeTicketVerified    EventType = "ticket_verified"
	EventTypeTicketRejected    EventType = "ticket_rejected"
	EventTypeTicketInvalidated EventType = "ticket_invalidated"
	EventTypeWinnerConfirmed   EventType = "winner_confirmed"
	EventTypeRaffleActivated   EventType = "raffle_activated"
	EventTypeRaffleCancelled   EventType = "raffle_cancelled"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// TicketPurchasedEvent represents a completed ticket purchase
type TicketPurchasedEvent struct {
	RaffleID       int64
	TicketID       int64
	SequenceNumber int
	TicketNumber   string
	Recipient      string
	AmountCents    int64
}

func (e TicketPurchasedEvent) Type() EventType {
	return EventTypeTicketPurchased
}

// TicketVerifiedEvent represents a ticket whose payment was verified
type TicketVerifiedEvent struct {
	RaffleID     int64
	TicketID     int64
	TicketNumber string
	VenmoTxnID   string
}

func (e TicketVerifiedEvent) Type() EventType {
	return EventTypeTicketVerified
}

// TicketRejectedEvent represents a ticket whose payment was rejected
type TicketRejectedEvent struct {
	RaffleID     int64
	TicketID     int64
	TicketNumber string
}

func (e TicketRejectedEvent) Type() EventType {
	return EventTypeTicketRejected
}

// TicketInvalidatedEvent represents a drawn ticket invalidated by a redraw
type TicketInvalidatedEvent struct {
	RaffleID     int64
	TicketID     int64
	TicketNumber string
	DrawNumber   int
	Reason       string
}

func (e TicketInvalidatedEvent) Type() EventType {
	return EventTypeTicketInvalidated
}

// WinnerConfirmedEvent represents a raffle reaching Complete
type WinnerConfirmedEvent struct {
	RaffleID     int64
	TicketID     int64
	TicketNumber string
	DrawNumber   int
	JackpotCents int64
	DrawnAt      time.Time
}

func (e WinnerConfirmedEvent) Type() EventType {
	return EventTypeWinnerConfirmed
}

// RaffleActivatedEvent represents a raffle opening for ticket sales
type RaffleActivatedEvent struct {
	RaffleID int64
	PublicID string
}

func (e RaffleActivatedEvent) Type() EventType {
	return EventTypeRaffleActivated
}

// RaffleCancelledEvent represents a raffle cancelled before completion
type RaffleCancelledEvent struct {
	RaffleID    int64
	TicketsSold int
}

func (e RaffleCancelledEvent) Type() EventType {
	return EventTypeRaffleCancelled
}
