package testutil

import (
	"time"

	"raffler/domain/entities"
)

// CreateTestOrganizer creates an approved organizer with default values
func CreateTestOrganizer(email string) *entities.Organizer {
	return &entities.Organizer{
		Email:       email,
		Name:        "Test Organizer",
		VenmoHandle: "test-organizer",
		Role:        entities.RoleOrganizer,
		Status:      entities.AccountStatusApproved,
		CreatedAt:   time.Now(),
	}
}

// CreateTestRaffle creates an active raffle owned by the organizer
func CreateTestRaffle(organizerID int64, publicID string) *entities.Raffle {
	return &entities.Raffle{
		PublicID:         publicID,
		OrganizerID:      organizerID,
		Name:             "Test Raffle",
		TicketPrefix:     "TEST",
		TicketPriceCents: 500,
		MaxTickets:       240,
		OwnerPrime:       11,
		MinTickets:       11,
		Status:           entities.RaffleStatusActive,
		OrganizerVenmo:   "test-organizer",
		CreatedAt:        time.Now(),
	}
}

// CreateTestTicket creates a pending ticket for the raffle
func CreateTestTicket(raffleID int64, sequence int) *entities.Ticket {
	now := time.Now()
	return &entities.Ticket{
		RaffleID:        raffleID,
		SequenceNumber:  sequence,
		TicketNumber:    entities.FormatTicketNumber("TEST", now, sequence),
		Status:          entities.TicketStatusPending,
		Recipient:       entities.RecipientOrganizer,
		RecipientHandle: "test-organizer",
		PlayerEmail:     "player@example.com",
		PlayerVenmo:     "player-venmo",
		CreatedAt:       now,
	}
}

// CreateVerifiedTicket creates a ticket already verified for drawing
func CreateVerifiedTicket(raffleID int64, sequence int) *entities.Ticket {
	ticket := CreateTestTicket(raffleID, sequence)
	now := time.Now()
	ticket.Status = entities.TicketStatusVerified
	ticket.VerifiedAt = &now
	return ticket
}
