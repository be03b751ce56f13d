package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"raffler/domain/entities"
)

// venmoHandlePattern matches valid Venmo usernames: 5-30 characters,
// alphanumeric plus underscores and hyphens.
var venmoHandlePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{5,30}$`)

// VenmoNotePrefix brands each payment note. Organizers match incoming
// Venmo payments to tickets by this note, so the prefix is part of the
// payment contract, not cosmetics.
const VenmoNotePrefix = "FIDDYFIDDY-"

// RoutePayment decides which party receives a ticket's payment. The rule
// is pure and deterministic:
//
//  1. The first ticket always pays the organizer (seed money),
//     regardless of the prime.
//  2. Every ownerPrime-th ticket pays the platform owner, giving the
//     owner a predictable ~1/ownerPrime share of gross revenue.
//  3. Everything else pays the organizer.
//
// It is evaluated once per ticket at creation and the result is stored,
// so changing the prime mid-raffle never alters past tickets.
func RoutePayment(sequenceNumber, ownerPrime int, ownerHandle, organizerHandle string) (string, entities.PaymentRecipient) {
	if sequenceNumber == 1 {
		return organizerHandle, entities.RecipientOrganizer
	}
	if ownerPrime >= 2 && sequenceNumber%ownerPrime == 0 {
		return ownerHandle, entities.RecipientOwner
	}
	return organizerHandle, entities.RecipientOrganizer
}

// VenmoLink builds the pre-filled Venmo deep link for a ticket purchase.
// The core never moves money; this is the only payment artifact it
// produces.
func VenmoLink(recipient string, amountCents int64, ticketNumber string) string {
	note := url.QueryEscape(VenmoNotePrefix + ticketNumber)
	return fmt.Sprintf("https://venmo.com/%s?txn=pay&amount=%d.%02d&note=%s&audience=private",
		recipient, amountCents/100, amountCents%100, note)
}

// ValidateVenmoHandle strips a leading @ and checks the handle format.
func ValidateVenmoHandle(handle string) (string, error) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if !venmoHandlePattern.MatchString(cleaned) {
		return "", entities.ErrInvalidVenmoHandle
	}
	return cleaned, nil
}

// OwnerSharePercent returns the owner's expected share of gross revenue
// implied by the routing prime, as a percentage.
func OwnerSharePercent(prime int) float64 {
	if prime < 2 {
		return 0
	}
	return 100.0 / float64(prime)
}
