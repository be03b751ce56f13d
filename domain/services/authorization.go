package services

import (
	"raffler/domain/entities"
)

// authorizeManage checks raffle ownership: the platform owner may
// operate on any raffle, organizers only on their own.
func authorizeManage(actor *entities.Organizer, raffle *entities.Raffle) error {
	if actor == nil || !actor.CanManage(raffle) {
		return entities.ErrNotAuthorized
	}
	return nil
}

// authorizeDrawAction is the single policy gate for draw, redraw and
// confirm. Pending accounts may sell tickets but never execute
// drawings.
func authorizeDrawAction(actor *entities.Organizer, raffle *entities.Raffle) error {
	if actor == nil {
		return entities.ErrNotAuthorized
	}
	if actor.IsPending() {
		return entities.ErrPendingAccountForbidden
	}
	return authorizeManage(actor, raffle)
}
