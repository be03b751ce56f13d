package entities

import (
	"time"
)

// OrganizerRole distinguishes the platform owner from regular organizers
type OrganizerRole string

const (
	RoleOwner     OrganizerRole = "Owner"
	RoleOrganizer OrganizerRole = "Organizer"
)

// AccountStatus represents the approval state of an organizer account
type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "Pending"
	AccountStatusApproved AccountStatus = "Approved"
)

// Organizer represents a raffle-creating account. Pending accounts may
// create raffles and sell tickets but may not execute drawings.
type Organizer struct {
	ID          int64         `db:"id"`
	Email       string        `db:"email"`
	Name        string        `db:"name"`
	VenmoHandle string        `db:"venmo_handle"`
	Role        OrganizerRole `db:"role"`
	Status      AccountStatus `db:"status"`
	CreatedAt   time.Time     `db:"created_at"`
}

// IsPending returns true while the account awaits approval
func (o *Organizer) IsPending() bool {
	return o.Status == AccountStatusPending
}

// IsPlatformOwner returns true for the platform operator account
func (o *Organizer) IsPlatformOwner() bool {
	return o.Role == RoleOwner
}

// CanManage returns true if the organizer may operate on the raffle
func (o *Organizer) CanManage(raffle *Raffle) bool {
	return o.IsPlatformOwner() || raffle.OrganizerID == o.ID
}
