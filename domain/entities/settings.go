package entities

// DefaultMaxRedraws bounds the redraw protocol when settings don't
// specify a limit.
const DefaultMaxRedraws = 3

// Settings holds platform-wide configuration. Read-only from the
// drawing core's perspective.
type Settings struct {
	ID                int64  `db:"id"`
	MaxRedraws        int    `db:"max_redraws"`
	OwnerVenmo        string `db:"owner_venmo"`
	DefaultOwnerPrime int    `db:"default_owner_prime"`
}

// MaxRedrawsOrDefault returns the configured redraw cap, falling back to
// DefaultMaxRedraws when unset.
func (s *Settings) MaxRedrawsOrDefault() int {
	if s == nil || s.MaxRedraws <= 0 {
		return DefaultMaxRedraws
	}
	return s.MaxRedraws
}

// OwnerPrimeOrDefault returns the routing prime for new raffles
func (s *Settings) OwnerPrimeOrDefault() int {
	if s == nil || s.DefaultOwnerPrime < 2 {
		return DefaultOwnerPrime
	}
	return s.DefaultOwnerPrime
}
