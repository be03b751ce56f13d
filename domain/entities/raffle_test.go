package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxTicketsForPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		priceCents int64
		want       int
	}{
		{
			name:       "$5 tickets - 240 cap",
			priceCents: 500,
			want:       240,
		},
		{
			name:       "$10 tickets - 120 cap",
			priceCents: 1000,
			want:       120,
		},
		{
			name:       "$7 tickets - floor division",
			priceCents: 700,
			want:       171, // 120000 / 700 = 171.43
		},
		{
			name:       "$1200 ticket - single ticket",
			priceCents: 120000,
			want:       1,
		},
		{
			name:       "price above gross cap - zero tickets",
			priceCents: 130000,
			want:       0,
		},
		{
			name:       "zero price - zero tickets",
			priceCents: 0,
			want:       0,
		},
		{
			name:       "negative price - zero tickets",
			priceCents: -500,
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MaxTicketsForPrice(tt.priceCents)
			assert.Equal(t, tt.want, got)

			// The derived cap must never let gross sales exceed the limit
			if tt.priceCents > 0 {
				assert.LessOrEqual(t, int64(got)*tt.priceCents, MaxGrossCents)
			}
		})
	}
}

func TestRaffle_JackpotCents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ticketsSold int
		priceCents  int64
		wantGross   int64
		wantJackpot int64
	}{
		{
			name:        "no tickets sold",
			ticketsSold: 0,
			priceCents:  500,
			wantGross:   0,
			wantJackpot: 0,
		},
		{
			name:        "even gross halves cleanly",
			ticketsSold: 40,
			priceCents:  500,
			wantGross:   20000,
			wantJackpot: 10000,
		},
		{
			name:        "odd gross rounds down",
			ticketsSold: 3,
			priceCents:  333,
			wantGross:   999,
			wantJackpot: 499,
		},
		{
			name:        "full sellout at $5 - $600 jackpot",
			ticketsSold: 240,
			priceCents:  500,
			wantGross:   120000,
			wantJackpot: 60000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raffle := &Raffle{
				TicketsSold:      tt.ticketsSold,
				TicketPriceCents: tt.priceCents,
			}

			assert.Equal(t, tt.wantGross, raffle.GrossCents())
			assert.Equal(t, tt.wantJackpot, raffle.JackpotCents())
		})
	}
}

func TestRaffle_CanSellTickets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      RaffleStatus
		ticketsSold int
		maxTickets  int
		want        bool
	}{
		{
			name:        "active with capacity",
			status:      RaffleStatusActive,
			ticketsSold: 10,
			maxTickets:  240,
			want:        true,
		},
		{
			name:        "active but sold out",
			status:      RaffleStatusActive,
			ticketsSold: 240,
			maxTickets:  240,
			want:        false,
		},
		{
			name:        "draft raffle never sells",
			status:      RaffleStatusDraft,
			ticketsSold: 0,
			maxTickets:  240,
			want:        false,
		},
		{
			name:        "drawing freezes sales",
			status:      RaffleStatusDrawing,
			ticketsSold: 50,
			maxTickets:  240,
			want:        false,
		},
		{
			name:        "complete raffle never sells",
			status:      RaffleStatusComplete,
			ticketsSold: 50,
			maxTickets:  240,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raffle := &Raffle{
				Status:      tt.status,
				TicketsSold: tt.ticketsSold,
				MaxTickets:  tt.maxTickets,
			}

			assert.Equal(t, tt.want, raffle.CanSellTickets())
		})
	}
}

func TestRaffle_Activate(t *testing.T) {
	t.Parallel()

	t.Run("draft activates", func(t *testing.T) {
		t.Parallel()

		raffle := &Raffle{Status: RaffleStatusDraft}
		require.NoError(t, raffle.Activate())
		assert.Equal(t, RaffleStatusActive, raffle.Status)
	})

	t.Run("non-draft states fail", func(t *testing.T) {
		t.Parallel()

		for _, status := range []RaffleStatus{RaffleStatusActive, RaffleStatusDrawing, RaffleStatusComplete, RaffleStatusCancelled} {
			raffle := &Raffle{Status: status}
			err := raffle.Activate()

			var stateErr *InvalidStateError
			require.ErrorAs(t, err, &stateErr)
			assert.Equal(t, status, stateErr.Status)
			assert.Equal(t, status, raffle.Status)
		}
	})
}

func TestRaffle_BeginDrawing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     RaffleStatus
		wantErr    bool
		wantStatus RaffleStatus
	}{
		{
			name:       "active transitions to drawing",
			status:     RaffleStatusActive,
			wantStatus: RaffleStatusDrawing,
		},
		{
			name:       "already drawing is a no-op",
			status:     RaffleStatusDrawing,
			wantStatus: RaffleStatusDrawing,
		},
		{
			name:       "draft cannot draw",
			status:     RaffleStatusDraft,
			wantErr:    true,
			wantStatus: RaffleStatusDraft,
		},
		{
			name:       "complete cannot draw",
			status:     RaffleStatusComplete,
			wantErr:    true,
			wantStatus: RaffleStatusComplete,
		},
		{
			name:       "cancelled cannot draw",
			status:     RaffleStatusCancelled,
			wantErr:    true,
			wantStatus: RaffleStatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raffle := &Raffle{Status: tt.status}
			err := raffle.BeginDrawing()

			if tt.wantErr {
				var stateErr *InvalidStateError
				assert.ErrorAs(t, err, &stateErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStatus, raffle.Status)
		})
	}
}

func TestRaffle_Complete(t *testing.T) {
	t.Parallel()

	t.Run("drawing completes with winner recorded", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
		raffle := &Raffle{Status: RaffleStatusDrawing}

		require.NoError(t, raffle.Complete(42, now))

		assert.Equal(t, RaffleStatusComplete, raffle.Status)
		require.NotNil(t, raffle.WinningTicketID)
		assert.Equal(t, int64(42), *raffle.WinningTicketID)
		require.NotNil(t, raffle.DrawnAt)
		assert.Equal(t, now, *raffle.DrawnAt)
	})

	t.Run("double complete fails and preserves first winner", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		raffle := &Raffle{Status: RaffleStatusDrawing}
		require.NoError(t, raffle.Complete(42, now))

		err := raffle.Complete(99, now.Add(time.Minute))
		assert.ErrorIs(t, err, ErrAlreadyComplete)
		assert.Equal(t, int64(42), *raffle.WinningTicketID)
	})

	t.Run("active cannot complete without drawing", func(t *testing.T) {
		t.Parallel()

		raffle := &Raffle{Status: RaffleStatusActive}
		err := raffle.Complete(42, time.Now())

		var stateErr *InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
		assert.Nil(t, raffle.WinningTicketID)
	})
}

func TestRaffle_Cancel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  RaffleStatus
		wantErr error
	}{
		{
			name:   "draft cancels",
			status: RaffleStatusDraft,
		},
		{
			name:   "active cancels",
			status: RaffleStatusActive,
		},
		{
			name:    "complete never cancels",
			status:  RaffleStatusComplete,
			wantErr: ErrAlreadyComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raffle := &Raffle{Status: tt.status}
			err := raffle.Cancel()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, raffle.Status)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, RaffleStatusCancelled, raffle.Status)
			}
		})
	}

	t.Run("drawing cannot cancel", func(t *testing.T) {
		t.Parallel()

		raffle := &Raffle{Status: RaffleStatusDrawing}
		err := raffle.Cancel()

		var stateErr *InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
	})
}

func TestRaffle_CheckMinimumTickets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		enabled      bool
		minTickets   int
		ownerPrime   int
		ticketsSold  int
		wantErr      bool
		wantRequired int
	}{
		{
			name:        "gate disabled always passes",
			enabled:     false,
			minTickets:  100,
			ticketsSold: 0,
		},
		{
			name:        "gate satisfied",
			enabled:     true,
			minTickets:  20,
			ticketsSold: 20,
		},
		{
			name:         "gate fails below explicit minimum",
			enabled:      true,
			minTickets:   20,
			ticketsSold:  15,
			wantErr:      true,
			wantRequired: 20,
		},
		{
			name:         "zero minimum falls back to owner prime",
			enabled:      true,
			minTickets:   0,
			ownerPrime:   13,
			ticketsSold:  10,
			wantErr:      true,
			wantRequired: 13,
		},
		{
			name:         "no minimum or prime falls back to default",
			enabled:      true,
			minTickets:   0,
			ownerPrime:   0,
			ticketsSold:  5,
			wantErr:      true,
			wantRequired: DefaultOwnerPrime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raffle := &Raffle{
				MinTicketsEnabled: tt.enabled,
				MinTickets:        tt.minTickets,
				OwnerPrime:        tt.ownerPrime,
				TicketsSold:       tt.ticketsSold,
			}

			err := raffle.CheckMinimumTickets()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var belowMin *BelowMinimumError
			require.True(t, errors.As(err, &belowMin))
			assert.Equal(t, tt.wantRequired, belowMin.Required)
			assert.Equal(t, tt.ticketsSold, belowMin.Sold)
			assert.Equal(t, tt.wantRequired-tt.ticketsSold, belowMin.Shortfall())
		})
	}
}

func TestRaffle_TicketsRemaining(t *testing.T) {
	t.Parallel()

	raffle := &Raffle{MaxTickets: 240, TicketsSold: 100}
	assert.Equal(t, 140, raffle.TicketsRemaining())

	raffle.TicketsSold = 240
	assert.Equal(t, 0, raffle.TicketsRemaining())

	// Oversold data still reports zero rather than negative
	raffle.TicketsSold = 250
	assert.Equal(t, 0, raffle.TicketsRemaining())
}
