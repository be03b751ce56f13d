package application

import (
	"sync"
)

// raffleLocks serializes operations per raffle ID. Draw, redraw,
// confirm and purchase all read counters and eligibility and then write
// derived state, so at most one such operation may be in flight per
// raffle. Operations on different raffles proceed concurrently.
type raffleLocks struct {
	mu    sync.Mutex
	locks map[int64]*raffleLock
}

type raffleLock struct {
	mu   sync.Mutex
	refs int
}

func newRaffleLocks() *raffleLocks {
	return &raffleLocks{
		locks: make(map[int64]*raffleLock),
	}
}

// Lock acquires the mutex for the given raffle ID and returns the
// matching unlock function.
func (l *raffleLocks) Lock(raffleID int64) func() {
	l.mu.Lock()
	entry, ok := l.locks[raffleID]
	if !ok {
		entry = &raffleLock{}
		l.locks[raffleID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, raffleID)
		}
		l.mu.Unlock()
	}
}
