package services

import "sync"

// tableLocks hands out one mutex per table so that the availability check and
// the reservation insert run as a single critical section per table. Two
// concurrent bookings for the same table serialize here; bookings for
// different tables do not contend.
type tableLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newTableLocks() *tableLocks {
	return &tableLocks{locks: make(map[uint]*sync.Mutex)}
}

func (tl *tableLocks) forTable(tableID uint) *sync.Mutex {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	lock, ok := tl.locks[tableID]
	if !ok {
		lock = &sync.Mutex{}
		tl.locks[tableID] = lock
	}
	return lock
}
