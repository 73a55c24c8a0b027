package seeding

import "sync"

// eventLocks serializes writers per event. Different events never contend.
type eventLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the writer lock of eventID and returns its release func.
func (l *eventLocks) lock(eventID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[eventID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[eventID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
