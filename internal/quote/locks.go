package quote

import "sync"

// quoteLocks serializes work on one quote without blocking other quotes.
// Entries are dropped once nobody holds or waits on them.
type quoteLocks struct {
	mu    sync.Mutex
	locks map[string]*quoteLock
}

type quoteLock struct {
	sync.Mutex
	refs int
}

func newQuoteLocks() *quoteLocks {
	return &quoteLocks{locks: make(map[string]*quoteLock)}
}

// lock blocks until quoteID is free and returns the matching unlock.
func (l *quoteLocks) lock(quoteID string) (unlock func()) {
	l.mu.Lock()
	ql, ok := l.locks[quoteID]
	if !ok {
		ql = &quoteLock{}
		l.locks[quoteID] = ql
	}
	ql.refs++
	l.mu.Unlock()

	ql.Lock()
	return func() {
		ql.Unlock()
		l.mu.Lock()
		ql.refs--
		if ql.refs == 0 {
			delete(l.locks, quoteID)
		}
		l.mu.Unlock()
	}
}

func (l *quoteLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
