package policy

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// accountLocks serializes operations per account. Entries are dropped when
// nobody holds or waits for them.
type accountLocks struct {
	mu      sync.Mutex
	entries map[common.Address]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocks() *accountLocks {
	return &accountLocks{entries: make(map[common.Address]*lockEntry)}
}

func (l *accountLocks) lock(account common.Address) {
	l.mu.Lock()
	e, ok := l.entries[account]
	if !ok {
		e = &lockEntry{}
		l.entries[account] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

func (l *accountLocks) unlock(account common.Address) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[account]
	if !ok {
		return
	}
	e.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, account)
	}
}
