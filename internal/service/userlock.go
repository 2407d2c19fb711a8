package service

import "sync"

// UserLocks hands out one mutex per account so that cart mutations and checkout
// for the same account run one at a time while different accounts proceed in parallel.
type UserLocks struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[int64]*userLock)}
}

// Lock blocks until the account's lock is held and returns the function releasing it.
func (l *UserLocks) Lock(userID int64) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.locks[userID]
	if !ok {
		entry = &userLock{}
		l.locks[userID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}

func (l *UserLocks) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
