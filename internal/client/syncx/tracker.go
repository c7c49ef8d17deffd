// Package syncx implements the reconciliation core that keeps the local item
// collection consistent with the remote authoritative store: a provisional-id
// tracker protecting not-yet-confirmed local writes, and the merge of a fresh
// remote snapshot with local state.
package syncx

import (
	"sync"
	"time"
)

// Tracker records which item ids are provisional: written locally so recently
// that a remote read may predate the write becoming visible. Marks expire
// after a fixed TTL regardless of push outcome, so local state is never
// trusted over the remote indefinitely. Marks live in memory only.
type Tracker struct {
	mu    sync.Mutex
	ttl   time.Duration
	marks map[string]time.Time // id -> expiry instant
	now   func() time.Time
}

// NewTracker returns a tracker whose marks expire after ttl.
func NewTracker(ttl time.Duration) *Tracker {
	return NewTrackerWithClock(ttl, time.Now)
}

// NewTrackerWithClock is NewTracker with an injected clock, so expiry is
// testable without sleeping.
func NewTrackerWithClock(ttl time.Duration, now func() time.Time) *Tracker {
	return &Tracker{ttl: ttl, marks: make(map[string]time.Time), now: now}
}

// Mark records id as provisional, resetting its expiry if already marked.
func (t *Tracker) Mark(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.marks[id] = t.now().Add(t.ttl)
}

// Clear drops the mark for id, typically because a remote snapshot confirmed
// the write.
func (t *Tracker) Clear(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.marks, id)
}

// IsProvisional reports whether id carries an unexpired mark.
func (t *Tracker) IsProvisional(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	expiry, ok := t.marks[id]
	if !ok {
		return false
	}
	if !t.now().Before(expiry) {
		delete(t.marks, id)
		return false
	}
	return true
}

// Sweep removes every expired mark.
func (t *Tracker) Sweep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	for id, expiry := range t.marks {
		if !now.Before(expiry) {
			delete(t.marks, id)
		}
	}
}

// Len returns the number of live marks. Mainly useful in tests.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.marks)
}
