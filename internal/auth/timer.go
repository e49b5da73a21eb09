package auth

import (
	"sync"
	"time"
)

// ExpiryTimer runs a callback when the session lifetime elapses. It is an
// explicit, cancellable handle: Schedule replaces any pending callback and
// Cancel stops it without firing.
type ExpiryTimer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// NewExpiryTimer creates an idle expiry timer.
func NewExpiryTimer() *ExpiryTimer {
	return &ExpiryTimer{}
}

// Schedule arranges for onExpire to run after d, replacing any previously
// scheduled callback. The callback runs at most once per Schedule call.
func (t *ExpiryTimer) Schedule(d time.Duration, onExpire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(d, onExpire)
}

// Cancel stops the pending callback, if any.
func (t *ExpiryTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
