// Package timer owns the per-session timer loops. The reducer only
// does timer bookkeeping; this package supplies the ticks.
package timer

import (
	"sync"
	"time"

	"github.com/tpham/study-tracker/internal/state"
)

// Runner manages one cancellable tick loop per running session. Each
// loop dispatches IncrementTimer once per second and UpdateDuration on
// every whole-minute boundary. Loops must be stopped explicitly when
// the owning screen goes away or the session is deleted; the reducer's
// no-op guards make a stray tick harmless but wasteful.
type Runner struct {
	store    *state.Store
	interval time.Duration

	mu      sync.Mutex
	cancels map[string]chan struct{}
}

// New creates a Runner dispatching into the given store.
func New(st *state.Store) *Runner {
	return &Runner{
		store:    st,
		interval: time.Second,
		cancels:  make(map[string]chan struct{}),
	}
}

// Start begins ticking for the session. No-op if already running.
func (r *Runner) Start(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cancels[sessionID]; ok {
		return
	}
	stop := make(chan struct{})
	r.cancels[sessionID] = stop
	go r.run(sessionID, stop)
}

// Stop cancels the session's tick loop. Idempotent.
func (r *Runner) Stop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stop, ok := r.cancels[sessionID]
	if !ok {
		return
	}
	delete(r.cancels, sessionID)
	close(stop)
}

// StopAll cancels every running tick loop.
func (r *Runner) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, stop := range r.cancels {
		delete(r.cancels, id)
		close(stop)
	}
}

// Running reports whether the session's tick loop is active.
func (r *Runner) Running(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.cancels[sessionID]
	return ok
}

// run is the tick loop for a single session.
func (r *Runner) run(sessionID string, stop <-chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			next := r.store.Dispatch(state.IncrementTimer{SessionID: sessionID})
			seconds, ok := next.ActiveTimers[sessionID]
			if !ok {
				// Session was deleted out from under us.
				r.Stop(sessionID)
				return
			}
			if seconds > 0 && seconds%60 == 0 {
				r.store.Dispatch(state.UpdateDuration{
					SessionID: sessionID,
					Minutes:   seconds / 60,
				})
			}
		}
	}
}
