package timer

import (
	"testing"
	"time"

	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/internal/state"
)

func newTestRunner(t *testing.T) (*Runner, *state.Store) {
	t.Helper()
	st := state.New(nil, nil)
	st.Dispatch(state.AddSession{Session: model.Session{ID: "s1", Date: "2026-03-01"}})

	r := New(st)
	r.interval = 5 * time.Millisecond
	t.Cleanup(r.StopAll)
	return r, st
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestRunnerTicksIncrementTimer(t *testing.T) {
	t.Parallel()
	r, st := newTestRunner(t)

	r.Start("s1")
	if !r.Running("s1") {
		t.Fatalf("expected runner to report running")
	}

	waitFor(t, func() bool {
		return st.State().ActiveTimers["s1"] >= 3
	})

	r.Stop("s1")
	if r.Running("s1") {
		t.Fatalf("expected runner stopped")
	}

	// No more ticks arrive after stop.
	frozen := st.State().ActiveTimers["s1"]
	time.Sleep(30 * time.Millisecond)
	if got := st.State().ActiveTimers["s1"]; got != frozen {
		t.Fatalf("timer advanced after stop: %d -> %d", frozen, got)
	}
}

func TestRunnerStartIsIdempotent(t *testing.T) {
	t.Parallel()
	r, st := newTestRunner(t)

	r.Start("s1")
	r.Start("s1")

	// With a single loop, elapsed seconds stay close to wall ticks; a
	// doubled loop would advance twice per interval. Give it a few
	// ticks and verify only one loop registered.
	waitFor(t, func() bool {
		return st.State().ActiveTimers["s1"] >= 2
	})
	r.Stop("s1")
	if r.Running("s1") {
		t.Fatalf("expected single registration cleared by one stop")
	}
}

func TestRunnerUpdatesDurationOnMinuteBoundary(t *testing.T) {
	t.Parallel()
	r, st := newTestRunner(t)

	// Pre-load the timer just below a minute so the next tick crosses
	// the boundary.
	st.Dispatch(state.SetTimer{SessionID: "s1", Seconds: 59})

	r.Start("s1")
	waitFor(t, func() bool {
		return st.State().Sessions[0].Duration == 1
	})
	r.Stop("s1")

	if secs := st.State().ActiveTimers["s1"]; secs < 60 {
		t.Fatalf("expected timer past the minute boundary, got %d", secs)
	}
}

func TestRunnerSelfStopsWhenSessionDeleted(t *testing.T) {
	t.Parallel()
	r, st := newTestRunner(t)

	r.Start("s1")
	waitFor(t, func() bool {
		return st.State().ActiveTimers["s1"] >= 1
	})

	st.Dispatch(state.DeleteSession{SessionID: "s1"})

	waitFor(t, func() bool {
		return !r.Running("s1")
	})
}

func TestStopAll(t *testing.T) {
	t.Parallel()
	r, st := newTestRunner(t)
	st.Dispatch(state.AddSession{Session: model.Session{ID: "s2", Date: "2026-03-02"}})

	r.Start("s1")
	r.Start("s2")
	r.StopAll()

	if r.Running("s1") || r.Running("s2") {
		t.Fatalf("expected all loops stopped")
	}
}
