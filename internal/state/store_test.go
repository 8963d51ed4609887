package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tpham/study-tracker/internal/model"
)

// fakeGateway records saved states and serves a canned load.
type fakeGateway struct {
	mu     sync.Mutex
	loaded model.AppState
	saved  []model.AppState
	savedC chan struct{}
}

func newFakeGateway(loaded model.AppState) *fakeGateway {
	return &fakeGateway{loaded: loaded, savedC: make(chan struct{}, 16)}
}

func (g *fakeGateway) LoadState(context.Context) model.AppState {
	return g.loaded
}

func (g *fakeGateway) SaveState(_ context.Context, s model.AppState) error {
	g.mu.Lock()
	g.saved = append(g.saved, s)
	g.mu.Unlock()
	g.savedC <- struct{}{}
	return nil
}

func (g *fakeGateway) lastSaved(t *testing.T) model.AppState {
	t.Helper()
	select {
	case <-g.savedC:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for a save")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saved[len(g.saved)-1]
}

func TestDispatchAppliesReducerAndPersists(t *testing.T) {
	t.Parallel()
	gw := newFakeGateway(model.NewAppState())
	st := New(gw, nil)

	next := st.Dispatch(AddSession{Session: model.Session{ID: "s1", Date: "2026-03-01"}})

	if len(next.Sessions) != 1 {
		t.Fatalf("expected dispatched state returned, got %d sessions", len(next.Sessions))
	}
	if len(st.State().Sessions) != 1 {
		t.Fatalf("expected store state updated")
	}

	saved := gw.lastSaved(t)
	if len(saved.Sessions) != 1 || saved.Sessions[0].ID != "s1" {
		t.Fatalf("expected new state persisted, got %+v", saved.Sessions)
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	t.Parallel()
	st := New(nil, nil)

	var mu sync.Mutex
	var seen []int
	unsub := st.Subscribe(func(s model.AppState) {
		mu.Lock()
		seen = append(seen, len(s.Sessions))
		mu.Unlock()
	})

	st.Dispatch(AddSession{Session: model.Session{ID: "s1", Date: "2026-03-01"}})
	unsub()
	st.Dispatch(AddSession{Session: model.Session{ID: "s2", Date: "2026-03-02"}})

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != 1 {
		t.Fatalf("expected exactly one notification before unsubscribe, got %v", seen)
	}
}

func TestLoadDispatchesPersistedState(t *testing.T) {
	t.Parallel()
	persisted := model.NewAppState()
	persisted.Sessions = []model.Session{{ID: "old", Date: "2026-01-15"}}
	persisted.XP = 250

	gw := newFakeGateway(persisted)
	st := New(gw, nil)

	got := st.Load(context.Background())
	if len(got.Sessions) != 1 || got.Sessions[0].ID != "old" {
		t.Fatalf("expected persisted sessions loaded, got %+v", got.Sessions)
	}
	if got.XP != 250 {
		t.Fatalf("expected persisted XP loaded, got %d", got.XP)
	}
}

func TestNilGatewayStoreWorks(t *testing.T) {
	t.Parallel()
	st := New(nil, nil)

	st.Dispatch(AddSession{Session: model.Session{ID: "s1", Date: "2026-03-01"}})
	got := st.Load(context.Background())

	if len(got.Sessions) != 1 {
		t.Fatalf("expected in-memory state preserved without a gateway")
	}
}

func TestDispatchSerializesConcurrentActions(t *testing.T) {
	t.Parallel()
	st := New(nil, nil)
	st.Dispatch(AddSession{Session: model.Session{ID: "s1", Date: "2026-03-01"}})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Dispatch(IncrementTimer{SessionID: "s1"})
		}()
	}
	wg.Wait()

	if secs := st.State().ActiveTimers["s1"]; secs != 50 {
		t.Fatalf("expected 50 serialized increments, got %d", secs)
	}
}
