package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tpham/study-tracker/internal/model"
)

// saveTimeout bounds a single background persistence write.
const saveTimeout = 5 * time.Second

// Gateway is the persistence boundary the store writes through.
// Loading is total: implementations return defaults for anything
// missing or corrupt rather than failing.
type Gateway interface {
	LoadState(ctx context.Context) model.AppState
	SaveState(ctx context.Context, s model.AppState) error
}

// Listener observes every state transition produced by Dispatch.
type Listener func(model.AppState)

// Store holds the single AppState and is the only mutation path into
// it. Dispatch applies the reducer, notifies subscribers with the new
// state, and kicks off a best-effort persistence write that is never
// awaited: a failed save is logged and dropped, the in-memory state
// stays the source of truth for the life of the process.
type Store struct {
	mu        sync.Mutex
	state     model.AppState
	gateway   Gateway
	log       *zap.Logger
	listeners map[int]Listener
	nextSub   int
}

// New creates a store starting from the default empty state. The
// gateway may be nil, in which case nothing is persisted.
func New(gw Gateway, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		state:     model.NewAppState(),
		gateway:   gw,
		log:       log,
		listeners: make(map[int]Listener),
	}
}

// State returns the current state snapshot.
func (st *Store) State() model.AppState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Dispatch applies the action and returns the resulting state. Actions
// are serialized; each one observes the state left by the previous.
func (st *Store) Dispatch(action Action) model.AppState {
	st.mu.Lock()
	next := Reduce(st.state, action)
	st.state = next
	listeners := make([]Listener, 0, len(st.listeners))
	for _, l := range st.listeners {
		listeners = append(listeners, l)
	}
	st.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}

	if st.gateway != nil {
		go st.persist(next)
	}
	return next
}

// Subscribe registers a listener for state changes and returns its
// unsubscribe function.
func (st *Store) Subscribe(l Listener) func() {
	st.mu.Lock()
	id := st.nextSub
	st.nextSub++
	st.listeners[id] = l
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.listeners, id)
		st.mu.Unlock()
	}
}

// Load reads the persisted state and dispatches it as a single
// LoadState action, returning the resulting state. Callers run this
// once in a goroutine at startup; until it completes the app runs on
// the default state.
func (st *Store) Load(ctx context.Context) model.AppState {
	if st.gateway == nil {
		return st.State()
	}
	return st.Dispatch(LoadState{State: st.gateway.LoadState(ctx)})
}

func (st *Store) persist(s model.AppState) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := st.gateway.SaveState(ctx, s); err != nil {
		st.log.Warn("saving state", zap.Error(err))
	}
}
