package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"shopadmin/internal/backend"
	"shopadmin/internal/service"
)

var (
	// ErrNoSession запрос без действующей сессии консоли
	ErrNoSession = errors.New("no console session")
	// ErrNoView список заказов ещё не активирован в этой сессии
	ErrNoView = errors.New("order view not active")
)

// consoleSession binds one operator's backend session to their order view.
type consoleSession struct {
	id      string
	backend *backend.Session

	mu       sync.Mutex
	view     *service.OrderListSynchronizer
	lastSeen time.Time
}

// openView replaces the current view with a fresh one.
func (cs *consoleSession) openView(log *slog.Logger) *service.OrderListSynchronizer {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.view != nil {
		cs.view.Close()
	}
	cs.view = service.NewOrderListSynchronizer(cs.backend, log.With("session_id", cs.id))
	return cs.view
}

func (cs *consoleSession) closeView() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.view != nil {
		cs.view.Close()
		cs.view = nil
	}
}

func (cs *consoleSession) activeView() (*service.OrderListSynchronizer, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.view == nil {
		return nil, ErrNoView
	}
	return cs.view, nil
}

// SessionStore сессии консоли в памяти процесса по ключу X-Session-Id
type SessionStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*consoleSession
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl, now: time.Now, sessions: make(map[string]*consoleSession)}
}

func (st *SessionStore) Create(b *backend.Session) *consoleSession {
	cs := &consoleSession{id: uuid.NewString(), backend: b, lastSeen: st.now()}
	st.mu.Lock()
	st.sessions[cs.id] = cs
	st.mu.Unlock()
	return cs
}

// Get returns a live session and refreshes its idle timer.
func (st *SessionStore) Get(id string) (*consoleSession, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	cs, ok := st.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	now := st.now()
	if st.ttl > 0 && now.Sub(cs.lastSeen) > st.ttl {
		delete(st.sessions, id)
		cs.closeView()
		return nil, ErrNoSession
	}
	cs.lastSeen = now
	return cs, nil
}

func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	cs, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		cs.closeView()
	}
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the ttl and returns how many went.
// A non-positive ttl means sessions never expire.
func (st *SessionStore) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	st.mu.Lock()
	now := st.now()
	var expired []*consoleSession
	for id, cs := range st.sessions {
		if now.Sub(cs.lastSeen) > st.ttl {
			expired = append(expired, cs)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()
	for _, cs := range expired {
		cs.closeView()
	}
	return len(expired)
}

// RunJanitor sweeps every interval until ctx is done.
func (st *SessionStore) RunJanitor(ctx context.Context, interval time.Duration, log *slog.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := st.Sweep(); n > 0 {
				log.Info("expired console sessions", "count", n)
			}
		}
	}
}
