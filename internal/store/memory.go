// internal/store/memory.go
//
// In-memory registry of live game sessions.
// Live sessions are never written to disk; only finished-game summaries
// reach the database (see history.go).
//
// Characteristics:
//   - Entries keyed by session ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Each Live entry carries its own mutex that serializes every call into
//     its session, including timer continuations.
//   - Entries record when they were last used so idle ones can be swept.

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robalobadob/wordgrid/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("not found")

// Live wraps a session with its owner and the lock guarding it.
type Live struct {
	sync.Mutex
	Session   *game.Session
	OwnerID   string // user ID or anonymous ID
	Anonymous bool
	Daily     string // YYYY-MM-DD for daily boards, empty otherwise
	StartedAt time.Time

	lastSeen atomic.Int64 // unix nanos; read without the session lock
}

// ID returns the session ID.
func (l *Live) ID() string { return l.Session.ID() }

// Touch records activity on the session.
func (l *Live) Touch(at time.Time) { l.lastSeen.Store(at.UnixNano()) }

// LastSeen returns the time of the last recorded activity.
func (l *Live) LastSeen() time.Time { return time.Unix(0, l.lastSeen.Load()) }

// Store defines the registry interface for live sessions.
type Store interface {
	// Save adds or replaces a live session.
	Save(ctx context.Context, l *Live) error

	// Get retrieves a live session by ID.
	// Returns ErrNotFound if the session is unknown.
	Get(ctx context.Context, id string) (*Live, error)

	// Delete drops a live session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Idle lists sessions last seen before the given time.
	Idle(ctx context.Context, before time.Time) ([]*Live, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	games map[string]*Live
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*Live)}
}

func (m *memory) Save(ctx context.Context, l *Live) error {
	if l == nil || l.Session == nil {
		return errors.New("store: nil session")
	}
	if l.lastSeen.Load() == 0 {
		l.Touch(time.Now())
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[l.ID()] = l
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Live, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.games[id]; ok {
		return l, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) Idle(ctx context.Context, before time.Time) ([]*Live, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Live
	for _, l := range m.games {
		if l.LastSeen().Before(before) {
			out = append(out, l)
		}
	}
	return out, nil
}
