package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"homesale_backend/internal/lead/domain"
)

// MemoryStore is the default single-instance session store: a TTL'd map with
// a janitor goroutine sweeping expired entries.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory store whose sessions expire ttl after
// their last update.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// StartJanitor sweeps expired sessions until ctx is done.
func (s *MemoryStore) StartJanitor(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *MemoryStore) Create(_ context.Context, initialStep string) (*State, error) {
	now := s.now()
	state := State{
		ID:        uuid.NewString(),
		Step:      initialStep,
		SyncState: domain.SyncNoRecord,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.entries[state.ID] = &memoryEntry{state: state, expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()

	copied := state
	return &copied, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}

	copied := entry.state
	return &copied, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, mutate func(*State) error) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok || s.now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}

	updated := entry.state
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.now()

	entry.state = updated
	entry.expiresAt = updated.UpdatedAt.Add(s.ttl)

	copied := updated
	return &copied, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) sweep() {
	now := s.now()
	s.mu.Lock()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()
}

var _ Store = (*MemoryStore)(nil)
