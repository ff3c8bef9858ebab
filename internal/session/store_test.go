package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"homesale_backend/internal/lead/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// storeUnderTest runs the shared contract suite against any Store.
func storeUnderTest(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	state, err := store.Create(ctx, "address")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if state.ID == "" {
		t.Fatal("expected a session id")
	}
	if state.Step != "address" {
		t.Fatalf("expected initial step address, got %q", state.Step)
	}

	updated, err := store.Update(ctx, state.ID, func(s *State) error {
		if err := s.Lead.SetField(domain.FieldAddress, "123 Main St"); err != nil {
			return err
		}
		s.Step = "owner"
		s.SyncState = s.SyncState.Advance(domain.SyncPartial)
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Lead.Address != "123 Main St" || updated.Step != "owner" {
		t.Fatalf("mutation not applied: %+v", updated)
	}
	if updated.SyncState != domain.SyncPartial {
		t.Fatalf("expected PARTIAL sync state, got %s", updated.SyncState)
	}

	fetched, err := store.Get(ctx, state.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Lead.Address != "123 Main St" {
		t.Fatalf("state not persisted, got %+v", fetched.Lead)
	}

	// A failing mutation leaves the stored state untouched.
	if _, err := store.Update(ctx, state.ID, func(s *State) error {
		s.Step = "result"
		return errors.New("boom")
	}); err == nil {
		t.Fatal("expected mutation error to propagate")
	}
	fetched, err = store.Get(ctx, state.ID)
	if err != nil {
		t.Fatalf("get after failed update: %v", err)
	}
	if fetched.Step != "owner" {
		t.Fatalf("failed mutation must not persist, got step %q", fetched.Step)
	}

	if err := store.Delete(ctx, state.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, state.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if _, err := store.Update(ctx, "missing", func(*State) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestMemoryStore_Contract(t *testing.T) {
	storeUnderTest(t, NewMemoryStore(time.Minute))
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	state, err := store.Create(context.Background(), "address")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(context.Background(), state.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}

	store.sweep()
	store.mu.RLock()
	remaining := len(store.entries)
	store.mu.RUnlock()
	if remaining != 0 {
		t.Fatalf("expected janitor sweep to clear entries, %d left", remaining)
	}
}

func TestRedisStore_Contract(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	storeUnderTest(t, NewRedisStore(client, time.Minute))
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, time.Minute)
	state, err := store.Create(context.Background(), "address")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(context.Background(), state.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}
