// Package session holds the wizard's per-visitor form state. State is
// volatile by contract: it expires with its TTL and is never written to
// durable storage. A fresh session always starts an unrelated lead.
package session

import (
	"context"
	"errors"
	"time"

	"homesale_backend/internal/lead/domain"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// State is everything one wizard session carries between steps.
type State struct {
	ID        string           `json:"id"`
	Step      string           `json:"step"`
	Lead      domain.Lead      `json:"lead"`
	SyncState domain.SyncState `json:"syncState"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Store is the session state contract. Update applies a single mutation
// function under the store's consistency model; per the flow's concurrency
// model there is never more than one writer per session (one browser tab,
// sequential input), so no cross-call locking is provided.
type Store interface {
	Create(ctx context.Context, initialStep string) (*State, error)
	Get(ctx context.Context, id string) (*State, error)
	Update(ctx context.Context, id string, mutate func(*State) error) (*State, error)
	Delete(ctx context.Context, id string) error
}
