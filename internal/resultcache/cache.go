// Package resultcache stores completed validation results for the bulk
// scheduler. The default backend is the in-process TTL cache; a Redis
// backend is available for deployments that want cache hits shared across
// instances. Either way the engine stays stateless: entries are TTL-bounded
// result snapshots, never durable state.
package resultcache

import (
	"context"
	"time"

	"github.com/jaainil/vivid-valid/internal/ttlcache"
	"github.com/jaainil/vivid-valid/types"
)

// Cache is the bulk result cache interface.
type Cache interface {
	Get(ctx context.Context, email string) (*types.ValidationResult, bool)
	Put(ctx context.Context, email string, result *types.ValidationResult)
}

// Memory is the in-process backend.
type Memory struct {
	store *ttlcache.Cache[*types.ValidationResult]
}

// NewMemory creates an in-process cache whose entries live for ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{store: ttlcache.New[*types.ValidationResult](ttl)}
}

func (m *Memory) Get(_ context.Context, email string) (*types.ValidationResult, bool) {
	return m.store.Get(email)
}

func (m *Memory) Put(_ context.Context, email string, result *types.ValidationResult) {
	m.store.Put(email, result)
}
