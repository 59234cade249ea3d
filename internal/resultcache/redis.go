package resultcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jaainil/vivid-valid/types"
)

const keyPrefix = "vividvalid:bulk:"

// Redis is the go-redis backed cache. Failures degrade to cache misses;
// the cache is an optimization, never a dependency.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps an existing client. The caller owns the client lifecycle.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, email string) (*types.ValidationResult, bool) {
	data, err := r.client.Get(ctx, keyPrefix+email).Bytes()
	if err != nil {
		return nil, false
	}
	var result types.ValidationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (r *Redis) Put(ctx context.Context, email string, result *types.ValidationResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	r.client.Set(ctx, keyPrefix+email, data, r.ttl)
}
