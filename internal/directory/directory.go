package directory

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Lookup resolves an email address to a messaging-platform user ID.
type Lookup interface {
	LookupByEmail(ctx context.Context, email string) (string, error)
}

// Resolver caches email -> user ID lookups in Redis so repeated reminder
// batches don't hit the directory API for the same people every day.
// A nil Redis client disables caching and every Resolve goes to the Lookup.
type Resolver struct {
	lookup Lookup
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewResolver creates a Resolver. Prefix may be empty; TTL defaults to 24h.
func NewResolver(lookup Lookup, client *redis.Client, prefix string, ttl time.Duration) *Resolver {
	if prefix == "" {
		prefix = "memberid:"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Resolver{lookup: lookup, client: client, prefix: prefix, ttl: ttl}
}

func (r *Resolver) key(email string) string {
	return r.prefix + email
}

// Resolve returns the user ID for an email, serving from cache when possible.
// Cache errors fall through to a live lookup; they are never fatal.
func (r *Resolver) Resolve(ctx context.Context, email string) (string, error) {
	if r.client != nil {
		if id, err := r.client.Get(ctx, r.key(email)).Result(); err == nil && id != "" {
			return id, nil
		}
	}
	id, err := r.lookup.LookupByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if r.client != nil {
		_ = r.client.Set(ctx, r.key(email), id, r.ttl).Err()
	}
	return id, nil
}
