package directory

import (
	"context"
	"fmt"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	calls int
	ids   map[string]string
}

func (f *fakeLookup) LookupByEmail(ctx context.Context, email string) (string, error) {
	f.calls++
	id, ok := f.ids[email]
	if !ok {
		return "", fmt.Errorf("no such user: %s", email)
	}
	return id, nil
}

func TestResolver_CachesLookups(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	lookup := &fakeLookup{ids: map[string]string{"alice@example.com": "U123"}}
	r := NewResolver(lookup, client, "test:id:", time.Hour)

	ctx := context.Background()
	id, err := r.Resolve(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "U123", id)
	require.Equal(t, 1, lookup.calls)

	// second resolve is served from cache
	id, err = r.Resolve(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "U123", id)
	require.Equal(t, 1, lookup.calls)

	// after TTL expiry the lookup runs again
	m.FastForward(2 * time.Hour)
	id, err = r.Resolve(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "U123", id)
	require.Equal(t, 2, lookup.calls)
}

func TestResolver_NoCacheClient(t *testing.T) {
	lookup := &fakeLookup{ids: map[string]string{"bob@example.com": "U456"}}
	r := NewResolver(lookup, nil, "", 0)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		id, err := r.Resolve(ctx, "bob@example.com")
		require.NoError(t, err)
		require.Equal(t, "U456", id)
	}
	require.Equal(t, 2, lookup.calls)
}

func TestResolver_LookupFailure(t *testing.T) {
	lookup := &fakeLookup{ids: map[string]string{}}
	r := NewResolver(lookup, nil, "", 0)

	_, err := r.Resolve(context.Background(), "ghost@example.com")
	require.Error(t, err)
}
