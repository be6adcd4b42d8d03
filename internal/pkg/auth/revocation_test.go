package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationList(t *testing.T) {
	ctx := context.Background()
	list := NewMemoryRevocationList()
	now := time.Now()
	list.now = func() time.Time { return now }

	revoked, err := list.Revoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, list.Revoke(ctx, "a", now.Add(time.Hour)))
	require.NoError(t, list.Revoke(ctx, "expired", now.Add(-time.Second)))

	revoked, _ = list.Revoked(ctx, "a")
	assert.True(t, revoked)
	revoked, _ = list.Revoked(ctx, "expired")
	assert.False(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, _ = list.Revoked(ctx, "a")
	assert.False(t, revoked, "entries expire with the token")

	require.NoError(t, list.Revoke(ctx, "b", now.Add(time.Minute)))
	list.mu.Lock()
	_, stale := list.items["a"]
	list.mu.Unlock()
	assert.False(t, stale, "expired entries are pruned on revoke")
}

func TestNewRedisRevocationListInvalidURL(t *testing.T) {
	_, err := NewRedisRevocationList("://bad")
	assert.Error(t, err)
}

func TestRedisRevocationList(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	list, err := NewRedisRevocationList(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = list.Close() })

	ctx := context.Background()
	id := uuid.NewString()

	revoked, err := list.Revoked(ctx, id)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, list.Revoke(ctx, id, time.Now().Add(time.Minute)))
	revoked, err = list.Revoked(ctx, id)
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, list.Revoke(ctx, "past-"+id, time.Now().Add(-time.Minute)))
	revoked, err = list.Revoked(ctx, "past-"+id)
	require.NoError(t, err)
	assert.False(t, revoked)
}
