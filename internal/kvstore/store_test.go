package kvstore

import (
	"context"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_SetGetDel(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	s := NewRedisStore(client, "test:")

	ctx := context.Background()

	// missing key is not an error
	_, found, err := s.Get(ctx, "nope")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Set(ctx, "k", "v"))
	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v", v)

	// prefix is applied to the actual redis key
	raw, err := m.Get("test:k")
	require.NoError(t, err)
	require.Equal(t, "v", raw)

	require.NoError(t, s.Del(ctx, "k"))
	_, found, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStore_SetGetDel(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "nope")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Set(ctx, "k", "v"))
	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v", v)
	require.Equal(t, 1, s.Len())

	require.NoError(t, s.Del(ctx, "k"))
	require.Equal(t, 0, s.Len())
}
