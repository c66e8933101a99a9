package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *RedisStorage {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	s, err := NewRedisStorage(context.Background(), RedisConfig{Addr: mr.Addr(), KeyPrefix: "test:"})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func setupLocal(t *testing.T) *LocalStorage {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return s
}

// TestStorageBackends runs the same contract against every backend.
func TestStorageBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) Storage{
		"local": func(t *testing.T) Storage { return setupLocal(t) },
		"redis": func(t *testing.T) Storage { return setupRedis(t) },
	}

	for name, setup := range backends {
		t.Run(name, func(t *testing.T) {
			s := setup(t)
			ctx := context.Background()

			_, err := s.Get(ctx, "quotes/missing.json")
			assert.ErrorIs(t, err, ErrNotFound)

			ok, err := s.Exists(ctx, "quotes/q1.json")
			require.NoError(t, err)
			assert.False(t, ok)

			meta := &Metadata{ContentType: "application/json", QuoteID: "q1", UpdatedAt: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)}
			require.NoError(t, s.Put(ctx, "quotes/q1.json", []byte(`[1]`), meta))
			require.NoError(t, s.Put(ctx, "quotes/q1.json", []byte(`[1,2]`), meta))
			require.NoError(t, s.Put(ctx, "quotes/q2.json", []byte(`[]`), nil))
			require.NoError(t, s.Put(ctx, "other/x.json", []byte(`{}`), nil))

			got, err := s.Get(ctx, "quotes/q1.json")
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(got))

			gotMeta, err := s.GetMetadata(ctx, "quotes/q1.json")
			require.NoError(t, err)
			require.NotNil(t, gotMeta)
			assert.Equal(t, "q1", gotMeta.QuoteID)

			gotMeta, err = s.GetMetadata(ctx, "quotes/q2.json")
			require.NoError(t, err)
			assert.Nil(t, gotMeta)

			keys, err := s.List(ctx, "quotes/")
			require.NoError(t, err)
			assert.Equal(t, []string{"quotes/q1.json", "quotes/q2.json"}, keys)

			require.NoError(t, s.Delete(ctx, "quotes/q1.json"))
			require.NoError(t, s.Delete(ctx, "quotes/q1.json"))
			ok, err = s.Exists(ctx, "quotes/q1.json")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestLocalStorageKeyTraversal(t *testing.T) {
	s := setupLocal(t)
	path := s.keyToPath("../../etc/passwd")
	assert.Equal(t, s.GetBasePath()+"/etc/passwd", path)
}

func TestNewRedisStorageInvalidAddr(t *testing.T) {
	s, err := NewRedisStorage(context.Background(), RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	assert.Nil(t, s)
	assert.Error(t, err)
}

func TestComputeChecksum(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ComputeChecksum(nil))
}
