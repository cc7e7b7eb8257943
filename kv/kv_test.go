package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the same contract against every backend.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "favorites", []byte(`[{"id":1}]`)))
	got, err := store.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(got))

	require.NoError(t, store.Set(ctx, "favorites", []byte(`[]`)))
	got, err = store.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, store.Delete(ctx, "favorites"))
	_, err = store.Get(ctx, "favorites")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is not an error
	assert.NoError(t, store.Delete(ctx, "favorites"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	value := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	got[1] = 'y'

	again, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestFileStore(t *testing.T) {
	store, err := NewFile(t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, store)
}

func TestFileStoreOddKeys(t *testing.T) {
	ctx := context.Background()
	store, err := NewFile(t.TempDir())
	require.NoError(t, err)

	key := "client:../../etc/passwd:session"
	require.NoError(t, store.Set(ctx, key, []byte("x")))
	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	conn := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer conn.Close()

	store := NewRedis(conn, "saborify:")
	exerciseStore(t, store)

	require.NoError(t, store.Set(context.Background(), "session", []byte("s")))
	assert.True(t, mr.Exists("saborify:session"))
}

func TestNamespaceIsolatesClients(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	a := Namespace(base, "client:a:")
	b := Namespace(base, "client:b:")

	require.NoError(t, a.Set(ctx, "session", []byte("alice")))
	_, err := b.Get(ctx, "session")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := base.Get(ctx, "client:a:session")
	require.NoError(t, err)
	assert.Equal(t, "alice", string(got))
	assert.Equal(t, 1, base.Len())

	exerciseStore(t, b)
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), Options{Backend: "etcd"})
	assert.Error(t, err)
}

func TestOpenMemoryAndFile(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	exerciseStore(t, store)
	assert.NoError(t, closeFn(ctx))

	store, closeFn, err = Open(ctx, Options{Backend: BackendFile, FileDir: t.TempDir()})
	require.NoError(t, err)
	exerciseStore(t, store)
	assert.NoError(t, closeFn(ctx))
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	conn := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer conn.Close()

	store, _, err := Open(context.Background(), Options{Backend: BackendRedis, Redis: conn})
	require.NoError(t, err)
	exerciseStore(t, store)
}
