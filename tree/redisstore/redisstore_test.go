package redisstore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tosinoni/classification/tree"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	prefix := fmt.Sprintf("classification-test-%d", time.Now().UnixNano())
	s, err := Dial(context.Background(), addr, prefix)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSaveLoadDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	root := tree.NewDecision(1)
	require.NoError(t, root.Attach(0, tree.NewLeaf(2)))
	require.NoError(t, root.Attach(1, tree.NewLeaf(1)))

	require.NoError(t, s.Save(ctx, "weather", root))
	loaded, err := s.Load(ctx, "weather")
	require.NoError(t, err)
	assert.Equal(t, root.String(), loaded.String())

	names, err := s.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"weather"}, names)

	require.NoError(t, s.Delete(ctx, "weather"))
	_, err = s.Load(ctx, "weather")
	assert.Equal(t, ErrTreeNotFound, err)
}

func TestStoreCancelledContext(t *testing.T) {
	s := New(nil, "unused")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, s.Save(ctx, "t", tree.NewLeaf(1)))
	_, err := s.Load(ctx, "t")
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, context.Canceled, s.Delete(ctx, "t"))
	_, err = s.Names(ctx)
	assert.Equal(t, context.Canceled, err)
}
