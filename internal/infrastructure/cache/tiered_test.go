package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/application/query"
)

// failingStore stands in for an unreachable L2
type failingStore struct{}

var errL2Down = errors.New("l2 down")

func (failingStore) Get(context.Context, string) (*query.Entry, error) { return nil, errL2Down }
func (failingStore) Set(context.Context, *query.Entry, time.Duration) error {
	return errL2Down
}
func (failingStore) Delete(context.Context, string) error { return errL2Down }
func (failingStore) Invalidate(context.Context, string) (int, error) {
	return 0, errL2Down
}

func TestTieredStore_ReadsThroughToL2(t *testing.T) {
	clock := newManualClock()
	l1 := newTestMemoryStore(t, clock)
	l2 := newTestMemoryStore(t, clock)
	s := NewTieredStore(l1, l2, WithL1TTL(10*time.Second))
	ctx := context.Background()
	key := query.DetailKey("wallets", 3)

	require.NoError(t, l2.Set(ctx, testEntry(key, clock.Now()), time.Hour))

	entry, err := s.Get(ctx, key.String())
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 1, l1.Len(), "L2 hit populates L1")

	entry, err = s.Get(ctx, key.String())
	require.NoError(t, err)
	require.NotNil(t, entry)

	l1Hits, l1Misses, l2Hits, l2Misses := s.Stats()
	assert.Equal(t, int64(1), l1Hits)
	assert.Equal(t, int64(1), l1Misses)
	assert.Equal(t, int64(1), l2Hits)
	assert.Equal(t, int64(0), l2Misses)

	// L1 copy expires before the L2 one
	clock.Advance(11 * time.Second)
	entry, err = l1.Get(ctx, key.String())
	require.NoError(t, err)
	assert.Nil(t, entry)
	entry, err = s.Get(ctx, key.String())
	require.NoError(t, err)
	assert.NotNil(t, entry)
}

func TestTieredStore_SetAndInvalidateBothTiers(t *testing.T) {
	clock := newManualClock()
	l1 := newTestMemoryStore(t, clock)
	l2 := newTestMemoryStore(t, clock)
	s := NewTieredStore(l1, l2)
	ctx := context.Background()

	list := query.NewKey("orders", query.OpList, "page=1")
	detail := query.DetailKey("orders", 9)
	require.NoError(t, s.Set(ctx, testEntry(list, clock.Now()), time.Hour))
	require.NoError(t, s.Set(ctx, testEntry(detail, clock.Now()), time.Hour))
	assert.Equal(t, 2, l1.Len())
	assert.Equal(t, 2, l2.Len())

	n, err := s.Invalidate(ctx, query.Prefix("orders", query.OpList).String())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for _, store := range []*MemoryStore{l1, l2} {
		entry, err := store.Get(ctx, list.String())
		require.NoError(t, err)
		assert.True(t, entry.Invalidated)
		entry, err = store.Get(ctx, detail.String())
		require.NoError(t, err)
		assert.False(t, entry.Invalidated)
	}

	require.NoError(t, s.Delete(ctx, detail.String()))
	assert.Equal(t, 1, l1.Len())
	assert.Equal(t, 1, l2.Len())
}

func TestTieredStore_DegradesWhenL2Fails(t *testing.T) {
	clock := newManualClock()
	l1 := newTestMemoryStore(t, clock)
	s := NewTieredStore(l1, failingStore{})
	ctx := context.Background()
	key := query.DetailKey("coupons", 2)

	entry, err := s.Get(ctx, key.String())
	require.NoError(t, err)
	assert.Nil(t, entry)

	require.NoError(t, s.Set(ctx, testEntry(key, clock.Now()), time.Hour))
	entry, err = s.Get(ctx, key.String())
	require.NoError(t, err)
	assert.NotNil(t, entry)

	n, err := s.Invalidate(ctx, query.Prefix("coupons").String())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.Delete(ctx, key.String()))
}
