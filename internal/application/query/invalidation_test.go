package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

func TestInvalidationRules(t *testing.T) {
	listA := ListKey(ResourceCoupons, shared.NewParams().SetString("status", "Active"))
	listB := ListKey(ResourceCoupons, shared.NewParams().SetInt(shared.ParamPageNumber, 3))
	detail := DetailKey(ResourceCoupons, 12)
	other := DetailKey(ResourceCoupons, 13)

	matches := func(keys []Key, k Key) bool {
		for _, p := range keys {
			if k.HasPrefix(p) {
				return true
			}
		}
		return false
	}

	created := OnCreate(ResourceCoupons)
	assert.True(t, matches(created, listA))
	assert.True(t, matches(created, listB))
	assert.False(t, matches(created, detail))

	updated := OnUpdate(ResourceCoupons, int64(12))
	assert.True(t, matches(updated, listA))
	assert.True(t, matches(updated, detail))
	assert.False(t, matches(updated, other))

	deleted := OnDelete(ResourceCoupons, 12)
	assert.True(t, matches(deleted, listB))
	assert.True(t, matches(deleted, detail))

	withStats := Also(updated, Prefix(ResourceOrderStatistics))
	assert.Len(t, withStats, 3)
	assert.Len(t, updated, 2, "Also does not modify its input")
	assert.True(t, matches(withStats, NewKey(ResourceOrderStatistics, "summary")))
}
