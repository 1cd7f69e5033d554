package cache

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg, "dashboard")
	require.NoError(t, err)

	m.Hit("districts")
	m.Hit("districts")
	m.StaleHit("districts")
	m.Miss("orders")
	m.FetchStarted("orders")
	m.FetchJoined("orders")
	m.FetchJoined("orders")
	m.FetchFailed("orders", shared.KindServer)
	m.Invalidated("orders", 3)
	m.Invalidated("orders", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.lookups.WithLabelValues("districts", resultHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues("districts", resultStale)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues("orders", resultMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetches.WithLabelValues("orders", fetchStarted)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetches.WithLabelValues("orders", fetchJoined)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchErrors.WithLabelValues("orders", string(shared.KindServer))))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.invalidated.WithLabelValues("orders")))

	count, err := testutil.GatherAndCount(reg, "dashboard_query_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg, "dashboard")
	require.NoError(t, err)

	_, err = NewMetrics(reg, "dashboard")
	assert.Error(t, err)
}
