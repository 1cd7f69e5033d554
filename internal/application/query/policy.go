package query

import "time"

// Resource names used as the first key segment
const (
	ResourceCities          = "cities"
	ResourceDistricts       = "districts"
	ResourceCategories      = "categories"
	ResourceCoupons         = "coupons"
	ResourceUsers           = "users"
	ResourceOrders          = "orders"
	ResourceOrderStatistics = "order-statistics"
	ResourceVendorOrders    = "vendor-orders"
	ResourceReviews         = "reviews"
	ResourceWallets         = "wallets"
	ResourceTransactions    = "transactions"
	ResourceErrorLogs       = "error-logs"
	ResourceErrorLogTypes   = "error-log-types"
	ResourcePoints          = "points"
)

// DefaultStaleTime applies to resources without their own entry
const DefaultStaleTime = time.Minute

// DefaultGCTime is how long an entry is retained after it went stale
const DefaultGCTime = 10 * time.Minute

// StalePolicy maps a resource to how long its reads stay fresh
type StalePolicy map[string]time.Duration

// DefaultStalePolicy reflects how often each resource changes. Lookups
// rarely change, money and order state change often.
func DefaultStalePolicy() StalePolicy {
	return StalePolicy{
		ResourceCities:          30 * time.Minute,
		ResourceErrorLogTypes:   30 * time.Minute,
		ResourceDistricts:       10 * time.Minute,
		ResourceCategories:      10 * time.Minute,
		ResourcePoints:          15 * time.Minute,
		ResourceCoupons:         5 * time.Minute,
		ResourceUsers:           5 * time.Minute,
		ResourceReviews:         5 * time.Minute,
		ResourceWallets:         3 * time.Minute,
		ResourceOrders:          2 * time.Minute,
		ResourceVendorOrders:    2 * time.Minute,
		ResourceOrderStatistics: 2 * time.Minute,
		ResourceTransactions:    2 * time.Minute,
		ResourceErrorLogs:       2 * time.Minute,
	}
}

// With returns a copy of p with overrides applied. Non-positive overrides
// are ignored.
func (p StalePolicy) With(overrides map[string]time.Duration) StalePolicy {
	out := make(StalePolicy, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		if v > 0 {
			out[k] = v
		}
	}
	return out
}

// For returns the stale time of resource, or fallback
func (p StalePolicy) For(resource string, fallback time.Duration) time.Duration {
	if d, ok := p[resource]; ok && d > 0 {
		return d
	}
	return fallback
}
