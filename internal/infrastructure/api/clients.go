package api

import (
	"github.com/sooquk/dashboard/internal/domain/catalog"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
)

// Clients bundles every resource client over one transport
type Clients struct {
	Districts    *DistrictAPI
	Categories   *CategoryAPI
	Coupons      *CouponAPI
	Users        *UserAPI
	Orders       *OrderAPI
	VendorOrders *VendorOrderAPI
	Reviews      map[catalog.ReviewKind]*ReviewAPI
	Wallets      *WalletAPI
	Points       *PointsAPI
	ErrorLogs    *ErrorLogAPI
}

// NewClients creates all resource clients
func NewClients(c *apiclient.Client) *Clients {
	reviews := make(map[catalog.ReviewKind]*ReviewAPI, len(catalog.AllReviewKinds()))
	for _, kind := range catalog.AllReviewKinds() {
		r, _ := NewReviewAPI(c, kind)
		reviews[kind] = r
	}
	return &Clients{
		Districts:    NewDistrictAPI(c),
		Categories:   NewCategoryAPI(c),
		Coupons:      NewCouponAPI(c),
		Users:        NewUserAPI(c),
		Orders:       NewOrderAPI(c),
		VendorOrders: NewVendorOrderAPI(c),
		Reviews:      reviews,
		Wallets:      NewWalletAPI(c),
		Points:       NewPointsAPI(c),
		ErrorLogs:    NewErrorLogAPI(c),
	}
}
