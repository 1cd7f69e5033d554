package console

import (
	"io"

	catalogapp "github.com/sooquk/dashboard/internal/application/catalog"
	financeapp "github.com/sooquk/dashboard/internal/application/finance"
	identityapp "github.com/sooquk/dashboard/internal/application/identity"
	locationapp "github.com/sooquk/dashboard/internal/application/location"
	loyaltyapp "github.com/sooquk/dashboard/internal/application/loyalty"
	promotionapp "github.com/sooquk/dashboard/internal/application/promotion"
	"github.com/sooquk/dashboard/internal/application/query"
	systemapp "github.com/sooquk/dashboard/internal/application/system"
	tradeapp "github.com/sooquk/dashboard/internal/application/trade"
	"github.com/sooquk/dashboard/internal/domain/catalog"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/api"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// Services are the feature services every page reads and writes through.
// They share one query client.
type Services struct {
	Query        *query.Client
	Districts    *locationapp.DistrictService
	Categories   *catalogapp.CategoryService
	Reviews      map[catalog.ReviewKind]*catalogapp.ReviewService
	Coupons      *promotionapp.CouponService
	Users        *identityapp.UserService
	Orders       *tradeapp.OrderService
	VendorOrders *tradeapp.VendorOrderService
	Wallets      *financeapp.WalletService
	Points       *loyaltyapp.PointsService
	ErrorLogs    *systemapp.ErrorLogService
}

// NewServices wires the resource clients to the query client
func NewServices(c *api.Clients, qc *query.Client) *Services {
	reviews := make(map[catalog.ReviewKind]*catalogapp.ReviewService, len(c.Reviews))
	for kind, r := range c.Reviews {
		reviews[kind] = catalogapp.NewReviewService(r, qc)
	}
	return &Services{
		Query:        qc,
		Districts:    locationapp.NewDistrictService(c.Districts, qc),
		Categories:   catalogapp.NewCategoryService(c.Categories, qc),
		Reviews:      reviews,
		Coupons:      promotionapp.NewCouponService(c.Coupons, qc),
		Users:        identityapp.NewUserService(c.Users, qc),
		Orders:       tradeapp.NewOrderService(c.Orders, qc),
		VendorOrders: tradeapp.NewVendorOrderService(c.VendorOrders, qc),
		Wallets:      financeapp.NewWalletService(c.Wallets, qc),
		Points:       loyaltyapp.NewPointsService(c.Points, qc),
		ErrorLogs:    systemapp.NewErrorLogService(c.ErrorLogs, qc),
	}
}

// showDetail renders a single read, or returns its error
func showDetail[T any](w io.Writer, res query.Result[T], fields func(T) []Field) error {
	if res.IsDisabled() {
		return shared.ErrInvalidInput
	}
	if !res.HasData {
		if res.Err != nil {
			return res.Err
		}
		return shared.ErrInvalidState
	}
	return RenderDetail(w, fields(res.Data))
}

// deleteAction is the confirmed action used by every delete
func deleteAction(deps Deps, name, subject, what string) Action {
	return Action{
		Name:    name,
		Subject: subject,
		Success: i18n.ToastDeleted,
		Confirm: deps.withDefaults().Translator.T(i18n.ConfirmDelete, what),
	}
}
