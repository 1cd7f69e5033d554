package handler

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/domain/catalog"
	"github.com/sooquk/dashboard/internal/domain/finance"
	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/location"
	"github.com/sooquk/dashboard/internal/domain/trade"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
	"github.com/sooquk/dashboard/internal/infrastructure/auth"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
	"github.com/sooquk/dashboard/internal/interfaces/http/dto"
	"github.com/sooquk/dashboard/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	adminID  = "admin-1"
	vendorID = "vendor-1"
)

// pngBytes is the PNG signature followed by padding, enough for sniffing
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Error   *dto.ErrorInfo      `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

type listData[T any] struct {
	Items      []T `json:"items"`
	Pagination struct {
		PageNumber int   `json:"pageNumber"`
		TotalCount int64 `json:"totalCount"`
		TotalPages int   `json:"totalPages"`
	} `json:"pagination"`
}

// fixtureDB holds two cities, a district in use by a vendor, a category
// tree, an order split over one vendor and a funded wallet
func fixtureDB() *memdb.DB {
	db := memdb.New()
	for _, c := range []location.City{{Name: "Amman"}, {Name: "Irbid"}} {
		c.ID = db.CityIDs.Next()
		db.Cities.Put(c)
	}
	db.Districts.Put(location.District{ID: db.DistrictIDs.Next(), CityID: 1, CityName: "Amman", Name: "Khalda", NameAr: "خلدا", IsActive: true})
	db.Districts.Put(location.District{ID: db.DistrictIDs.Next(), CityID: 1, CityName: "Amman", Name: "Abdoun", NameAr: "عبدون", IsActive: true})
	db.Districts.Put(location.District{ID: db.DistrictIDs.Next(), CityID: 2, CityName: "Irbid", Name: "Al Husn", NameAr: "الحصن"})

	db.Users.Put(identity.User{ID: adminID, Email: "admin@sooquk.test", Role: identity.RoleAdmin, IsActive: true})
	db.Users.Put(identity.User{
		ID: vendorID, Email: "shop@sooquk.test", FirstName: "Rami", LastName: "Haddad",
		Role: identity.RoleVendor, IsActive: true, CityID: 1,
		VendorDetails: &identity.VendorDetails{ShopName: "Rami's", DistrictID: 1},
	})

	root := db.CategoryIDs.Next()
	db.Categories.Put(catalog.Category{ID: root, Name: "Electronics", NameAr: "إلكترونيات", IsActive: true})
	db.Categories.Put(catalog.Category{ID: db.CategoryIDs.Next(), Name: "Phones", NameAr: "هواتف", ParentID: &root, IsActive: true})

	o := trade.Order{
		OrderID: db.OrderIDs.Next(), OrderNumber: "ORD-1", CustomerName: "Lina",
		Status: trade.OrderPending, PaymentStatus: trade.PaymentPending, PaymentMethod: trade.PaymentCashOnDelivery,
		SubTotal: decimal.NewFromInt(20), ShippingFee: decimal.NewFromInt(2), Total: decimal.NewFromInt(22),
		CreatedAt: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
	}
	db.Orders.Put(o)
	db.VendorOrders.Put(trade.VendorOrder{VendorOrderID: db.VendorOrderIDs.Next(), OrderID: o.OrderID, VendorID: vendorID, Status: o.Status})
	db.VendorOrders.Put(trade.VendorOrder{VendorOrderID: db.VendorOrderIDs.Next(), OrderID: 99, VendorID: "vendor-2", Status: trade.OrderShipped})

	db.Wallets.Put(finance.Wallet{WalletID: db.WalletIDs.Next(), UserID: vendorID, UserName: "Rami Haddad", Balance: decimal.NewFromInt(50), Currency: "JOD", IsActive: true})
	return db
}

// serve mounts h on a bare engine that authenticates every request as
// role with user ID userID
func serve(h interface{ RegisterRoutes(*gin.RouterGroup) }, role identity.Role, userID string) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID(), func(c *gin.Context) {
		c.Set(middleware.JWTClaimsKey, &auth.Claims{UserID: userID, Role: role})
		c.Set(middleware.JWTUserIDKey, userID)
		c.Next()
	})
	h.RegisterRoutes(engine.Group("/api"))
	return engine
}

func asAdmin(h interface{ RegisterRoutes(*gin.RouterGroup) }) *gin.Engine {
	return serve(h, identity.RoleAdmin, adminID)
}

func do(t *testing.T, engine http.Handler, method, path string, body apiclient.Body) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd io.Reader
	var contentType string
	if body != nil {
		data, ct, err := body.Encode()
		require.NoError(t, err)
		rd, contentType = bytes.NewReader(data), ct
	}
	req := httptest.NewRequest(method, path, rd)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func data[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}
