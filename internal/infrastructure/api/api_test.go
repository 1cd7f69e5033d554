package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/domain/catalog"
	"github.com/sooquk/dashboard/internal/domain/finance"
	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/location"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/domain/trade"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
)

type recorded struct {
	Method      string
	Path        string
	Query       string
	ContentType string
	Body        []byte
	Form        map[string][]string
	Files       []string
}

// recorder answers every request with a canned body and records it
type recorder struct {
	t      *testing.T
	mu     sync.Mutex
	reqs   []recorded
	status int
	body   string
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	rec := recorded{
		Method:      req.Method,
		Path:        req.URL.Path,
		Query:       req.URL.RawQuery,
		ContentType: req.Header.Get("Content-Type"),
	}
	if req.MultipartForm == nil && req.Header.Get("Content-Type") != "" && req.Method != http.MethodGet {
		if err := req.ParseMultipartForm(1 << 20); err == nil {
			rec.Form = req.MultipartForm.Value
			for name := range req.MultipartForm.File {
				rec.Files = append(rec.Files, name)
			}
		} else {
			rec.Body, _ = io.ReadAll(req.Body)
		}
	}
	r.mu.Lock()
	r.reqs = append(r.reqs, rec)
	r.mu.Unlock()

	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(r.body))
}

func (r *recorder) last() recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(r.t, r.reqs)
	return r.reqs[len(r.reqs)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reqs)
}

func setup(t *testing.T, status int, body string) (*apiclient.Client, *recorder) {
	t.Helper()
	rec := &recorder{t: t, status: status, body: body}
	server := httptest.NewServer(rec)
	t.Cleanup(server.Close)
	c, err := apiclient.NewClient(apiclient.Config{BaseURL: server.URL + "/api"})
	require.NoError(t, err)
	return c, rec
}

const emptyPage = `{"success":true,"data":{"items":[],"pagination":{"pageNumber":1,"pageSize":10,"totalCount":0}}}`

func TestList_PagingDefaults(t *testing.T) {
	c, rec := setup(t, http.StatusOK, emptyPage)
	ctx := context.Background()

	cityID := int64(3)
	_, err := NewDistrictAPI(c).List(ctx, location.DistrictFilter{CityID: &cityID}.Params())
	require.NoError(t, err)
	assert.Equal(t, "/api/districts", rec.last().Path)
	assert.Equal(t, "cityId=3&pageNumber=1&pageSize=10", rec.last().Query)

	params := shared.NewParams().SetInt(shared.ParamPageNumber, 4).SetString("search", "x")
	_, err = NewCouponAPI(c).List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, "pageNumber=4&pageSize=10&search=x", rec.last().Query)
	_, hasSize := params.Get(shared.ParamPageSize)
	assert.False(t, hasSize, "caller params are not modified")

	_, err = NewOrderAPI(c).List(ctx, trade.OrderFilter{Status: trade.OrderPending}.Params())
	require.NoError(t, err)
	assert.Equal(t, "limit=10&page=1&status=Pending", rec.last().Query)
}

func TestGet_NotFound(t *testing.T) {
	c, rec := setup(t, http.StatusNotFound, `{"success":false,"error":{"code":"ERR_NOT_FOUND","message":"District not found"}}`)

	_, err := NewDistrictAPI(c).Get(context.Background(), 42)
	assert.True(t, shared.IsNotFound(err))
	assert.Equal(t, "/api/districts/42", rec.last().Path)
	assert.Equal(t, 1, rec.count(), "no retry")
}

func TestDistrict_CreateAndUpdate(t *testing.T) {
	c, rec := setup(t, http.StatusOK, `{"success":true,"data":{"id":7,"cityId":3,"name":"Tla Al-Ali","nameAr":"تلاع العلي","isActive":true}}`)
	districts := NewDistrictAPI(c)
	in := location.DistrictInput{CityID: 3, Name: "Tla Al-Ali", NameAr: "تلاع العلي", IsActive: true}

	d, err := districts.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(7), d.ID)
	assert.Equal(t, http.MethodPost, rec.last().Method)
	assert.JSONEq(t, `{"cityId":3,"name":"Tla Al-Ali","nameAr":"تلاع العلي","isActive":true}`, string(rec.last().Body))

	_, err = districts.Update(context.Background(), 7, in)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.last().Method)
	assert.Equal(t, "/api/districts/7", rec.last().Path)
}

func TestDistrict_LookupPaths(t *testing.T) {
	c, rec := setup(t, http.StatusOK, `{"success":true,"data":[{"id":1,"cityId":3,"name":"Khalda"}]}`)
	districts := NewDistrictAPI(c)

	got, err := districts.ByCity(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "/api/cities/3/districts", rec.last().Path)

	_, err = districts.Cities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/cities", rec.last().Path)
}

func TestCategory_MultipartWrites(t *testing.T) {
	c, rec := setup(t, http.StatusOK, `{"success":true,"data":{"id":5,"name":"Phones"}}`)
	categories := NewCategoryAPI(c)

	in := catalog.CategoryInput{Name: "Phones", NameAr: "هواتف", IsActive: true}
	_, err := categories.Create(context.Background(), in)
	require.NoError(t, err)
	got := rec.last()
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, []string{"true"}, got.Form["isActive"])
	assert.Equal(t, []string{"0"}, got.Form["displayOrder"])
	assert.NotContains(t, got.Form, "parentId")
	assert.NotContains(t, got.Form, "description")
	assert.Empty(t, got.Files)

	in.Image = &shared.File{Name: "phones.png", ContentType: "image/png", Data: []byte("png")}
	_, err = categories.Update(context.Background(), 5, in)
	require.NoError(t, err)
	got = rec.last()
	assert.Equal(t, http.MethodPatch, got.Method)
	assert.Equal(t, "/api/categories/5", got.Path)
	assert.Equal(t, []string{"image"}, got.Files)
}

func TestUserForm_OnlyRoleFields(t *testing.T) {
	vendor := &identity.VendorDraft{
		CommonFields: identity.CommonFields{
			Email: "shop@example.com", FirstName: "Lina", LastName: "H", PhoneNumber: "0791234567", CityID: 3,
		},
		ShopName:           "Lina's",
		ShopNameAr:         "لينا",
		VendorDistrictID:   7,
		VendorContactEmail: "contact@example.com",
		VendorContactPhone: "0791234567",
		VendorAddress:      "Main st",
	}
	form := UserForm(vendor)

	v, ok := form.Value("vendorDistrictId")
	require.True(t, ok)
	assert.Equal(t, "7", v)
	v, _ = form.Value("role")
	assert.Equal(t, "Vendor", v)
	for _, absent := range []string{"password", "logoUrl", "department", "companyName", "districtId"} {
		_, ok := form.Value(absent)
		assert.False(t, ok, absent)
	}
	assert.False(t, form.HasFile("logoFile"))

	shipping := &identity.ShippingCompanyDraft{CommonFields: vendor.CommonFields, CompanyName: "FastShip"}
	form = UserForm(shipping)
	_, ok = form.Value("vendorAddress")
	assert.False(t, ok)
	_, ok = form.Value("address")
	assert.False(t, ok)
}

func TestUser_SetActive(t *testing.T) {
	c, rec := setup(t, http.StatusOK, `{"success":true}`)
	require.NoError(t, NewUserAPI(c).SetActive(context.Background(), "u-1", false))
	assert.Equal(t, http.MethodPut, rec.last().Method)
	assert.Equal(t, "/api/admin/users/u-1/status", rec.last().Path)
	assert.JSONEq(t, `{"isActive":false}`, string(rec.last().Body))
}

func TestDelete_HardOnlyForWallets(t *testing.T) {
	c, rec := setup(t, http.StatusOK, `{"success":true}`)
	ctx := context.Background()

	wallets := NewWalletAPI(c)
	require.NoError(t, wallets.Delete(ctx, 3, DeleteOptions{Hard: true}))
	assert.Equal(t, "/api/wallet/3", rec.last().Path)
	assert.Equal(t, "hardDelete=true", rec.last().Query)

	require.NoError(t, wallets.Delete(ctx, 3, DeleteOptions{}))
	assert.Empty(t, rec.last().Query, "soft delete by default")

	districts := NewResource[location.District, int64](c, "districts")
	err := districts.Delete(ctx, 1, DeleteOptions{Hard: true})
	assert.ErrorIs(t, err, ErrHardDeleteUnsupported)
	assert.Equal(t, 2, rec.count(), "rejected hard delete issues no request")
}

func TestWallet_AdjustAndTransactions(t *testing.T) {
	c, rec := setup(t, http.StatusOK, `{"success":true,"data":{"transactionId":1,"walletId":3,"type":"Credit","amount":"5"}}`)
	wallets := NewWalletAPI(c)

	tx, err := wallets.Adjust(context.Background(), 3, finance.AdjustRequest{
		Type: finance.TransactionCredit, Amount: decimal.NewFromInt(5), Description: "goodwill",
	})
	require.NoError(t, err)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "/api/wallet/3/adjust", rec.last().Path)

	c2, rec2 := setup(t, http.StatusOK, emptyPage)
	_, err = NewWalletAPI(c2).Transactions(context.Background(), 3, finance.TransactionFilter{Type: finance.TransactionDebit}.Params())
	require.NoError(t, err)
	assert.Equal(t, "/api/wallet/3/transactions", rec2.last().Path)
	assert.Equal(t, "pageNumber=1&pageSize=10&type=Debit", rec2.last().Query)
}

func TestOrder_StatusEndpoints(t *testing.T) {
	c, rec := setup(t, http.StatusOK, `{"success":true,"data":{"orderId":9,"status":"Confirmed"}}`)
	orders := NewOrderAPI(c)
	ctx := context.Background()

	o, err := orders.UpdateStatus(ctx, 9, trade.UpdateOrderStatusRequest{Status: trade.OrderConfirmed})
	require.NoError(t, err)
	assert.Equal(t, trade.OrderConfirmed, o.Status)
	assert.Equal(t, "/api/orders/9/status", rec.last().Path)

	_, err = orders.UpdatePaymentStatus(ctx, 9, trade.UpdatePaymentStatusRequest{PaymentStatus: trade.PaymentPaid})
	require.NoError(t, err)
	assert.Equal(t, "/api/orders/9/payment-status", rec.last().Path)
}

func TestReviewAPI_Kinds(t *testing.T) {
	c, rec := setup(t, http.StatusOK, emptyPage)

	_, err := NewReviewAPI(c, "restaurants")
	require.Error(t, err)

	clients := NewClients(c)
	require.Len(t, clients.Reviews, 3)
	_, err = clients.Reviews[catalog.ReviewKindShipping].List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/reviews/shipping", rec.last().Path)
}
