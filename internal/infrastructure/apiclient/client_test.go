package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(Config{
		BaseURL:   server.URL + "/api",
		Timeout:   5 * time.Second,
		UserAgent: "test-agent",
		Locale:    "ar",
	}, opts...)
	require.NoError(t, err)
	return c
}

type district struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	CityID int64  `json:"cityId"`
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	c, err := NewClient(Config{BaseURL: "http://localhost:8080/api"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/", c.BaseURL())
}

func TestDo_Headers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/districts", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "ar", r.Header.Get("Accept-Language"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "1", r.Header.Get("X-Custom"))
		w.WriteHeader(http.StatusOK)
	}, WithTokenSource(StaticToken("secret")))
	c.SetHeader("X-Custom", "1")

	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/districts"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.RequestID)
}

func TestDo_QueryOmitsUnsetParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cityId=3&pageNumber=1", r.URL.RawQuery)
		w.WriteHeader(http.StatusOK)
	})

	var cityID int64 = 3
	params := shared.NewParams().
		SetInt64Ptr("cityId", &cityID).
		SetBoolPtr("isActive", nil).
		SetString("search", "").
		SetInt("pageNumber", 1)

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "districts", Query: params})
	require.NoError(t, err)
}

func TestDo_JSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"id":0,"name":"Khalda","cityId":3}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":9,"name":"Khalda","cityId":3}}`))
	})

	got, err := Decode[district](context.Background(), c, Request{
		Method: http.MethodPost,
		Path:   "districts",
		Body:   JSON(district{Name: "Khalda", CityID: 3}),
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(9), got.ID)
}

func TestDo_MultipartOmitsAbsentFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Phones", r.FormValue("name"))
		assert.Equal(t, "false", r.FormValue("isActive"))
		assert.Empty(t, r.MultipartForm.File)
		_, hasParent := r.MultipartForm.Value["parentId"]
		assert.False(t, hasParent)
		w.WriteHeader(http.StatusNoContent)
	})

	form := NewForm().
		String("name", "Phones").
		Bool("isActive", false).
		OptionalInt("parentId", nil).
		File("image", nil)

	_, err := Decode[district](context.Background(), c, Request{Method: http.MethodPost, Path: "categories", Body: form})
	require.NoError(t, err)
}

func TestDo_MultipartFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "logo.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, []byte{1, 2, 3}, data)
		w.WriteHeader(http.StatusOK)
	})

	form := NewForm().File("image", &shared.File{Name: "logo.png", ContentType: "image/png", Data: []byte{1, 2, 3}})
	assert.True(t, form.HasFile("image"))
	require.NoError(t, Exec(context.Background(), c, Request{Method: http.MethodPatch, Path: "categories/1", Body: form}))
}

func TestDo_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   shared.ErrorKind
		wantMsg    string
		wantFields map[string][]string
	}{
		{
			name:     "not found envelope",
			status:   http.StatusNotFound,
			body:     `{"success":false,"error":{"code":"ERR_NOT_FOUND","message":"District not found"}}`,
			wantKind: shared.KindNotFound,
			wantMsg:  "District not found",
		},
		{
			name:     "conflict",
			status:   http.StatusConflict,
			body:     `{"success":false,"message":"District is referenced by users"}`,
			wantKind: shared.KindConflict,
			wantMsg:  "District is referenced by users",
		},
		{
			name:       "validation field errors",
			status:     http.StatusBadRequest,
			body:       `{"success":false,"message":"Validation failed","errors":{"VendorContactEmail":["must be an email"]}}`,
			wantKind:   shared.KindValidation,
			wantMsg:    "Validation failed",
			wantFields: map[string][]string{"vendorContactEmail": {"must be an email"}},
		},
		{
			name:     "problem details",
			status:   http.StatusUnprocessableEntity,
			body:     `{"title":"One or more validation errors occurred.","errors":{"name":"required"}}`,
			wantKind: shared.KindValidation,
			wantMsg:  "One or more validation errors occurred.",
			wantFields: map[string][]string{"name": {"required"}},
		},
		{
			name:     "plain text server error",
			status:   http.StatusInternalServerError,
			body:     "boom",
			wantKind: shared.KindServer,
			wantMsg:  "boom",
		},
		{
			name:     "empty unauthorized",
			status:   http.StatusUnauthorized,
			wantKind: shared.KindAuth,
			wantMsg:  "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Do(context.Background(), Request{Method: http.MethodDelete, Path: "districts/1"})
			var apiErr *shared.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantFields, apiErr.Fields)
			assert.NotEmpty(t, apiErr.RequestID)
		})
	}
}

func TestDo_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient(Config{BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "districts"})
	var apiErr *shared.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, shared.KindNetwork, apiErr.Kind)
	assert.True(t, apiErr.Retryable())
	assert.NotNil(t, errors.Unwrap(apiErr))
}

func TestDo_UnsuccessfulEnvelopeWith200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"Coupon code already exists","errors":["code taken"]}`))
	})

	_, err := Decode[district](context.Background(), c, Request{Method: http.MethodPost, Path: "coupons"})
	var apiErr *shared.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Coupon code already exists", apiErr.Message)
	assert.Equal(t, []string{"code taken"}, apiErr.Fields[""])
}

func TestDecode_EmptyData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	})

	got, err := Decode[district](context.Background(), c, Request{Method: http.MethodDelete, Path: "districts/1"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecodeList_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantPage  int
		wantSize  int
		wantTotal int64
		wantItems int
	}{
		{
			name:      "items with pagination",
			body:      `{"success":true,"data":{"items":[{"id":1},{"id":2}],"pagination":{"pageNumber":2,"pageSize":2,"totalCount":5,"totalPages":3,"hasNextPage":true,"hasPreviousPage":true}}}`,
			wantPage:  2,
			wantSize:  2,
			wantTotal: 5,
			wantItems: 2,
		},
		{
			name:      "flat paging fields",
			body:      `{"success":true,"data":{"items":[{"id":1}],"pageNumber":1,"pageSize":10,"totalCount":1}}`,
			wantPage:  1,
			wantSize:  10,
			wantTotal: 1,
			wantItems: 1,
		},
		{
			name:      "data page limit total",
			body:      `{"data":[{"id":1},{"id":2},{"id":3}],"page":3,"limit":3,"total":9}`,
			wantPage:  3,
			wantSize:  3,
			wantTotal: 9,
			wantItems: 3,
		},
		{
			name:      "bare array with meta",
			body:      `{"success":true,"data":[{"id":1}],"meta":{"total":11,"page":2,"page_size":10,"total_pages":2}}`,
			wantPage:  2,
			wantSize:  10,
			wantTotal: 11,
			wantItems: 1,
		},
		{
			name:      "empty",
			body:      `{"success":true,"data":{"items":[],"pagination":{"pageNumber":1,"pageSize":10,"totalCount":0}}}`,
			wantPage:  1,
			wantSize:  10,
			wantTotal: 0,
			wantItems: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := DecodeList[district](context.Background(), c, Request{Method: http.MethodGet, Path: "districts"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, got.Pagination.PageNumber)
			assert.Equal(t, tt.wantSize, got.Pagination.PageSize)
			assert.Equal(t, tt.wantTotal, got.Pagination.TotalCount)
			assert.Len(t, got.Items, tt.wantItems)
			assert.NotNil(t, got.Items)
		})
	}
}

func TestDo_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c, err := NewClient(Config{BaseURL: server.URL, RateLimit: 1, RateBurst: 1})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = c.Do(ctx, Request{Method: http.MethodGet, Path: "a"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = c.Do(ctx, Request{Method: http.MethodGet, Path: "a"})
	assert.Equal(t, shared.KindNetwork, shared.KindOf(err))
}

func TestForm_Encode(t *testing.T) {
	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	form := NewForm().
		String("name", "x").
		OptionalString("description", "").
		Time("startDate", start).
		Time("endDate", time.Time{})

	v, ok := form.Value("startDate")
	require.True(t, ok)
	assert.Equal(t, "2025-01-02T03:04:05Z", v)
	_, ok = form.Value("description")
	assert.False(t, ok)
	_, ok = form.Value("endDate")
	assert.False(t, ok)
	assert.Equal(t, 2, form.Len())
	assert.True(t, IsMultipart(form))
	assert.False(t, IsMultipart(JSON(nil)))

	data, ct, err := form.Encode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="))
	assert.Contains(t, string(data), `name="startDate"`)
}
