package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/infrastructure/auth"
	"github.com/sooquk/dashboard/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret-key-at-least-32-chars"

func newTestRouter(jwt *auth.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), JWTAuth(JWTConfig{Validator: jwt, SkipPaths: []string{"/login"}}))
	router.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	handlers := append(extra, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetJWTUserID(c)})
	})
	router.GET("/test", handlers...)
	return router
}

func issue(t *testing.T, jwt *auth.JWTService, role identity.Role) string {
	t.Helper()
	tok, err := jwt.Issue(auth.IssueInput{UserID: "u-1", Role: role})
	require.NoError(t, err)
	return tok.AccessToken
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRequestID_KeepsClientValue(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Body.String())
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}

func TestRequestID_Generated(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwt := auth.NewJWTService(testSecret, time.Hour)
	router := newTestRouter(jwt)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, jwt, identity.RoleAdmin))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":"u-1"}`, rec.Body.String())
}

func TestJWTAuth_Rejections(t *testing.T) {
	jwt := auth.NewJWTService(testSecret, time.Hour)
	past := time.Now().Add(-2 * time.Hour)
	expired := auth.NewJWTService(testSecret, time.Hour, auth.WithClock(func() time.Time { return past }))
	other := auth.NewJWTService("another-secret-key-at-least-32-chars", time.Hour)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", dto.ErrCodeUnauthorized},
		{"wrong scheme", "Basic abc", dto.ErrCodeTokenInvalid},
		{"expired", "Bearer " + issue(t, expired, identity.RoleAdmin), dto.ErrCodeTokenInvalid},
		{"bad signature", "Bearer " + issue(t, other, identity.RoleAdmin), dto.ErrCodeTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			newTestRouter(jwt).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestJWTAuth_SkipPath(t *testing.T) {
	jwt := auth.NewJWTService(testSecret, time.Hour)
	rec := httptest.NewRecorder()
	newTestRouter(jwt).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{}")))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	jwt := auth.NewJWTService(testSecret, time.Hour)
	router := newTestRouter(jwt, RequireRoles(identity.RoleAdmin, identity.RoleVendor))

	for role, want := range map[identity.Role]int{
		identity.RoleAdmin:           http.StatusOK,
		identity.RoleVendor:          http.StatusOK,
		identity.RoleShippingCompany: http.StatusForbidden,
	} {
		t.Run(string(role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", "Bearer "+issue(t, jwt, role))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, want, rec.Code)
			if want == http.StatusForbidden {
				assert.Equal(t, dto.ErrCodeForbidden, decode(t, rec).Error.Code)
			}
		})
	}
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg, "stub")
	require.NoError(t, err)

	router := gin.New()
	router.Use(m.Handler())
	router.GET("/districts/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/districts/7", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/districts/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "unmatched", "404")))

	_, err = NewHTTPMetrics(reg, "stub")
	assert.Error(t, err)
}
