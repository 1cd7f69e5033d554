package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnprocessableEntity, KindValidation},
		{http.StatusUnauthorized, KindAuth},
		{http.StatusForbidden, KindAuth},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindConflict},
		{http.StatusInternalServerError, KindServer},
		{http.StatusBadGateway, KindServer},
		{http.StatusTeapot, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, KindForStatus(tt.status))
		})
	}
}

func TestAPIError(t *testing.T) {
	t.Run("classification survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading district: %w", &APIError{Kind: KindNotFound, StatusCode: 404, Message: "District not found"})
		assert.True(t, IsNotFound(err))
		assert.False(t, IsAuth(err))
		assert.Equal(t, "not_found error (404): District not found", errors.Unwrap(err).Error())
	})

	t.Run("network error wraps cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewNetworkError(cause)
		assert.ErrorIs(t, err, cause)
		assert.True(t, err.Retryable())
		assert.Equal(t, KindNetwork, KindOf(err))
	})

	t.Run("non api error is unknown", func(t *testing.T) {
		assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
		assert.False(t, IsConflict(nil))
	})
}

func TestValidationError(t *testing.T) {
	v := NewValidationError()
	assert.NoError(t, v.Err())

	v.Add("vendorContactEmail", "This field is required")
	v.Add("vendorContactEmail", "Invalid email format")
	v.Add("shopName", "This field is required")

	msg, ok := v.Field("vendorContactEmail")
	assert.True(t, ok)
	assert.Equal(t, "This field is required", msg)
	assert.Error(t, v.Err())
	assert.Equal(t, "validation failed: shopName: This field is required; vendorContactEmail: This field is required", v.Error())
}
