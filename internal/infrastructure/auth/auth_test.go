package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/shared"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestJWTService(now time.Time) *JWTService {
	return NewJWTService(testSecret, 15*time.Minute, WithIssuer("test-issuer"), WithClock(func() time.Time { return now }))
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	now := time.Now()
	svc := newTestJWTService(now)

	tok, err := svc.Issue(IssueInput{UserID: "u-1", Email: "admin@sooquk.test", Role: identity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.WithinDuration(t, now.Add(15*time.Minute), tok.ExpiresAt, time.Second)

	claims, err := svc.Validate(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, identity.RoleAdmin, claims.Role)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_IssueRequiresUserAndRole(t *testing.T) {
	svc := newTestJWTService(time.Now())

	_, err := svc.Issue(IssueInput{Role: identity.RoleAdmin})
	assert.ErrorIs(t, err, ErrMissingUserID)

	_, err = svc.Issue(IssueInput{UserID: "u-1", Role: "Root"})
	assert.ErrorIs(t, err, ErrMissingRole)
}

func TestJWTService_ValidateErrors(t *testing.T) {
	now := time.Now()
	tok, err := newTestJWTService(now).Issue(IssueInput{UserID: "u-1", Role: identity.RoleVendor})
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		_, err := newTestJWTService(now.Add(time.Hour)).Validate(tok.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("not yet valid", func(t *testing.T) {
		_, err := newTestJWTService(now.Add(-time.Hour)).Validate(tok.AccessToken)
		assert.ErrorIs(t, err, ErrTokenNotYetValid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("another-secret-key-at-least-32-chars", time.Minute)
		_, err := other.Validate(tok.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := newTestJWTService(now).Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		claims := &Claims{UserID: "u-1", Role: identity.RoleAdmin}
		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = newTestJWTService(now).Validate(none)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGuard_Roles(t *testing.T) {
	tok, err := NewJWTService(testSecret, time.Hour).Issue(IssueInput{UserID: "v-9", Role: identity.RoleVendor})
	require.NoError(t, err)

	g, err := NewGuard(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleVendor, g.Role())
	assert.Equal(t, "v-9", g.UserID())
	assert.False(t, g.Expired())

	assert.True(t, g.IsInRole(identity.RoleAdmin, identity.RoleVendor))
	assert.False(t, g.IsInRole(identity.RoleAdmin))
	assert.False(t, g.IsInRole())

	assert.NoError(t, g.RequireRoles(identity.RoleVendor))
	assert.ErrorIs(t, g.RequireRoles(identity.RoleAdmin), shared.ErrForbidden)

	raw, err := g.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tok.AccessToken, raw)
}

func TestGuard_DoesNotVerifySignature(t *testing.T) {
	tok, err := NewJWTService("some-other-secret-nobody-shares!!", time.Hour).
		Issue(IssueInput{UserID: "a-1", Role: identity.RoleAdmin})
	require.NoError(t, err)

	g, err := NewGuard(tok.AccessToken)
	require.NoError(t, err)
	assert.True(t, g.IsInRole(identity.RoleAdmin))
}

func TestGuard_Expired(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	tok, err := NewJWTService(testSecret, time.Hour, WithClock(func() time.Time { return past })).
		Issue(IssueInput{UserID: "a-1", Role: identity.RoleAdmin})
	require.NoError(t, err)

	g, err := NewGuard(tok.AccessToken)
	require.NoError(t, err)
	assert.True(t, g.Expired())
	assert.False(t, g.IsInRole(identity.RoleAdmin))
	assert.ErrorIs(t, g.RequireRoles(identity.RoleAdmin), shared.ErrForbidden)

	_, err = g.Token(context.Background())
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestNewGuard_Invalid(t *testing.T) {
	_, err := NewGuard("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims := &Claims{UserID: "u-1"}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = NewGuard(tok)
	assert.ErrorIs(t, err, ErrMissingRole)
}

func TestGuard_NilDeniesEverything(t *testing.T) {
	var g *Guard
	assert.False(t, g.IsInRole(identity.RoleAdmin))
	assert.ErrorIs(t, g.RequireRoles(identity.RoleAdmin), shared.ErrForbidden)
}
