package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 0)

	token, err := svc.GenerateToken("user-1", "a@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_RejectsForeignAndExpiredTokens(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	other := NewJWTService("other-secret", time.Hour)
	foreign, err := other.GenerateToken("user-1", "a@example.com")
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.Error(t, err)

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := svc.GenerateToken("user-1", "a@example.com")
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestClaims_RemainingTTL(t *testing.T) {
	svc := NewJWTService("test-secret", 10*time.Minute)
	token, err := svc.GenerateToken("user-1", "a@example.com")
	require.NoError(t, err)
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	now := time.Now()
	assert.InDelta(t, (10 * time.Minute).Seconds(), claims.RemainingTTL(now).Seconds(), 5)
	assert.Zero(t, claims.RemainingTTL(now.Add(time.Hour)))
}

func TestTokenStore_NilCacheNeverRevoked(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti", time.Minute))
	revoked, err := store.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}
