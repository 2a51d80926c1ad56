package integration

import (
	"context"
	"testing"
	"time"

	"github.com/lovemap/lovemap-api/internal/services"
	"github.com/lovemap/lovemap-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_Integration_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	hash := services.HashToken("refresh-token")

	require.NoError(t, svc.StoreRefreshToken(ctx, user.ID, hash, time.Now().Add(24*time.Hour)))

	owner, err := svc.ValidateRefreshToken(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, user.ID, owner)

	// Revocation makes the same hash unusable.
	require.NoError(t, svc.RevokeRefreshToken(ctx, hash))
	_, err = svc.ValidateRefreshToken(ctx, hash)
	assert.Error(t, err)
}

func TestTokenService_Integration_ExpiredTokenIsInvalid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	hash := services.HashToken("expired-token")

	require.NoError(t, svc.StoreRefreshToken(ctx, user.ID, hash, time.Now().Add(-time.Hour)))

	_, err := svc.ValidateRefreshToken(ctx, hash)
	assert.Error(t, err, "expired rows behave like missing ones")
}

func TestTokenService_Integration_RevokeAllUserTokens(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	other := fixtures.CreateUser(t)
	expiresAt := time.Now().Add(24 * time.Hour)

	hashes := []string{
		services.HashToken("phone"),
		services.HashToken("laptop"),
		services.HashToken("tablet"),
	}
	for _, hash := range hashes {
		require.NoError(t, svc.StoreRefreshToken(ctx, user.ID, hash, expiresAt))
	}
	otherHash := services.HashToken("other-user-session")
	require.NoError(t, svc.StoreRefreshToken(ctx, other.ID, otherHash, expiresAt))

	require.NoError(t, svc.RevokeAllUserTokens(ctx, user.ID))

	for _, hash := range hashes {
		_, err := svc.ValidateRefreshToken(ctx, hash)
		assert.Error(t, err)
	}

	// The other user's session is untouched.
	owner, err := svc.ValidateRefreshToken(ctx, otherHash)
	require.NoError(t, err)
	assert.Equal(t, other.ID, owner)
}

func TestTokenService_Integration_CleanupExpired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)

	require.NoError(t, svc.StoreRefreshToken(ctx, user.ID, services.HashToken("stale"), time.Now().Add(-time.Hour)))
	require.NoError(t, svc.StoreRefreshToken(ctx, user.ID, services.HashToken("live"), time.Now().Add(24*time.Hour)))

	require.NoError(t, svc.CleanupExpired(ctx))

	owner, err := svc.ValidateRefreshToken(ctx, services.HashToken("live"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, owner)
}
