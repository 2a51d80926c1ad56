package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTForTest(accessExpiry, refreshExpiry time.Duration) *JWTService {
	return NewJWTService("test-secret", accessExpiry, refreshExpiry)
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	svc := newJWTForTest(15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(userID, "maria@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_GenerateTokenPair_UniqueRefreshTokens(t *testing.T) {
	svc := newJWTForTest(15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	first, err := svc.GenerateTokenPair(userID, "maria@example.com")
	require.NoError(t, err)
	second, err := svc.GenerateTokenPair(userID, "maria@example.com")
	require.NoError(t, err)

	// jti makes refresh tokens unique even within the same second
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestJWTService_ValidateAccessToken_Rejections(t *testing.T) {
	svc := newJWTForTest(15*time.Minute, 24*time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("another-secret", 15*time.Minute, 24*time.Hour)
		pair, err := other.GenerateTokenPair(uuid.New(), "x@example.com")
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorContains(t, err, "failed to parse token")
	})

	t.Run("expired", func(t *testing.T) {
		shortLived := newJWTForTest(time.Millisecond, 24*time.Hour)
		pair, err := shortLived.GenerateTokenPair(uuid.New(), "x@example.com")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = shortLived.ValidateAccessToken(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, token := range []string{"", "not-a-jwt", "eyJhbGciOiJIUzI1NiJ9."} {
			_, err := svc.ValidateAccessToken(token)
			assert.Error(t, err)
		}
	})
}

func TestJWTService_ValidateRefreshToken(t *testing.T) {
	svc := newJWTForTest(15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(userID, "maria@example.com")
	require.NoError(t, err)

	got, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_ValidateRefreshToken_Expired(t *testing.T) {
	svc := newJWTForTest(15*time.Minute, time.Millisecond)

	pair, err := svc.GenerateTokenPair(uuid.New(), "maria@example.com")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.ValidateRefreshToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestJWTService_RefreshExpiry(t *testing.T) {
	svc := newJWTForTest(15*time.Minute, 72*time.Hour)
	assert.Equal(t, 72*time.Hour, svc.RefreshExpiry())
}

func TestHashToken(t *testing.T) {
	hash := HashToken("my-refresh-token")

	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashToken("my-refresh-token"))
	assert.NotEqual(t, hash, HashToken("another-token"))
}
