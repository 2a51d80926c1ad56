package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lovemap/lovemap-api/internal/database"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTokenService(t *testing.T) (*TokenService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewTokenService(&database.DB{Pool: mock}), mock
}

func TestTokenService_StoreRefreshToken(t *testing.T) {
	svc, mock := setupTokenService(t)
	userID := uuid.New()
	hash := HashToken("some-refresh-token")
	expiresAt := time.Now().Add(24 * time.Hour)

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(userID, hash, expiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := svc.StoreRefreshToken(context.Background(), userID, hash, expiresAt)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenService_ValidateRefreshToken(t *testing.T) {
	t.Run("known hash resolves to owner", func(t *testing.T) {
		svc, mock := setupTokenService(t)
		userID := uuid.New()

		mock.ExpectQuery(`SELECT user_id FROM refresh_tokens`).
			WithArgs("known-hash").
			WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(userID))

		got, err := svc.ValidateRefreshToken(context.Background(), "known-hash")

		assert.NoError(t, err)
		assert.Equal(t, userID, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing or expired hash fails", func(t *testing.T) {
		svc, mock := setupTokenService(t)

		mock.ExpectQuery(`SELECT user_id FROM refresh_tokens`).
			WithArgs("stale-hash").
			WillReturnError(pgx.ErrNoRows)

		got, err := svc.ValidateRefreshToken(context.Background(), "stale-hash")

		assert.Error(t, err)
		assert.Equal(t, uuid.Nil, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTokenService_RevokeRefreshToken(t *testing.T) {
	svc, mock := setupTokenService(t)

	mock.ExpectExec(`DELETE FROM refresh_tokens WHERE token_hash`).
		WithArgs("revoked-hash").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := svc.RevokeRefreshToken(context.Background(), "revoked-hash")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenService_RevokeAllUserTokens(t *testing.T) {
	svc, mock := setupTokenService(t)
	userID := uuid.New()

	mock.ExpectExec(`DELETE FROM refresh_tokens WHERE user_id`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	err := svc.RevokeAllUserTokens(context.Background(), userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenService_CleanupExpired(t *testing.T) {
	svc, mock := setupTokenService(t)

	mock.ExpectExec(`DELETE FROM refresh_tokens WHERE expires_at < NOW`).
		WillReturnResult(pgxmock.NewResult("DELETE", 5))

	err := svc.CleanupExpired(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
