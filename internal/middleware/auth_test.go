package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lovemap/lovemap-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)
}

func generateTestToken(t *testing.T, jwtSvc *services.JWTService, userID uuid.UUID, email string) string {
	t.Helper()
	pair, err := jwtSvc.GenerateTokenPair(userID, email)
	require.NoError(t, err)
	return pair.AccessToken
}

// guardedApp mounts Auth in front of a handler that records what the
// context helpers return.
func guardedApp(jwtSvc *services.JWTService, gotUserID *uuid.UUID, gotEmail *string) *drift.Engine {
	app := drift.New()
	app.Use(Auth(jwtSvc))
	app.Get("/protected", func(c *drift.Context) {
		if gotUserID != nil {
			*gotUserID = GetUserID(c)
		}
		if gotEmail != nil {
			*gotEmail = GetUserEmail(c)
		}
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return app
}

func TestAuth_RejectsBadHeaders(t *testing.T) {
	jwtSvc := newTestJWTService()
	app := guardedApp(jwtSvc, nil, nil)

	cases := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"no header", "", "missing or malformed authorization header"},
		{"wrong scheme", "Token some-token", "missing or malformed authorization header"},
		{"scheme only", "Bearer", "missing or malformed authorization header"},
		{"garbage token", "Bearer invalid-token", "invalid or expired token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			app.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantMsg)
		})
	}
}

func TestAuth_RejectsExpiredToken(t *testing.T) {
	jwtSvc := services.NewJWTService("test-secret-key", time.Millisecond, 24*time.Hour)
	token := generateTestToken(t, jwtSvc, uuid.New(), "maria@example.com")
	time.Sleep(10 * time.Millisecond)

	app := guardedApp(jwtSvc, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestAuth_RejectsForeignSignature(t *testing.T) {
	signer := services.NewJWTService("secret-1", 15*time.Minute, 24*time.Hour)
	verifier := services.NewJWTService("secret-2", 15*time.Minute, 24*time.Hour)
	token := generateTestToken(t, signer, uuid.New(), "maria@example.com")

	app := guardedApp(verifier, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_PopulatesContext(t *testing.T) {
	jwtSvc := newTestJWTService()
	userID := uuid.New()
	token := generateTestToken(t, jwtSvc, userID, "maria@example.com")

	var gotUserID uuid.UUID
	var gotEmail string
	app := guardedApp(jwtSvc, &gotUserID, &gotEmail)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, "maria@example.com", gotEmail)
}

func TestAuth_BearerSchemeIsCaseInsensitive(t *testing.T) {
	jwtSvc := newTestJWTService()
	token := generateTestToken(t, jwtSvc, uuid.New(), "maria@example.com")
	app := guardedApp(jwtSvc, nil, nil)

	for _, scheme := range []string{"bearer", "BEARER", "BeArEr"} {
		t.Run(scheme, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", scheme+" "+token)
			rec := httptest.NewRecorder()

			app.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestContextHelpers_OutsideAuth(t *testing.T) {
	app := drift.New()

	var gotUserID uuid.UUID
	var gotEmail string
	app.Get("/open", func(c *drift.Context) {
		gotUserID = GetUserID(c)
		gotEmail = GetUserEmail(c)
		_ = c.JSON(http.StatusOK, nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, uuid.Nil, gotUserID)
	assert.Equal(t, "", gotEmail)
}
