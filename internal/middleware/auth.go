package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lovemap/lovemap-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

// bearerToken pulls the token out of an "Authorization: Bearer <token>"
// header, empty string when the header is missing or malformed.
func bearerToken(c *drift.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// Auth guards a route group: a valid access token puts the caller's id and
// email into the request context, anything else is a 401.
func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Unauthorized("missing or malformed authorization header")
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Next()
	}
}

// GetUserID returns the authenticated caller, uuid.Nil outside Auth.
func GetUserID(c *drift.Context) uuid.UUID {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func GetUserEmail(c *drift.Context) string {
	if v, ok := c.Get(UserEmailKey); ok {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}
