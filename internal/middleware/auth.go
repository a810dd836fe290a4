package middleware

import (
	"strings"

	"github.com/dimitrije/gatekeep-api/internal/services"
	"github.com/dimitrije/gatekeep-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
)

// Auth verifies the bearer token and stores the session claims in the
// request context. Role checks are left to the handlers behind it.
func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.JSON(401, dto.MessageResponse{Message: "No token"})
			return
		}

		// The credential is whatever follows the first whitespace run;
		// the scheme word itself is not checked.
		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			_ = c.JSON(401, dto.MessageResponse{Message: "Invalid token"})
			return
		}

		claims, err := jwtService.ValidateToken(fields[1])
		if err != nil {
			_ = c.JSON(401, dto.MessageResponse{Message: "Invalid token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}

func GetUserEmail(c *drift.Context) string {
	if email, ok := c.Get(UserEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

func GetUserRole(c *drift.Context) string {
	if role, ok := c.Get(UserRoleKey); ok {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}
