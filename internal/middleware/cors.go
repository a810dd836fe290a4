package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dimitrije/gatekeep-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// CORS enforces an explicit origin allow-list. Requests without an Origin
// header (server-to-server) always pass; disallowed origins are rejected
// before any handler runs.
func CORS(allowedOrigins []string) drift.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *drift.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		if !allowed[origin] {
			_ = c.JSON(403, dto.MessageResponse{Message: "Origin not allowed"})
			return
		}

		header := c.Response.Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Vary", "Origin")
		header.Set("Access-Control-Allow-Methods", strings.Join([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}, ", "))
		header.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		header.Set("Access-Control-Max-Age", strconv.Itoa(86400))

		if c.Request.Method == http.MethodOptions {
			c.Response.WriteHeader(http.StatusNoContent)
			c.Abort()
			return
		}

		c.Next()
	}
}
