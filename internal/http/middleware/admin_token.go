package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aitbenali/autoparts-backend/internal/http/response"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

// AdminTokenMiddleware gates the admin surface behind a shared-secret header.
// Full authentication and role management live in a separate system; this is
// only a perimeter check for the back-office routes.
type AdminTokenMiddleware struct {
	log   *logger.Logger
	token string
}

func NewAdminTokenMiddleware(baseLog *logger.Logger, token string) *AdminTokenMiddleware {
	return &AdminTokenMiddleware{
		log:   baseLog.With("middleware", "AdminTokenMiddleware"),
		token: token,
	}
}

func (m *AdminTokenMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.token == "" {
			m.log.Warn("admin token not configured, rejecting request")
			response.RespondError(c, http.StatusServiceUnavailable, "admin_disabled", nil)
			c.Abort()
			return
		}
		got := strings.TrimSpace(c.GetHeader("X-Admin-Token"))
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(m.token)) != 1 {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
