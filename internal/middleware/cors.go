package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"cardviz/internal/config"

	"github.com/gin-gonic/gin"
)

// IsLoopbackOrigin reports whether origin names localhost, 127.0.0.1 or ::1
// on any port.
func IsLoopbackOrigin(origin string) bool {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// DevCORS lets other loopback tools (an engine's own debug page, a
// notebook) call the API while the tool runs in development mode.
func DevCORS(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := strings.TrimSpace(c.GetHeader("Origin"))
		if origin == "" || !cfg.IsDev() {
			c.Next()
			return
		}

		if IsLoopbackOrigin(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
