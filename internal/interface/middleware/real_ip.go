package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// Proxy headers consulted for the originating client IP, in trust order.
// X-Forwarded-For may carry a chain; the left-most entry is the client.
var clientIPHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For"}

// RealIP resolves the originating client IP and stores it in the context
// under "real_ip". Falls back to the socket peer when no proxy header
// carries a parseable address.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", resolveClientIP(c))
		c.Next()
	}
}

func resolveClientIP(c *gin.Context) string {
	for _, h := range clientIPHeaders {
		v := c.GetHeader(h)
		if v == "" {
			continue
		}
		first, _, _ := strings.Cut(v, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
