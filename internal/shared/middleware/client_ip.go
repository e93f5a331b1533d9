package middleware

import (
	"context"

	"bookstore-catalog/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type clientIPKey struct{}

// ClientIP stores the resolved caller address under "client_ip" in the gin
// context and in the request context.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := utils.ClientIP(c.Request)
		c.Set("client_ip", ip)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), clientIPKey{}, ip))
		c.Next()
	}
}

// ClientIPFromContext returns the address stored by ClientIP, or "".
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
