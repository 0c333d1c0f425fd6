package middleware

import (
	"crypto/subtle"

	"crm_assistant_backend/internal/config"
	"crm_assistant_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// APIKeyMiddleware rejects requests whose x-api-key header does not match
// the configured key.
func APIKeyMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("x-api-key")
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(cfg.API.Key)) != 1 {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
