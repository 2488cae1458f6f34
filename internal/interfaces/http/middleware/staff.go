package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StaffKeyHeader carries the shared staff key
const StaffKeyHeader = "X-Staff-Key"

// StaffOnly guards the staff order view with a shared key. An empty key
// leaves the view open, which is how local development runs.
func StaffOnly(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		given := c.GetHeader(StaffKeyHeader)
		if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Staff key required",
			})
			return
		}

		c.Next()
	}
}
