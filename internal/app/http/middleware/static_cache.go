package middleware

import "github.com/gin-gonic/gin"

// StaticCache marks served files as immutable: uploaded names embed a
// timestamp and random suffix, so a path's content never changes.
func StaticCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=31536000, immutable")
		c.Next()
	}
}
