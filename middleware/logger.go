package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		line := "%s %s %s %d %s"
		if status >= 500 {
			line = "❌ " + line
		}
		log.Printf(line, c.Request.Method, c.Request.URL.Path, c.ClientIP(), status, latency.String())
		if len(c.Errors) > 0 {
			log.Printf("   errors: %s", c.Errors.String())
		}
	}
}
