package gin

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/fwojciec/pagelens"
	"github.com/gin-gonic/gin"
)

// Recovery turns handler panics into a 500 with a generic message.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("panic recovered",
					"panic", v,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": pagelens.MsgUnknown,
					"code":  pagelens.EINTERNAL,
				})
			}
		}()
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func(begin time.Time) {
			logger.Info("http request",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"client", c.ClientIP(),
				"duration", time.Since(begin),
			)
		}(time.Now())
		c.Next()
	}
}
