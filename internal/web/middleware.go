package web

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yildizm/spamscope/internal/logger"
)

// RequestIDHeader carries the request id on responses
const RequestIDHeader = "X-Request-ID"

// requestID tags every request with an id, keeping one supplied by the caller
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs one line per request through the application logger
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logger.Field{
			logger.F("method", c.Request.Method),
			logger.F("path", c.Request.URL.Path),
			logger.Status(c.Writer.Status()),
			logger.Duration(time.Since(start)),
			logger.F("request_id", c.GetString("request_id")),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logger.F("errors", c.Errors.String()))
		}
		log.InfoWithFields("request", fields)
	}
}
