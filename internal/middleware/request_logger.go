package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barbershop-booking/internal/logging"
)

const CorrelationHeader = "X-Correlation-ID"

// RequestLogger tags every request with a correlation id and logs one line
// once the handler chain returns.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		cid := c.GetHeader(CorrelationHeader)
		if _, err := uuid.Parse(cid); err != nil {
			cid = uuid.NewString()
		}
		c.Header(CorrelationHeader, cid)

		logging.WithEntry(c, log.WithField("correlation_id", cid))

		c.Next()

		entry := logging.FromContext(c).WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})

		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
