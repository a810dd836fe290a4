package middleware

import (
	"time"

	"github.com/dimitrije/gatekeep-api/internal/metrics"
	"github.com/m1z23r/drift/pkg/drift"
)

// Metrics records request counts and latency per HTTP method.
func Metrics(collector *metrics.Collector) drift.HandlerFunc {
	return func(c *drift.Context) {
		start := time.Now()
		c.Next()
		collector.RecordRequest(c.Request.Method, time.Since(start))
	}
}
