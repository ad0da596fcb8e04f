package middleware

import (
	"net/http"
	"time"

	"github.com/sakif/ideaforge/internal/metrics"
)

// Metrics records request counts and latencies on c, labelled by route
// pattern rather than raw path. A nil collector makes this a pass-through.
func Metrics(c *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if c == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)

			next.ServeHTTP(wrapped, r)

			c.ObserveRequest(r.Method, routePattern(r), wrapped.statusCode, time.Since(start))
		})
	}
}
