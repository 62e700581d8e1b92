package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"charcount/internal/handler/http/responsewriter"
	"charcount/internal/observability/metrics"
)

// knownPaths lists the routes recorded under their own label. Anything else
// is recorded as "other" to keep label cardinality bounded.
var knownPaths = map[string]bool{
	"/count":       true,
	"/count/batch": true,
	"/health":      true,
	"/live":        true,
	"/metrics":     true,
}

func normalizePath(path string) string {
	if knownPaths[path] {
		return path
	}
	if strings.HasPrefix(path, "/swagger/") {
		return "/swagger"
	}
	return "other"
}

// MetricsMiddleware records HTTP request metrics: in-flight requests,
// duration, request and response sizes and status codes.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		rw := responsewriter.Wrap(w)
		start := time.Now()
		next.ServeHTTP(rw, r)

		requestSize := 0
		if r.ContentLength > 0 {
			requestSize = int(r.ContentLength)
		}
		metrics.RecordHTTPRequest(r.Method, normalizePath(r.URL.Path), strconv.Itoa(rw.StatusCode()),
			time.Since(start), requestSize, rw.BytesWritten())
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
