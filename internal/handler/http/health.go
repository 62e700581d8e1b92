// Package http provides the HTTP middleware and the health, liveness and
// metrics endpoints of the charcount API. Counting routes live in the count
// subpackage.
package http

import (
	"net/http"
	"time"

	"charcount/internal/handler/http/respond"
)

// HealthResponse represents the JSON response of the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Version   string                 `json:"version"`
	Checks    map[string]CheckStatus `json:"checks,omitempty"`
}

// CheckStatus represents the status of a single component.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler reports service health. The service has no external
// dependencies, so it is healthy whenever it can answer; the rate limiter
// state is reported for operators.
type HealthHandler struct {
	Version     string
	RateLimiter *IPRateLimiter // optional
}

// ServeHTTP writes the health report with 200 OK.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.Version,
	}

	if h.RateLimiter != nil {
		resp.Checks = map[string]CheckStatus{
			"rate_limiter": {
				Status:  "healthy",
				Details: map[string]any{"active_clients": h.RateLimiter.ActiveClients()},
			},
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, resp)
}

// LiveHandler handles liveness probes.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process can serve requests.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
