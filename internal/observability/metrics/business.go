package metrics

import (
	"time"
)

// Outcome labels for CountRequestsTotal.
const (
	OutcomeSuccess         = "success"
	OutcomeNullArgument    = "null_argument"
	OutcomeIndexOutOfRange = "index_out_of_range"
	OutcomeInvalidArgument = "invalid_argument"
	OutcomeRejected        = "rejected"
	OutcomeCanceled        = "canceled"
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// RecordRateLimited records a request rejected by rate limiting.
func RecordRateLimited() {
	HTTPRateLimitedTotal.Inc()
}

// RecordCount records a successful counting operation.
func RecordCount(operation string, matches, textRunes int, capped bool) {
	CountRequestsTotal.WithLabelValues(operation, OutcomeSuccess).Inc()
	CountMatches.WithLabelValues(operation).Observe(float64(matches))
	CountTextRunes.Observe(float64(textRunes))
	if capped {
		LimitCappedTotal.Inc()
	}
}

// RecordCountFailure records a counting operation rejected with the given outcome.
func RecordCountFailure(operation, outcome string) {
	CountRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordBatch records the size of a batch request.
func RecordBatch(size int) {
	BatchSize.Observe(float64(size))
}

// Recorder exposes the business recorders as methods so use cases can accept
// them through a small interface and tests can substitute a fake.
type Recorder struct{}

// RecordCount implements the use-case metrics interface.
func (Recorder) RecordCount(operation string, matches, textRunes int, capped bool) {
	RecordCount(operation, matches, textRunes, capped)
}

// RecordCountFailure implements the use-case metrics interface.
func (Recorder) RecordCountFailure(operation, outcome string) {
	RecordCountFailure(operation, outcome)
}

// RecordBatch implements the use-case metrics interface.
func (Recorder) RecordBatch(size int) {
	RecordBatch(size)
}
