// Package count provides the character counting use case shared by the HTTP
// API and the CLI. It turns transport-level inputs (where any field may be
// absent) into calls on pkg/charcount and records traces, metrics and logs.
package count

import (
	"context"
	"errors"

	"charcount/internal/observability/metrics"
	"charcount/pkg/charcount"
)

// Sentinel errors for count use case operations.
var (
	// ErrTextTooLong indicates that the input text exceeds the configured
	// maximum number of runes.
	ErrTextTooLong = errors.New("text too long")

	// ErrIncompleteRange indicates that only one of the start and end indices
	// was supplied. A range needs both.
	ErrIncompleteRange = errors.New("start and end index must be given together")

	// ErrBatchTooLarge indicates that a batch holds more items than allowed.
	ErrBatchTooLarge = errors.New("batch too large")
)

// Outcome maps an error returned by Count to the outcome label used in
// metrics. A nil error is a success.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, charcount.ErrNullArgument):
		return metrics.OutcomeNullArgument
	case errors.Is(err, charcount.ErrIndexOutOfRange):
		return metrics.OutcomeIndexOutOfRange
	case errors.Is(err, charcount.ErrInvalidArgument):
		return metrics.OutcomeInvalidArgument
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeRejected
	}
}
