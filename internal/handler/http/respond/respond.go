// Package respond provides utilities for sending HTTP responses in JSON format.
// Error responses share one body shape and 5xx details are never sent to clients.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"charcount/pkg/charcount"
)

// Error kinds reported in error bodies.
const (
	KindNullArgument    = "null_argument"
	KindIndexOutOfRange = "index_out_of_range"
	KindInvalidArgument = "invalid_argument"
	KindBadRequest      = "bad_request"
	KindTooLarge        = "too_large"
	KindRateLimited     = "rate_limited"
	KindInternal        = "internal"
)

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Param string `json:"param,omitempty"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent; nothing left but to log.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Body builds the error body for err. The offending parameter is taken from
// a *charcount.ArgumentError in the chain. 5xx bodies carry a generic message.
func Body(code int, kind string, err error) ErrorBody {
	if code >= http.StatusInternalServerError {
		return ErrorBody{Error: "internal server error", Kind: KindInternal}
	}
	return ErrorBody{Error: err.Error(), Kind: kind, Param: charcount.Param(err)}
}

// Error writes an error response. Errors with a 5xx code are logged and
// replaced by a generic message.
func Error(w http.ResponseWriter, code int, kind string, err error) {
	if err == nil {
		return
	}
	if code >= http.StatusInternalServerError {
		slog.Default().Error("internal server error",
			slog.String("status", http.StatusText(code)),
			slog.Int("code", code),
			slog.Any("error", err))
	}
	JSON(w, code, Body(code, kind, err))
}
