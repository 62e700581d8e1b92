package count

import (
	"context"
	"errors"
	"net/http"

	"charcount/internal/handler/http/respond"
	countUC "charcount/internal/usecase/count"
	"charcount/pkg/charcount"
)

var (
	errMissingItems = errors.New("items is required")
	errInvalidJSON  = errors.New("invalid JSON body")
)

// classify maps a decoding or use-case error to its HTTP status and error kind.
func classify(err error) (int, string) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, charcount.ErrNullArgument):
		return http.StatusBadRequest, respond.KindNullArgument
	case errors.Is(err, charcount.ErrInvalidArgument):
		return http.StatusBadRequest, respond.KindInvalidArgument
	case errors.Is(err, charcount.ErrIndexOutOfRange):
		return http.StatusUnprocessableEntity, respond.KindIndexOutOfRange
	case errors.Is(err, countUC.ErrIncompleteRange),
		errors.Is(err, errInvalidJSON),
		errors.Is(err, errMissingItems):
		return http.StatusBadRequest, respond.KindBadRequest
	case errors.Is(err, countUC.ErrTextTooLong),
		errors.Is(err, countUC.ErrBatchTooLarge),
		errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, respond.KindTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, respond.KindInternal
	default:
		return http.StatusInternalServerError, respond.KindInternal
	}
}

func writeError(w http.ResponseWriter, err error) {
	code, kind := classify(err)
	respond.Error(w, code, kind, err)
}
