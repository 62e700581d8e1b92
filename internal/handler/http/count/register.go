// Package count provides the HTTP handlers for the counting endpoints.
package count

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	countUC "charcount/internal/usecase/count"
)

// Register registers the counting routes with the given mux.
func Register(mux *http.ServeMux, svc *countUC.Service) {
	mux.Handle("POST /count", CountHandler{Svc: svc})
	mux.Handle("POST /count/batch", BatchHandler{Svc: svc})
}

// decode reads a single JSON document into v. Unknown fields are rejected so
// misspelled parameters are not silently ignored. Body size errors are
// returned unchanged.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON document", errInvalidJSON)
	}
	return nil
}
