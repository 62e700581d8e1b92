package count

import (
	"net/http"

	"charcount/internal/handler/http/respond"
	countUC "charcount/internal/usecase/count"
)

// BatchHandler serves POST /count/batch.
type BatchHandler struct{ Svc *countUC.Service }

// ServeHTTP counts several independent requests
// @Summary      Count characters in a batch
// @Description  Evaluates each item independently; item failures are reported per item with the status a single request would get
// @Tags         count
// @Accept       json
// @Produce      json
// @Param        request body BatchRequest true "Batch of count requests"
// @Success      200 {object} BatchResponse
// @Failure      400 {object} respond.ErrorBody "Malformed body or missing items"
// @Failure      413 {object} respond.ErrorBody "Too many items or body too large"
// @Failure      429 {object} respond.ErrorBody "Rate limit exceeded"
// @Router       /count/batch [post]
func (h BatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Items == nil {
		writeError(w, errMissingItems)
		return
	}

	inputs := make([]countUC.Input, len(req.Items))
	for i, item := range req.Items {
		inputs[i] = item.input()
	}

	items, err := h.Svc.CountBatch(r.Context(), inputs)
	if err != nil {
		writeError(w, err)
		return
	}

	results := make([]BatchResult, len(items))
	for i, item := range items {
		if item.Err != nil {
			code, kind := classify(item.Err)
			body := respond.Body(code, kind, item.Err)
			results[i] = BatchResult{Status: code, ErrorBody: &body}
			continue
		}
		resp := toResponse(item.Result)
		results[i] = BatchResult{Status: http.StatusOK, CountResponse: &resp}
	}
	respond.JSON(w, http.StatusOK, BatchResponse{Results: results})
}
