package count

import (
	"net/http"

	"charcount/internal/handler/http/respond"
	countUC "charcount/internal/usecase/count"
)

// CountHandler serves POST /count.
type CountHandler struct{ Svc *countUC.Service }

// ServeHTTP counts target characters in a text
// @Summary      Count characters
// @Description  Counts occurrences of the target characters, optionally within an inclusive range and capped by a limit
// @Tags         count
// @Accept       json
// @Produce      json
// @Param        request body CountRequest true "Text, targets and optional range/limit"
// @Success      200 {object} CountResponse
// @Failure      400 {object} respond.ErrorBody "Missing or invalid argument"
// @Failure      413 {object} respond.ErrorBody "Text or body too large"
// @Failure      422 {object} respond.ErrorBody "Index out of range"
// @Failure      429 {object} respond.ErrorBody "Rate limit exceeded"
// @Router       /count [post]
func (h CountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CountRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.Svc.Count(r.Context(), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toResponse(res))
}
