package count

import (
	"charcount/internal/handler/http/respond"
	countUC "charcount/internal/usecase/count"
)

// CountRequest is the body of POST /count and one item of a batch.
// Absent fields decode to nil.
type CountRequest struct {
	Text       *string `json:"text"`
	Targets    *string `json:"targets"`
	StartIndex *int    `json:"start_index,omitempty"`
	EndIndex   *int    `json:"end_index,omitempty"`
	Limit      *int    `json:"limit,omitempty"`
}

func (r CountRequest) input() countUC.Input {
	return countUC.Input{
		Text:    r.Text,
		Targets: r.Targets,
		Start:   r.StartIndex,
		End:     r.EndIndex,
		Limit:   r.Limit,
	}
}

// CountResponse is the body of a successful count.
type CountResponse struct {
	Count     int    `json:"count"`
	Operation string `json:"operation"`
	Capped    bool   `json:"capped"`
}

func toResponse(res countUC.Result) CountResponse {
	return CountResponse{Count: res.Count, Operation: res.Operation, Capped: res.Capped}
}

// BatchRequest is the body of POST /count/batch.
type BatchRequest struct {
	Items []CountRequest `json:"items"`
}

// BatchResult is one entry of a batch response: either the count fields or
// the error fields are present, alongside the status the item would have
// received as a single request.
type BatchResult struct {
	Status int `json:"status"`
	*CountResponse
	*respond.ErrorBody
}

// BatchResponse is the body of a successful batch request. Results are in
// request order.
type BatchResponse struct {
	Results []BatchResult `json:"results"`
}
