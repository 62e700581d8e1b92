package count_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpH "charcount/internal/handler/http"
	"charcount/internal/handler/http/count"
	"charcount/internal/handler/http/respond"
	countUC "charcount/internal/usecase/count"
)

/* ───────── helpers ───────── */

type nopRecorder struct{}

func (nopRecorder) RecordCount(string, int, int, bool) {}
func (nopRecorder) RecordCountFailure(string, string)  {}
func (nopRecorder) RecordBatch(int)                    {}

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()
	svc := &countUC.Service{Metrics: nopRecorder{}, MaxTextRunes: 32, MaxBatchItems: 4, Parallelism: 2}
	mux := http.NewServeMux()
	count.Register(mux, svc)
	return mux
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

/* ───────── POST /count ───────── */

func TestCountHandler_Success(t *testing.T) {
	tests := []struct {
		name string
		body string
		want count.CountResponse
	}{
		{
			name: "whole string",
			body: `{"text":"hello world","targets":"ol"}`,
			want: count.CountResponse{Count: 5, Operation: countUC.OpCount},
		},
		{
			name: "range",
			body: `{"text":"hello world","targets":"l","start_index":0,"end_index":4}`,
			want: count.CountResponse{Count: 2, Operation: countUC.OpCountInRange},
		},
		{
			name: "range with limit",
			body: `{"text":"hello world","targets":"lo","start_index":0,"end_index":10,"limit":2}`,
			want: count.CountResponse{Count: 2, Operation: countUC.OpCountInRangeWithLimit, Capped: true},
		},
		{
			name: "limit only",
			body: `{"text":"hello world","targets":"o","limit":5}`,
			want: count.CountResponse{Count: 2, Operation: countUC.OpCountInRangeWithLimit},
		},
		{
			name: "empty targets",
			body: `{"text":"hello","targets":""}`,
			want: count.CountResponse{Count: 0, Operation: countUC.OpCount},
		},
		{
			name: "multi-byte",
			body: `{"text":"こんにちは世界","targets":"ん世"}`,
			want: count.CountResponse{Count: 2, Operation: countUC.OpCount},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, newMux(t), "/count", tt.body)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var got count.CountResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("response mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCountHandler_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantKind  string
		wantParam string
	}{
		{name: "missing text", body: `{"targets":"o"}`, wantCode: 400, wantKind: respond.KindNullArgument, wantParam: "str"},
		{name: "null text", body: `{"text":null,"targets":"o"}`, wantCode: 400, wantKind: respond.KindNullArgument, wantParam: "str"},
		{name: "missing targets", body: `{"text":"hello"}`, wantCode: 400, wantKind: respond.KindNullArgument, wantParam: "targets"},
		{name: "negative limit", body: `{"text":"hello","targets":"l","start_index":0,"end_index":3,"limit":-1}`, wantCode: 400, wantKind: respond.KindInvalidArgument, wantParam: "limit"},
		{name: "incomplete range", body: `{"text":"hello","targets":"l","start_index":1}`, wantCode: 400, wantKind: respond.KindBadRequest},
		{name: "single character text", body: `{"text":"a","targets":"a"}`, wantCode: 422, wantKind: respond.KindIndexOutOfRange, wantParam: "endIndex"},
		{name: "end beyond text", body: `{"text":"hello","targets":"l","start_index":0,"end_index":9}`, wantCode: 422, wantKind: respond.KindIndexOutOfRange, wantParam: "startIndex"},
		{name: "end equals length", body: `{"text":"hello","targets":"l","start_index":0,"end_index":5}`, wantCode: 422, wantKind: respond.KindIndexOutOfRange, wantParam: "endIndex"},
		{name: "text too long", body: `{"text":"` + strings.Repeat("x", 33) + `","targets":"x"}`, wantCode: 413, wantKind: respond.KindTooLarge},
		{name: "malformed JSON", body: `{"text":`, wantCode: 400, wantKind: respond.KindBadRequest},
		{name: "unknown field", body: `{"text":"hello","targets":"l","startIndex":1}`, wantCode: 400, wantKind: respond.KindBadRequest},
		{name: "trailing data", body: `{"text":"hello","targets":"l"} {}`, wantCode: 400, wantKind: respond.KindBadRequest},
		{name: "wrong type", body: `{"text":"hello","targets":["l"]}`, wantCode: 400, wantKind: respond.KindBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, newMux(t), "/count", tt.body)
			require.Equal(t, tt.wantCode, rr.Code, rr.Body.String())

			var body respond.ErrorBody
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.Equal(t, tt.wantParam, body.Param)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestCountHandler_BodyTooLarge(t *testing.T) {
	h := httpH.LimitRequestBody(64)(newMux(t))

	rr := post(t, h, "/count", `{"text":"`+strings.Repeat("a", 100)+`","targets":"a"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)

	var body respond.ErrorBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, respond.KindTooLarge, body.Kind)
}

func TestCountHandler_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/count", nil)
	rr := httptest.NewRecorder()
	newMux(t).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

/* ───────── POST /count/batch ───────── */

func TestBatchHandler_Success(t *testing.T) {
	body := `{"items":[
		{"text":"hello world","targets":"o"},
		{"targets":"o"},
		{"text":"a","targets":"a"},
		{"text":"hello world","targets":"lo","limit":1}
	]}`

	rr := post(t, newMux(t), "/count/batch", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	assert.JSONEq(t, `{"results":[
		{"status":200,"count":2,"operation":"count","capped":false},
		{"status":400,"error":"argument is null: str","kind":"null_argument","param":"str"},
		{"status":422,"error":"index out of range: endIndex: endIndex is zero or negative","kind":"index_out_of_range","param":"endIndex"},
		{"status":200,"count":1,"operation":"count_in_range_with_limit","capped":true}
	]}`, rr.Body.String())
}

func TestBatchHandler_Empty(t *testing.T) {
	rr := post(t, newMux(t), "/count/batch", `{"items":[]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"results":[]}`, rr.Body.String())
}

func TestBatchHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantKind string
	}{
		{name: "missing items", body: `{}`, wantCode: 400, wantKind: respond.KindBadRequest},
		{name: "malformed JSON", body: `{"items":[`, wantCode: 400, wantKind: respond.KindBadRequest},
		{
			name:     "too many items",
			body:     `{"items":[{"text":"ab","targets":"a"},{"text":"ab","targets":"a"},{"text":"ab","targets":"a"},{"text":"ab","targets":"a"},{"text":"ab","targets":"a"}]}`,
			wantCode: 413,
			wantKind: respond.KindTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, newMux(t), "/count/batch", tt.body)
			require.Equal(t, tt.wantCode, rr.Code, rr.Body.String())

			var body respond.ErrorBody
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantKind, body.Kind)
		})
	}
}
