package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/verdex/internal/app"
	"github.com/bobmcallan/verdex/internal/common"
	"github.com/bobmcallan/verdex/internal/models"
)

// fakeAnalysis returns a fixed result or error.
type fakeAnalysis struct {
	result *models.AnalysisResult
	err    error
}

func (f *fakeAnalysis) Analyze(ctx context.Context, ticker string) (*models.AnalysisResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeReportStore serves reports from a map.
type fakeReportStore struct {
	reports map[string][]byte
}

func (f *fakeReportStore) Save(ctx context.Context, filename string, data []byte) error {
	f.reports[filename] = data
	return nil
}

func (f *fakeReportStore) Load(ctx context.Context, filename string) ([]byte, error) {
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") {
		return nil, fmt.Errorf("%w: unsafe filename", models.ErrInvalidInput)
	}
	data, ok := f.reports[filename]
	if !ok {
		return nil, models.ErrNotFound
	}
	return data, nil
}

func (f *fakeReportStore) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(f.reports))
	for name := range f.reports {
		names = append(names, name)
	}
	return names, nil
}

func newTestServer(analysis *fakeAnalysis, store *fakeReportStore) *Server {
	if store == nil {
		store = &fakeReportStore{reports: map[string][]byte{}}
	}
	a := &app.App{
		Config:          common.NewDefaultConfig(),
		Logger:          common.NewSilentLogger(),
		AnalysisService: analysis,
		ReportStore:     store,
	}
	return NewServer(a)
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	result := &models.AnalysisResult{
		Analysis: &models.Analysis{
			Symbol:  "RELIANCE.NS",
			Verdict: models.Verdict{Tier: "BUY", Confidence: 60},
		},
		ReportFilename: "Stock_Analysis_RELIANCE_31082025.pdf",
	}
	srv := newTestServer(&fakeAnalysis{result: result}, nil)

	rec := postJSON(t, srv.Handler(), "/api/analyze", `{"stock_name":"RELIANCE"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, "BUY", got.Results.Verdict.Tier)
	assert.Equal(t, "Stock_Analysis_RELIANCE_31082025.pdf", got.PDFFilename)
}

func TestHandleAnalyzeEmptyTicker(t *testing.T) {
	srv := newTestServer(&fakeAnalysis{
		err: fmt.Errorf("%w: ticker is empty", models.ErrInvalidInput),
	}, nil)

	rec := postJSON(t, srv.Handler(), "/api/analyze", `{"stock_name":""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "invalid_input", body.Code)
}

func TestHandleAnalyzeDataUnavailable(t *testing.T) {
	srv := newTestServer(&fakeAnalysis{
		err: fmt.Errorf("%w: no data for GHOST.NS", models.ErrDataUnavailable),
	}, nil)

	rec := postJSON(t, srv.Handler(), "/api/analyze", `{"stock_name":"GHOST"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleAnalyzeRenderFailure(t *testing.T) {
	srv := newTestServer(&fakeAnalysis{
		err: fmt.Errorf("%w: chart error", models.ErrRenderFailure),
	}, nil)

	rec := postJSON(t, srv.Handler(), "/api/analyze", `{"stock_name":"RELIANCE"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "render_failure", body.Code)
}

func TestHandleAnalyzeBadJSON(t *testing.T) {
	srv := newTestServer(&fakeAnalysis{}, nil)

	rec := postJSON(t, srv.Handler(), "/api/analyze", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyzeMethodNotAllowed(t *testing.T) {
	srv := newTestServer(&fakeAnalysis{}, nil)

	rec := get(t, srv.Handler(), "/api/analyze")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleReportDownload(t *testing.T) {
	store := &fakeReportStore{reports: map[string][]byte{
		"Stock_Analysis_TCS_31082025.pdf": []byte("%PDF-1.4 data"),
	}}
	srv := newTestServer(&fakeAnalysis{}, store)

	rec := get(t, srv.Handler(), "/api/reports/Stock_Analysis_TCS_31082025.pdf")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Stock_Analysis_TCS_31082025.pdf")
	assert.Equal(t, "%PDF-1.4 data", rec.Body.String())
}

func TestHandleReportDownloadNotFound(t *testing.T) {
	srv := newTestServer(&fakeAnalysis{}, nil)

	rec := get(t, srv.Handler(), "/api/reports/missing.pdf")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleReportDownloadTraversalRejected(t *testing.T) {
	srv := newTestServer(&fakeAnalysis{}, nil)

	rec := get(t, srv.Handler(), "/api/reports/..secret.pdf")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReportList(t *testing.T) {
	store := &fakeReportStore{reports: map[string][]byte{
		"a.pdf": []byte("1"),
		"b.pdf": []byte("2"),
	}}
	srv := newTestServer(&fakeAnalysis{}, store)

	rec := get(t, srv.Handler(), "/api/reports")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Reports []string `json:"reports"`
		Count   int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Reports, 2)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&fakeAnalysis{}, nil)

	rec := get(t, srv.Handler(), "/api/health")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCorrelationIDHeader(t *testing.T) {
	srv := newTestServer(&fakeAnalysis{}, nil)

	rec := get(t, srv.Handler(), "/api/health")
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get("X-Correlation-ID"))
}
