package server

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/verdex/internal/models"
)

// AnalyzeRequest is the POST /api/analyze request body.
type AnalyzeRequest struct {
	StockName string `json:"stock_name"`
}

// AnalyzeResponse is the POST /api/analyze success envelope.
type AnalyzeResponse struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message"`
	PDFFilename string           `json:"pdf_filename"`
	Results     *models.Analysis `json:"results"`
}

// handleAnalyze handles POST /api/analyze.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req AnalyzeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := s.app.AnalysisService.Analyze(r.Context(), req.StockName)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, AnalyzeResponse{
		Success:     true,
		Message:     "Analysis completed successfully!",
		PDFFilename: result.ReportFilename,
		Results:     result.Analysis,
	})
}

// writeAnalysisError maps pipeline errors to HTTP status codes.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "invalid_input")
	case errors.Is(err, models.ErrDataUnavailable):
		WriteErrorWithCode(w, http.StatusBadGateway, err.Error(), "data_unavailable")
	case errors.Is(err, models.ErrRenderFailure):
		WriteErrorWithCode(w, http.StatusInternalServerError, err.Error(), "render_failure")
	default:
		s.logger.Error().Err(err).Msg("Analysis failed")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// handleReportDownload handles GET /api/reports/{filename}.
func (s *Server) handleReportDownload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	filename := PathParam(r, "/api/reports/", "")
	if filename == "" {
		WriteError(w, http.StatusBadRequest, "Report filename is required")
		return
	}

	data, err := s.app.ReportStore.Load(r.Context(), filename)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			WriteErrorWithCode(w, http.StatusBadRequest, "Invalid report filename", "invalid_input")
		case errors.Is(err, models.ErrNotFound):
			WriteError(w, http.StatusNotFound, "Report not found")
		default:
			s.logger.Error().Err(err).Str("filename", filename).Msg("Failed to load report")
			WriteError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleReportList handles GET /api/reports.
func (s *Server) handleReportList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	names, err := s.app.ReportStore.List(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list reports")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reports": names,
		"count":   len(names),
	})
}
