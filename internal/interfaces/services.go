package interfaces

import (
	"context"

	"github.com/bobmcallan/verdex/internal/models"
)

// AnalysisService runs the full analysis pipeline for a ticker
type AnalysisService interface {
	// Analyze fetches market data, computes all indicators, aggregates the
	// verdict, and generates the PDF report
	Analyze(ctx context.Context, ticker string) (*models.AnalysisResult, error)
}

// ReportService renders analysis results into PDF reports
type ReportService interface {
	// Render produces the PDF bytes and the filename for an analysis
	Render(ctx context.Context, analysis *models.Analysis) (filename string, pdf []byte, err error)
}
