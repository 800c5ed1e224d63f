package models

import "errors"

// Sentinel errors classifying analysis failures. Handlers map these to
// HTTP status codes; wrap with fmt.Errorf("...: %w", Err...) so that
// errors.Is still matches.
var (
	// ErrInvalidInput marks a request the caller can fix (bad ticker,
	// bad filename).
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataUnavailable marks an upstream fetch that returned nothing
	// usable after retries and exchange fallback.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrRenderFailure marks a chart or PDF generation failure.
	ErrRenderFailure = errors.New("report rendering failed")

	// ErrNotFound marks a missing stored report.
	ErrNotFound = errors.New("not found")
)
