package models

import (
	"fmt"
	"strings"
)

// Exchange suffixes accepted without modification. Bare tickers get
// the NSE suffix appended.
var knownSuffixes = []string{".NS", ".BO", ".BSE", ".NSE"}

// NormalizeTicker trims and uppercases the input and ensures it ends
// with a recognized exchange suffix, defaulting to NSE.
func NormalizeTicker(raw string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if ticker == "" {
		return "", fmt.Errorf("%w: ticker is empty", ErrInvalidInput)
	}
	for _, suffix := range knownSuffixes {
		if strings.HasSuffix(ticker, suffix) {
			return ticker, nil
		}
	}
	return ticker + ".NS", nil
}

// AlternateExchange maps an NSE symbol to its BSE counterpart, used as
// a second fetch attempt when NSE returns nothing. Symbols already on
// another exchange have no alternate.
func AlternateExchange(symbol string) (string, bool) {
	if strings.HasSuffix(symbol, ".NS") {
		return strings.TrimSuffix(symbol, ".NS") + ".BO", true
	}
	return "", false
}

// DisplayTicker strips the exchange suffix for report headings.
func DisplayTicker(symbol string) string {
	for _, suffix := range knownSuffixes {
		if strings.HasSuffix(symbol, suffix) {
			return strings.TrimSuffix(symbol, suffix)
		}
	}
	return symbol
}
