// Package common provides shared utilities for Verdex
package common

import "time"

// Freshness TTLs for cached data components
const (
	FreshnessSnapshot = 15 * time.Minute
	FreshnessFXRate   = 1 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
