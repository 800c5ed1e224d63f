// Package signals provides technical indicator calculations for Verdex
package signals

// Values are ordered oldest to newest throughout this package.

// SMA calculates the simple moving average over the last period values.
// Returns 0 if there are fewer values than the period.
func SMA(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}

	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period)
}

// EWMA calculates the exponential weighted moving average series with
// smoothing factor 2/(span+1), seeded with the first value.
func EWMA(values []float64, span int) []float64 {
	if len(values) == 0 || span <= 0 {
		return nil
	}

	alpha := 2.0 / float64(span+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RSISeries calculates the Relative Strength Index over the close series
// using exponentially weighted average gains and losses. The first point
// has no prior close, so its delta is taken as zero.
func RSISeries(closes []float64, period int) []float64 {
	if len(closes) == 0 || period <= 0 {
		return nil
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	avgGains := EWMA(gains, period)
	avgLosses := EWMA(losses, period)

	rsi := make([]float64, len(closes))
	for i := range closes {
		loss := avgLosses[i]
		if loss == 0 {
			loss = 1e-10
		}
		rs := avgGains[i] / loss
		rsi[i] = 100 - 100/(1+rs)
	}
	return rsi
}

// RSI calculates the current RSI value (the last point of RSISeries).
// Returns 50 for an empty series.
func RSI(closes []float64, period int) float64 {
	series := RSISeries(closes, period)
	if len(series) == 0 {
		return 50
	}
	return series[len(series)-1]
}

// AllTimeHigh returns the maximum value in the series, or 0 if empty.
func AllTimeHigh(values []float64) float64 {
	high := 0.0
	for _, v := range values {
		if v > high {
			high = v
		}
	}
	return high
}

// Low returns the minimum value in the series, or 0 if empty.
func Low(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	low := values[0]
	for _, v := range values[1:] {
		if v < low {
			low = v
		}
	}
	return low
}

// AverageVolume calculates the mean volume over the last days entries.
// Uses all entries if there are fewer than days.
func AverageVolume(volumes []int64, days int) float64 {
	if len(volumes) == 0 || days <= 0 {
		return 0
	}
	if days > len(volumes) {
		days = len(volumes)
	}

	sum := int64(0)
	for _, v := range volumes[len(volumes)-days:] {
		sum += v
	}
	return float64(sum) / float64(days)
}

// PercentChange returns the percentage change from previous to current.
// Returns 0 when previous is 0.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
