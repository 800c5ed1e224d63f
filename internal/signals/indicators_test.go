package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		period   int
		expected float64
	}{
		{"simple average", []float64{1, 2, 3, 4}, 4, 2.5},
		{"uses last period values", []float64{10, 10, 1, 2, 3}, 3, 2.0},
		{"insufficient data", []float64{1, 2}, 5, 0},
		{"empty", nil, 3, 0},
		{"zero period", []float64{1, 2, 3}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SMA(tt.values, tt.period), 0.0001)
		})
	}
}

func TestEWMA(t *testing.T) {
	// span 3 gives alpha 0.5
	got := EWMA([]float64{1, 2, 3}, 3)
	require.Len(t, got, 3)
	assert.InDelta(t, 1.0, got[0], 0.0001)
	assert.InDelta(t, 1.5, got[1], 0.0001)
	assert.InDelta(t, 2.25, got[2], 0.0001)
}

func TestEWMAEmpty(t *testing.T) {
	assert.Nil(t, EWMA(nil, 14))
}

func TestRSIBounds(t *testing.T) {
	closes := []float64{100, 102, 101, 105, 103, 108, 107, 110, 109, 112,
		111, 115, 113, 118, 116, 120, 119, 122, 121, 125}
	series := RSISeries(closes, 14)
	require.Len(t, series, len(closes))
	for i, v := range series {
		assert.GreaterOrEqual(t, v, 0.0, "index %d", i)
		assert.LessOrEqual(t, v, 100.0, "index %d", i)
	}
}

func TestRSIMonotonicSeries(t *testing.T) {
	up := make([]float64, 30)
	down := make([]float64, 30)
	for i := range up {
		up[i] = 100 + float64(i)
		down[i] = 100 - float64(i)
	}

	assert.InDelta(t, 100.0, RSI(up, 14), 0.01)
	assert.InDelta(t, 0.0, RSI(down, 14), 0.01)
}

func TestRSIEmptySeries(t *testing.T) {
	assert.Equal(t, 50.0, RSI(nil, 14))
}

func TestRSIHandComputed(t *testing.T) {
	// span 3, alpha 0.5: gains [0,1,0], losses [0,0,2]
	// avgGain [0, 0.5, 0.25], avgLoss [0, 0, 1]
	// rs = 0.25/1 = 0.25, rsi = 100 - 100/1.25 = 20
	got := RSI([]float64{10, 11, 9}, 3)
	assert.InDelta(t, 20.0, got, 0.0001)
}

func TestAllTimeHigh(t *testing.T) {
	assert.Equal(t, 120.5, AllTimeHigh([]float64{100, 120.5, 99, 110}))
	assert.Equal(t, 0.0, AllTimeHigh(nil))
}

func TestLow(t *testing.T) {
	assert.Equal(t, 99.0, Low([]float64{100, 120.5, 99, 110}))
	assert.Equal(t, 0.0, Low(nil))
}

func TestAverageVolume(t *testing.T) {
	volumes := []int64{100, 200, 300, 400}

	assert.InDelta(t, 350.0, AverageVolume(volumes, 2), 0.0001)
	assert.InDelta(t, 250.0, AverageVolume(volumes, 10), 0.0001)
	assert.Equal(t, 0.0, AverageVolume(nil, 30))
}

func TestPercentChange(t *testing.T) {
	assert.InDelta(t, 10.0, PercentChange(110, 100), 0.0001)
	assert.InDelta(t, -25.0, PercentChange(75, 100), 0.0001)
	assert.Equal(t, 0.0, PercentChange(50, 0))
}
