package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/verdex/internal/models"
)

// RenderRSIChart renders the RSI curve with overbought and oversold
// guide lines. Returns raw PNG bytes.
func RenderRSIChart(dates []time.Time, rsi []float64) ([]byte, error) {
	if len(dates) < 2 || len(dates) != len(rsi) {
		return nil, fmt.Errorf("need matching date and RSI series, got %d/%d", len(dates), len(rsi))
	}

	rsiSeries := chart.TimeSeries{
		Name: "RSI (14)",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("1f3864"),
			StrokeWidth: 2.5,
		},
		XValues: dates,
		YValues: rsi,
	}

	overbought := make([]float64, len(dates))
	oversold := make([]float64, len(dates))
	for i := range dates {
		overbought[i] = 70
		oversold[i] = 30
	}

	overboughtSeries := chart.TimeSeries{
		Name: "Overbought (70)",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("e74c3c"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: dates,
		YValues: overbought,
	}

	oversoldSeries := chart.TimeSeries{
		Name: "Oversold (30)",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("27ae60"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: dates,
		YValues: oversold,
	}

	graph := chart.Chart{
		Title:  "Relative Strength Index (RSI) - 14 Period",
		Width:  900,
		Height: 450,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			rsiSeries,
			overboughtSeries,
			oversoldSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderFundamentalsChart renders quarterly revenue, operating profit,
// and net profit as grouped bars in crores. Periods arrive most recent
// first and are drawn in that order.
func RenderFundamentalsChart(periods models.QuarterlyFundamentals) ([]byte, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("no quarterly periods to chart")
	}

	const crore = 1e7

	bars := make([]chart.Value, 0, len(periods)*3)
	for _, p := range periods {
		bars = append(bars,
			chart.Value{
				Label: p.Label + " Rev",
				Value: positiveCrores(p.Revenue, crore),
				Style: chart.Style{FillColor: drawing.ColorFromHex("3498db")},
			},
			chart.Value{
				Label: p.Label + " Op",
				Value: positiveCrores(p.OperatingIncome, crore),
				Style: chart.Style{FillColor: drawing.ColorFromHex("f39c12")},
			},
			chart.Value{
				Label: p.Label + " Net",
				Value: positiveCrores(p.NetIncome, crore),
				Style: chart.Style{FillColor: drawing.ColorFromHex("27ae60")},
			},
		)
	}

	graph := chart.BarChart{
		Title:  "Quarterly Financial Performance (Rs. Crores)",
		Width:  900,
		Height: 450,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth: 40,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// positiveCrores converts to crores, flooring negatives at zero so the
// bar chart stays readable.
func positiveCrores(v, crore float64) float64 {
	if v <= 0 {
		return 0
	}
	return v / crore
}
