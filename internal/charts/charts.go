// Package charts renders the monthly performance series to PNG images.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tradelog/internal/analytics"
)

var (
	gainColor = drawing.ColorFromHex("10b981") // emerald-500
	lossColor = drawing.ColorFromHex("ef4444") // red-500
)

// RenderMonthlyPL renders a bar chart of realized profit/loss per month.
// Gains are green, losses red. Returns raw PNG bytes.
func RenderMonthlyPL(series analytics.MonthlySeries) ([]byte, error) {
	if len(series.PLByMonth) == 0 {
		return nil, fmt.Errorf("no closed trades to chart")
	}

	bars := make([]chart.Value, 0, len(series.PLByMonth))
	for _, m := range series.PLByMonth {
		color := gainColor
		if m.PL < 0 {
			color = lossColor
		}
		bars = append(bars, chart.Value{
			Label: m.Month,
			Value: m.PL,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	graph := chart.BarChart{
		Title:    "Monthly P&L",
		Width:    900,
		Height:   400,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderWinLoss renders a grouped bar chart of winning and losing trade
// counts per month. Returns raw PNG bytes.
func RenderWinLoss(series analytics.MonthlySeries) ([]byte, error) {
	if len(series.WinLossByMonth) == 0 {
		return nil, fmt.Errorf("no closed trades to chart")
	}

	bars := make([]chart.Value, 0, len(series.WinLossByMonth)*2)
	for _, m := range series.WinLossByMonth {
		bars = append(bars,
			chart.Value{
				Label: m.Month + " W",
				Value: float64(m.Wins),
				Style: chart.Style{FillColor: gainColor, StrokeColor: gainColor},
			},
			chart.Value{
				Label: m.Month + " L",
				Value: float64(m.Losses),
				Style: chart.Style{FillColor: lossColor, StrokeColor: lossColor},
			},
		)
	}

	graph := chart.BarChart{
		Title:    "Win/Loss by Month",
		Width:    900,
		Height:   400,
		BarWidth: 30,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
