package analytics

import (
	"sort"

	"tradelog/internal/models"
)

// TickerPL is the cumulative realized profit/loss for one ticker.
type TickerPL struct {
	Ticker string  `json:"ticker"`
	PL     float64 `json:"pl"`
}

// TickerPerformance holds the ranked best and worst tickers.
type TickerPerformance struct {
	Top    []TickerPL `json:"top"`
	Bottom []TickerPL `json:"bottom"`
}

// maxPerformers caps each ranking list.
const maxPerformers = 3

// ComputeTickerPerformance groups closed trades by ticker, sums their
// profit/loss, and ranks the result: Top holds up to 3 tickers with a
// positive sum in descending order, Bottom up to 3 with a negative sum with
// the most negative first. Tickers summing to exactly zero appear in
// neither list.
func ComputeTickerPerformance(trades []models.Trade) TickerPerformance {
	sums := make(map[string]float64)
	order := make([]string, 0)
	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		if _, seen := sums[t.Ticker]; !seen {
			order = append(order, t.Ticker)
		}
		sums[t.Ticker] += t.PL
	}

	sort.SliceStable(order, func(i, j int) bool {
		return sums[order[i]] > sums[order[j]]
	})

	perf := TickerPerformance{}
	for _, ticker := range order {
		if pl := sums[ticker]; pl > 0 && len(perf.Top) < maxPerformers {
			perf.Top = append(perf.Top, TickerPL{Ticker: ticker, PL: pl})
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		ticker := order[i]
		if pl := sums[ticker]; pl < 0 && len(perf.Bottom) < maxPerformers {
			perf.Bottom = append(perf.Bottom, TickerPL{Ticker: ticker, PL: pl})
		}
	}
	return perf
}
