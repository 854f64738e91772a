package analytics

import (
	"sort"

	"tradelog/internal/models"
)

// MonthKeyLayout formats an exit date into its calendar year-month bucket.
const MonthKeyLayout = "2006-01"

// MonthlyPL is the summed realized profit/loss for one calendar month.
type MonthlyPL struct {
	Month string  `json:"month"`
	PL    float64 `json:"pl"`
}

// MonthlyWinLoss counts winning and losing closed trades in one month.
type MonthlyWinLoss struct {
	Month  string `json:"month"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// MonthlySeries holds month-bucketed aggregates for chart rendering,
// sorted by month key ascending.
type MonthlySeries struct {
	PLByMonth      []MonthlyPL      `json:"plByMonth"`
	WinLossByMonth []MonthlyWinLoss `json:"winLossByMonth"`
}

// ComputeMonthlySeries buckets closed trades by the year-month of their exit
// date and derives the per-month profit/loss total and win/loss counts.
func ComputeMonthlySeries(trades []models.Trade) MonthlySeries {
	pl := make(map[string]float64)
	wins := make(map[string]int)
	losses := make(map[string]int)

	for _, t := range trades {
		if !t.IsClosed() || t.ExitDate == nil {
			continue
		}
		key := t.ExitDate.Format(MonthKeyLayout)
		pl[key] += t.PL
		if t.PL > 0 {
			wins[key]++
		} else if t.PL < 0 {
			losses[key]++
		}
	}

	months := make([]string, 0, len(pl))
	for m := range pl {
		months = append(months, m)
	}
	sort.Strings(months)

	series := MonthlySeries{}
	for _, m := range months {
		series.PLByMonth = append(series.PLByMonth, MonthlyPL{Month: m, PL: pl[m]})
		series.WinLossByMonth = append(series.WinLossByMonth, MonthlyWinLoss{
			Month:  m,
			Wins:   wins[m],
			Losses: losses[m],
		})
	}
	return series
}
