// Package analytics derives statistics from ledger snapshots. Everything
// here is a pure function: aggregates are recomputed from a snapshot on
// demand, never pushed.
package analytics

import (
	"math"

	"tradelog/internal/models"
)

// Stats summarizes a ledger snapshot.
type Stats struct {
	OpenCount   int     `json:"openCount"`
	ClosedCount int     `json:"closedCount"`
	TotalPL     float64 `json:"totalPL"`
	WinRate     float64 `json:"winRate"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
}

// ComputeStats partitions the snapshot by status and totals realized
// profit/loss over closed trades. A closed trade with pl > 0 counts as a
// win, pl < 0 as a loss; break-even trades count as neither. The win rate
// is wins over closed trades as a percentage rounded to 1 decimal, and 0
// when there are no closed trades.
func ComputeStats(trades []models.Trade) Stats {
	var s Stats
	for _, t := range trades {
		if !t.IsClosed() {
			if t.IsOpen() {
				s.OpenCount++
			}
			continue
		}
		s.ClosedCount++
		s.TotalPL += t.PL
		if t.PL > 0 {
			s.Wins++
		} else if t.PL < 0 {
			s.Losses++
		}
	}
	if s.ClosedCount > 0 {
		s.WinRate = math.Round(float64(s.Wins)/float64(s.ClosedCount)*1000) / 10
	}
	return s
}
