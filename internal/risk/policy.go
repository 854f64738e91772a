// Package risk derives default protective levels for a trade from its risk tier.
package risk

import (
	"math"

	"tradelog/internal/models"
)

// Policy holds the stop-loss and target multipliers per risk tier.
type Policy struct {
	StableStopPct       float64 // 0.97
	StableTargetPct     float64 // 1.07
	AggressiveStopPct   float64 // 0.95
	AggressiveTargetPct float64 // 1.12
}

// Default is the standard policy: stable trades risk 3% for a 7% target,
// aggressive trades risk 5% for a 12% target.
var Default = Policy{
	StableStopPct:       0.97,
	StableTargetPct:     1.07,
	AggressiveStopPct:   0.95,
	AggressiveTargetPct: 1.12,
}

// Derive returns the default stop loss and target price for the given entry
// price and risk tier, rounded to 2 decimal places. Unknown tiers use the
// stable multipliers.
func (p Policy) Derive(entryPrice float64, level models.RiskLevel) (stopLoss, targetPrice float64) {
	stopPct, targetPct := p.StableStopPct, p.StableTargetPct
	if level == models.RiskAggressive {
		stopPct, targetPct = p.AggressiveStopPct, p.AggressiveTargetPct
	}
	return round2(entryPrice * stopPct), round2(entryPrice * targetPct)
}

// Derive applies the default policy.
func Derive(entryPrice float64, level models.RiskLevel) (stopLoss, targetPrice float64) {
	return Default.Derive(entryPrice, level)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
