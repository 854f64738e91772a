// Package models provides domain models for the trade journal.
package models

import (
	"strings"
	"time"

	"tradelog/internal/errors"
)

// DateLayout is the calendar date format used throughout the journal.
const DateLayout = "2006-01-02"

// RiskLevel represents the risk tier of a trade.
type RiskLevel string

const (
	RiskStable     RiskLevel = "STABLE"
	RiskAggressive RiskLevel = "AGGRESSIVE"
)

// TradeStatus represents the lifecycle state of a trade.
type TradeStatus string

const (
	StatusOpen   TradeStatus = "OPEN"
	StatusClosed TradeStatus = "CLOSED"
)

// Trade represents a single journaled trade. A trade is created OPEN and
// transitions to CLOSED exactly once; once CLOSED it is immutable except for
// deletion. ExitPrice and ExitDate are nil while the trade is OPEN.
type Trade struct {
	ID          string      `json:"id"`
	Ticker      string      `json:"ticker"`
	EntryDate   time.Time   `json:"entryDate"`
	EntryPrice  float64     `json:"entryPrice"`
	Shares      int         `json:"shares"`
	StopLoss    float64     `json:"stopLoss"`
	TargetPrice float64     `json:"targetPrice"`
	RiskLevel   RiskLevel   `json:"riskLevel"`
	Status      TradeStatus `json:"status"`
	ExitPrice   *float64    `json:"exitPrice"`
	ExitDate    *time.Time  `json:"exitDate"`
	PL          float64     `json:"pl"`
}

// IsOpen reports whether the trade is still open.
func (t *Trade) IsOpen() bool {
	return t.Status == StatusOpen
}

// IsClosed reports whether the trade has been closed.
func (t *Trade) IsClosed() bool {
	return t.Status == StatusClosed
}

// Draft represents user-supplied trade input prior to record creation.
// StopLoss and TargetPrice of zero mean "not supplied"; the ledger fills
// them from the risk policy in that case.
type Draft struct {
	Ticker      string
	EntryDate   time.Time
	EntryPrice  float64
	Shares      int
	StopLoss    float64
	TargetPrice float64
	RiskLevel   RiskLevel
}

// Validate checks the draft against the trade record contract: non-empty
// ticker, positive entry price, positive whole share count, and a usable
// entry date. Stop loss and target are accepted as supplied; no ordering
// check against the entry price is enforced.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Ticker) == "" {
		return errors.NewValidationError("ticker", d.Ticker, "must not be empty")
	}
	if d.EntryPrice <= 0 {
		return errors.NewValidationError("entryPrice", d.EntryPrice, "must be greater than zero")
	}
	if d.Shares <= 0 {
		return errors.NewValidationError("shares", d.Shares, "must be a positive integer")
	}
	if d.EntryDate.IsZero() {
		return errors.NewValidationError("entryDate", d.EntryDate, "must be a calendar date")
	}
	return nil
}

// NewTrade builds an OPEN trade from a validated draft. The caller assigns
// the id; pl starts at zero and exit fields are unset.
func NewTrade(id string, d Draft) *Trade {
	return &Trade{
		ID:          id,
		Ticker:      strings.TrimSpace(d.Ticker),
		EntryDate:   d.EntryDate,
		EntryPrice:  d.EntryPrice,
		Shares:      d.Shares,
		StopLoss:    d.StopLoss,
		TargetPrice: d.TargetPrice,
		RiskLevel:   d.RiskLevel,
		Status:      StatusOpen,
	}
}
