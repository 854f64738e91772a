// Package journal is the collaborator-facing surface of the trade ledger
// engine. Presentation layers (the CLI here, or any other front end) call
// into this facade and render its outputs; no consumer ever holds a mutable
// reference into the ledger.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tradelog/internal/analytics"
	"tradelog/internal/csvio"
	"tradelog/internal/ledger"
	"tradelog/internal/models"
	"tradelog/internal/store"
)

// ImportMode selects how imported CSV records are applied to the ledger.
type ImportMode string

const (
	// Merge appends imported records to the existing ledger.
	Merge ImportMode = "merge"
	// Replace discards the existing ledger in favor of the import.
	Replace ImportMode = "replace"
)

// ParseImportMode converts user input into an ImportMode.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(s) {
	case Merge:
		return Merge, nil
	case Replace:
		return Replace, nil
	default:
		return "", fmt.Errorf("unknown import mode %q (want merge or replace)", s)
	}
}

// Journal wires the ledger store, aggregators, and CSV codec together.
type Journal struct {
	ledger *ledger.Ledger
}

// Open restores the journal from the byte store. Missing or malformed
// persisted state yields an empty journal, never an error.
func Open(ctx context.Context, bs store.ByteStore, logger zerolog.Logger) *Journal {
	return &Journal{ledger: ledger.Open(ctx, bs, logger)}
}

// AddTrade records a new OPEN trade from the draft.
func (j *Journal) AddTrade(ctx context.Context, draft models.Draft) (*models.Trade, error) {
	return j.ledger.Add(ctx, draft)
}

// CloseTrade closes an open trade, fixing its realized profit/loss.
func (j *Journal) CloseTrade(ctx context.Context, id string, exitPrice float64, exitDate time.Time) (*models.Trade, error) {
	return j.ledger.Close(ctx, id, exitPrice, exitDate)
}

// DeleteTrade removes a trade from the journal.
func (j *Journal) DeleteTrade(ctx context.Context, id string) error {
	return j.ledger.Delete(ctx, id)
}

// ResetAll deletes every trade and clears persisted state. Any confirmation
// gating belongs to the caller; this operation is unconditional.
func (j *Journal) ResetAll(ctx context.Context) error {
	return j.ledger.ResetAll(ctx)
}

// ExportCSV renders the current ledger as CSV text.
func (j *Journal) ExportCSV() string {
	return csvio.Encode(j.ledger.Snapshot())
}

// ImportCSV decodes CSV text and applies it to the ledger in the given
// mode. Returns the number of records imported.
func (j *Journal) ImportCSV(ctx context.Context, text string, mode ImportMode) (int, error) {
	records, err := csvio.Decode(text)
	if err != nil {
		return 0, err
	}
	if mode == Replace {
		return j.ledger.ReplaceAll(ctx, records)
	}
	return j.ledger.MergeAll(ctx, records)
}

// Snapshot returns the trades ordered by entry date descending.
func (j *Journal) Snapshot() []models.Trade {
	return j.ledger.Snapshot()
}

// Len returns the number of trades in the journal.
func (j *Journal) Len() int {
	return j.ledger.Len()
}

// Stats recomputes summary statistics from the current ledger.
func (j *Journal) Stats() analytics.Stats {
	return analytics.ComputeStats(j.ledger.Snapshot())
}

// TickerPerformance recomputes the top and bottom performing tickers.
func (j *Journal) TickerPerformance() analytics.TickerPerformance {
	return analytics.ComputeTickerPerformance(j.ledger.Snapshot())
}

// MonthlySeries recomputes the month-bucketed chart series.
func (j *Journal) MonthlySeries() analytics.MonthlySeries {
	return analytics.ComputeMonthlySeries(j.ledger.Snapshot())
}
