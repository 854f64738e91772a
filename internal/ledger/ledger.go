// Package ledger owns the ordered collection of trade records and its
// best-effort persistence into a byte store.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tradelog/internal/errors"
	"tradelog/internal/models"
	"tradelog/internal/risk"
	"tradelog/internal/store"
)

// DefaultKey is the byte-store entry holding the serialized ledger.
const DefaultKey = "trades"

// Ledger is the single owner of all trade records. Consumers only ever see
// snapshots; mutations go through the methods below, each of which attempts
// to persist the full ledger after applying. A failed save never rolls back
// the in-memory change: the operation returns its result together with an
// error wrapping errors.ErrPersistence, which callers should surface as a
// warning.
type Ledger struct {
	mu     sync.Mutex
	trades []*models.Trade
	bs     store.ByteStore
	key    string
	policy risk.Policy
	logger zerolog.Logger
	newID  func() string
}

// New creates an empty ledger persisting into bs under DefaultKey.
func New(bs store.ByteStore, logger zerolog.Logger) *Ledger {
	return &Ledger{
		bs:     bs,
		key:    DefaultKey,
		policy: risk.Default,
		logger: logger.With().Str("component", "ledger").Logger(),
		newID:  uuid.NewString,
	}
}

// Open creates a ledger and restores any persisted state. A missing entry
// means an empty ledger; a malformed entry is logged and treated as empty.
// Startup never fails on bad persisted content.
func Open(ctx context.Context, bs store.ByteStore, logger zerolog.Logger) *Ledger {
	l := New(bs, logger)

	raw, err := bs.Get(ctx, l.key)
	if err != nil {
		if !errors.Is(err, errors.ErrKeyNotFound) {
			l.logger.Warn().Err(err).Msg("could not read persisted ledger, starting empty")
		}
		return l
	}

	var trades []*models.Trade
	if err := json.Unmarshal(raw, &trades); err != nil {
		l.logger.Warn().Err(err).Msg("persisted ledger is malformed, starting empty")
		return l
	}

	l.trades = trades
	l.logger.Debug().Int("trades", len(trades)).Msg("ledger restored")
	return l
}

// Add validates the draft, assigns a fresh id, and appends an OPEN trade.
// When the draft supplies neither stop loss nor target price, both are
// derived from the risk policy.
func (l *Ledger) Add(ctx context.Context, draft models.Draft) (*models.Trade, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	if draft.StopLoss == 0 && draft.TargetPrice == 0 {
		draft.StopLoss, draft.TargetPrice = l.policy.Derive(draft.EntryPrice, draft.RiskLevel)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	t := models.NewTrade(l.newID(), draft)
	l.trades = append(l.trades, t)

	l.logger.Info().
		Str("id", t.ID).
		Str("ticker", t.Ticker).
		Float64("entry_price", t.EntryPrice).
		Int("shares", t.Shares).
		Msg("trade added")

	return copyTrade(t), l.persist(ctx)
}

// Close closes an OPEN trade at the given exit price and date, fixing its
// profit/loss as (exitPrice - entryPrice) * shares. Closing an unknown id
// fails with ErrTradeNotFound; closing an already-closed trade fails with
// ErrTradeClosed and leaves the record untouched.
func (l *Ledger) Close(ctx context.Context, id string, exitPrice float64, exitDate time.Time) (*models.Trade, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.find(id)
	if t == nil {
		return nil, errors.Wrapf(errors.ErrTradeNotFound, "close %s", id)
	}
	if t.IsClosed() {
		return nil, errors.Wrapf(errors.ErrTradeClosed, "close %s", id)
	}

	t.ExitPrice = &exitPrice
	t.ExitDate = &exitDate
	t.Status = models.StatusClosed
	t.PL = (exitPrice - t.EntryPrice) * float64(t.Shares)

	l.logger.Info().
		Str("id", t.ID).
		Str("ticker", t.Ticker).
		Float64("exit_price", exitPrice).
		Float64("pl", t.PL).
		Msg("trade closed")

	return copyTrade(t), l.persist(ctx)
}

// Delete removes the trade with the given id. Deleting an unknown id fails
// with ErrTradeNotFound.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, t := range l.trades {
		if t.ID == id {
			l.trades = append(l.trades[:i], l.trades[i+1:]...)
			l.logger.Info().Str("id", id).Str("ticker", t.Ticker).Msg("trade deleted")
			return l.persist(ctx)
		}
	}
	return errors.Wrapf(errors.ErrTradeNotFound, "delete %s", id)
}

// ResetAll empties the ledger and clears the persisted entry.
func (l *Ledger) ResetAll(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.trades = nil
	l.logger.Info().Msg("ledger reset")

	if err := l.bs.Delete(ctx, l.key); err != nil {
		l.logger.Warn().Err(err).Msg("best-effort save failed")
		return fmt.Errorf("%w: %v", errors.ErrPersistence, err)
	}
	return nil
}

// ReplaceAll discards the current ledger and installs the given records,
// assigning each a fresh id. Returns the number of records installed.
func (l *Ledger) ReplaceAll(ctx context.Context, records []models.Trade) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.trades = l.adopt(records)
	l.logger.Info().Int("trades", len(records)).Msg("ledger replaced")
	return len(records), l.persist(ctx)
}

// MergeAll appends the given records to the current ledger, assigning each a
// fresh id so imported records can never collide with existing ones.
// Returns the number of records appended.
func (l *Ledger) MergeAll(ctx context.Context, records []models.Trade) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.trades = append(l.trades, l.adopt(records)...)
	l.logger.Info().Int("trades", len(records)).Msg("ledger merged")
	return len(records), l.persist(ctx)
}

// Snapshot returns a read-only copy of the ledger ordered by entry date
// descending. Mutating the returned slice has no effect on the ledger.
func (l *Ledger) Snapshot() []models.Trade {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Trade, len(l.trades))
	for i, t := range l.trades {
		out[i] = *copyTrade(t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EntryDate.After(out[j].EntryDate)
	})
	return out
}

// Len returns the number of trades in the ledger.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.trades)
}

// find returns the live record with the given id. Caller holds l.mu.
func (l *Ledger) find(id string) *models.Trade {
	for _, t := range l.trades {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// adopt copies incoming records and stamps fresh ids. Caller holds l.mu.
func (l *Ledger) adopt(records []models.Trade) []*models.Trade {
	out := make([]*models.Trade, len(records))
	for i := range records {
		t := records[i]
		t.ID = l.newID()
		out[i] = copyTrade(&t)
	}
	return out
}

// persist serializes the full ledger into the byte store. Caller holds l.mu.
func (l *Ledger) persist(ctx context.Context) error {
	raw, err := json.Marshal(l.trades)
	if err == nil {
		err = l.bs.Put(ctx, l.key, raw)
	}
	if err != nil {
		l.logger.Warn().Err(err).Msg("best-effort save failed")
		return fmt.Errorf("%w: %v", errors.ErrPersistence, err)
	}
	return nil
}

func copyTrade(t *models.Trade) *models.Trade {
	c := *t
	if t.ExitPrice != nil {
		v := *t.ExitPrice
		c.ExitPrice = &v
	}
	if t.ExitDate != nil {
		d := *t.ExitDate
		c.ExitDate = &d
	}
	return &c
}
