package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelog/internal/errors"
	"tradelog/internal/models"
	"tradelog/internal/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testDraft() models.Draft {
	return models.Draft{
		Ticker:      "AAPL",
		EntryDate:   date(2026, 1, 5),
		EntryPrice:  150,
		Shares:      10,
		StopLoss:    145,
		TargetPrice: 160,
		RiskLevel:   models.RiskStable,
	}
}

func newTestLedger() (*Ledger, *store.MemoryStore) {
	bs := store.NewMemoryStore()
	return New(bs, zerolog.Nop()), bs
}

func TestAdd(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger()
	before := len(l.Snapshot())

	trade, err := l.Add(context.Background(), testDraft())
	require.NoError(t, err)

	snap := l.Snapshot()
	assert.Len(t, snap, before+1)
	assert.Equal(t, models.StatusOpen, trade.Status)
	assert.Zero(t, trade.PL)
	assert.Nil(t, trade.ExitPrice)
	assert.Nil(t, trade.ExitDate)
	assert.NotEmpty(t, trade.ID)
}

func TestAddValidation(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger()
	d := testDraft()
	d.Shares = 0

	_, err := l.Add(context.Background(), d)
	var verr *errors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Zero(t, l.Len())
}

func TestAddDerivesRiskLevels(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger()
	d := testDraft()
	d.StopLoss = 0
	d.TargetPrice = 0

	trade, err := l.Add(context.Background(), d)
	require.NoError(t, err)
	assert.InDelta(t, 145.50, trade.StopLoss, 1e-9)
	assert.InDelta(t, 160.50, trade.TargetPrice, 1e-9)
}

func TestAddKeepsExplicitLevels(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger()
	trade, err := l.Add(context.Background(), testDraft())
	require.NoError(t, err)
	assert.Equal(t, 145.0, trade.StopLoss)
	assert.Equal(t, 160.0, trade.TargetPrice)
}

func TestClose(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger()
	ctx := context.Background()
	trade, err := l.Add(ctx, testDraft())
	require.NoError(t, err)

	closed, err := l.Close(ctx, trade.ID, 160, date(2026, 2, 1))
	require.NoError(t, err)

	assert.Equal(t, models.StatusClosed, closed.Status)
	assert.InDelta(t, 100.0, closed.PL, 1e-9) // (160-150)*10
	require.NotNil(t, closed.ExitPrice)
	assert.Equal(t, 160.0, *closed.ExitPrice)
	require.NotNil(t, closed.ExitDate)
	assert.Equal(t, date(2026, 2, 1), *closed.ExitDate)
}

func TestCloseUnknownID(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger()
	_, err := l.Close(context.Background(), "nope", 160, date(2026, 2, 1))
	assert.ErrorIs(t, err, errors.ErrTradeNotFound)
}

func TestCloseTwice(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger()
	ctx := context.Background()
	trade, err := l.Add(ctx, testDraft())
	require.NoError(t, err)

	_, err = l.Close(ctx, trade.ID, 160, date(2026, 2, 1))
	require.NoError(t, err)

	_, err = l.Close(ctx, trade.ID, 170, date(2026, 3, 1))
	assert.ErrorIs(t, err, errors.ErrTradeClosed)

	// The first close stands untouched.
	snap := l.Snapshot()
	require.Len(t, snap, 1)
	assert.InDelta(t, 100.0, snap[0].PL, 1e-9)
	assert.Equal(t, 160.0, *snap[0].ExitPrice)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger()
	ctx := context.Background()
	trade, err := l.Add(ctx, testDraft())
	require.NoError(t, err)

	require.NoError(t, l.Delete(ctx, trade.ID))
	assert.Zero(t, l.Len())

	assert.ErrorIs(t, l.Delete(ctx, trade.ID), errors.ErrTradeNotFound)
}

func TestResetAll(t *testing.T) {
	t.Parallel()

	l, bs := newTestLedger()
	ctx := context.Background()
	_, err := l.Add(ctx, testDraft())
	require.NoError(t, err)

	require.NoError(t, l.ResetAll(ctx))
	assert.Zero(t, l.Len())

	// Persisted entry is cleared, not just emptied.
	_, err = bs.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)
}

func TestReplaceAndMergeAssignFreshIDs(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger()
	ctx := context.Background()
	existing, err := l.Add(ctx, testDraft())
	require.NoError(t, err)

	incoming := []models.Trade{
		{Ticker: "TSLA", EntryDate: date(2026, 1, 10), EntryPrice: 250, Shares: 4, Status: models.StatusOpen},
		{Ticker: "MSFT", EntryDate: date(2026, 1, 11), EntryPrice: 400, Shares: 2, Status: models.StatusOpen},
	}

	n, err := l.MergeAll(ctx, incoming)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, l.Len())

	seen := map[string]bool{}
	for _, tr := range l.Snapshot() {
		assert.NotEmpty(t, tr.ID)
		assert.False(t, seen[tr.ID], "duplicate id %s", tr.ID)
		seen[tr.ID] = true
	}
	assert.True(t, seen[existing.ID])

	n, err = l.ReplaceAll(ctx, incoming)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, l.Len())
	for _, tr := range l.Snapshot() {
		assert.NotEqual(t, existing.ID, tr.ID)
	}
}

func TestSnapshotOrderAndIsolation(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger()
	ctx := context.Background()

	older := testDraft()
	older.Ticker = "OLD"
	older.EntryDate = date(2025, 6, 1)
	newer := testDraft()
	newer.Ticker = "NEW"
	newer.EntryDate = date(2026, 3, 1)

	_, err := l.Add(ctx, older)
	require.NoError(t, err)
	_, err = l.Add(ctx, newer)
	require.NoError(t, err)

	snap := l.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "NEW", snap[0].Ticker)
	assert.Equal(t, "OLD", snap[1].Ticker)

	// Mutating the snapshot must not touch the ledger.
	snap[0].Ticker = "HACKED"
	assert.Equal(t, "NEW", l.Snapshot()[0].Ticker)
}

func TestOpenRestoresPersistedState(t *testing.T) {
	t.Parallel()

	bs := store.NewMemoryStore()
	ctx := context.Background()

	l := New(bs, zerolog.Nop())
	_, err := l.Add(ctx, testDraft())
	require.NoError(t, err)

	restored := Open(ctx, bs, zerolog.Nop())
	require.Equal(t, 1, restored.Len())
	assert.Equal(t, "AAPL", restored.Snapshot()[0].Ticker)
}

func TestOpenToleratesMalformedState(t *testing.T) {
	t.Parallel()

	bs := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, bs.Put(ctx, DefaultKey, []byte("{not json")))

	l := Open(ctx, bs, zerolog.Nop())
	assert.Zero(t, l.Len())
}

// failingStore refuses writes, to exercise best-effort persistence.
type failingStore struct {
	*store.MemoryStore
}

func (f *failingStore) Put(context.Context, string, []byte) error {
	return fmt.Errorf("disk full")
}

func TestPersistenceFailureKeepsMutation(t *testing.T) {
	t.Parallel()

	bs := &failingStore{store.NewMemoryStore()}
	l := New(bs, zerolog.Nop())

	trade, err := l.Add(context.Background(), testDraft())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrPersistence)
	require.NotNil(t, trade)
	assert.Equal(t, 1, l.Len())
}
