package journal

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"

	"tradelog/internal/models"
	"tradelog/internal/store"
)

// Property: closing a trade fixes pl = (exitPrice - entryPrice) * shares
// exactly, and a second close is rejected without changing the record.
func TestProperty_ClosedPLMatchesArithmetic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	entryGen := gen.Float64Range(0.01, 5000)
	exitGen := gen.Float64Range(0.01, 5000)
	sharesGen := gen.IntRange(1, 10000)

	properties.Property("pl equals (exit-entry)*shares and re-close is rejected", prop.ForAll(
		func(entry, exit float64, shares int) bool {
			ctx := context.Background()
			j := Open(ctx, store.NewMemoryStore(), zerolog.Nop())

			trade, err := j.AddTrade(ctx, models.Draft{
				Ticker:     "AAPL",
				EntryDate:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
				EntryPrice: entry,
				Shares:     shares,
				RiskLevel:  models.RiskStable,
			})
			if err != nil {
				return false
			}

			exitDate := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
			closed, err := j.CloseTrade(ctx, trade.ID, exit, exitDate)
			if err != nil {
				return false
			}

			want := (exit - entry) * float64(shares)
			if closed.PL != want {
				return false
			}

			if _, err := j.CloseTrade(ctx, trade.ID, exit+1, exitDate); err == nil {
				return false
			}
			return j.Snapshot()[0].PL == want
		},
		entryGen,
		exitGen,
		sharesGen,
	))

	properties.TestingRun(t)
}

// Property: export then replace-import reproduces an equal set of records,
// modulo ids.
func TestProperty_CSVRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	tickers := []string{"AAPL", "TSLA", "MSFT", "NVDA", "AMZN"}

	countGen := gen.IntRange(1, 12)
	priceGen := gen.Float64Range(1, 1000)
	sharesGen := gen.IntRange(1, 500)

	properties.Property("export then import reproduces the records", prop.ForAll(
		func(count int, basePrice float64, baseShares int) bool {
			ctx := context.Background()
			src := Open(ctx, store.NewMemoryStore(), zerolog.Nop())

			for i := 0; i < count; i++ {
				entryDate := time.Date(2026, time.Month(i%12+1), i%27+1, 0, 0, 0, 0, time.UTC)
				price := round2(basePrice + float64(i))
				trade, err := src.AddTrade(ctx, models.Draft{
					Ticker:     tickers[i%len(tickers)],
					EntryDate:  entryDate,
					EntryPrice: price,
					Shares:     baseShares + i,
					RiskLevel:  models.RiskAggressive,
				})
				if err != nil {
					return false
				}
				// Close every other trade.
				if i%2 == 0 {
					exit := round2(price * 1.1)
					if _, err := src.CloseTrade(ctx, trade.ID, exit, entryDate.AddDate(0, 0, 14)); err != nil {
						return false
					}
				}
			}

			dst := Open(ctx, store.NewMemoryStore(), zerolog.Nop())
			imported, err := dst.ImportCSV(ctx, src.ExportCSV(), Replace)
			if err != nil || imported != count {
				return false
			}

			want := src.Snapshot()
			got := dst.Snapshot()
			if len(want) != len(got) {
				return false
			}
			for i := range want {
				if !tradesEquivalent(want[i], got[i]) {
					return false
				}
			}
			return true
		},
		countGen,
		priceGen,
		sharesGen,
	))

	properties.TestingRun(t)
}

// tradesEquivalent compares everything except the id.
func tradesEquivalent(a, b models.Trade) bool {
	if a.Ticker != b.Ticker ||
		!a.EntryDate.Equal(b.EntryDate) ||
		a.EntryPrice != b.EntryPrice ||
		a.Shares != b.Shares ||
		a.StopLoss != b.StopLoss ||
		a.TargetPrice != b.TargetPrice ||
		a.RiskLevel != b.RiskLevel ||
		a.Status != b.Status ||
		a.PL != b.PL {
		return false
	}
	if (a.ExitPrice == nil) != (b.ExitPrice == nil) {
		return false
	}
	if a.ExitPrice != nil && *a.ExitPrice != *b.ExitPrice {
		return false
	}
	if (a.ExitDate == nil) != (b.ExitDate == nil) {
		return false
	}
	if a.ExitDate != nil && !a.ExitDate.Equal(*b.ExitDate) {
		return false
	}
	return true
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
