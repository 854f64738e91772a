package cli

import (
	"github.com/spf13/cobra"

	"tradelog/pkg/utils"
)

// addStatsCommands adds the analytics commands.
func addStatsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newStatsCmd(app))
	rootCmd.AddCommand(newPerformanceCmd(app))
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show summary statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			stats := app.Journal.Stats()

			if output.IsJSON() {
				return output.JSON(stats)
			}

			output.Bold("Journal Summary")
			output.Printf("  Open trades:    %d\n", stats.OpenCount)
			output.Printf("  Closed trades:  %d\n", stats.ClosedCount)
			output.Printf("  Total P&L:      %s\n", utils.FormatPnL(stats.TotalPL))
			output.Printf("  Win rate:       %s (%d wins / %d losses)\n",
				utils.FormatPercent(stats.WinRate), stats.Wins, stats.Losses)
			return nil
		},
	}
}

func newPerformanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "performance",
		Aliases: []string{"perf"},
		Short:   "Show best and worst tickers and the monthly series",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			perf := app.Journal.TickerPerformance()
			series := app.Journal.MonthlySeries()

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"tickers": perf,
					"monthly": series,
				})
			}

			output.Bold("Top Performers")
			if len(perf.Top) == 0 {
				output.Dim("  No winners yet")
			}
			for _, p := range perf.Top {
				output.Printf("  %-8s %s\n", p.Ticker, utils.FormatPnL(p.PL))
			}

			output.Bold("Worst Performers")
			if len(perf.Bottom) == 0 {
				output.Dim("  No losers yet")
			}
			for _, p := range perf.Bottom {
				output.Printf("  %-8s %s\n", p.Ticker, utils.FormatPnL(p.PL))
			}

			if len(series.PLByMonth) > 0 {
				output.Bold("Monthly P&L")
				for i, m := range series.PLByMonth {
					wl := series.WinLossByMonth[i]
					output.Printf("  %s  %-12s %dW/%dL\n",
						m.Month, utils.FormatPnL(m.PL), wl.Wins, wl.Losses)
				}
			}
			return nil
		},
	}
}
