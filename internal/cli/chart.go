package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tradelog/internal/charts"
)

// addChartCommand adds the chart rendering command.
func addChartCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render performance charts to PNG files",
		Long:  "Render the monthly P&L and win/loss charts as PNG images.",
		Example: `  tradelog chart
  tradelog chart --out ./reports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			outDir, _ := cmd.Flags().GetString("out")

			series := app.Journal.MonthlySeries()
			if len(series.PLByMonth) == 0 {
				output.Error("Close some trades to see performance analytics")
				return nil
			}

			plPNG, err := charts.RenderMonthlyPL(series)
			if err != nil {
				return err
			}
			wlPNG, err := charts.RenderWinLoss(series)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return err
			}
			plPath := fmt.Sprintf("%s/monthly_pl.png", outDir)
			wlPath := fmt.Sprintf("%s/win_loss.png", outDir)
			if err := os.WriteFile(plPath, plPNG, 0644); err != nil {
				return err
			}
			if err := os.WriteFile(wlPath, wlPNG, 0644); err != nil {
				return err
			}

			output.Success("Wrote %s and %s", plPath, wlPath)
			return nil
		},
	}
	cmd.Flags().String("out", ".", "output directory")
	rootCmd.AddCommand(cmd)
}
