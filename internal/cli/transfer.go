package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tradelog/internal/journal"
)

// addTransferCommands adds the CSV export/import and reset commands.
func addTransferCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newImportCmd(app))
	rootCmd.AddCommand(newResetCmd(app))
}

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the journal to CSV",
		Long:  "Write the journal as CSV. Defaults to trades_<today>.csv in the current directory; use - for stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if app.Journal.Len() == 0 {
				output.Error("No trades to export")
				return nil
			}

			text := app.Journal.ExportCSV()

			path := fmt.Sprintf("trades_%s.csv", time.Now().Format("2006-01-02"))
			if len(args) == 1 {
				path = args[0]
			}
			if path == "-" {
				output.Println(text)
				return nil
			}

			if err := os.WriteFile(path, []byte(text+"\n"), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			output.Success("Exported %d trades to %s", app.Journal.Len(), path)
			return nil
		},
	}
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import trades from CSV",
		Long: `Import trades from a CSV file exported by tradelog.

By default imported trades are merged into the journal; --replace discards
the current journal first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			mode := journal.Merge
			if replace, _ := cmd.Flags().GetBool("replace"); replace {
				mode = journal.Replace
			}

			count, err := app.Journal.ImportCSV(context.Background(), string(raw), mode)
			if err := warnOrFail(output, err); err != nil {
				return err
			}

			output.Success("Imported %d trades (%s)", count, mode)
			return nil
		},
	}
	cmd.Flags().Bool("replace", false, "replace the journal instead of merging")
	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			confirmed, _ := cmd.Flags().GetBool("yes")
			if !confirmed {
				output.Error("This deletes ALL trades and cannot be undone. Re-run with --yes to confirm.")
				return nil
			}

			if err := warnOrFail(output, app.Journal.ResetAll(context.Background())); err != nil {
				return err
			}
			output.Success("All trades have been reset")
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "skip confirmation")
	return cmd
}
