package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tradelog/internal/errors"
	"tradelog/internal/models"
	"tradelog/pkg/utils"
)

// addTradeCommands adds the trade lifecycle commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAddCmd(app))
	rootCmd.AddCommand(newCloseCmd(app))
	rootCmd.AddCommand(newDeleteCmd(app))
	rootCmd.AddCommand(newListCmd(app))
}

func newAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new open trade",
		Example: `  tradelog add --ticker AAPL --price 150.00 --shares 10
  tradelog add --ticker TSLA --price 250 --shares 5 --risk AGGRESSIVE --stop 240 --target 280`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			draft, err := draftFromFlags(cmd)
			if err != nil {
				return err
			}

			trade, err := app.Journal.AddTrade(context.Background(), draft)
			if err := warnOrFail(output, err); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("Trade added: %s %s x%d @ %s (stop %s, target %s)",
				utils.ShortID(trade.ID), trade.Ticker, trade.Shares,
				utils.FormatCurrency(trade.EntryPrice),
				utils.FormatCurrency(trade.StopLoss),
				utils.FormatCurrency(trade.TargetPrice))
			return nil
		},
	}

	cmd.Flags().String("ticker", "", "stock symbol")
	cmd.Flags().String("price", "", "entry price")
	cmd.Flags().String("shares", "", "number of shares")
	cmd.Flags().String("date", time.Now().Format(models.DateLayout), "entry date (YYYY-MM-DD)")
	cmd.Flags().String("risk", string(models.RiskStable), "risk tier: STABLE or AGGRESSIVE")
	cmd.Flags().String("stop", "", "stop loss (derived from risk tier when omitted)")
	cmd.Flags().String("target", "", "target price (derived from risk tier when omitted)")
	cmd.MarkFlagRequired("ticker")
	cmd.MarkFlagRequired("price")
	cmd.MarkFlagRequired("shares")

	return cmd
}

// draftFromFlags coerces the raw string input into a draft, surfacing a
// ValidationError for anything non-numeric.
func draftFromFlags(cmd *cobra.Command) (models.Draft, error) {
	ticker, _ := cmd.Flags().GetString("ticker")
	priceText, _ := cmd.Flags().GetString("price")
	sharesText, _ := cmd.Flags().GetString("shares")
	dateText, _ := cmd.Flags().GetString("date")
	riskText, _ := cmd.Flags().GetString("risk")
	stopText, _ := cmd.Flags().GetString("stop")
	targetText, _ := cmd.Flags().GetString("target")

	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		return models.Draft{}, errors.NewValidationError("price", priceText, "must be numeric")
	}
	shares, err := strconv.Atoi(sharesText)
	if err != nil {
		return models.Draft{}, errors.NewValidationError("shares", sharesText, "must be a positive integer")
	}
	entryDate, err := time.Parse(models.DateLayout, dateText)
	if err != nil {
		return models.Draft{}, errors.NewValidationError("date", dateText, "must be a YYYY-MM-DD date")
	}

	draft := models.Draft{
		Ticker:     ticker,
		EntryDate:  entryDate,
		EntryPrice: price,
		Shares:     shares,
		RiskLevel:  models.RiskLevel(riskText),
	}

	if stopText != "" {
		if draft.StopLoss, err = strconv.ParseFloat(stopText, 64); err != nil {
			return models.Draft{}, errors.NewValidationError("stop", stopText, "must be numeric")
		}
	}
	if targetText != "" {
		if draft.TargetPrice, err = strconv.ParseFloat(targetText, 64); err != nil {
			return models.Draft{}, errors.NewValidationError("target", targetText, "must be numeric")
		}
	}
	return draft, nil
}

func newCloseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "close <id>",
		Short:   "Close an open trade",
		Args:    cobra.ExactArgs(1),
		Example: `  tradelog close 4f3c2a1b --price 160.00 --date 2026-02-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			priceText, _ := cmd.Flags().GetString("price")
			dateText, _ := cmd.Flags().GetString("date")

			price, err := strconv.ParseFloat(priceText, 64)
			if err != nil {
				return errors.NewValidationError("price", priceText, "must be numeric")
			}
			exitDate, err := time.Parse(models.DateLayout, dateText)
			if err != nil {
				return errors.NewValidationError("date", dateText, "must be a YYYY-MM-DD date")
			}

			id, err := resolveID(app, args[0])
			if err != nil {
				return err
			}

			trade, err := app.Journal.CloseTrade(context.Background(), id, price, exitDate)
			if err := warnOrFail(output, err); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("Trade closed: %s %s, P&L %s",
				utils.ShortID(trade.ID), trade.Ticker, utils.FormatPnL(trade.PL))
			return nil
		},
	}

	cmd.Flags().String("price", "", "exit price")
	cmd.Flags().String("date", time.Now().Format(models.DateLayout), "exit date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("price")

	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "del <id>",
		Aliases: []string{"delete", "rm"},
		Short:   "Delete a trade",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			id, err := resolveID(app, args[0])
			if err != nil {
				return err
			}
			if err := warnOrFail(output, app.Journal.DeleteTrade(context.Background(), id)); err != nil {
				return err
			}
			output.Success("Trade deleted: %s", utils.ShortID(id))
			return nil
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List trades, newest entries first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades := app.Journal.Snapshot()

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Println("No trades recorded.")
				return nil
			}

			table := NewTable(output, "ID", "Ticker", "Entry", "Price", "Shares", "Stop", "Target", "Exit", "P&L", "Status", "Risk")
			for _, t := range trades {
				exit := "-"
				if t.ExitPrice != nil {
					exit = utils.FormatCurrency(*t.ExitPrice)
				}
				pl := "-"
				if t.IsClosed() {
					pl = utils.FormatPnL(t.PL)
				}
				table.AddRow(
					utils.ShortID(t.ID),
					t.Ticker,
					utils.FormatDate(t.EntryDate),
					utils.FormatCurrency(t.EntryPrice),
					strconv.Itoa(t.Shares),
					utils.FormatCurrency(t.StopLoss),
					utils.FormatCurrency(t.TargetPrice),
					exit,
					pl,
					string(t.Status),
					string(t.RiskLevel),
				)
			}
			table.Render()
			return nil
		},
	}
}

// resolveID expands a unique id prefix into the full trade id.
func resolveID(app *App, prefix string) (string, error) {
	var match string
	for _, t := range app.Journal.Snapshot() {
		if t.ID == prefix {
			return t.ID, nil
		}
		if len(prefix) >= 4 && len(t.ID) > len(prefix) && t.ID[:len(prefix)] == prefix {
			if match != "" {
				return "", errors.Wrapf(errors.ErrTradeNotFound, "%q matches multiple trades", prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return prefix, nil
	}
	return match, nil
}

// warnOrFail lets best-effort persistence failures through as warnings:
// the mutation stands, so the command still succeeds.
func warnOrFail(out *Output, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errors.ErrPersistence) {
		out.Warning("Warning: %v", err)
		return nil
	}
	return err
}
