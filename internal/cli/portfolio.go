// Package cli provides the command-line interface for the finance tracker.
package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fintrack/internal/models"
	"fintrack/internal/portfolio"
)

// addPortfolioCommands adds stock portfolio commands.
func addPortfolioCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newBuyCmd(app))
	rootCmd.AddCommand(newPortfolioCmd(app))
	rootCmd.AddCommand(newMetricsCmd(app))
	rootCmd.AddCommand(newSentimentCmd(app))
	rootCmd.AddCommand(newQuoteCmd(app))
}

func newBuyCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "buy <symbol> <shares> <price>",
		Short: "Record a stock purchase",
		Long: `Record a stock purchase lot. The company name is resolved from a live
quote when available, otherwise the symbol is used.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}

			shares, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid shares %q", args[1])
			}
			price, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid price %q", args[2])
			}

			when := time.Now()
			if date != "" {
				parsed, err := time.Parse(models.DateFormat, date)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
				when = parsed
			}

			lot := models.Lot{
				Symbol:        strings.ToUpper(strings.TrimSpace(args[0])),
				Shares:        shares,
				PurchasePrice: price,
				PurchaseDate:  when,
			}
			if err := lot.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			// Best effort name resolution; the lot is valid either way.
			lot.CompanyName = lot.Symbol
			if quote, err := app.Quotes.GetQuote(ctx, lot.Symbol); err == nil && quote != nil && quote.CompanyName != "" {
				lot.CompanyName = quote.CompanyName
			}

			if err := app.Store.InsertLot(ctx, lot); err != nil {
				return fmt.Errorf("failed to store lot: %w", err)
			}

			if output.IsJSON() {
				return output.JSON(lot)
			}
			output.Success("Bought %s %s @ %s (%s).", FormatShares(lot.Shares), lot.Symbol, FormatUSD(lot.PurchasePrice), lot.CompanyName)
			output.Dim("Cost basis: %s", FormatUSD(lot.CostBasis()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "purchase date (YYYY-MM-DD, default today)")

	return cmd
}

func newPortfolioCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio",
		Short: "Show current portfolio valuation",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			lots, err := loadLots(app)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			value := app.Engine.Value(ctx, lots)

			if output.IsJSON() {
				return output.JSON(value)
			}

			if len(value.Holdings) == 0 {
				output.Info("No priced holdings.")
				if len(lots) > 0 {
					output.Dim("%d lots could not be priced right now.", len(lots))
				}
				return nil
			}

			table := NewTable(output, "Symbol", "Company", "Shares", "Avg Cost", "Price", "Value", "Gain/Loss", "%")
			for _, h := range value.Holdings {
				table.AddRow(
					h.Symbol,
					TruncateString(h.CompanyName, 24),
					FormatShares(h.Shares),
					FormatUSD(h.PurchasePrice),
					FormatUSD(h.CurrentPrice),
					FormatUSD(h.CurrentValue),
					output.FormatGainLoss(h.GainLoss),
					FormatPercent(h.GainLossPercent),
				)
			}
			table.Render()

			output.Println()
			output.Bold("Total value: %s", FormatUSD(value.TotalValue))
			output.Printf("Cost basis:  %s\n", FormatUSD(value.TotalCost))
			output.Printf("Gain/loss:   %s (%s)\n", output.FormatGainLoss(value.TotalGainLoss), FormatPercent(value.TotalGainLossPercent))
			if skipped := len(lots) - len(value.Holdings); skipped > 0 {
				output.Warning("%d positions excluded: no quote available.", skipped)
			}
			return nil
		},
	}
}

func newMetricsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show sector allocation and top performers",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			lots, err := loadLots(app)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			value := app.Engine.Value(ctx, lots)
			metrics := portfolio.Metrics(value.Holdings)

			if output.IsJSON() {
				return output.JSON(metrics)
			}

			if metrics.TotalPositions == 0 {
				output.Info("No priced holdings to analyze.")
				return nil
			}

			output.Bold("Sector allocation")
			sectors := make([]string, 0, len(metrics.SectorAllocation))
			for sector := range metrics.SectorAllocation {
				sectors = append(sectors, sector)
			}
			sort.Strings(sectors)
			for _, sector := range sectors {
				output.Printf("  %-12s %5.1f%%\n", sector, metrics.SectorAllocation[sector])
			}

			output.Println()
			output.Bold("Top performers")
			for _, h := range metrics.TopPerformers {
				output.Printf("  %-6s %s\n", h.Symbol, FormatPercent(h.GainLossPercent))
			}

			output.Println()
			output.Bold("Worst performers")
			for _, h := range metrics.WorstPerformers {
				output.Printf("  %-6s %s\n", h.Symbol, FormatPercent(h.GainLossPercent))
			}
			return nil
		},
	}
}

func newSentimentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment",
		Short: "Show market sentiment from the tech bellwether basket",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			report := app.Engine.Sentiment(ctx)

			if output.IsJSON() {
				return output.JSON(report)
			}

			output.Bold("Market sentiment: %s", report.Sentiment)
			output.Printf("  Avg change:     %s\n", FormatPercent(report.AvgChangePercent))
			output.Printf("  Positive ratio: %.1f\n", report.PositiveRatio)
			output.Printf("  Basket:         %d/%d symbols resolved\n", report.Resolved, report.BasketSize)
			return nil
		},
	}
}

func newQuoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quote <symbol>",
		Short: "Fetch a live quote for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(strings.TrimSpace(args[0]))

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			quote, err := app.Quotes.GetQuote(ctx, symbol)
			if err != nil {
				return fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
			}
			if quote == nil {
				output.Warning("No quote found for %s.", symbol)
				return nil
			}

			if output.IsJSON() {
				return output.JSON(quote)
			}

			output.Bold("%s - %s", quote.Symbol, quote.CompanyName)
			output.Printf("  Price:          %s\n", FormatUSD(quote.Price))
			output.Printf("  Previous close: %s\n", FormatUSD(quote.PreviousClose))
			output.Printf("  Change:         %s (%s)\n", output.FormatGainLoss(quote.Change), FormatPercent(quote.ChangePercent))
			if quote.Volume > 0 {
				output.Printf("  Volume:         %d\n", quote.Volume)
			}
			return nil
		},
	}
}

func loadLots(app *App) ([]models.Lot, error) {
	if app.Store == nil {
		return nil, fmt.Errorf("store not initialized")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	lots, err := app.Store.GetLots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	return lots, nil
}
