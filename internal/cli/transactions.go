// Package cli provides the command-line interface for the finance tracker.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fintrack/internal/models"
	"fintrack/internal/store"
)

// addTransactionCommands adds transaction recording and reporting commands.
func addTransactionCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAddCmd(app))
	rootCmd.AddCommand(newTransactionsCmd(app))
	rootCmd.AddCommand(newSummaryCmd(app))
}

func newAddCmd(app *App) *cobra.Command {
	var date, category, txType, description string
	var amount float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction manually",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}

			when := time.Now()
			if date != "" {
				parsed, err := time.Parse(models.DateFormat, date)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
				when = parsed
			}

			tx := models.Transaction{
				Date:        when,
				Amount:      amount,
				Category:    models.ParseCategory(category),
				Type:        models.ParseTxType(txType),
				Description: description,
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := app.Store.InsertTransaction(ctx, tx, "manual"); err != nil {
				return fmt.Errorf("failed to store transaction: %w", err)
			}

			if output.IsJSON() {
				return output.JSON(tx)
			}
			output.Success("Recorded %s %s (%s) on %s.", string(tx.Type), FormatUSD(tx.Amount), string(tx.Category), FormatDate(tx.Date))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "transaction amount")
	cmd.Flags().StringVar(&category, "category", "other", "spending category")
	cmd.Flags().StringVar(&txType, "type", "expense", "transaction type (expense, income, transfer)")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func newTransactionsCmd(app *App) *cobra.Command {
	var from, to, category, txType string
	var limit int

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List recorded transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}

			filter := store.TransactionFilter{
				Category: category,
				Type:     txType,
				Limit:    limit,
			}
			if from != "" {
				parsed, err := time.Parse(models.DateFormat, from)
				if err != nil {
					return fmt.Errorf("invalid --from date %q", from)
				}
				filter.StartDate = parsed
			}
			if to != "" {
				parsed, err := time.Parse(models.DateFormat, to)
				if err != nil {
					return fmt.Errorf("invalid --to date %q", to)
				}
				filter.EndDate = parsed
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			txs, err := app.Store.GetTransactions(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to fetch transactions: %w", err)
			}

			if output.IsJSON() {
				return output.JSON(txs)
			}

			if len(txs) == 0 {
				output.Info("No transactions found.")
				return nil
			}

			table := NewTable(output, "Date", "Amount", "Category", "Type", "Description")
			var total float64
			for _, tx := range txs {
				total += tx.Amount
				table.AddRow(
					FormatDate(tx.Date),
					FormatUSD(tx.Amount),
					string(tx.Category),
					string(tx.Type),
					TruncateString(tx.Description, 40),
				)
			}
			table.Render()
			output.Println()
			output.Printf("%d transactions, net %s\n", len(txs), FormatUSD(total))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&txType, "type", "", "filter by type")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows")

	return cmd
}

func newSummaryCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show a monthly income/expense summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}

			now := time.Now()
			year, mon := now.Year(), int(now.Month())
			if month != "" {
				parsed, err := time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("invalid --month %q, expected YYYY-MM", month)
				}
				year, mon = parsed.Year(), int(parsed.Month())
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			summary, err := app.Store.MonthlySummary(ctx, year, mon)
			if err != nil {
				return fmt.Errorf("failed to compute summary: %w", err)
			}

			if output.IsJSON() {
				return output.JSON(summary)
			}

			output.Bold("Summary for %04d-%02d", year, mon)
			output.Printf("  Income:   %s\n", FormatUSD(summary.Income))
			output.Printf("  Expenses: %s\n", FormatUSD(summary.Expenses))
			output.Printf("  Savings:  %s\n", output.FormatGainLoss(summary.Savings))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to summarize (YYYY-MM, default current)")

	return cmd
}
