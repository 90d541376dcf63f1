// Package cli provides the command-line interface for the finance tracker.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"fintrack/internal/config"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/logging"
)

// addImportCommands adds statement import commands.
func addImportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newImportCmd(app))
}

func newImportCmd(app *App) *cobra.Command {
	var provider string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <statement.pdf>",
		Short: "Import transactions from a bank statement PDF",
		Long: `Extract text from a bank statement PDF and parse it into structured
transactions using the configured AI provider. Accepted transactions are
stored; records the provider returns in a broken shape are dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			path := args[0]

			if provider == "" {
				provider = app.Config.Extraction.Provider
			}
			if !app.Registry.Has(provider) {
				output.Error("Provider %q has no API key configured.", provider)
				output.Dim("Add credentials to %s/credentials.toml or set the provider env var.", config.DefaultConfigDir())
				return fmt.Errorf("provider %s not configured", provider)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
			defer cancel()

			if !output.IsJSON() {
				output.Info("Extracting transactions from %s via %s...", filepath.Base(path), provider)
			}

			result, err := app.Pipeline.ProcessDocument(ctx, data, provider)
			if err != nil {
				switch apperrors.ExtractionKindOf(err) {
				case apperrors.EmptyOrUnreadable:
					output.Error("Could not read usable text from %s.", filepath.Base(path))
					output.Dim("Scanned or image-only statements are not supported.")
				case apperrors.ProviderFailure:
					output.Error("Provider %s failed: %v", provider, err)
				case apperrors.MalformedResponse:
					output.Error("Provider %s returned an unusable response: %v", provider, err)
				default:
					output.Error("Import failed: %v", err)
				}
				return err
			}

			source := filepath.Base(path)
			stored := 0
			if !dryRun && app.Store != nil {
				for _, tx := range result.Transactions {
					if err := app.Store.InsertTransaction(ctx, tx, source); err != nil {
						output.Warning("Failed to store transaction on %s: %v", FormatDate(tx.Date), err)
						continue
					}
					stored++
				}
			}

			logging.LogImport(app.Logger, source, result.Count, result.Dropped)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"source":            source,
					"transaction_count": result.Count,
					"dropped_count":     result.Dropped,
					"stored":            stored,
					"dry_run":           dryRun,
					"transactions":      result.Transactions,
				})
			}

			output.Println()
			table := NewTable(output, "Date", "Amount", "Category", "Type", "Description")
			for _, tx := range result.Transactions {
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
			output.Success("Extracted %d transactions (%d dropped).", result.Count, result.Dropped)
			if dryRun {
				output.Dim("Dry run: nothing was stored.")
			} else if app.Store != nil {
				output.Printf("Stored %d transactions from %s.\n", stored, source)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "AI provider to use (openai or gemini)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "extract without storing")

	return cmd
}
