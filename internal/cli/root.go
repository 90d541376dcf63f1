// Package cli provides the command-line interface for the finance tracker.
package cli

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fintrack/internal/config"
	"fintrack/internal/extract"
	"fintrack/internal/llm"
	"fintrack/internal/logging"
	"fintrack/internal/market"
	"fintrack/internal/portfolio"
	"fintrack/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-01-01"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Store    store.Store
	Registry *llm.Registry
	Quotes   market.QuoteProvider
	Engine   *portfolio.Engine
	Pipeline *extract.Pipeline
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Provider registry only holds providers with credentials present.
	app.Registry = llm.NewRegistry(cfg)
	app.Pipeline = extract.NewPipeline(app.Registry, logger)

	dbPath := cfg.Storage.DBPath
	if dbPath == "" {
		dbPath = config.DefaultConfigDir() + "/fintrack.db"
	}
	dataStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, some features may be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", dbPath).Msg("SQLite store initialized")
	}

	app.Quotes = market.NewYahooClient(time.Duration(cfg.Portfolio.QuoteTimeoutSeconds) * time.Second)
	app.Engine = portfolio.NewEngine(app.Quotes, logger, cfg.Portfolio.MaxConcurrentQuotes)

	rootCmd := &cobra.Command{
		Use:   "fintrack",
		Short: "Personal finance tracker with AI statement import",
		Long: `Fintrack is a personal finance CLI that imports bank statements,
tracks spending, and values a stock portfolio with live quotes.

Statement PDFs are parsed with an AI provider (OpenAI or Gemini) into
structured transactions. Portfolio valuations fetch live market data.

Use 'fintrack help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/fintrack)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addImportCommands(rootCmd, app)
	addTransactionCommands(rootCmd, app)
	addPortfolioCommands(rootCmd, app)
	addGoalCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Fintrack v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "providers",
		Short: "Show configured AI providers",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			status := map[string]bool{
				"openai": app.Config.HasProvider("openai"),
				"gemini": app.Config.HasProvider("gemini"),
			}
			if output.IsJSON() {
				output.JSON(status)
				return
			}
			for _, name := range []string{"openai", "gemini"} {
				if status[name] {
					output.Success("%s: configured", name)
				} else {
					output.Dim("%s: no API key", name)
				}
			}
		},
	})

	return cmd
}
