package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string

	// Populated by the root command before any subcommand runs.
	cfg       *config.Config
	appLogger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flashdeck",
	Short: "Flashcard management and review service",
	Long: `flashdeck stores flashcards, serves them over an HTTP API, and picks the
weakest card for review. Configuration comes from config.yaml, .env and
FLASHDECK_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// Only serve logs to stdout; the other commands keep stdout for
		// their own output, such as export's CSV.
		var l *slog.Logger
		if cmd.Name() == serveCommandName {
			l, err = logger.Setup(loaded.Server)
		} else {
			l, err = logger.SetupWithWriter(loaded.Server, cmd.ErrOrStderr())
		}
		if err != nil {
			return fmt.Errorf("failed to set up logger: %w", err)
		}

		l.Debug("configuration loaded",
			slog.Int("port", loaded.Server.Port),
			slog.String("log_level", loaded.Server.LogLevel),
			slog.String("database_driver", loaded.Database.Driver))

		cfg = loaded
		appLogger = l
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file (default: ./config.yaml)")
}
