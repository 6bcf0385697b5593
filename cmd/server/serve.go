package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const serveCommandName = "serve"

var serveCmd = &cobra.Command{
	Use:   serveCommandName,
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server. Pending migrations are applied first.
The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withApplication(ctx, func(app *application) error {
			return app.Run(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
