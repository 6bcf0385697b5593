package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/flashdeck/internal/csvimport"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file.csv]",
	Short: "Export every flashcard as CSV",
	Long: `Export every flashcard in the import format, scores included, so an
export can be imported again. Writes to stdout when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(cmd.Context(), func(app *application) error {
			if len(args) == 0 {
				_, err := app.exportCards(cmd.Context(), cmd.OutOrStdout())
				return err
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			n, err := app.exportCards(cmd.Context(), f)
			if closeErr := f.Close(); err == nil && closeErr != nil {
				err = fmt.Errorf("failed to close %s: %w", args[0], closeErr)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d cards to %s\n", n, args[0])
			return nil
		})
	},
}

// exportCards writes every card to w and returns how many were written.
func (app *application) exportCards(ctx context.Context, w io.Writer) (int, error) {
	cards, err := app.cardService.ListCards(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list cards: %w", err)
	}

	if err := csvimport.Export(w, cards); err != nil {
		return 0, fmt.Errorf("failed to write cards: %w", err)
	}

	app.logger.Debug("cards exported", slog.Int("count", len(cards)))
	return len(cards), nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
