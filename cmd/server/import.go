package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import flashcards from a CSV file",
	Long: `Import flashcards from a CSV file with the header
Course,Chapter,Notion,Question,Answer[,Score]. Either every row is imported
or, if any row is malformed, none is.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(cmd.Context(), func(app *application) error {
			n, err := app.importFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d cards\n", n)
			return nil
		})
	},
}

// importFile imports every card in the CSV file at path.
func (app *application) importFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	n, err := app.cardService.ImportCards(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("failed to import %s: %w", path, err)
	}

	app.logger.Info("cards imported", slog.String("file", path), slog.Int("count", n))
	return n, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
