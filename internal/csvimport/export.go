package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// Export writes cards to w in the import format, header first, including
// the Score column. Parse reads the output back into equal cards (IDs aside).
func Export(w io.Writer, cards []domain.Flashcard) error {
	writer := csv.NewWriter(w)

	header := append(append([]string{}, RequiredColumns...), ColumnScore)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, card := range cards {
		record := []string{
			card.Course,
			card.Chapter,
			card.Notion,
			card.Question,
			card.Answer,
			strconv.Itoa(card.Score),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row for card %d: %w", card.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
