package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// CardStore defines the interface for flashcard persistence.
//
// Implementations map rows to domain.Flashcard by column name and must
// never return a negative score. IDs are assigned by the store, start at 1
// and are never reused.
type CardStore interface {
	// List returns every stored card ordered by ID.
	// An empty store yields an empty, non-nil slice.
	List(ctx context.Context) ([]domain.Flashcard, error)

	// GetByID retrieves a card by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Flashcard, error)

	// GetByIDForUpdate is GetByID that also locks the row against concurrent
	// writers until the surrounding transaction ends. It must be called on a
	// store obtained from WithTxCardStore.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Flashcard, error)

	// Create inserts a card and sets its ID field to the assigned value.
	// Any ID already present on the card is ignored.
	Create(ctx context.Context, card *domain.Flashcard) error

	// CreateMultiple inserts several cards, setting each ID.
	// IMPORTANT: run it inside store.RunInTransaction for all-or-nothing
	// behaviour; outside a transaction a failure leaves earlier rows stored.
	CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error

	// Update replaces every field of the card identified by card.ID.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Flashcard) error

	// UpdateScore replaces only the score of the identified card.
	// Returns ErrCardNotFound if the card does not exist.
	UpdateScore(ctx context.Context, id int64, score int) error

	// Delete removes a card by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTxCardStore returns a CardStore that runs every query on tx.
	//
	// Example usage:
	//   err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//       txStore := cardStore.WithTxCardStore(tx)
	//       return txStore.CreateMultiple(ctx, cards)
	//   })
	WithTxCardStore(tx *sql.Tx) CardStore
}
