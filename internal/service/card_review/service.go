package card_review

import (
	"context"
	"fmt"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/srs"
)

// ReviewAnswer represents the outcome of one review of a flashcard.
type ReviewAnswer struct {
	Correct bool `json:"correct"`
}

// ReviewResult is the persisted outcome of a submitted answer.
type ReviewResult struct {
	ID       int64 `json:"id"`
	NewScore int   `json:"new_score"`
}

// CardReviewService provides methods for reviewing flashcards
// weakest-first.
type CardReviewService interface {
	// GetNextCard selects the card to review next.
	//
	// Returns:
	//   - (*domain.Flashcard, nil): one of the cards holding the lowest score,
	//     chosen uniformly at random among them
	//   - (nil, ErrNoCardsAvailable): if there are no cards at all
	//   - (nil, error): any other error, typically from the database
	//
	// This method does not modify any data.
	GetNextCard(ctx context.Context) (*domain.Flashcard, error)

	// SubmitAnswer records a review outcome for a card: a correct answer
	// raises its score by one, an incorrect one lowers it by one, never
	// below zero.
	//
	// The read of the current score and the write of the new one happen in
	// a single transaction with the row locked, so concurrent submissions
	// for the same card never lose an update.
	//
	// Returns:
	//   - (*ReviewResult, nil): the card ID and its new score
	//   - (nil, store.ErrCardNotFound): if the card does not exist
	//   - (nil, error): any other error, typically from the database
	SubmitAnswer(ctx context.Context, cardID int64, answer ReviewAnswer) (*ReviewResult, error)
}

// ErrNoCardsAvailable indicates that there is no card to review.
var ErrNoCardsAvailable = fmt.Errorf("no cards available: %w", srs.ErrEmptyCollection)

// ServiceError wraps errors from the card review service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "get_next_card", "submit_answer")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSubmitAnswerError returns a new ServiceError for the submit_answer operation.
func NewSubmitAnswerError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "submit_answer",
		Message:   message,
		Err:       err,
	}
}

// NewGetNextCardError returns a new ServiceError for the get_next_card operation.
func NewGetNextCardError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "get_next_card",
		Message:   message,
		Err:       err,
	}
}
