package api

import "github.com/phrazzld/flashdeck/internal/domain"

// CardRequest is the body of create and update requests. Pointer fields let
// validation tell a missing field from an empty one; text fields may be
// empty strings but must be present. Any "id" in the body is ignored.
type CardRequest struct {
	Course   *string `json:"course"   validate:"required"`
	Chapter  *string `json:"chapter"  validate:"required"`
	Notion   *string `json:"notion"   validate:"required"`
	Question *string `json:"question" validate:"required"`
	Answer   *string `json:"answer"   validate:"required"`
	Score    *int    `json:"score"    validate:"omitempty,gte=0,lte=2147483647"`
}

// ToFlashcard converts a validated request into an unsaved card.
// A missing score becomes zero.
func (req *CardRequest) ToFlashcard() *domain.Flashcard {
	card := domain.NewFlashcard(*req.Course, *req.Chapter, *req.Notion, *req.Question, *req.Answer)
	if req.Score != nil {
		card.Score = *req.Score
	}
	return card
}

// ReviewRequest is the body of a review submission.
type ReviewRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

// ReviewResponse reports a card's score after a review.
type ReviewResponse struct {
	ID       int64 `json:"id"`
	NewScore int   `json:"new_score"`
}

// ImportResponse reports a successful bulk import.
type ImportResponse struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
}
