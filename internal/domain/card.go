package domain

import (
	"fmt"
	"math"
)

// MaxScore is the largest score a card may hold: the top of the PostgreSQL
// INTEGER column. SQLite enforces the same bound through Validate.
const MaxScore = math.MaxInt32

// Flashcard is one study item: a question/answer pair classified by
// course, chapter and notion, carrying a mastery score.
//
// Score is inverse mastery: lower means weaker and more due for review.
// It is never negative.
type Flashcard struct {
	ID       int64  `json:"id"`
	Course   string `json:"course"`
	Chapter  string `json:"chapter"`
	Notion   string `json:"notion"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
}

// NewFlashcard creates an unsaved Flashcard with a zero score.
// The ID is assigned by the store on creation.
func NewFlashcard(course, chapter, notion, question, answer string) *Flashcard {
	return &Flashcard{
		Course:   course,
		Chapter:  chapter,
		Notion:   notion,
		Question: question,
		Answer:   answer,
	}
}

// Validate checks if the Flashcard has valid data.
// Text fields are free-form and may be empty; only the score is constrained.
func (c *Flashcard) Validate() error {
	return ValidateScore(c.Score)
}

// ValidateScore reports whether score fits between zero and MaxScore.
func ValidateScore(score int) error {
	switch {
	case score < 0:
		return NewValidationError("score", "must be zero or greater", ErrNegativeScore)
	case score > MaxScore:
		return NewValidationError("score", fmt.Sprintf("must be at most %d", MaxScore), ErrScoreTooLarge)
	}
	return nil
}

// WithScore returns a copy of the card carrying the given score.
// All other fields are untouched.
func (c Flashcard) WithScore(score int) Flashcard {
	c.Score = score
	return c
}
