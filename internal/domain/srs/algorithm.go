package srs

import (
	"github.com/phrazzld/flashdeck/internal/domain"
)

// minScore is the floor every adjusted score is clamped to.
const minScore = 0

// AdjustScore computes a card's new score after a review.
//
// A correct answer raises the score by one. An incorrect answer lowers it
// by one, never below zero. Scores saturate at domain.MaxScore. The function
// is pure: persisting the result is the caller's job.
func AdjustScore(current int, correct bool) int {
	if correct {
		if current >= domain.MaxScore {
			return domain.MaxScore
		}
		return current + 1
	}
	return max(minScore, current-1)
}

// weakestCards returns the cards whose score equals the minimum score of
// the set, in input order. Ties are kept; equality is exact.
func weakestCards(cards []domain.Flashcard) []domain.Flashcard {
	if len(cards) == 0 {
		return nil
	}

	lowest := cards[0].Score
	for _, c := range cards[1:] {
		if c.Score < lowest {
			lowest = c.Score
		}
	}

	weakest := make([]domain.Flashcard, 0, len(cards))
	for _, c := range cards {
		if c.Score == lowest {
			weakest = append(weakest, c)
		}
	}
	return weakest
}
