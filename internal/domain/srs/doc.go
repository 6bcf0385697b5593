// Package srs implements the review scheduling rules: score adjustment
// after an answer and weakest-first selection of the next card to review.
//
// Both operations are pure computations over values passed in by the
// caller. Persistence and transactions live in the service layer.
package srs
