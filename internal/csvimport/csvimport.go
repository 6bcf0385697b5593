// Package csvimport converts between the tabular card format used for bulk
// import and export and domain.Flashcard values.
//
// The format is CSV with a header row naming the columns Course, Chapter,
// Notion, Question and Answer, plus an optional Score column. Column order is
// free and unknown columns are ignored.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// Column names of the import format.
const (
	ColumnCourse   = "Course"
	ColumnChapter  = "Chapter"
	ColumnNotion   = "Notion"
	ColumnQuestion = "Question"
	ColumnAnswer   = "Answer"
	ColumnScore    = "Score"
)

// RequiredColumns lists the header columns every import must carry, in the
// order Export writes them.
var RequiredColumns = []string{ColumnCourse, ColumnChapter, ColumnNotion, ColumnQuestion, ColumnAnswer}

var (
	// ErrMissingHeader is returned when the input has no header row.
	ErrMissingHeader = errors.New("missing header row")

	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrInvalidScore is returned when a Score cell is not a non-negative integer.
	ErrInvalidScore = errors.New("score must be a non-negative integer")
)

// RowError reports a malformed line of the input. Line is 1-based and counts
// the header as line 1. It matches domain.ErrMalformedInput with errors.Is.
type RowError struct {
	Line   int
	Column string
	Err    error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d: column %s: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap exposes both the malformed-input kind and the underlying cause.
func (e *RowError) Unwrap() []error {
	return []error{domain.ErrMalformedInput, e.Err}
}

// Parse reads every record from r and returns the cards it describes.
//
// The header is checked before any record is read. The first bad record
// aborts parsing with a *RowError; no partial result is returned. An empty
// Score cell, or a missing Score column, yields a score of zero.
func Parse(r io.Reader) ([]*domain.Flashcard, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &RowError{Line: 1, Err: ErrMissingHeader}
		}
		return nil, wrapReadError(err, 1)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	cards := make([]*domain.Flashcard, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapReadError(err, 0)
		}

		line, _ := reader.FieldPos(0)
		card, err := parseRecord(record, index, line)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}

// columnIndex maps each known column name to its position in header.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &RowError{Line: 1, Column: col, Err: ErrMissingColumn}
		}
	}
	return index, nil
}

func parseRecord(record []string, index map[string]int, line int) (*domain.Flashcard, error) {
	card := domain.NewFlashcard(
		record[index[ColumnCourse]],
		record[index[ColumnChapter]],
		record[index[ColumnNotion]],
		record[index[ColumnQuestion]],
		record[index[ColumnAnswer]],
	)

	if i, ok := index[ColumnScore]; ok {
		cell := strings.TrimSpace(record[i])
		if cell != "" {
			score, err := strconv.Atoi(cell)
			if err != nil || domain.ValidateScore(score) != nil {
				return nil, &RowError{Line: line, Column: ColumnScore, Err: fmt.Errorf("%w: %q", ErrInvalidScore, cell)}
			}
			card.Score = score
		}
	}

	return card, nil
}

// wrapReadError converts a csv reader failure into a RowError, taking the
// line from the parser when it reports one.
func wrapReadError(err error, line int) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &RowError{Line: parseErr.StartLine, Err: parseErr.Err}
	}
	return &RowError{Line: line, Err: err}
}
