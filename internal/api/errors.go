package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/csvimport"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service/card_review"
	"github.com/phrazzld/flashdeck/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, card_review.ErrNoCardsAvailable):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrMalformedInput),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var rowErr *csvimport.RowError
	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, card_review.ErrNoCardsAvailable):
		return "No cards available"

	// The row error only describes the uploaded file, so it is safe to echo.
	case errors.As(err, &rowErr):
		return "Malformed CSV: " + rowErr.Error()

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid card ID"

	case errors.As(err, &validationErr):
		if validationErr.Field != "" {
			return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
		}
		return "Validation error"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid card data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message naming the first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "gte", "min":
		return "must be zero or greater"
	case "lte", "max":
		return "must be at most 2147483647"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err: the status code from
// MapErrorToStatusCode and, unless fallbackMessage is set for a server error,
// the message from GetSafeErrorMessage. The full error is redacted into the log.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMessage != "" {
		message = fallbackMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
