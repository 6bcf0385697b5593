package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// getPathID extracts a card ID from the URL path parameters.
//
// Returns:
//   - (id, nil): the parsed ID, always >= 1
//   - (0, error): a *domain.ValidationError wrapping domain.ErrInvalidID if
//     the parameter is missing, not an integer, or not positive
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}
