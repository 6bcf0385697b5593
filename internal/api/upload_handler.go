package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/service"
)

// MaxUploadBytes bounds the size of an uploaded CSV file.
const MaxUploadBytes = 10 << 20

// UploadFormField is the multipart field carrying the CSV file.
const UploadFormField = "file"

// UploadHandler handles bulk import HTTP requests
type UploadHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(cardService service.CardService, logger *slog.Logger) *UploadHandler {
	if cardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardService cannot be nil for UploadHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UploadHandler")
	}

	return &UploadHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "upload_handler")),
	}
}

// UploadCSV handles POST /api/upload requests.
// The whole file is imported or, on the first malformed line, nothing is.
func (h *UploadHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	file, header, err := r.FormFile(UploadFormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, "File too large", err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "File is required", err)
		return
	}
	defer func() { _ = file.Close() }()

	log.Debug("importing uploaded file",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	imported, err := h.cardService.ImportCards(r.Context(), file)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to import cards")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ImportResponse{
		Message:  "Import successful",
		Imported: imported,
	})
}
