package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
	"github.com/phrazzld/flashdeck/internal/service"
)

// CardHandler handles card management HTTP requests
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService, logger *slog.Logger) *CardHandler {
	if cardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardService cannot be nil for CardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /api/cards requests.
// It always responds with a JSON array, empty when there are no cards.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardService.ListCards(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cards")
		return
	}

	if cards == nil {
		cards = []domain.Flashcard{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// GetCard handles GET /api/cards/{id} requests.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, err := getPathID(r, "id")
	if err != nil {
		log.Debug("invalid card ID", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	card, err := h.cardService.GetCard(r.Context(), cardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// CreateCard handles POST /api/cards requests.
// It responds 201 Created with the stored card, including its new ID.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	card, ok := h.decodeCardRequest(w, r)
	if !ok {
		return
	}

	if err := h.cardService.CreateCard(r.Context(), card); err != nil {
		HandleAPIError(w, r, err, "Failed to create card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// UpdateCard handles PUT /api/cards/{id} requests.
// Every field is replaced; a missing card yields 404.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, err := getPathID(r, "id")
	if err != nil {
		log.Debug("invalid card ID", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	card, ok := h.decodeCardRequest(w, r)
	if !ok {
		return
	}

	if err := h.cardService.UpdateCard(r.Context(), cardID, card); err != nil {
		HandleAPIError(w, r, err, "Failed to update card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteCard handles DELETE /api/cards/{id} requests.
// Deleting a card that does not exist still succeeds.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, err := getPathID(r, "id")
	if err != nil {
		log.Debug("invalid card ID", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), cardID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "Card deleted"})
}

// decodeCardRequest parses and validates a card body, writing the 400
// response itself when the body is unusable.
func (h *CardHandler) decodeCardRequest(w http.ResponseWriter, r *http.Request) (*domain.Flashcard, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CardRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Debug("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return nil, false
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return nil, false
	}

	return req.ToFlashcard(), true
}
