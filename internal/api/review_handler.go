package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
	"github.com/phrazzld/flashdeck/internal/service/card_review"
)

// ReviewHandler handles card review HTTP requests
type ReviewHandler struct {
	cardReviewService card_review.CardReviewService
	logger            *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(
	cardReviewService card_review.CardReviewService,
	logger *slog.Logger,
) *ReviewHandler {
	if cardReviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardReviewService cannot be nil for ReviewHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		cardReviewService: cardReviewService,
		logger:            logger.With(slog.String("component", "review_handler")),
	}
}

// GetNextReviewCard handles GET /api/review requests.
// It responds with one of the weakest cards, or 404 when there are none.
func (h *ReviewHandler) GetNextReviewCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	card, err := h.cardReviewService.GetNextCard(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get next review card")
		return
	}

	log.Debug("serving review card", slog.Int64("card_id", card.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// SubmitAnswer handles POST /api/cards/{id}/review requests.
func (h *ReviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, err := getPathID(r, "id")
	if err != nil {
		log.Debug("invalid card ID", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	var req ReviewRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Debug("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.Int64("card_id", cardID))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.cardReviewService.SubmitAnswer(
		r.Context(),
		cardID,
		card_review.ReviewAnswer{Correct: *req.Correct},
	)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ReviewResponse{
		ID:       result.ID,
		NewScore: result.NewScore,
	})
}
