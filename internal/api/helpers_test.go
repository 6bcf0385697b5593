package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/flashdeck/internal/api/middleware"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter mounts the handlers the way the server does.
func newTestRouter(cards *CardHandler, reviews *ReviewHandler, uploads *UploadHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(discardLogger()))
	r.Route("/api", func(r chi.Router) {
		if cards != nil {
			r.Get("/cards", cards.ListCards)
			r.Post("/cards", cards.CreateCard)
			r.Get("/cards/{id}", cards.GetCard)
			r.Put("/cards/{id}", cards.UpdateCard)
			r.Delete("/cards/{id}", cards.DeleteCard)
		}
		if reviews != nil {
			r.Get("/review", reviews.GetNextReviewCard)
			r.Post("/cards/{id}/review", reviews.SubmitAnswer)
		}
		if uploads != nil {
			r.Post("/upload", uploads.UploadCSV)
		}
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
