package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashdeck/internal/api"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	apiMiddleware "github.com/phrazzld/flashdeck/internal/api/middleware"
	"github.com/rs/cors"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(app.corsHandler().Handler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	reviewHandler := api.NewReviewHandler(app.cardReviewService, app.logger)
	uploadHandler := api.NewUploadHandler(app.cardService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Card management endpoints
		r.Get("/cards", cardHandler.ListCards)
		r.Post("/cards", cardHandler.CreateCard)
		r.Get("/cards/{id}", cardHandler.GetCard)
		r.Put("/cards/{id}", cardHandler.UpdateCard)
		r.Delete("/cards/{id}", cardHandler.DeleteCard)

		// Card review endpoints
		r.Get("/review", reviewHandler.GetNextReviewCard)
		r.Post("/cards/{id}/review", reviewHandler.SubmitAnswer)

		r.Post("/upload", uploadHandler.UploadCSV)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

func (app *application) corsHandler() *cors.Cors {
	origins := app.config.Server.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Accept", "Origin", "X-Requested-With"},
		ExposedHeaders: []string{apiMiddleware.TraceIDHeader},
		MaxAge:         86400,
	})
}
