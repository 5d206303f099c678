package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/amora-api/internal/api"
	apiMiddleware "github.com/phrazzld/amora-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and
// middleware. The ledger recording endpoint is only registered when the
// ledger integration is enabled.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	profileHandler := api.NewProfileHandler(app.registry, app.logger)
	matchHandler := api.NewMatchHandler(app.matchService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/profiles", profileHandler.CreateProfile)
		r.Post("/match", matchHandler.Match)

		if app.config.Ledger.Enabled {
			r.Post("/match/record", matchHandler.MatchAndRecord)
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
