package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) routes() http.Handler {
	mux := chi.NewRouter()

	mux.NotFound(s.notFound)
	mux.MethodNotAllowed(s.methodNotAllowed)

	mux.Use(s.traceID)
	mux.Use(s.logAccess)
	mux.Use(s.recoverPanic)

	mux.Use(s.cors)

	mux.Get("/", s.handleRoot)
	mux.Get("/api/test-db", s.handleTestDB)

	// /api/save-user — исторический алиас /api/users
	mux.Post("/api/users", s.handleSaveUser)
	mux.Post("/api/save-user", s.handleSaveUser)
	mux.Get("/api/users/{telegramID}", s.handleGetUser)

	// Фронтенды разных версий ходят и за trips, и за tours
	mux.Get("/api/trips", s.handleListTrips)
	mux.Get("/api/trips/{id}", s.handleGetTrip)
	mux.Get("/api/tours", s.handleListTrips)
	mux.Get("/api/tours/{id}", s.handleGetTrip)

	return mux
}
