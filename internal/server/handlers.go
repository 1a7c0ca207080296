package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tourbeau/tourbot/internal/model"
	"github.com/tourbeau/tourbot/internal/service"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "API is running"})
}

func (s *Server) handleTestDB(w http.ResponseWriter, r *http.Request) {
	tables, err := s.diagnostics.Tables(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"collections": tables,
	})
}

type saveUserResponse struct {
	Status        string      `json:"status"`
	Message       string      `json:"message"`
	MatchedCount  int64       `json:"matched_count"`
	ModifiedCount int64       `json:"modified_count"`
	UpsertedID    *string     `json:"upserted_id"`
	User          *model.User `json:"user"`
}

func (s *Server) handleSaveUser(w http.ResponseWriter, r *http.Request) {
	var input service.UpsertInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.errorDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.users.Upsert(r.Context(), input)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			s.errorDetail(w, http.StatusUnprocessableEntity, "telegram_id and first_name are required")
			return
		}
		s.serverError(w, r, err)
		return
	}

	message := "User updated successfully"
	if result.UpsertedID != nil {
		message = "User saved successfully"
	}

	s.writeJSON(w, http.StatusOK, saveUserResponse{
		Status:        "success",
		Message:       message,
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		UpsertedID:    result.UpsertedID,
		User:          result.User,
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	telegramID, err := strconv.ParseInt(chi.URLParam(r, "telegramID"), 10, 64)
	if err != nil {
		s.errorDetail(w, http.StatusBadRequest, "Invalid telegram id")
		return
	}

	user, err := s.users.GetByTelegramID(r.Context(), telegramID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.errorDetail(w, http.StatusNotFound, "User not found")
			return
		}
		s.serverError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, trips)
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.errorDetail(w, http.StatusBadRequest, "Invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.errorDetail(w, http.StatusNotFound, "Trip not found")
			return
		}
		s.serverError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, trip)
}
