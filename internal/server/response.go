package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("Failed to marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// errorDetail единый конверт ошибок {"detail": "..."}
func (s *Server) errorDetail(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("Request failed",
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
		zap.String("trace_id", traceIDFrom(r.Context())),
		zap.Error(err))

	s.errorDetail(w, http.StatusInternalServerError, "Internal server error")
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.errorDetail(w, http.StatusNotFound, "Not found")
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.errorDetail(w, http.StatusMethodNotAllowed, "Method not allowed")
}
