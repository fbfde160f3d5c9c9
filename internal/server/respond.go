package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"fitness-tracker-backend/db"
)

func init() {
	// Response bodies carry decimals as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// storeError maps a Store failure to a response. entity names the row the
// handler was looking for, or the parent row on create.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	switch {
	case errors.Is(err, db.ErrNotFound), errors.Is(err, db.ErrParentNotFound):
		writeError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, db.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, db.ErrDuplicateGoogleID):
		writeError(w, http.StatusBadRequest, "Google account already linked")
	case errors.Is(err, db.ErrInvalidPatch):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Errorw("Store operation failed",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
