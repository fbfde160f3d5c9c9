package server

import (
	"net/http"
)

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !s.decode(w, r, &req) {
		return
	}

	user := req.toModel()
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		s.storeError(w, r, err, "User")
		return
	}
	s.metrics.RecordWrite(r.Context(), "user", "create")
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	users, err := s.store.ListUsers(r.Context(), page)
	if err != nil {
		s.storeError(w, r, err, "User")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		s.storeError(w, r, err, "User")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// deleteUser also removes the user's workouts, their exercises and the
// user's meals.
func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		s.storeError(w, r, err, "User")
		return
	}
	s.metrics.RecordWrite(r.Context(), "user", "delete")
	w.WriteHeader(http.StatusNoContent)
}
