package server

import (
	"net/http"
)

func (s *Server) createMeal(w http.ResponseWriter, r *http.Request) {
	var req createMealRequest
	if !s.decode(w, r, &req) {
		return
	}

	meal := req.toModel()
	if err := s.store.CreateMeal(r.Context(), meal); err != nil {
		s.storeError(w, r, err, "User")
		return
	}
	s.metrics.RecordWrite(r.Context(), "meal", "create")
	writeJSON(w, http.StatusCreated, meal)
}

func (s *Server) listMeals(w http.ResponseWriter, r *http.Request) {
	userID, err := parseFilter(r, "user_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	meals, err := s.store.ListMeals(r.Context(), userID, page)
	if err != nil {
		s.storeError(w, r, err, "Meal")
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

func (s *Server) getMeal(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	meal, err := s.store.GetMeal(r.Context(), id)
	if err != nil {
		s.storeError(w, r, err, "Meal")
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

func (s *Server) deleteMeal(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.DeleteMeal(r.Context(), id); err != nil {
		s.storeError(w, r, err, "Meal")
		return
	}
	s.metrics.RecordWrite(r.Context(), "meal", "delete")
	w.WriteHeader(http.StatusNoContent)
}
