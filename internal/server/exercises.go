package server

import (
	"net/http"
)

func (s *Server) createExercise(w http.ResponseWriter, r *http.Request) {
	var req createExerciseRequest
	if !s.decode(w, r, &req) {
		return
	}

	exercise := req.toModel()
	if err := s.store.CreateExercise(r.Context(), exercise); err != nil {
		s.storeError(w, r, err, "Workout")
		return
	}
	s.metrics.RecordWrite(r.Context(), "exercise", "create")
	writeJSON(w, http.StatusCreated, exercise)
}

func (s *Server) listExercises(w http.ResponseWriter, r *http.Request) {
	workoutID, err := parseFilter(r, "workout_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	exercises, err := s.store.ListExercises(r.Context(), workoutID, page)
	if err != nil {
		s.storeError(w, r, err, "Exercise")
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) getExercise(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := s.store.GetExercise(r.Context(), id)
	if err != nil {
		s.storeError(w, r, err, "Exercise")
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) deleteExercise(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.DeleteExercise(r.Context(), id); err != nil {
		s.storeError(w, r, err, "Exercise")
		return
	}
	s.metrics.RecordWrite(r.Context(), "exercise", "delete")
	w.WriteHeader(http.StatusNoContent)
}
