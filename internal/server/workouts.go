package server

import (
	"encoding/json"
	"net/http"

	"fitness-tracker-backend/db"
)

func (s *Server) createWorkout(w http.ResponseWriter, r *http.Request) {
	var req createWorkoutRequest
	if !s.decode(w, r, &req) {
		return
	}

	workout := req.toModel()
	if err := s.store.CreateWorkout(r.Context(), workout); err != nil {
		s.storeError(w, r, err, "User")
		return
	}
	s.metrics.RecordWrite(r.Context(), "workout", "create")
	writeJSON(w, http.StatusCreated, workout)
}

func (s *Server) listWorkouts(w http.ResponseWriter, r *http.Request) {
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

	workouts, err := s.store.ListWorkouts(r.Context(), userID, page)
	if err != nil {
		s.storeError(w, r, err, "Workout")
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) getWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	workout, err := s.store.GetWorkout(r.Context(), id)
	if err != nil {
		s.storeError(w, r, err, "Workout")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) updateWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch db.WorkoutPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+decodeMessage(err))
		return
	}

	workout, err := s.store.UpdateWorkout(r.Context(), id, patch)
	if err != nil {
		s.storeError(w, r, err, "Workout")
		return
	}
	s.metrics.RecordWrite(r.Context(), "workout", "update")
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) deleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.DeleteWorkout(r.Context(), id); err != nil {
		s.storeError(w, r, err, "Workout")
		return
	}
	s.metrics.RecordWrite(r.Context(), "workout", "delete")
	w.WriteHeader(http.StatusNoContent)
}
