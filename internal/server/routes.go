package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)

	origins := s.cfg.Security.CORSAllowedOrigins
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: !allowsAnyOrigin(origins),
		MaxAge:           300,
	}))

	if rpm := s.cfg.Security.RateLimitRPM; rpm > 0 {
		r.Use(s.rateLimit(rpm))
	}

	r.Get("/", s.root)
	r.Get("/health", s.health)
	r.Get("/ready", s.ready)
	if s.metricsHandler != nil {
		r.Handle("/metrics", s.metricsHandler)
	}

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.createUser)
		r.Get("/", s.listUsers)
		r.Get("/{id}", s.getUser)
		r.Delete("/{id}", s.deleteUser)
	})

	r.Route("/workouts", func(r chi.Router) {
		r.Post("/", s.createWorkout)
		r.Get("/", s.listWorkouts)
		r.Get("/{id}", s.getWorkout)
		r.Patch("/{id}", s.updateWorkout)
		r.Delete("/{id}", s.deleteWorkout)
	})

	r.Route("/exercises", func(r chi.Router) {
		r.Post("/", s.createExercise)
		r.Get("/", s.listExercises)
		r.Get("/{id}", s.getExercise)
		r.Delete("/{id}", s.deleteExercise)
	})

	r.Route("/meals", func(r chi.Router) {
		r.Post("/", s.createMeal)
		r.Get("/", s.listMeals)
		r.Get("/{id}", s.getMeal)
		r.Delete("/{id}", s.deleteMeal)
	})

	return r
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to " + serviceName,
		"version": serviceVersion,
		"endpoints": map[string]string{
			"users":     "/users",
			"workouts":  "/workouts",
			"exercises": "/exercises",
			"meals":     "/meals",
		},
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Warnw("Readiness check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
