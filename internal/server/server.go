package server

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"fitness-tracker-backend/db"
	"fitness-tracker-backend/internal/config"
	"fitness-tracker-backend/internal/metrics"
)

const (
	serviceName    = "Fitness Tracker API"
	serviceVersion = "1.0.0"
)

// Server holds the collaborators shared by every handler. It keeps no
// per-request state.
type Server struct {
	store          *db.Store
	cfg            *config.Config
	logger         *zap.SugaredLogger
	metrics        *metrics.Metrics
	metricsHandler http.Handler
	validate       *validator.Validate
}

func NewServer(cfg *config.Config, store *db.Store, logger *zap.SugaredLogger, m *metrics.Metrics, metricsHandler http.Handler) *Server {
	return &Server{
		store:          store,
		cfg:            cfg,
		logger:         logger,
		metrics:        m,
		metricsHandler: metricsHandler,
		validate:       newValidator(),
	}
}

func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.HTTPAddr,
		Handler:      s.RegisterRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
