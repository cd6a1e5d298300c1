package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/fastbreak/courtvision/internal/cache"
	"github.com/fastbreak/courtvision/internal/service"
	"github.com/fastbreak/courtvision/internal/store"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, analysisService *service.AnalysisService, db *store.Database, redisCache *cache.RedisCache, logger *logrus.Logger) *Server {
	handler := NewHandler(analysisService, db, redisCache)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggingMiddleware(logger))
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Analyses
	api.HandleFunc("/analyses", handler.CreateAnalysis).Methods("POST")
	api.HandleFunc("/analyses", handler.ListAnalyses).Methods("GET")
	api.HandleFunc("/analyses/{analysisID}", handler.GetAnalysis).Methods("GET")
	api.HandleFunc("/analyses/{analysisID}/zones", handler.GetZoneStats).Methods("GET")
	api.HandleFunc("/analyses/{analysisID}/report", handler.GetReport).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Router exposes the configured routes for tests.
func (s *Server) Router() http.Handler {
	return s.server.Handler
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
