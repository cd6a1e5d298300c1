package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/fastbreak/courtvision/internal/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development (TODO: restrict in production)
	},
}

// Server pushes completed analyses to WebSocket subscribers.
type Server struct {
	port   string
	server *http.Server
	hub    *Hub
	logger *logrus.Logger
}

// NewServer creates a new WebSocket server.
func NewServer(logger *logrus.Logger) *Server {
	return &Server{
		hub:    NewHub(logger),
		logger: logger,
	}
}

// Hub returns the broadcast hub so the analysis service can fan out results.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start starts the WebSocket server
func (s *Server) Start(port string) error {
	s.port = port

	// Start the hub in a goroutine
	go s.hub.Run()

	// Set up HTTP routes
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/analyses", s.handleAnalyses)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	s.logger.WithField("port", port).Info("WebSocket server listening")
	return s.server.ListenAndServe()
}

// handleAnalyses handles WebSocket connections for the analysis feed
func (s *Server) handleAnalyses(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Error("Failed to upgrade connection")
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// BroadcastAnalysis pushes a completed analysis to all connected clients.
// Subscribers get the headline record; the full payload is one REST call away.
func (s *Server) BroadcastAnalysis(rec *store.AnalysisRecord) {
	message := map[string]interface{}{
		"type":      "analysis.completed",
		"analysis":  rec,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(message)
	if err != nil {
		s.logger.WithError(err).Error("Failed to marshal analysis broadcast")
		return
	}
	s.hub.Broadcast(data)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
