package web

import (
	"fmt"
	"net/http"

	"github.com/perbu/adsvideo/internal/campaign"
	"github.com/perbu/adsvideo/internal/config"
	"github.com/perbu/adsvideo/internal/db"
)

// Server is the HTTP server for the render dashboard
type Server struct {
	db        *db.DB
	campaigns *campaign.Store
	templates *Templates
	mux       *http.ServeMux
	auth      *AuthMiddleware
	host      string
	port      int
}

// NewServer creates a new dashboard server. The campaign store may be nil
// when Firestore is not configured; the ad tags page then shows a notice.
func NewServer(database *db.DB, campaigns *campaign.Store, cfg *config.Config, host string, port int) (*Server, error) {
	templates, err := ParseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		db:        database,
		campaigns: campaigns,
		templates: templates,
		mux:       http.NewServeMux(),
		auth:      NewAuthMiddleware(cfg),
		host:      host,
		port:      port,
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /", s.handleIndex)
	s.mux.HandleFunc("GET /jobs/{id}", s.handleJobView)
	s.mux.HandleFunc("GET /tags", s.handleAdTags)
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(StaticFS()))))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	return http.ListenAndServe(addr, s.auth.Middleware(s.mux))
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("http://%s:%d", s.host, s.port)
}

// Handler returns the routed handler wrapped in auth, for tests
func (s *Server) Handler() http.Handler {
	return s.auth.Middleware(s.mux)
}
