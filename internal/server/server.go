// Package server provides the HTTP API: the public agency directory and
// blog, the admin CRUD surface, and the session-scoped CV builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/tempsuisse/platform/internal/ai"
	"github.com/tempsuisse/platform/internal/config"
	"github.com/tempsuisse/platform/internal/db"
	"github.com/tempsuisse/platform/internal/export"
	"github.com/tempsuisse/platform/internal/photo"
	"github.com/tempsuisse/platform/internal/render"
	"github.com/tempsuisse/platform/internal/server/middleware"
	"github.com/tempsuisse/platform/internal/server/ratelimit"
	"github.com/tempsuisse/platform/internal/session"
)

// Directory is the persistence surface the handlers need. *db.DB satisfies
// it; tests substitute a fake.
type Directory interface {
	ListAgencies(ctx context.Context, filter db.AgencyFilter) ([]*db.Agency, error)
	GetAgencyByID(ctx context.Context, id uuid.UUID) (*db.Agency, error)
	CreateAgency(ctx context.Context, a *db.Agency) (*db.Agency, error)
	UpdateAgency(ctx context.Context, id uuid.UUID, a *db.Agency) (*db.Agency, error)
	DeleteAgency(ctx context.Context, id uuid.UUID) (bool, error)

	ListPosts(ctx context.Context, publishedOnly bool) ([]*db.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*db.Post, error)
	CreatePost(ctx context.Context, p *db.Post) (*db.Post, error)
	UpdatePost(ctx context.Context, id uuid.UUID, p *db.Post) (*db.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) (bool, error)
}

// Config holds server configuration.
type Config struct {
	Addr              string
	AdminPasswordHash string
}

// Deps are the collaborators the server is wired with. AI and Photos may be
// nil; the corresponding endpoints then report the feature as unavailable.
type Deps struct {
	Directory Directory
	Sessions  *session.Store
	Templates *render.Registry
	Engine    export.Engine
	AI        ai.Client
	Photos    photo.Uploader
	JWT       *config.JWTConfig
	Password  *config.PasswordConfig
	RateLimit *ratelimit.Config
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler

	cfg         Config
	store       Directory
	sessions    *session.Store
	templates   *render.Registry
	engine      export.Engine
	ai          ai.Client
	photos      photo.Uploader
	jwtService  *JWTService
	password    *config.PasswordConfig
	rateLimiter *ratelimit.Limiter
	authHandler *AuthHandler
}

// New creates a new server instance.
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if deps.Templates == nil {
		return nil, fmt.Errorf("template registry is required")
	}
	if deps.JWT == nil {
		return nil, fmt.Errorf("JWT config is required")
	}
	if deps.Password == nil {
		return nil, fmt.Errorf("password config is required")
	}

	s := &Server{
		cfg:       cfg,
		store:     deps.Directory,
		sessions:  deps.Sessions,
		templates: deps.Templates,
		engine:    deps.Engine,
		ai:        deps.AI,
		photos:    deps.Photos,
		password:  deps.Password,
	}

	s.rateLimiter = ratelimit.NewLimiter(deps.RateLimit)
	s.jwtService = NewJWTService(deps.JWT)
	s.authHandler = NewAuthHandler(cfg.AdminPasswordHash, deps.Password, s.jwtService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /home", s.handleHome)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	// Public directory and blog
	mux.HandleFunc("GET /agencies", s.handleListAgencies)
	mux.HandleFunc("GET /agencies/{id}", s.handleGetAgency)
	mux.HandleFunc("GET /posts", s.handleListPosts)
	mux.HandleFunc("GET /posts/{slug}", s.handleGetPost)

	// Admin CRUD
	admin := middleware.RequireAdmin(s.jwtService.AsTokenValidator())
	mux.Handle("POST /agencies", admin(http.HandlerFunc(s.handleCreateAgency)))
	mux.Handle("PUT /agencies/{id}", admin(http.HandlerFunc(s.handleUpdateAgency)))
	mux.Handle("DELETE /agencies/{id}", admin(http.HandlerFunc(s.handleDeleteAgency)))
	mux.Handle("POST /posts", admin(http.HandlerFunc(s.handleCreatePost)))
	mux.Handle("PUT /posts/{id}", admin(http.HandlerFunc(s.handleUpdatePost)))
	mux.Handle("DELETE /posts/{id}", admin(http.HandlerFunc(s.handleDeletePost)))

	// CV builder: sessions and catalog
	mux.HandleFunc("POST /cv/sessions", s.handleCreateSession)
	mux.HandleFunc("POST /cv/sessions/import", s.handleImportSession)
	mux.HandleFunc("DELETE /cv/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /cv/catalog", s.handleCatalog)
	mux.HandleFunc("GET /cv/sessions/{id}/document", s.handleGetDocument)

	// CV builder: editing
	mux.HandleFunc("PUT /cv/sessions/{id}/personal", s.handleSetPersonalField)
	mux.HandleFunc("PUT /cv/sessions/{id}/photo", s.handleUploadPhoto)
	mux.HandleFunc("DELETE /cv/sessions/{id}/photo", s.handleDeletePhoto)
	mux.HandleFunc("POST /cv/sessions/{id}/optional-fields/{field}/toggle", s.handleToggleOptionalField)
	mux.HandleFunc("PUT /cv/sessions/{id}/optional-fields/{field}", s.handleSetOptionalField)
	mux.HandleFunc("POST /cv/sessions/{id}/skills", s.handleAddSkill)
	mux.HandleFunc("DELETE /cv/sessions/{id}/skills/{skill}", s.handleRemoveSkill)
	mux.HandleFunc("POST /cv/sessions/{id}/{list}", s.handleAddEntry)
	mux.HandleFunc("PATCH /cv/sessions/{id}/{list}/{entry_id}", s.handleUpdateEntry)
	mux.HandleFunc("DELETE /cv/sessions/{id}/{list}/{entry_id}", s.handleRemoveEntry)

	// CV builder: rendering and export
	mux.HandleFunc("PUT /cv/sessions/{id}/template", s.handleSetTemplate)
	mux.HandleFunc("GET /cv/sessions/{id}/preview", s.handlePreview)
	mux.HandleFunc("POST /cv/sessions/{id}/export", s.handleStartExport)
	mux.HandleFunc("GET /cv/sessions/{id}/export", s.handleExportStatus)
	mux.HandleFunc("GET /cv/sessions/{id}/export/download", s.handleExportDownload)

	// CV builder: assisted text
	mux.HandleFunc("POST /cv/sessions/{id}/ai/profile", s.handleGenerateProfile)
	mux.HandleFunc("POST /cv/sessions/{id}/ai/translate", s.handleTranslateDescription)
	mux.HandleFunc("POST /cv/sessions/{id}/ai/translate-skill", s.handleTranslateSkill)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export download can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler exposes the composed handler, mostly for httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	s.sessions.Stop()
	if s.ai != nil {
		if err := s.ai.Close(); err != nil {
			log.Printf("Error closing AI client: %v", err)
		}
	}

	log.Println("Server stopped")
	return nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// extractClientID extracts the client identifier (IP) from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
