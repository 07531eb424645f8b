// Package server provides the HTTP REST API for the contract job board.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/contract-board/internal/db"
	"github.com/jonathan/contract-board/internal/search"
	"github.com/jonathan/contract-board/internal/server/middleware"
	"github.com/jonathan/contract-board/internal/server/ratelimit"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// Store is the persistence the API needs. *db.DB implements it.
type Store interface {
	search.Store
	Ping(ctx context.Context) error

	CreateCompany(ctx context.Context, input *db.CompanyCreateInput) (*db.Company, error)
	GetCompanyByID(ctx context.Context, id uuid.UUID) (*db.Company, error)
	ListCompanies(ctx context.Context) ([]db.Company, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error

	CreateJob(ctx context.Context, input *db.JobCreateInput) (*db.Job, error)
	ListJobsByCompany(ctx context.Context, companyID uuid.UUID) ([]db.Job, error)

	CreateIgnoredJob(ctx context.Context, input *db.IgnoredJobCreateInput) (*db.IgnoredJob, error)
	ListIgnoredJobsByCompany(ctx context.Context, companyID uuid.UUID) ([]db.IgnoredJob, error)

	CreateProfile(ctx context.Context, input *db.ProfileCreateInput) (*db.Profile, error)
	GetProfileByID(ctx context.Context, id uuid.UUID) (*db.Profile, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       Store
	search      *search.Service
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	corsOrigin  string
}

// Config holds server configuration
type Config struct {
	Port         int
	CORSOrigin   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Location is the zone whose calendar day the "today" filter uses
	Location *time.Location
	// RateLimit defaults to ratelimit.LoadConfig() when nil
	RateLimit *ratelimit.Config
}

// New creates a new server instance over store
func New(store Store, jwtService *JWTService, cfg Config) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWT service is required")
	}

	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}
	corsOrigin := cfg.CORSOrigin
	if corsOrigin == "" {
		corsOrigin = "*"
	}

	s := &Server{
		store:       store,
		search:      search.NewService(store, search.WithLocation(cfg.Location)),
		jwtService:  jwtService,
		rateLimiter: ratelimit.NewLimiter(rlConfig),
		corsOrigin:  corsOrigin,
	}

	auth := middleware.AuthMiddleware(jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	mux := http.NewServeMux()

	// Probes and metrics
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public job search
	mux.HandleFunc("GET /jobs", s.handleSearchJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("GET /companies/{id}/jobs", s.handleListCompanyJobs)

	// Ingestion and admin
	mux.Handle("POST /jobs", protected(s.handleCreateJob))
	mux.Handle("GET /companies", protected(s.handleListCompanies))
	mux.Handle("POST /companies", protected(s.handleCreateCompany))
	mux.Handle("DELETE /companies/{id}", protected(s.handleDeleteCompany))
	mux.Handle("POST /companies/{id}/ignored-jobs", protected(s.handleCreateIgnoredJob))
	mux.Handle("GET /companies/{id}/ignored-jobs", protected(s.handleListIgnoredJobs))

	// Profiles
	mux.Handle("POST /profiles", protected(s.handleRegisterProfile))
	mux.Handle("GET /me", protected(s.handleMe))

	s.handler = s.withMetrics(s.withRateLimit(s.withLogging(s.withCORS(mux))))

	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15 * time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("[server] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	log.Println("[server] stopped")
	return nil
}

// Close releases background resources without serving
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
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
			s.rateLimitResponse(w, r, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)
		log.Printf("[%s] %s %d in %v (%s)", r.Method, r.URL.Path, sw.status, time.Since(start), r.RemoteAddr)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports whether the database answers
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		log.Printf("[server] readiness check failed: %v", err)
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  "database unreachable",
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ready"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON reads a bounded JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON request body"}
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
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

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int((info.RetryAfter + time.Second - 1) / time.Second)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] %s %s from %s exceeded %q: limit=%d reset=%s",
		r.Method, r.URL.Path, s.extractClientID(r), info.Rule, info.Limit, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// statusWriter records the status code written by a handler
type statusWriter struct {
	http.ResponseWriter
	status int
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
