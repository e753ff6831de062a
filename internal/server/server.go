// Package server provides the HTTP REST API for page generation and bulk jobs.
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

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/parkerjr2/seogen/internal/config"
	"github.com/parkerjr2/seogen/internal/db"
	"github.com/parkerjr2/seogen/internal/license"
	"github.com/parkerjr2/seogen/internal/server/middleware"
	"github.com/parkerjr2/seogen/internal/server/ratelimit"
	"github.com/parkerjr2/seogen/internal/types"
)

// Store is the database access the handlers need. *db.DB satisfies it;
// tests use an in-memory implementation.
type Store interface {
	license.Store

	GetLicenseByKey(ctx context.Context, key string) (*db.License, error)
	CreateLicense(ctx context.Context, key, name string, pageLimit, monthlyLimit int) (*db.License, error)
	ListLicenses(ctx context.Context) ([]db.License, error)
	SetAPIKeyActive(ctx context.Context, apiKeyID uuid.UUID, active bool) error
	InsertUsageLog(ctx context.Context, apiKeyID uuid.UUID, action string, details any) error

	CreateBulkJob(ctx context.Context, licenseKey, siteURL, jobName string, requests []types.PageRequest) (*db.BulkJob, error)
	GetBulkJob(ctx context.Context, jobID uuid.UUID) (*db.BulkJob, error)
	CancelBulkJob(ctx context.Context, jobID uuid.UUID) error
	RecomputeJobCounters(ctx context.Context, jobID uuid.UUID) error
	ListJobResults(ctx context.Context, jobID uuid.UUID, statuses []string, cursor *int, limit int) ([]db.BulkJobItem, error)
	MarkItemsImported(ctx context.Context, jobID uuid.UUID, itemIDs []uuid.UUID) (int, error)

	GetAdminUserByUsername(ctx context.Context, username string) (*db.AdminUser, error)
}

// PageGenerator produces pages for the generate endpoint. *pipeline.Generator
// satisfies it.
type PageGenerator interface {
	Generate(ctx context.Context, req types.PageRequest) (*types.PageResponse, error)
	Preview(ctx context.Context, req types.PageRequest) (*types.PageResponse, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	generator   PageGenerator
	gate        *license.Gate
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	passwords   *config.PasswordConfig
	validate    *validator.Validate
}

// Config holds server configuration
type Config struct {
	Port int
}

// New creates a new server instance. JWT and password settings come from the
// environment, matching the ops tooling that mints admin users.
func New(cfg Config, store Store, generator PageGenerator) (*Server, error) {
	s := &Server{
		store:     store,
		generator: generator,
		gate:      license.NewGate(store),
		validate:  validator.New(),
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.passwords = passwordConfig

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for generation calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /generate-page", s.handleGeneratePage)

	// Bulk job endpoints. The job sub-routes authorize through the
	// licenseKey query parameter against the job's own license.
	mux.HandleFunc("POST /bulk-jobs", s.handleCreateBulkJob)
	mux.HandleFunc("GET /bulk-jobs/{id}", s.handleGetBulkJob)
	mux.HandleFunc("GET /bulk-jobs/{id}/results", s.handleJobResults)
	mux.HandleFunc("POST /bulk-jobs/{id}/ack", s.handleAckResults)
	mux.HandleFunc("POST /bulk-jobs/{id}/cancel", s.handleCancelBulkJob)

	// Admin endpoints behind JWT auth.
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	adminAuth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.Handle("POST /admin/licenses", adminAuth(http.HandlerFunc(s.handleCreateLicense)))
	mux.Handle("GET /admin/licenses", adminAuth(http.HandlerFunc(s.handleListLicenses)))
	mux.Handle("GET /admin/licenses/{key}", adminAuth(http.HandlerFunc(s.handleGetLicense)))
	mux.Handle("POST /admin/licenses/{key}/deactivate", adminAuth(http.HandlerFunc(s.handleDeactivateLicense)))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
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

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-License-Key")

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
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
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

// handleError maps a typed error to its status. Quota denials keep their
// usage snapshot in the body.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
	}

	var quotaErr *ErrQuotaExceeded
	if errors.As(err, &quotaErr) {
		s.jsonResponse(w, status, map[string]any{
			"error": quotaErr.Error(),
			"usage": quotaErr.Stats,
		})
		return
	}
	s.errorResponse(w, status, err.Error())
}

// lookupLicense resolves a key to an active license or a typed 403.
func (s *Server) lookupLicense(ctx context.Context, key string) (*db.License, error) {
	lic, err := s.store.GetLicenseByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up license: %w", err)
	}
	if lic == nil {
		return nil, &ErrLicenseNotFound{Key: key}
	}
	if !lic.Active() {
		return nil, &ErrLicenseInactive{}
	}
	return lic, nil
}

// logUsage writes an audit row, best effort.
func (s *Server) logUsage(ctx context.Context, apiKeyID uuid.UUID, action string, details map[string]any) {
	if err := s.store.InsertUsageLog(ctx, apiKeyID, action, details); err != nil {
		log.Printf("Usage log failed action=%s: %v", action, err)
	}
}

// extractClientID keys rate limiting by license key when the request carries
// one in the licenseKey query parameter or X-License-Key header, falling
// back to the client IP.
func (s *Server) extractClientID(r *http.Request) string {
	if key := r.URL.Query().Get("licenseKey"); key != "" {
		return key
	}
	if key := r.Header.Get("X-License-Key"); key != "" {
		return key
	}
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

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
