// Package server provides the URL-synchronized employer dashboard over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joblify/employer-console/internal/api"
	"github.com/joblify/employer-console/internal/auth"
	"github.com/joblify/employer-console/internal/config"
	"github.com/joblify/employer-console/internal/dashboard"
	"github.com/joblify/employer-console/internal/server/middleware"
	"github.com/joblify/employer-console/internal/server/ratelimit"
	"github.com/rs/cors"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	apiURL      string
	apiOptions  *api.Options
	logger      *slog.Logger
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
}

// Config holds server configuration
type Config struct {
	Port           int
	APIURL         string
	Timeout        time.Duration
	AllowedOrigins []string
	JWT            *config.JWTConfig // nil disables signature checks
	RateLimit      *ratelimit.Config // nil loads RATE_LIMIT_* from the environment
	HTTPClient     *http.Client      // client for the job-board API; nil uses a default
	Logger         *slog.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := api.DefaultOptions()
	if cfg.Timeout > 0 {
		opts.Timeout = cfg.Timeout
	}
	opts.HTTPClient = cfg.HTTPClient
	opts.Logger = logger

	// Reject a bad API URL at startup rather than on the first request
	if _, err := api.New(cfg.APIURL, nil, opts); err != nil {
		return nil, fmt.Errorf("failed to configure API client: %w", err)
	}

	s := &Server{
		apiURL:     cfg.APIURL,
		apiOptions: opts,
		logger:     logger,
		jwtService: NewJWTService(cfg.JWT, logger),
	}

	// Initialize rate limiter
	rlCfg := cfg.RateLimit
	if rlCfg == nil {
		rlCfg = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rlCfg)

	requireAuth := middleware.AuthMiddleware(s.jwtService)
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Public session endpoints
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /signup", s.handleSignup)
	mux.HandleFunc("POST /logout", s.handleLogout)

	// Dashboard views
	mux.Handle("GET /dashboard", protected(s.handleView))
	mux.Handle("GET /dashboard/post-job", protected(s.handleView))
	mux.Handle("GET /dashboard/my-jobs", protected(s.handleView))
	mux.Handle("GET /dashboard/job/{jobId}", protected(s.handleView))
	mux.Handle("GET /dashboard/job/{jobId}/applications", protected(s.handleView))
	mux.Handle("GET /dashboard/profile", protected(s.handleView))

	// Dashboard mutations
	mux.Handle("POST /dashboard/post-job", protected(s.handlePostJob))
	mux.Handle("PUT /dashboard/job/{jobId}", protected(s.handleEditJob))
	mux.Handle("DELETE /dashboard/job/{jobId}", protected(s.handleDeleteJob))
	mux.Handle("DELETE /dashboard/my-jobs/{jobId}", protected(s.handleDeleteJob))
	mux.Handle("PUT /dashboard/job/{jobId}/applications/{applicationId}/status", protected(s.handleApplicationStatus))
	mux.Handle("PUT /dashboard/profile", protected(s.handleUpdateProfile))

	// Category cascade
	mux.Handle("GET /dashboard/categories", protected(s.handleParentCategories))
	mux.Handle("GET /dashboard/categories/{id}/subcategories", protected(s.handleSubcategories))

	// Anything else goes to the dashboard or the login view
	mux.HandleFunc("/", s.handleCatchAll)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
	})

	s.handler = s.withRequestID(s.withRateLimit(s.withLogging(c.Handler(mux))))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (API %s)", s.httpServer.Addr, s.apiURL)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	log.Println("Server stopped")
	return nil
}

// Close stops background work without serving.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// client builds a job-board API client that sends token.
func (s *Server) client(token string) (*api.Client, error) {
	return api.New(s.apiURL, auth.NewSession(token), s.apiOptions)
}

// dashboardFor builds the dashboard of the authenticated caller of r.
func (s *Server) dashboardFor(r *http.Request) (*dashboard.Dashboard, error) {
	token, err := middleware.GetToken(r)
	if err != nil {
		return nil, err
	}
	c, err := s.client(token)
	if err != nil {
		return nil, err
	}
	return dashboard.New(c, s.logger.With("request_id", requestID(r))), nil
}

// withRequestID tags each request and response with an X-Request-ID
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func requestID(r *http.Request) string {
	return r.Header.Get("X-Request-ID")
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
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
		log.Printf("[%s] %s %s id=%s", r.Method, r.URL.Path, r.RemoteAddr, requestID(r))
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"verifies_tokens": s.jwtService.Verifies(),
	})
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
	s.jsonResponse(w, status, ErrorResponse{Error: message})
}

// failure writes err with the status HTTPStatus assigns it.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s failed id=%s: %v", r.Method, r.URL.Path, requestID(r), err)
	}
	if status == http.StatusUnauthorized {
		clearTokenCookie(w)
	}
	s.jsonResponse(w, status, errorBody(err))
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Too many requests. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		wait := int(math.Ceil(info.RetryAfter.Seconds()))
		response["retry_after"] = wait
		w.Header().Set("Retry-After", strconv.Itoa(wait))
	}

	log.Printf("[rate-limit] limit=%d reset=%s", info.Limit, info.ResetTime.Format(time.RFC3339))
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
