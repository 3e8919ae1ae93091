package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jonathan/mandate-configurator/internal/catalog"
	"github.com/jonathan/mandate-configurator/internal/config"
	"github.com/jonathan/mandate-configurator/internal/pdf"
	"github.com/jonathan/mandate-configurator/internal/server/middleware"
	"github.com/jonathan/mandate-configurator/internal/server/ratelimit"
)

// Server serves the catalog, pricing, composition and offer routes.
type Server struct {
	httpServer   *http.Server
	catalog      *catalog.Catalog
	store        Store
	pdf          pdf.Renderer
	logger       *zap.Logger
	rateLimiter  *ratelimit.Limiter
	jwtService   *JWTService
	authHandler  *AuthHandler
	corsOrigins  []string
	templatePath string
}

// Options holds the server's collaborators. Only Catalog is required.
type Options struct {
	Port    int
	Catalog *catalog.Catalog

	// Store enables registration, login and saved offers; JWT and Password
	// must be set with it.
	Store    Store
	JWT      *config.JWTConfig
	Password *config.PasswordConfig

	// PDF is optional; without it contract.pdf answers 503.
	PDF          pdf.Renderer
	TemplatePath string

	Logger      *zap.Logger
	RateLimit   *ratelimit.Config
	CORSOrigins []string
}

// New wires the routes for opts. Auth and offer routes are mounted only when a
// store and JWT config are present.
func New(opts Options) (*Server, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("server requires a catalog")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		catalog:      opts.Catalog,
		store:        opts.Store,
		pdf:          opts.PDF,
		logger:       logger,
		rateLimiter:  ratelimit.NewLimiter(opts.RateLimit),
		corsOrigins:  opts.CORSOrigins,
		templatePath: opts.TemplatePath,
	}

	if opts.Store != nil {
		if opts.JWT == nil || opts.Password == nil {
			s.rateLimiter.Stop()
			return nil, fmt.Errorf("auth requires JWT and password configuration")
		}
		s.jwtService = NewJWTService(opts.JWT)
		s.authHandler = NewAuthHandler(NewUserService(opts.Store, opts.Password), s.jwtService, logger)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second, // PDF printing
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/catalog", s.handleCatalog)
	r.Get("/roles/{role_id}/requirements", s.handleRoleRequirements)

	r.Route("/mandate", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/price", s.handlePrice)
		r.Post("/section3", s.handleSection3)
		r.Post("/offer", s.handleOffer)
		r.Post("/contract.txt", s.handleContractText)
		r.Post("/contract.html", s.handleContractHTML)
		r.Post("/contract.pdf", s.handleContractPDF)
	})

	if s.store != nil {
		r.Post("/auth/register", s.authHandler.Register)
		r.Post("/auth/login", s.authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(s.jwtService.AsTokenValidator()))
			r.Put("/auth/password", s.authHandler.UpdatePassword)
			r.Route("/offers", func(r chi.Router) {
				r.Get("/", s.handleListOffers)
				r.Post("/", s.handleSaveOffer)
				r.Get("/{id}", s.handleGetOffer)
				r.Delete("/{id}", s.handleDeleteOffer)
			})
		})
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.errorResponse(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	<-errCh
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers. Without configured origins any origin is allowed.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.corsOrigins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.corsOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit enforces the per-client token bucket on every route but /health.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs one line per request with its status and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error("request", fields...)
			return
		}
		s.logger.Info("request", fields...)
	})
}

// extractClientID keys the limiter on the remote IP.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse answers 429 with the retry delay in seconds.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth reports ok, or degraded when the store does not answer a ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			s.logger.Warn("database ping failed", zap.Error(err))
			s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
			return
		}
		resp["database"] = "ok"
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, s.logger, status, data)
}

// errorResponse writes {"error": message}.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	writeError(w, s.logger, status, message)
}

// errResponse maps err to its status code and writes it.
func (s *Server) errResponse(w http.ResponseWriter, err error) {
	writeErr(w, s.logger, err)
}
