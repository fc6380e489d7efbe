// Package web serves the configuration wizard's HTTP API and the preview
// page.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/fieldmap/internal/config"
	"github.com/JonMunkholm/fieldmap/internal/run"
	"github.com/JonMunkholm/fieldmap/internal/web/middleware"
	"github.com/JonMunkholm/fieldmap/internal/wizard"
)

// Server is the wizard HTTP server.
type Server struct {
	cfg       *config.Config
	store     *wizard.Store
	submitter run.Submitter
	planner   run.Planner
	previews  *previewLimiter
	limiter   *rateLimiter

	router *chi.Mux
	server *http.Server
}

// NewServer wires routes and middleware around the session store and the
// run submitter.
func NewServer(cfg *config.Config, store *wizard.Store, submitter run.Submitter, planner run.Planner) *Server {
	s := &Server{
		cfg:       cfg,
		store:     store,
		submitter: submitter,
		planner:   planner,
		previews:  newPreviewLimiter(cfg.Preview.MaxConcurrent, cfg.Preview.MaxWait),
		router:    chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.limiter = newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(s.limiter.middleware)
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/sessions/{sessionID}/preview", s.handlePreviewPage)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/fields", s.handleListFields)
		r.Get("/fixes", s.handleListFixes)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/step", s.handleStep)
			r.Put("/setup", s.handleSetup)
			r.Put("/install", s.handleInstall)

			r.Route("/mappings/{index}", func(r chi.Router) {
				r.Put("/", s.handleReplaceMapping)
				r.Post("/target", s.handleSetTarget)
				r.Post("/enabled", s.handleSetEnabled)
				r.Post("/fixes/{ruleID}", s.handleSetFix)
			})

			r.Post("/preview", s.handlePreview)
			r.Post("/run", s.handleRun)
		})
	})
}

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("server listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, lets running previews finish and
// stops the rate limiter's cleanup loop.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.stop()
	}
	var err error
	if s.server != nil {
		err = s.server.Shutdown(ctx)
	}
	if drainErr := s.previews.waitForDrain(ctx); drainErr != nil {
		slog.Warn("previews still running at shutdown", "error", drainErr)
	}
	return err
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				h.Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// rateLimiter grants each client IP a fixed number of requests per window.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int
	window   time.Duration
	now      func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	tokens      int
	windowStart time.Time
}

func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// cleanup forgets visitors idle for two windows, until stop is called.
func (rl *rateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			cutoff := rl.now().Add(-2 * rl.window)
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if v.windowStart.Before(cutoff) {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok || now.Sub(v.windowStart) > rl.window {
		rl.visitors[ip] = &visitor{tokens: rl.rate - 1, windowStart: now}
		return true
	}
	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r.RemoteAddr)) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			writeJSONStatus(w, http.StatusTooManyRequests, ErrorResponse{
				Error:   "rate limit exceeded",
				Message: "Too many requests",
				Action:  "Wait a minute and try again",
				Code:    "REQ001",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP drops the port so one client's connections share a bucket.
func clientIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
