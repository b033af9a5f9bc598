// Package server exposes the engine over HTTP: a JSON API for tools and a
// small browser playground driven by server-sent events.
package server

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	sharedcfg "github.com/leapstack-labs/leapcalc/internal/config"
	"github.com/leapstack-labs/leapcalc/internal/engine"
	"golang.org/x/sync/errgroup"
)

// Server is the HTTP server.
type Server struct {
	engine       *engine.Engine
	sessionStore *sessions.CookieStore
	history      *History
	cfg          sharedcfg.ServerConfig
	defaultQuery string
	logger       *slog.Logger
	handler      http.Handler
}

// Config holds configuration for the server.
type Config struct {
	Engine       *engine.Engine
	Server       sharedcfg.ServerConfig
	DefaultQuery string // query shown when the playground opens
	Logger       *slog.Logger
}

// New creates a server. Unset server settings take their defaults.
func New(cfg Config) (*Server, error) {
	if cfg.Engine == nil {
		return nil, errors.New("server: engine is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sc := cfg.Server
	sharedcfg.ApplyServerDefaults(&sc)

	secret := []byte(sc.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
	}
	sessionStore := sessions.NewCookieStore(secret)
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	s := &Server{
		engine:       cfg.Engine,
		sessionStore: sessionStore,
		history:      NewHistory(sc.HistorySize),
		cfg:          sc,
		defaultQuery: cfg.DefaultQuery,
		logger:       logger,
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// History returns the shared evaluation history.
func (s *Server) History() *History {
	return s.history
}

func (s *Server) routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		requestLogger(s.logger),
		middleware.Compress(5),
	)

	r.Get("/healthz", s.health)
	r.Handle("/static/*", staticHandler())

	// Playground
	r.Get("/", s.playgroundPage)
	r.Route("/ui", func(r chi.Router) {
		r.Post("/eval", s.evalSSE)
		r.Post("/query", s.querySSE)
		r.Get("/history", s.historySSE)
	})

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Post("/eval", s.apiEval)
		r.Post("/query", s.apiQuery)
		r.Get("/tokens", s.apiTokens)
		r.Get("/history", s.apiHistory)
	})

	return r
}

// Serve listens on the configured address and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln and blocks until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting server", "addr", "http://"+ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// requestLogger logs one debug record per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
