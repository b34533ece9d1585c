package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/retain/pkg/component"
	"github.com/vango-dev/retain/pkg/export"
	"github.com/vango-dev/retain/pkg/telemetry"
)

// Server serves one component tree per visitor.
type Server struct {
	config   Config
	root     func() component.Prefab
	sessions *Manager
	upgrader websocket.Upgrader

	metrics  *telemetry.Metrics
	gatherer prometheus.Gatherer
	tracer   *telemetry.Tracer
	logger   *slog.Logger

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics records session and pass metrics into m and serves g at
// the metrics path.
func WithMetrics(m *telemetry.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithTracer traces passes and events.
func WithTracer(t *telemetry.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// New creates a Server. root is called once per page view and once per
// live session to build a fresh tree.
func New(root func() component.Prefab, config Config, opts ...Option) *Server {
	config.applyDefaults()
	s := &Server{
		config:   config,
		root:     root,
		sessions: NewManager(config.MaxSessions),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  s.config.ReadBufferSize,
		WriteBufferSize: s.config.WriteBufferSize,
		CheckOrigin:     s.config.checkOrigin,
	}
	return s
}

// Sessions returns the session manager.
func (s *Server) Sessions() *Manager { return s.sessions }

// Config returns the effective configuration.
func (s *Server) Config() Config { return s.config }

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get(s.config.LivePath, s.handleLive)
	r.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.Method(http.MethodGet, s.config.MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if s.sessions.Full() {
		http.Error(w, "too many sessions", http.StatusServiceUnavailable)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(s, conn)
	if err := s.sessions.Add(sess); err != nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()),
			time.Now().Add(time.Second))
		sess.Close()
		return
	}
	defer s.sessions.Remove(sess.ID)
	sess.run()
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	body, err := export.Render(s.root(), export.Options{
		MaxFollowUpPasses: s.config.MaxFollowUpPasses,
		Logger:            s.logger,
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, s.page(body))
}

// page wraps server-rendered markup. A live client connects to data-live,
// binds the handshake root to #retain-root and clears it before applying
// the first patches.
func (s *Server) page(body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n</head>\n<body>\n", html.EscapeString(s.config.Title))
	fmt.Fprintf(&b, "<div id=\"retain-root\" data-live=\"%s\">%s</div>\n", html.EscapeString(s.config.LivePath), body)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address, "live", s.config.LivePath)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown closes every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sessions.CloseAll()
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}
