package server

import (
	"net/http"
	"net/url"
	"slices"
	"time"
)

// Config holds HTTP and WebSocket settings.
type Config struct {
	// Address to listen on. Default "localhost:3000".
	Address string

	// LivePath is the WebSocket endpoint. Default "/live".
	LivePath string

	// MetricsPath is where Prometheus metrics are served when the server
	// has metrics. Default "/metrics".
	MetricsPath string

	// Title of the server-side rendered page.
	Title string

	ReadBufferSize  int
	WriteBufferSize int

	// AllowedOrigins lists origins accepted on upgrade. Empty accepts
	// same-origin requests only.
	AllowedOrigins []string

	// MaxMessageSize bounds one incoming WebSocket message. Default 64KB.
	MaxMessageSize int64

	// PingInterval between keepalive pings. The read deadline is twice
	// this. Default 30s.
	PingInterval time.Duration

	// WriteTimeout bounds one frame write. Default 10s.
	WriteTimeout time.Duration

	// MaxSessions caps concurrent live sessions. 0 means no limit.
	MaxSessions int

	// MaxFollowUpPasses is passed to every session App.
	MaxFollowUpPasses int

	// ShutdownTimeout bounds graceful shutdown. Default 10s.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() Config {
	var c Config
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Address == "" {
		c.Address = "localhost:3000"
	}
	if c.LivePath == "" {
		c.LivePath = "/live"
	}
	if c.MetricsPath == "" {
		c.MetricsPath = "/metrics"
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = 4096
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = 4096
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = 64 * 1024
	}
	if c.PingInterval == 0 {
		c.PingInterval = 30 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// checkOrigin accepts requests without an Origin header, same-origin
// requests and the configured origins.
func (c *Config) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if slices.Contains(c.AllowedOrigins, origin) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}
