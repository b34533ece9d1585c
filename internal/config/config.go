package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/retain/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "retain.json"

	DefaultHost        = "localhost"
	DefaultPort        = 3000
	DefaultLivePath    = "/live"
	DefaultMetricsPath = "/metrics"
	DefaultNamespace   = "retain"
	DefaultBufferSize  = 4096
	DefaultFollowUps   = 16
)

// Config is the content of retain.json.
type Config struct {
	Name      string          `json:"name,omitempty"`
	Server    ServerConfig    `json:"server"`
	Render    RenderConfig    `json:"render"`
	Telemetry TelemetryConfig `json:"telemetry"`
	Log       LogConfig       `json:"log"`
	Export    ExportConfig    `json:"export,omitempty"`

	configPath string
}

// ServerConfig configures `retain serve`.
type ServerConfig struct {
	Host            string   `json:"host,omitempty"`
	Port            int      `json:"port,omitempty"`
	Path            string   `json:"path,omitempty"` // WebSocket endpoint
	ReadBufferSize  int      `json:"readBufferSize,omitempty"`
	WriteBufferSize int      `json:"writeBufferSize,omitempty"`
	AllowedOrigins  []string `json:"allowedOrigins,omitempty"`
	PingInterval    string   `json:"pingInterval,omitempty"`
	MaxSessions     int      `json:"maxSessions,omitempty"`
}

// RenderConfig tunes the render pass scheduler.
type RenderConfig struct {
	MaxFollowUpPasses int `json:"maxFollowUpPasses,omitempty"`
}

// TelemetryConfig configures metrics and tracing.
type TelemetryConfig struct {
	Metrics     bool   `json:"metrics"`
	MetricsPath string `json:"metricsPath,omitempty"`
	Namespace   string `json:"namespace,omitempty"`
	TracerName  string `json:"tracerName,omitempty"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `json:"level,omitempty"`  // debug, info, warn, error
	Format string `json:"format,omitempty"` // text or json
}

// ExportConfig is the default S3 destination of `retain render`.
type ExportConfig struct {
	Bucket       string `json:"bucket,omitempty"`
	Prefix       string `json:"prefix,omitempty"`
	Region       string `json:"region,omitempty"`
	Endpoint     string `json:"endpoint,omitempty"`
	UsePathStyle bool   `json:"usePathStyle,omitempty"`
}

// New returns a Config with defaults applied.
func New() *Config {
	c := &Config{Telemetry: TelemetryConfig{Metrics: true}}
	c.applyDefaults()
	return c
}

// Load reads retain.json from dir. A missing file yields New().
func Load(dir string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(dir, ConfigFileName))
	if errors.HasCode(err, "E141") {
		cfg = New()
		cfg.configPath = filepath.Join(dir, ConfigFileName)
		return cfg, nil
	}
	return cfg, err
}

// LoadFile reads and validates the configuration at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				With("path", path).
				WithSuggestion("Create " + ConfigFileName + " or pass --config")
		}
		return nil, errors.New("E120").Wrap(err).With("path", path)
	}

	cfg := &Config{Telemetry: TelemetryConfig{Metrics: true}}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			Wrap(err).
			With("path", path).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E120").Wrap(err).With("path", path)
	}
	c.configPath = path
	return nil
}

// Path returns where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Path == "" {
		c.Server.Path = DefaultLivePath
	}
	if c.Server.ReadBufferSize == 0 {
		c.Server.ReadBufferSize = DefaultBufferSize
	}
	if c.Server.WriteBufferSize == 0 {
		c.Server.WriteBufferSize = DefaultBufferSize
	}
	if c.Server.PingInterval == "" {
		c.Server.PingInterval = "30s"
	}

	if c.Render.MaxFollowUpPasses == 0 {
		c.Render.MaxFollowUpPasses = DefaultFollowUps
	}

	if c.Telemetry.MetricsPath == "" {
		c.Telemetry.MetricsPath = DefaultMetricsPath
	}
	if c.Telemetry.Namespace == "" {
		c.Telemetry.Namespace = DefaultNamespace
	}
	if c.Telemetry.TracerName == "" {
		c.Telemetry.TracerName = DefaultNamespace
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate reports the first invalid setting as E121.
func (c *Config) Validate() error {
	invalid := func(field, detail string) error {
		return errors.New("E121").With("field", field).WithDetail(detail)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port", "Port must be between 0 and 65535.")
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		return invalid("server.path", "The live endpoint path must start with '/'.")
	}
	if c.Server.ReadBufferSize < 0 || c.Server.WriteBufferSize < 0 {
		return invalid("server.readBufferSize", "Buffer sizes cannot be negative.")
	}
	if d, err := time.ParseDuration(c.Server.PingInterval); err != nil || d <= 0 {
		return invalid("server.pingInterval", "Ping interval must be a positive duration such as \"30s\".")
	}
	if c.Server.MaxSessions < 0 {
		return invalid("server.maxSessions", "Session limit cannot be negative.")
	}
	if c.Render.MaxFollowUpPasses < 1 {
		return invalid("render.maxFollowUpPasses", "At least one follow-up pass must be allowed.")
	}
	if !strings.HasPrefix(c.Telemetry.MetricsPath, "/") || c.Telemetry.MetricsPath == c.Server.Path {
		return invalid("telemetry.metricsPath", "The metrics path must start with '/' and differ from server.path.")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log.level", "Level must be one of debug, info, warn, error.")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format", "Format must be text or json.")
	}
	return nil
}

// Address returns host:port for the HTTP listener.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// PingInterval returns the parsed server ping interval.
func (c *Config) PingInterval() time.Duration {
	d, err := time.ParseDuration(c.Server.PingInterval)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
