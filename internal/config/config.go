package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/eshaffer321/finhelp-go/internal/types"
)

// Transports understood by the server
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// DefaultPath is the config file looked up when FINHELP_CONFIG is unset
const DefaultPath = "finhelp.toml"

// Config holds all finhelp configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Sentry   SentryConfig   `toml:"sentry"`
	Anomaly  AnomalyConfig  `toml:"anomaly"`
	Analyzer AnalyzerConfig `toml:"analyzer"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Transport       string   `toml:"transport"`
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// SentryConfig holds error tracking settings.
type SentryConfig struct {
	DSN         string `toml:"dsn,omitempty"`
	Environment string `toml:"environment"`
}

// AnomalyConfig holds the defaults surpresa_gastos applies when a request omits them.
type AnomalyConfig struct {
	WindowDays   int     `toml:"window_days"`
	ThresholdPct float64 `toml:"threshold_pct"`
}

// AnalyzerConfig holds settings for the batch analyzer talking to a running server.
type AnalyzerConfig struct {
	ServerURL  string   `toml:"server_url"`
	Timeout    Duration `toml:"timeout"`
	MaxRetries int      `toml:"max_retries"`
	RetryWait  Duration `toml:"retry_wait"`
	MaxWait    Duration `toml:"max_wait"`
}

// Retry returns the analyzer retry settings in transport form.
func (a AnalyzerConfig) Retry() *types.RetryConfig {
	return &types.RetryConfig{
		MaxRetries: a.MaxRetries,
		RetryWait:  a.RetryWait.Duration,
		MaxWait:    a.MaxWait.Duration,
	}
}

// Duration is a time.Duration written as "10s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Transport:       TransportHTTP,
			Addr:            types.DefaultAddr,
			ShutdownTimeout: Duration{types.DefaultShutdownTimeout},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Sentry: SentryConfig{
			Environment: "production",
		},
		Anomaly: AnomalyConfig{
			WindowDays:   7,
			ThresholdPct: 0.30,
		},
		Analyzer: AnalyzerConfig{
			ServerURL:  types.DefaultServerURL,
			Timeout:    Duration{types.DefaultTimeout},
			MaxRetries: 3,
			RetryWait:  Duration{500 * time.Millisecond},
			MaxWait:    Duration{5 * time.Second},
		},
	}
}

// Path returns the config file location.
func Path() string {
	if p := os.Getenv("FINHELP_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads .env, the config file if present, then environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFile(Path())
}

// LoadFile builds a configuration from defaults, the given TOML file and the environment.
// A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config %s", path)
		}
	case os.IsNotExist(err):
	default:
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Transport = getEnv("FINHELP_TRANSPORT", c.Server.Transport)
	c.Server.Addr = getEnv("FINHELP_ADDR", c.Server.Addr)
	c.Server.ShutdownTimeout.Duration = getEnvDuration("FINHELP_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout.Duration)

	c.Log.Level = getEnv("FINHELP_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("FINHELP_LOG_FORMAT", c.Log.Format)

	c.Sentry.DSN = getEnv("FINHELP_SENTRY_DSN", getEnv("SENTRY_DSN", c.Sentry.DSN))
	c.Sentry.Environment = getEnv("FINHELP_SENTRY_ENVIRONMENT", c.Sentry.Environment)

	c.Anomaly.WindowDays = getEnvInt("FINHELP_WINDOW_DAYS", c.Anomaly.WindowDays)
	c.Anomaly.ThresholdPct = getEnvFloat("FINHELP_THRESHOLD_PCT", c.Anomaly.ThresholdPct)

	c.Analyzer.ServerURL = getEnv("FINHELP_SERVER_URL", c.Analyzer.ServerURL)
	c.Analyzer.Timeout.Duration = getEnvDuration("FINHELP_TIMEOUT", c.Analyzer.Timeout.Duration)
	c.Analyzer.MaxRetries = getEnvInt("FINHELP_RETRY_MAX", c.Analyzer.MaxRetries)
	c.Analyzer.RetryWait.Duration = getEnvDuration("FINHELP_RETRY_WAIT", c.Analyzer.RetryWait.Duration)
	c.Analyzer.MaxWait.Duration = getEnvDuration("FINHELP_RETRY_MAX_WAIT", c.Analyzer.MaxWait.Duration)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Transport != TransportHTTP && c.Server.Transport != TransportStdio {
		problems = append(problems, fmt.Sprintf("invalid transport '%s': must be one of [%s %s]",
			c.Server.Transport, TransportHTTP, TransportStdio))
	}

	if c.Server.Transport == TransportHTTP {
		if _, port, err := net.SplitHostPort(c.Server.Addr); err != nil {
			problems = append(problems, fmt.Sprintf("invalid addr '%s': %v", c.Server.Addr, err))
		} else if p, err := strconv.Atoi(port); err != nil || p < 0 || p > 65535 {
			problems = append(problems, fmt.Sprintf("invalid port '%s': must be between 0 and 65535", port))
		}
	}

	if c.Server.ShutdownTimeout.Duration <= 0 {
		problems = append(problems, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.Server.ShutdownTimeout.Duration))
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.Log.Format))
	}

	if c.Anomaly.WindowDays < 1 {
		problems = append(problems, fmt.Sprintf("invalid window days %d: must be at least 1", c.Anomaly.WindowDays))
	}
	if c.Anomaly.ThresholdPct < 0 {
		problems = append(problems, fmt.Sprintf("invalid threshold %v: must not be negative", c.Anomaly.ThresholdPct))
	}

	if u, err := url.Parse(c.Analyzer.ServerURL); err != nil {
		problems = append(problems, fmt.Sprintf("invalid server URL '%s': %v", c.Analyzer.ServerURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("invalid server URL scheme '%s': must be 'http' or 'https'", u.Scheme))
	}

	if c.Analyzer.MaxRetries < 0 {
		problems = append(problems, fmt.Sprintf("invalid max retries %d: must not be negative", c.Analyzer.MaxRetries))
	}
	if c.Analyzer.MaxWait.Duration < c.Analyzer.RetryWait.Duration {
		problems = append(problems, fmt.Sprintf("invalid retry wait: max wait %v is below retry wait %v",
			c.Analyzer.MaxWait.Duration, c.Analyzer.RetryWait.Duration))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
