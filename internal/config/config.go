package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names, matching the surrounding deployment.
const (
	EnvAPIURL      = "MANUALMIND_API_URL"
	EnvAPITimeout  = "API_TIMEOUT"
	EnvMaxRetries  = "MAX_RETRIES"
	EnvAPIKey      = "MANUALMIND_API_KEY"
	EnvRateLimit   = "RATE_LIMIT_PER_MINUTE"
	EnvRunMode     = "MCP_RUN_MODE"
	EnvHTTPPort    = "MCP_HTTP_PORT"
	EnvHTTPAPIKey  = "MCP_HTTP_API_KEY"
	EnvOverlayFile = "MCP_BRIDGE_CONFIG"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
)

// Defaults applied before the overlay file and environment.
const (
	DefaultAPIURL      = "http://manualmind:8000"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultRateLimit   = 10
	DefaultHTTPPort    = 8001
	DefaultQueryPath   = "/query"
	DefaultStatusPath  = "/status"
	DefaultProcessPath = "/process-documents"
)

// Run modes for the bridge process.
const (
	RunModeStdio  = "stdio"
	RunModeHTTP   = "http"
	RunModeHybrid = "hybrid"
)

// Validation errors
var (
	ErrInvalidRunMode = errors.New("run mode must be stdio, http, or hybrid")
	ErrInvalidPort    = errors.New("http port must be between 1 and 65535")
	ErrInvalidTimeout = errors.New("api timeout must be positive")
	ErrInvalidRetries = errors.New("max retries must be at least 1")
	ErrInvalidBaseURL = errors.New("api url is not a valid http(s) URL")
)

// Endpoints holds the backend path layout. The process path differs between
// backend variants (/process vs /process-documents), so it is configuration.
type Endpoints struct {
	Query   string `yaml:"query"`
	Status  string `yaml:"status"`
	Process string `yaml:"process"`
}

// Config is the immutable bridge configuration, loaded once at startup and
// passed explicitly into constructors.
type Config struct {
	BaseURL            string
	Timeout            time.Duration
	MaxRetries         int
	APIKey             string
	RateLimitPerMinute int
	RunMode            string
	HTTPPort           int
	HTTPAPIKey         string
	Endpoints          Endpoints
	LogLevel           string
	LogFormat          string
}

// overlay is the YAML file shape. Pointer fields distinguish "absent" from
// zero values so the file only overrides what it names.
type overlay struct {
	APIURL             *string `yaml:"api_url"`
	TimeoutSeconds     *int    `yaml:"timeout_seconds"`
	MaxRetries         *int    `yaml:"max_retries"`
	APIKey             *string `yaml:"api_key"`
	RateLimitPerMinute *int    `yaml:"rate_limit_per_minute"`
	RunMode            *string `yaml:"run_mode"`
	HTTPPort           *int    `yaml:"http_port"`
	HTTPAPIKey         *string `yaml:"http_api_key"`
	LogLevel           *string `yaml:"log_level"`
	LogFormat          *string `yaml:"log_format"`
	Endpoints          struct {
		Query   *string `yaml:"query"`
		Status  *string `yaml:"status"`
		Process *string `yaml:"process"`
	} `yaml:"endpoints"`
}

// Load builds the configuration from defaults, the optional YAML overlay
// named by MCP_BRIDGE_CONFIG, and the environment, in that precedence order.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv(EnvOverlayFile); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, fmt.Errorf("config overlay %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		BaseURL:            DefaultAPIURL,
		Timeout:            DefaultTimeout,
		MaxRetries:         DefaultMaxRetries,
		RateLimitPerMinute: DefaultRateLimit,
		RunMode:            RunModeStdio,
		HTTPPort:           DefaultHTTPPort,
		Endpoints: Endpoints{
			Query:   DefaultQueryPath,
			Status:  DefaultStatusPath,
			Process: DefaultProcessPath,
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var o overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	if o.APIURL != nil {
		c.BaseURL = *o.APIURL
	}
	if o.TimeoutSeconds != nil {
		c.Timeout = time.Duration(*o.TimeoutSeconds) * time.Second
	}
	if o.MaxRetries != nil {
		c.MaxRetries = *o.MaxRetries
	}
	if o.APIKey != nil {
		c.APIKey = *o.APIKey
	}
	if o.RateLimitPerMinute != nil {
		c.RateLimitPerMinute = *o.RateLimitPerMinute
	}
	if o.RunMode != nil {
		c.RunMode = *o.RunMode
	}
	if o.HTTPPort != nil {
		c.HTTPPort = *o.HTTPPort
	}
	if o.HTTPAPIKey != nil {
		c.HTTPAPIKey = *o.HTTPAPIKey
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogFormat != nil {
		c.LogFormat = *o.LogFormat
	}
	if o.Endpoints.Query != nil {
		c.Endpoints.Query = *o.Endpoints.Query
	}
	if o.Endpoints.Status != nil {
		c.Endpoints.Status = *o.Endpoints.Status
	}
	if o.Endpoints.Process != nil {
		c.Endpoints.Process = *o.Endpoints.Process
	}

	return nil
}

func (c *Config) applyEnv() error {
	var err error

	c.BaseURL = stringOr(EnvAPIURL, c.BaseURL)
	c.APIKey = stringOr(EnvAPIKey, c.APIKey)
	c.RunMode = stringOr(EnvRunMode, c.RunMode)
	c.HTTPAPIKey = stringOr(EnvHTTPAPIKey, c.HTTPAPIKey)
	c.LogLevel = stringOr(EnvLogLevel, c.LogLevel)
	c.LogFormat = stringOr(EnvLogFormat, c.LogFormat)

	if c.Timeout, err = secondsOr(EnvAPITimeout, c.Timeout); err != nil {
		return err
	}
	if c.MaxRetries, err = intOr(EnvMaxRetries, c.MaxRetries); err != nil {
		return err
	}
	if c.RateLimitPerMinute, err = intOr(EnvRateLimit, c.RateLimitPerMinute); err != nil {
		return err
	}
	if c.HTTPPort, err = intOr(EnvHTTPPort, c.HTTPPort); err != nil {
		return err
	}

	return nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}

	switch c.RunMode {
	case RunModeStdio, RunModeHTTP, RunModeHybrid:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRunMode, c.RunMode)
	}

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.HTTPPort)
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxRetries < 1 {
		return ErrInvalidRetries
	}

	return nil
}

// ServesHTTP reports whether the configured run mode starts the REST surface.
func (c *Config) ServesHTTP() bool {
	return c.RunMode == RunModeHTTP || c.RunMode == RunModeHybrid
}

// ServesStdio reports whether the configured run mode starts the stdio loop.
func (c *Config) ServesStdio() bool {
	return c.RunMode == RunModeStdio || c.RunMode == RunModeHybrid
}
