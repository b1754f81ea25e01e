// Package config provides configuration loading and validation for the console.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIURL is the job-board API used when nothing else is configured.
const DefaultAPIURL = "http://localhost:5000/api"

// DefaultPort is the dashboard server port.
const DefaultPort = 8080

// DefaultTimeoutSeconds bounds each API request.
const DefaultTimeoutSeconds = 30

// Config represents the console configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// API
	APIURL         string `json:"api_url,omitempty"`         // Base URL of the job-board REST API
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"` // Per-request timeout

	// Session
	TokenFile string `json:"token_file,omitempty"` // Credentials file written by login

	// Server
	Port           int      `json:"port,omitempty"`            // Dashboard server port
	AllowedOrigins []string `json:"allowed_origins,omitempty"` // CORS origins for the dashboard server

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print debug logs
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
		TokenFile:      DefaultTokenFile(),
		Port:           DefaultPort,
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

// DefaultTokenFile is ~/.joblify/credentials.json, or a relative path when the
// home directory is unknown.
func DefaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".joblify", "credentials.json")
	}
	return filepath.Join(home, ".joblify", "credentials.json")
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with the JOBLIFY_* environment variables (and PORT)
// that are set. Malformed numbers are reported rather than ignored.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("JOBLIFY_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("JOBLIFY_TOKEN_FILE"); v != "" {
		c.TokenFile = v
	}
	if v := os.Getenv("JOBLIFY_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid JOBLIFY_TIMEOUT_SECONDS: %v", err)
		}
		c.TimeoutSeconds = n
	}
	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %v", err)
		}
		c.Port = n
	}
	if v := os.Getenv("JOBLIFY_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("JOBLIFY_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Verbose = b
		}
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are filled
// from defaults after merging.
func (c *Config) Validate() error {
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: 'api_url' must be an absolute URL, got %q", c.APIURL)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("config error: 'api_url' must use http or https, got %q", u.Scheme)
		}
	}

	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	for _, o := range c.AllowedOrigins {
		if o == "*" {
			continue
		}
		if u, err := url.Parse(o); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: invalid allowed origin %q", o)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.TokenFile == "" {
		result.TokenFile = defaults.TokenFile
	}

	// Int fields: use default if zero
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = append([]string(nil), defaults.AllowedOrigins...)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load resolves the effective configuration: the file at path (optional),
// then environment overrides, then defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
