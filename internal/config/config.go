// Package config resolves runtime settings from defaults, an optional
// YAML file, the environment (including a .env file) and flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvAPIURL      = "OTTOSHELF_API_URL"
	EnvLogLevel    = "OTTOSHELF_LOG_LEVEL"
	EnvLogFile     = "OTTOSHELF_LOG_FILE"
	EnvHTTPTimeout = "OTTOSHELF_HTTP_TIMEOUT"
)

// DefaultAPIURL is the public collection the shelf was built against.
const DefaultAPIURL = "https://serverless-api-octa.netlify.app/.netlify/functions/api"

// Config holds the resolved settings.
type Config struct {
	APIURL      string        `yaml:"api_url"`
	LogLevel    string        `yaml:"log_level"`
	LogFile     string        `yaml:"log_file"`
	HTTPTimeout time.Duration `yaml:"http_timeout"` // 0 disables the timeout
	UserAgent   string        `yaml:"user_agent"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:    DefaultAPIURL,
		LogLevel:  "normal",
		LogFile:   ".ottoshelf/ottoshelf.log",
		UserAgent: "ottoshelf",
	}
}

// Load applies the YAML file at path (skipped when path is empty) and then
// the environment on top of the defaults. A missing .env file is not an
// error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.mergeEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.APIURL = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		c.LogFile = v
	}
	if v, ok := lookup(EnvHTTPTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvHTTPTimeout, err)
		}
		c.HTTPTimeout = d
	}
	return nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("config: api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: api url %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return errors.New("config: api url has no host")
	}
	if c.HTTPTimeout < 0 {
		return errors.New("config: http timeout must not be negative")
	}
	return nil
}

// LogToStderr reports whether logs should go to the console.
func (c Config) LogToStderr() bool {
	return c.LogFile == "" || strings.EqualFold(c.LogFile, "stderr")
}
