package platform

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/folio/pkg/adapters/httpapi"
)

// Config is the file and environment configuration of the folio CLI.
// Precedence, lowest first: defaults, config file, environment, flags.
type Config struct {
	BaseURL     string        `yaml:"base_url"`
	Token       string        `yaml:"token"`
	Timeout     time.Duration `yaml:"timeout"`
	EventBuffer int           `yaml:"event_buffer"`
	LogFile     string        `yaml:"log_file"`
	LogLevel    string        `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		BaseURL:  httpapi.DefaultBaseURL,
		Timeout:  httpapi.DefaultTimeout,
		LogLevel: "info",
	}
}

// LoadConfig reads .env files (missing ones are ignored), then the YAML file
// at path when set, then FOLIO_* environment variables.
func LoadConfig(path string, envFiles ...string) (Config, error) {
	loadDotEnv(envFiles...)

	cfg := DefaultConfig()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := decodeConfig(f, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadDotEnv(files ...string) {
	if len(files) == 0 {
		_ = godotenv.Load()
		return
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

func decodeConfig(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("FOLIO_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("FOLIO_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("FOLIO_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FOLIO_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("FOLIO_EVENT_BUFFER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FOLIO_EVENT_BUFFER: %w", err)
		}
		c.EventBuffer = n
	}
	if v := os.Getenv("FOLIO_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("FOLIO_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Options converts the configuration into service options.
func (c Config) Options() []Option {
	return []Option{
		WithToken(c.Token),
		WithTimeout(c.Timeout),
		WithEventBuffer(c.EventBuffer),
	}
}
