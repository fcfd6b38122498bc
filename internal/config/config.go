package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config file is given.
const DefaultPath = "codepolish.yaml"

type Config struct {
	Server struct {
		Addr            string   `yaml:"addr"`
		MaxUploadBytes  int64    `yaml:"max_upload_bytes"`
		ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	AI struct {
		Provider       string   `yaml:"provider"`
		Model          string   `yaml:"model"`
		BaseURL        string   `yaml:"base_url"`
		APIKey         string   `yaml:"api_key"`
		ConnectTimeout Duration `yaml:"connect_timeout"`
		RequestTimeout Duration `yaml:"request_timeout"`
		RatePerSecond  float64  `yaml:"rate_per_second"`
		Burst          int      `yaml:"burst"`
	} `yaml:"ai"`
	Logging struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"logging"`
	Analyze struct {
		Concurrency int `yaml:"concurrency"`
		Passes      int `yaml:"passes"`
	} `yaml:"analyze"`
}

// Duration reads Go duration strings such as "10s" from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.Server.MaxUploadBytes = 1 << 20
	cfg.Server.ShutdownTimeout = Duration(10 * time.Second)
	cfg.AI.Provider = "openai"
	cfg.AI.ConnectTimeout = Duration(10 * time.Second)
	cfg.AI.RequestTimeout = Duration(60 * time.Second)
	cfg.AI.RatePerSecond = 2
	cfg.AI.Burst = 2
	cfg.Logging.Level = "info"
	cfg.Analyze.Concurrency = 4
	cfg.Analyze.Passes = 1
	return &cfg
}

// LoadConfig layers the YAML file at path (optional when it is DefaultPath),
// .env and environment overrides over the defaults.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// 3. Override with Environment Variables if present
	if provider := os.Getenv("CODEPOLISH_AI_PROVIDER"); provider != "" {
		cfg.AI.Provider = provider
	}
	if addr := os.Getenv("CODEPOLISH_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.AI.Provider)) {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported ai.provider %q", c.AI.Provider)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}
	if c.Analyze.Concurrency < 1 {
		return fmt.Errorf("analyze.concurrency must be at least 1")
	}
	return nil
}

// ResolveAPIKey prefers the configured key and falls back to the provider's
// environment variable. An empty result is not an error.
func (c *Config) ResolveAPIKey() string {
	if key := strings.TrimSpace(c.AI.APIKey); key != "" {
		return key
	}
	switch strings.ToLower(strings.TrimSpace(c.AI.Provider)) {
	case "gemini":
		return strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	default:
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
}
