// Package config loads pdfchat settings from an optional YAML file and the
// environment. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string `yaml:"addr"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
	APIKey        string `yaml:"api_key"`
	Model         string `yaml:"model"`
	FallbackModel string `yaml:"fallback_model"`
	// MaxUploadBytes bounds the HTTP request body. It is larger than the
	// validator limit so oversize files still get a descriptive error.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

func Default() Config {
	return Config{
		Addr:           ":8080",
		LogLevel:       "info",
		LogFormat:      "json",
		Model:          "gemini-3-flash-preview",
		FallbackModel:  "gemini-2.5-flash",
		MaxUploadBytes: 64 << 20,
	}
}

// Load reads path (if non-empty) over the defaults, then applies environment
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(getenv func(string) string) {
	for _, k := range []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"} {
		if v := getenv(k); v != "" {
			c.APIKey = v
			break
		}
	}
	if v := getenv("PDFCHAT_ADDR"); v != "" {
		c.Addr = v
	}
	if v := getenv("PDFCHAT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("PDFCHAT_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := getenv("PDFCHAT_MODEL"); v != "" {
		c.Model = v
	}
}

func (c Config) Validate() error {
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log_format must be json or console, got %q", c.LogFormat)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("max_upload_bytes must be positive")
	}
	return nil
}
