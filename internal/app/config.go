package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"aggbars/internal/provider/polygon"
)

// Config holds application configuration from env, .env and an optional config file.
type Config struct {
	APIKey       string
	BaseURL      string
	Timeout      time.Duration // 0: no client timeout
	LogLevel     string        // debug | info | warn | error
	LogFormat    string        // text | json
	OutputFormat string        // log | json | csv | parquet
}

// envFile is loaded before reading the environment; a missing file is fine.
var envFile = ".env"

// LoadConfig reads configuration. Precedence: environment (including .env),
// then the config file at path (yaml, json or toml by extension), then defaults.
// A missing API key is not an error here; the fetch reports it.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault("base_url", polygon.DefaultBaseURL)
	v.SetDefault("timeout", "0s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("output_format", "log")

	for key, env := range map[string]string{
		"api_key":       "POLYGON_API_KEY",
		"api_keys":      "POLYGON_API_KEYS",
		"base_url":      "POLYGON_BASE_URL",
		"timeout":       "POLYGON_TIMEOUT",
		"log_level":     "LOG_LEVEL",
		"log_format":    "LOG_FORMAT",
		"output_format": "OUTPUT_FORMAT",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	timeout, err := parseTimeout(v.GetString("timeout"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIKey:       strings.TrimSpace(v.GetString("api_key")),
		BaseURL:      v.GetString("base_url"),
		Timeout:      timeout,
		LogLevel:     v.GetString("log_level"),
		LogFormat:    v.GetString("log_format"),
		OutputFormat: v.GetString("output_format"),
	}
	if cfg.APIKey == "" {
		cfg.APIKey = firstKey(v.GetString("api_keys"))
	}
	return cfg, nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid POLYGON_TIMEOUT %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid POLYGON_TIMEOUT %q: negative", s)
	}
	return d, nil
}

// firstKey returns the first non-empty entry of a comma separated key list
// (POLYGON_API_KEYS).
func firstKey(list string) string {
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			return k
		}
	}
	return ""
}
