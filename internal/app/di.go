package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"aggbars/internal/output"
	"aggbars/internal/provider"
	"aggbars/internal/provider/polygon"
	"aggbars/internal/slogx"
)

// ProvideConfig loads config from environment and the optional file (for Wire).
func ProvideConfig(configPath string) (*Config, error) {
	return LoadConfig(configPath)
}

// ProvidePolygonClient creates the Polygon client with the resolved secret (for Wire).
func ProvidePolygonClient(cfg *Config) *polygon.Client {
	return polygon.NewClient(polygon.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
}

// ProvidePolygonProvider wraps the client as a DataProvider (for Wire).
// Caller must call dp.Close() when shutting down.
func ProvidePolygonProvider(c *polygon.Client) *provider.PolygonProvider {
	return provider.NewPolygonProvider(c)
}

// ProvideLogger creates the stderr logger from config (for Wire).
func ProvideLogger(cfg *Config) *slog.Logger {
	return slogx.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
}

// ProvideBarsWriter creates BarsWriter from config (for Wire).
// Returns error if OutputFormat is not supported.
func ProvideBarsWriter(cfg *Config) (output.BarsWriter, error) {
	w := output.NewBarsWriter(cfg.OutputFormat)
	if w == nil {
		return nil, fmt.Errorf("unsupported OUTPUT_FORMAT %q (use: %s)", cfg.OutputFormat, strings.Join(output.Formats, ", "))
	}
	return w, nil
}
