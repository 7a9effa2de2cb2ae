//go:build wireinject
// +build wireinject

package main

import (
	"log/slog"

	"aggbars/internal/app"
	"aggbars/internal/output"
	"aggbars/internal/provider"

	"github.com/google/wire"
)

// App holds application dependencies built by Wire.
type App struct {
	Config *app.Config
	DP     provider.DataProvider
	Logger *slog.Logger
	Out    output.BarsWriter
}

// InitializeApp builds App (Config + DataProvider + logger + output) via Wire.
// Caller must call a.DP.Close() when done.
func InitializeApp(configPath string) (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvidePolygonClient,
		app.ProvidePolygonProvider,
		app.ProvideLogger,
		app.ProvideBarsWriter,
		wire.Bind(new(provider.DataProvider), new(*provider.PolygonProvider)),
		wire.Struct(new(App), "Config", "DP", "Logger", "Out"),
	)
	return nil, nil
}
