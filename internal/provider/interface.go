package provider

import (
	"context"

	"aggbars/internal/model"
)

// DataProvider is the abstraction the application uses to fetch bars.
// Implementations own their transport and release it in Close.
type DataProvider interface {
	GetName() string
	GetBars(ctx context.Context, q model.Query, mode model.AuthMode) (*model.BarsResponse, error)
	// RequestURL returns the URL a GetBars call would use, for logging.
	RequestURL(q model.Query, mode model.AuthMode) (string, error)
	Close() error
}
