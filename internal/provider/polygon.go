package provider

import (
	"aggbars/internal/provider/polygon"
)

// PolygonProvider is a DataProvider implementation backed by the Polygon API.
// It embeds *polygon.Client, which supplies GetBars, RequestURL and Close.
type PolygonProvider struct {
	*polygon.Client
}

var _ DataProvider = (*PolygonProvider)(nil)

// NewPolygonProvider wraps client as a DataProvider.
func NewPolygonProvider(client *polygon.Client) *PolygonProvider {
	return &PolygonProvider{Client: client}
}

// GetName returns provider name
func (p *PolygonProvider) GetName() string {
	return "Polygon"
}
