package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aggbars/internal/model"
	"aggbars/internal/provider/polygon"
)

func TestPolygonProvider(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"ticker":"AAPL","queryCount":0,"resultsCount":0,"adjusted":true,"results":[]}`))
	}))
	defer server.Close()

	client := polygon.NewClient(polygon.Config{APIKey: "k", BaseURL: server.URL}, polygon.WithHTTPClient(server.Client()))
	var dp DataProvider = NewPolygonProvider(client)
	defer dp.Close()

	assert.Equal(t, "Polygon", dp.GetName())

	resp, err := dp.GetBars(context.Background(), model.ReferenceQuery(), model.AuthHeaderBearer)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", resp.Ticker)
	assert.Empty(t, resp.Results)

	u, err := dp.RequestURL(model.ReferenceQuery(), model.AuthHeaderBearer)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/ticker/AAPL/range/1/day/2023-01-09/2023-02-10?adjusted=true&sort=asc", u)
}
