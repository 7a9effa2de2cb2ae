package polygon

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aggbars/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c := NewClient(Config{APIKey: "SECRET", BaseURL: server.URL + "/v2/aggs"}, WithHTTPClient(server.Client()))
	return c, server
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{APIKey: "k"})
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.NoError(t, c.Close())
}

func TestClient_GetBars_InlineKey(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/aggs/ticker/AAPL/range/1/day/2023-01-09/2023-02-10", r.URL.Path)
		assert.Equal(t, "adjusted=true&sort=asc&apiKey=SECRET", r.URL.RawQuery)
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(oneBarBody))
	})

	got, err := c.GetBars(context.Background(), model.ReferenceQuery(), model.AuthInlineKey)
	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	assert.Equal(t, int64(1673251200000), got.Results[0].Timestamp)
}

func TestClient_GetBars_HeaderBearer(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/aggs/ticker/AAPL/range/1/day/2023-01-09/2023-02-10", r.URL.Path)
		assert.Equal(t, "adjusted=true&sort=asc", r.URL.RawQuery)
		assert.Equal(t, "Bearer SECRET", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(oneBarBody))
	})

	got, err := c.GetBars(context.Background(), model.ReferenceQuery(), model.AuthHeaderBearer)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got.Ticker)
	assert.Equal(t, model.Bar{
		Volume: 1.0, VolumeWeighted: 2.0, Open: 3.0, Close: 4.0, High: 5.0, Low: 1.0,
		Timestamp: 1673251200000, Transactions: 10,
	}, got.Results[0])
}

func TestClient_GetBars_ConfigErrorSkipsNetwork(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	noKey := NewClient(Config{BaseURL: server.URL}, WithHTTPClient(server.Client()))
	_, err := noKey.GetBars(context.Background(), model.ReferenceQuery(), model.AuthHeaderBearer)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)

	withKey := NewClient(Config{APIKey: "k", BaseURL: server.URL}, WithHTTPClient(server.Client()))
	q := model.ReferenceQuery()
	q.Ticker = ""
	_, err = withKey.GetBars(context.Background(), q, model.AuthInlineKey)
	require.True(t, errors.As(err, &cfgErr), "got %v", err)

	assert.Zero(t, calls.Load())
}

func TestClient_Fetch_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"too many requests", http.StatusTooManyRequests},
		{"unauthorized", http.StatusUnauthorized},
		{"forbidden", http.StatusForbidden},
		{"not found", http.StatusNotFound},
		{"internal server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(`{"status":"ERROR","error":"nope"}`))
			})

			got, err := c.GetBars(context.Background(), model.ReferenceQuery(), model.AuthHeaderBearer)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrTransport), "got %v", err)

			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.statusCode, fe.StatusCode)
			assert.Contains(t, fe.Body, "nope")
		})
	}
}

func TestClient_Fetch_DecodeError(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ticker":"AAPL","queryCount":1,"resultsCount":1,"adjusted":true}`))
	})

	_, err := c.GetBars(context.Background(), model.ReferenceQuery(), model.AuthInlineKey)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode), "got %v", err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusOK, fe.StatusCode)
	assert.Contains(t, fe.Body, `"ticker":"AAPL"`)
}

func TestClient_Fetch_ConnectionRefused(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	c := NewClient(Config{APIKey: "SECRET", BaseURL: base})
	_, err := c.GetBars(context.Background(), model.ReferenceQuery(), model.AuthInlineKey)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport), "got %v", err)
	assert.NotContains(t, err.Error(), "SECRET")

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Zero(t, fe.StatusCode)
}

func TestClient_Fetch_Cancelled(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.GetBars(ctx, model.ReferenceQuery(), model.AuthHeaderBearer)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCancelled), "got %v", err)
}

func TestClient_Fetch_ClientTimeoutIsTransport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(server.Close)
	c := NewClient(Config{APIKey: "SECRET", BaseURL: server.URL + "/v2/aggs", Timeout: 20 * time.Millisecond})

	_, err := c.GetBars(context.Background(), model.ReferenceQuery(), model.AuthInlineKey)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport), "got %v", err)
	assert.False(t, errors.Is(err, ErrCancelled))
	assert.NotContains(t, err.Error(), "SECRET")
}

func TestClient_Fetch_AlreadyCancelled(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, server.URL+"/v2/aggs/ticker/AAPL/range/1/day/2023-01-09/2023-02-10?adjusted=true&sort=asc", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCancelled), "got %v", err)
	assert.Zero(t, calls.Load())
}

func TestClient_Fetch_PassesHeaders(t *testing.T) {
	t.Parallel()

	c, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "yes", r.Header.Get("X-Trace"))
		assert.Equal(t, "Bearer other", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(oneBarBody))
	})

	h := http.Header{}
	h.Set("X-Trace", "yes")
	h.Set("Authorization", "Bearer other")
	_, err := c.Fetch(context.Background(), server.URL+"/x", h)
	require.NoError(t, err)
}

func TestClient_Fetch_NoCaching(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(oneBarBody))
	})

	for i := 0; i < 3; i++ {
		_, err := c.GetBars(context.Background(), model.ReferenceQuery(), model.AuthInlineKey)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_RequestURL(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{APIKey: "SECRET"})
	got, err := c.RequestURL(model.ReferenceQuery(), model.AuthInlineKey)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "&apiKey=SECRET"))
}
