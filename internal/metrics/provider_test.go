package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Exposition(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	probe, err := provider.MeterProvider().Meter("test").Int64Counter("handler_probe_total")
	require.NoError(t, err)
	probe.Add(context.Background(), 3)

	body := scrape(t, provider)

	assert.Contains(t, body, "handler_probe_total")
	assert.Contains(t, body, `service_name="test_app"`)
	assert.Contains(t, body, "go_goroutines", "runtime collector is registered")
}

func TestProvider_DefaultServiceName(t *testing.T) {
	provider, err := NewProvider("")
	require.NoError(t, err)

	assert.Contains(t, scrape(t, provider), `service_name="simple"`)
}

func TestProvider_OpenMetricsNegotiation(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Accept", "application/openmetrics-text; version=1.0.0")
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/openmetrics-text")
	assert.Contains(t, w.Body.String(), "# EOF")
}

func TestProvider_Shutdown(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)
	assert.NoError(t, provider.Shutdown(context.Background()))

	var zero Provider
	assert.NoError(t, zero.Shutdown(context.Background()))
}
