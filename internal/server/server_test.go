package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"ai-storefront-be/internal/config"
	"ai-storefront-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{App: config.AppConfig{
		Port:               "0",
		Environment:        "test",
		CorsAllowedOrigins: "http://localhost:5173",
	}}
}

func TestHealthz(t *testing.T) {
	srv := New(testConfig(), nil)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body serverutils.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, map[string]interface{}{"environment": "test"}, body.Data)
}

func TestMetricsExposed(t *testing.T) {
	srv := New(testConfig(), nil)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "go_goroutines")
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	srv := New(testConfig(), nil)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/api/chat/v1/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var body serverutils.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, 404, body.Code)
}
