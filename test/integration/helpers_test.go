package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vetscribe-be/internal/bootstrap"
	"vetscribe-be/internal/config"
	"vetscribe-be/internal/pkg/logger"
	"vetscribe-be/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// testConfig runs with no provider credentials, so generation is stub-only.
func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Port:               "0",
			ServiceName:        "vetscribe-test",
			Environment:        "test",
			CorsAllowedOrigins: "*",
		},
		Ai: config.AIConfig{
			LLMProvider: "openai",
			LLMModel:    "gpt-4o-mini",
		},
		Generation: config.GenerationConfig{
			Timeout:       2 * time.Second,
			MaxConcurrent: 2,
		},
		Relay: config.RelayConfig{Backend: "memory"},
	}
}

func newApp(t *testing.T, cfg *config.Config, opts ...bootstrap.Option) *fiber.App {
	t.Helper()

	opts = append([]bootstrap.Option{bootstrap.WithLogger(logger.NewNop())}, opts...)
	container, err := bootstrap.NewContainer(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	return server.New(cfg, container).GetApp()
}

// do sends a request through the app and decodes a JSON object response.
func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	if resp.Header.Get("Content-Type") != "" && strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func mustStatus(t *testing.T, want, got int) {
	t.Helper()
	require.Equal(t, want, got, http.StatusText(got))
}
