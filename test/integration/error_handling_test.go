package integration

import (
	"net/http"
	"testing"

	"vetscribe-be/internal/bootstrap"
	"vetscribe-be/internal/pkg/logger"
	"vetscribe-be/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicReturnsJSONError(t *testing.T) {
	cfg := testConfig()
	container, err := bootstrap.NewContainer(cfg, bootstrap.WithLogger(logger.NewNop()))
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	app := server.New(cfg, container).GetApp()
	app.Get("/boom", func(c *fiber.Ctx) error { panic("handler blew up") })

	status, body := do(t, app, "GET", "/boom", "")
	mustStatus(t, http.StatusInternalServerError, status)
	require.NotNil(t, body)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "internal server error", body["error"])
}

func TestSoapAliasRejectsNonSoapModes(t *testing.T) {
	app := newApp(t, testConfig())

	for _, mode := range []string{"toolbox", "consult", "dentistry"} {
		t.Run(mode, func(t *testing.T) {
			status, body := do(t, app, "POST", "/api/soap", `{"mode":"`+mode+`","question":"x"}`)
			mustStatus(t, http.StatusBadRequest, status)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, "mode", body["field"])
		})
	}
}
