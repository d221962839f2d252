package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"vetscribe-be/internal/pkg/logger"
	"vetscribe-be/internal/repository/contract"
	"vetscribe-be/pkg/intake"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	RelayId string `json:"relayId" validate:"required"`
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantField  string
		wantError  string
	}{
		{name: "intake validation", err: &intake.ValidationError{Field: "mode", Message: "mode is required"}, wantStatus: 400, wantField: "mode"},
		{name: "struct validation", err: ValidateRequest(sampleRequest{}), wantStatus: 400, wantField: "relayId", wantError: "relayId is required"},
		{name: "invalid argument", err: fmt.Errorf("%w: payload is required", contract.ErrInvalidArgument), wantStatus: 400, wantError: "invalid argument: payload is required"},
		{name: "fiber error", err: fiber.NewError(fiber.StatusRequestEntityTooLarge, "too big"), wantStatus: 413, wantError: "too big"},
		{name: "unexpected", err: errors.New("disk on fire"), wantStatus: 500, wantError: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware(logger.NewNop()))
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body ErrorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.False(t, body.OK)
			assert.Equal(t, tt.wantField, body.Field)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body.Error)
			}
		})
	}
}

func TestValidateRequestPasses(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{RelayId: "x"}))
}
