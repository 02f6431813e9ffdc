package utils

import (
	"Backend-Results/src/models"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleServiceError(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{models.NewValidationError(models.InvalidRequest, "identifier and standard are required"), 400, "identifier and standard are required"},
		{fmt.Errorf("lookup: %w", models.ErrResultNotFound), 404, "Result not found."},
		{&models.AuthError{Status: 429, Message: "Too many login attempts."}, 429, "Too many login attempts."},
		{errors.New("mongo: connection refused"), 500, "Server error."},
	}

	for _, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error {
			return HandleServiceError(c, zerolog.Nop(), err)
		})

		res, reqErr := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, reqErr)
		assert.Equal(t, tc.status, res.StatusCode)

		data, readErr := io.ReadAll(res.Body)
		require.NoError(t, readErr)
		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Equal(t, tc.message, body.Error)
	}
}
