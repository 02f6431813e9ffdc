// error_utils.go
package utils

import (
	"Backend-Results/src/models"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const serverErrorMessage = "Server error."

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: message})
}

// HandleServiceError แปลง error จาก service เป็น HTTP status
// 500 จะไม่ส่งรายละเอียดกลับไปให้ client
func HandleServiceError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	if ae, ok := models.AsAuth(err); ok {
		return HandleError(c, ae.Status, ae.Message)
	}
	switch {
	case models.IsValidation(err):
		return HandleError(c, fiber.StatusBadRequest, err.Error())
	case models.IsNotFound(err):
		return HandleError(c, fiber.StatusNotFound, err.Error())
	}

	logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return HandleError(c, fiber.StatusInternalServerError, serverErrorMessage)
}
