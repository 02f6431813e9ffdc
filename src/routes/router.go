package routes

import (
	"Backend-Results/src/controllers"
	"Backend-Results/src/middleware"
	"Backend-Results/src/models"
	"Backend-Results/src/utils"

	"github.com/gofiber/fiber/v2"
)

// Handlers ทุกอย่างที่ route ต้องใช้ สร้างใน main แล้วส่งเข้ามา
type Handlers struct {
	Auth      *controllers.AuthController
	Results   *controllers.ResultsController
	Tokens    *utils.JWTManager
	Blacklist middleware.TokenBlacklist
}

func InitRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api")

	// Route เช็คว่า API ทำงานอยู่
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(models.MessageResponse{Message: "API is running"})
	})

	requireAuth := middleware.AuthJWT(h.Tokens, h.Blacklist)
	authRoutes(api, h.Auth, requireAuth)
	resultRoutes(api, h.Results, requireAuth)
}
