package routes

import (
	"Backend-Results/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// authRoutes กำหนด route สำหรับ auth (otp/signup/login/logout)
func authRoutes(router fiber.Router, ac *controllers.AuthController, requireAuth fiber.Handler) {
	auth := router.Group("/auth")

	auth.Post("/request-otp", ac.RequestOTP)
	auth.Post("/signup", ac.Signup)
	auth.Post("/login", ac.Login)
	auth.Post("/logout", requireAuth, ac.Logout)
}
