package routes

import (
	"Backend-Results/src/controllers"
	"Backend-Results/src/middleware"
	"Backend-Results/src/models"

	"github.com/gofiber/fiber/v2"
)

func resultRoutes(router fiber.Router, rc *controllers.ResultsController, requireAuth fiber.Handler) {
	results := router.Group("/results")

	results.Post("/upload", requireAuth, middleware.RequireRole(models.RoleAdmin), rc.UploadResults)
	results.Get("/student", rc.GetStudentResult)
	results.Get("/student/:grNumber/history", requireAuth, rc.GetStudentHistory)
}
