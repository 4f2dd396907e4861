package teachers

import (
	"github.com/Deepak1064/PragatiPath-Academy/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

func SetupTeachersRoutes(app *fiber.App) {
	// Self-service profile (personal partition only)
	profile := app.Group("/api/profile")
	profile.Use(auth.AuthMiddleware)
	profile.Get("/", GetOwnProfileAPI)
	profile.Put("/", UpdateOwnProfileAPI)

	// Roster management (admin)
	api := app.Group("/api/teachers")
	api.Use(auth.AuthMiddleware, auth.AdminMiddleware)
	api.Get("/", ListTeachersAPI)
	api.Post("/", CreateTeacherAPI)
	api.Get("/:id", GetTeacherAPI)
	api.Put("/:id/employment", UpdateEmploymentAPI)
	api.Delete("/:id", DeleteTeacherAPI)
}
