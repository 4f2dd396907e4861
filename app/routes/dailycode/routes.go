package dailycode

import (
	"github.com/Deepak1064/PragatiPath-Academy/app/config"
	"github.com/Deepak1064/PragatiPath-Academy/app/database"
	"github.com/Deepak1064/PragatiPath-Academy/app/realtime"
	"github.com/Deepak1064/PragatiPath-Academy/app/routes/auth"
	"github.com/Deepak1064/PragatiPath-Academy/app/services"
	"github.com/gofiber/fiber/v2"
)

var (
	codeService *services.DailyCodeService
	hub         *realtime.Hub
)

func SetupDailyCodeRoutes(app *fiber.App, h *realtime.Hub) {
	codeService = services.NewDailyCodeService(database.NewStore(config.GetDB()))
	hub = h

	api := app.Group("/api/daily-code")
	api.Use(auth.AuthMiddleware)

	// Teachers only learn whether a code exists; the value itself is what
	// the projected QR carries.
	api.Get("/status", CodeStatusAPI)

	api.Get("/current", auth.AdminMiddleware, CurrentCodeAPI)
	api.Post("/generate", auth.AdminMiddleware, GenerateCodeAPI)
}
