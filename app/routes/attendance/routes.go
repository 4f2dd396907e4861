package attendance

import (
	"github.com/Deepak1064/PragatiPath-Academy/app/config"
	"github.com/Deepak1064/PragatiPath-Academy/app/database"
	"github.com/Deepak1064/PragatiPath-Academy/app/realtime"
	"github.com/Deepak1064/PragatiPath-Academy/app/routes/auth"
	"github.com/Deepak1064/PragatiPath-Academy/app/services"
	"github.com/gofiber/fiber/v2"
)

var (
	engine   *services.Engine
	resolver *services.IPResolver
	hub      *realtime.Hub
)

func SetupAttendanceRoutes(app *fiber.App, h *realtime.Hub) {
	store := database.NewStore(config.GetDB())
	engine = services.NewEngine(store, store, store, store)
	resolver = services.NewIPResolver(config.AppConfig.TestIP, config.AppConfig.IPLookupURL)
	hub = h

	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware)

	api.Get("/status", ScanStatusAPI)
	api.Post("/mark", MarkAttendanceAPI)
	api.Get("/today", TodayAPI)
	api.Get("/history", HistoryAPI)
	api.Post("/reset", ResetAPI)

	// Admin corrections
	api.Post("/:id/toggle-late", auth.AdminMiddleware, ToggleLateAPI)
	api.Post("/admin/reset", auth.AdminMiddleware, AdminResetAPI)
	api.Post("/admin/seed", auth.AdminMiddleware, SeedTestDataAPI)
}

func callerIP(c *fiber.Ctx) string {
	return resolver.CallerIP(c.Get("X-Forwarded-For"), c.IP())
}
