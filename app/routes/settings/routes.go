package settings

import (
	"github.com/Deepak1064/PragatiPath-Academy/app/config"
	"github.com/Deepak1064/PragatiPath-Academy/app/realtime"
	"github.com/Deepak1064/PragatiPath-Academy/app/routes/auth"
	"github.com/Deepak1064/PragatiPath-Academy/app/services"
	"github.com/gofiber/fiber/v2"
)

var (
	resolver *services.IPResolver
	hub      *realtime.Hub
)

func SetupSettingsRoutes(app *fiber.App, h *realtime.Hub) {
	resolver = services.NewIPResolver(config.AppConfig.TestIP, config.AppConfig.IPLookupURL)
	hub = h

	api := app.Group("/api/settings")
	api.Use(auth.AuthMiddleware)

	// Teachers read the timings that drive their lateness banner; writes are
	// admin only.
	api.Get("/holidays", GetHolidaySettingsAPI)
	api.Put("/holidays", auth.AdminMiddleware, SaveHolidaySettingsAPI)

	api.Get("/network", auth.AdminMiddleware, GetNetworkConfigAPI)
	api.Put("/network", auth.AdminMiddleware, SaveNetworkConfigAPI)

	network := app.Group("/api/network")
	network.Use(auth.AuthMiddleware)
	network.Get("/my-ip", MyIPAPI)
	network.Get("/public-ip", PublicIPAPI)
}
