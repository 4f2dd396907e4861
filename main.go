package main

import (
	"log"
	"strings"

	"github.com/Deepak1064/PragatiPath-Academy/app/config"
	"github.com/Deepak1064/PragatiPath-Academy/app/database"
	"github.com/Deepak1064/PragatiPath-Academy/app/realtime"
	"github.com/Deepak1064/PragatiPath-Academy/app/routes/attendance"
	"github.com/Deepak1064/PragatiPath-Academy/app/routes/auth"
	"github.com/Deepak1064/PragatiPath-Academy/app/routes/dailycode"
	"github.com/Deepak1064/PragatiPath-Academy/app/routes/reports"
	"github.com/Deepak1064/PragatiPath-Academy/app/routes/settings"
	"github.com/Deepak1064/PragatiPath-Academy/app/routes/teachers"
	"github.com/Deepak1064/PragatiPath-Academy/app/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
)

// customErrorHandler keeps every error response in the API's JSON shape.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Load configuration and connect to the database
	config.Load()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Bootstrap the admin account
	if err := database.EnsureAdminUser(config.GetDB(), config.AppConfig.AdminEmail, config.AppConfig.AdminPassword); err != nil {
		log.Fatal("Failed to bootstrap admin account:", err)
	}

	// Realtime hub for pushing code/attendance/settings changes
	hub := realtime.NewHub()
	go hub.Run()

	// Start background scheduler
	if config.AppConfig.AutoGenerateCode {
		codes := services.NewDailyCodeService(database.NewStore(config.GetDB()))
		services.StartScheduler(codes, hub, config.AppConfig.CodeGenerationHour)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Routes
	auth.SetupAuthRoutes(app)
	attendance.SetupAttendanceRoutes(app, hub)
	dailycode.SetupDailyCodeRoutes(app, hub)
	reports.SetupReportsRoutes(app)
	settings.SetupSettingsRoutes(app, hub)
	teachers.SetupTeachersRoutes(app)

	// Websocket subscription endpoint; the JWT travels as a query parameter
	// because browsers cannot set headers on websocket upgrades.
	app.Get("/ws", func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" {
			token = c.Cookies("jwt_token")
		}
		if _, err := auth.ValidateJWT(token); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	}, websocket.New(hub.Handler()))

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	addr := ":" + strings.TrimPrefix(config.AppConfig.AppPort, ":")
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
