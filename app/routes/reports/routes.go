package reports

import (
	"github.com/Deepak1064/PragatiPath-Academy/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

func SetupReportsRoutes(app *fiber.App) {
	api := app.Group("/api/reports")
	api.Use(auth.AuthMiddleware, auth.AdminMiddleware)

	api.Get("/daily", DailyReportAPI)
	api.Get("/daily/export", ExportDailyReportAPI)
	api.Get("/monthly", MonthlyReportAPI)
	api.Get("/monthly/export", ExportMonthlyReportAPI)
	api.Get("/employee/:id", EmployeeMonthlyAPI)
}
