package reports

import (
	"time"

	"github.com/Deepak1064/PragatiPath-Academy/app/config"
	"github.com/Deepak1064/PragatiPath-Academy/app/database"
	"github.com/Deepak1064/PragatiPath-Academy/app/services"
	"github.com/gofiber/fiber/v2"
)

// monthlyWindow bounds how far back the monthly summary looks.
const monthlyWindow = 500

func reportDate(c *fiber.Ctx) (string, error) {
	dateStr := c.Query("date", services.DateString(time.Now()))
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return "", err
	}
	return dateStr, nil
}

func reportMonth(c *fiber.Ctx) (time.Time, error) {
	monthStr := c.Query("month", time.Now().Format("2006-01"))
	return time.ParseInLocation("2006-01", monthStr, time.Local)
}

// DailyReportAPI returns one date's events grouped per teacher with the
// present and late counts.
func DailyReportAPI(c *fiber.Ctx) error {
	dateStr, err := reportDate(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	events, err := database.GetEventsByDate(config.GetDB(), dateStr)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(services.BuildDailyReport(dateStr, events))
}

// MonthlyReportAPI summarizes the recent event window for one calendar
// month, per teacher.
func MonthlyReportAPI(c *fiber.Ctx) error {
	month, err := reportMonth(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month format. Use YYYY-MM"})
	}

	events, err := database.GetRecentEvents(config.GetDB(), monthlyWindow)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	stats := services.BuildMonthlySummary(events, services.MonthKey(month))

	totalDays := 0
	for _, s := range stats {
		totalDays += s.Days
	}

	return c.JSON(fiber.Map{
		"month":      services.MonthKey(month),
		"stats":      stats,
		"total_days": totalDays,
	})
}

// EmployeeMonthlyAPI returns one teacher's month: date-keyed pairs plus the
// working-day denominator and attendance percentage.
func EmployeeMonthlyAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	month, err := reportMonth(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month format. Use YYYY-MM"})
	}

	db := config.GetDB()

	profile, err := database.GetProfileByID(db, id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load teacher"})
	}
	if profile == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}

	from := services.DateString(month)
	to := services.DateString(month.AddDate(0, 1, -1))

	events, err := database.GetEventsForUserInRange(db, id, from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	// Placeholder records hold attendance under the real account id once the
	// teacher signed up; fall back to matching by email.
	if len(events) == 0 && profile.Email != "" {
		if user, uerr := database.GetUserByEmail(db, profile.Email); uerr == nil && user.ID != id {
			events, err = database.GetEventsForUserInRange(db, user.ID, from, to)
			if err != nil {
				return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
			}
		}
	}

	settings, err := database.GetHolidaySettings(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load settings"})
	}

	detail := services.BuildMonthlyDetail(events, settings, month.Year(), month.Month())

	return c.JSON(fiber.Map{
		"teacher": profile,
		"detail":  detail,
	})
}
