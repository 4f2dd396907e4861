package attendance

import (
	"math/rand"
	"time"

	"github.com/Deepak1064/PragatiPath-Academy/app/config"
	"github.com/Deepak1064/PragatiPath-Academy/app/database"
	"github.com/Deepak1064/PragatiPath-Academy/app/models"
	"github.com/Deepak1064/PragatiPath-Academy/app/services"
	"github.com/gofiber/fiber/v2"
)

// SeedTestDataAPI fills the last N days with randomized arrival/leaving
// records for every profiled teacher. Demo tooling only; refused outside
// dev environments.
func SeedTestDataAPI(c *fiber.Ctx) error {
	if config.IsProduction() {
		return c.Status(403).JSON(fiber.Map{"error": "Seeding is disabled in production"})
	}

	type SeedRequest struct {
		Days int `json:"days"`
	}

	var req SeedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Days < 1 || req.Days > 90 {
		req.Days = 14
	}

	db := config.GetDB()
	profiles, err := database.ListProfiles(db, "")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load roster"})
	}

	settings, err := database.GetHolidaySettings(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load settings"})
	}

	created := 0
	now := time.Now()
	for _, p := range profiles {
		for i := 1; i <= req.Days; i++ {
			date := now.AddDate(0, 0, -i)
			dateStr := services.DateString(date)
			if settings.IsWeeklyOff(date.Weekday()) || settings.IsHoliday(dateStr) {
				continue
			}

			// Arrival between 08:00 and 10:00.
			arrivedAt := time.Date(date.Year(), date.Month(), date.Day(), 8, 0, 0, 0, time.Local).
				Add(time.Duration(rand.Intn(120)) * time.Minute)
			arrival := &models.AttendanceEvent{
				UserID:          p.ID,
				UserName:        p.Name,
				DateString:      dateStr,
				RecordedAt:      arrivedAt,
				Kind:            models.KindArrival,
				IPAddress:       "127.0.0.1",
				Method:          "seeded",
				NetworkVerified: true,
				IsLate:          rand.Intn(100) < 25,
			}
			if ok, err := database.InsertBackdatedEvent(db, arrival); err == nil && ok {
				created++
			}

			// Leaving between 16:00 and 18:00, 80% of days.
			if rand.Intn(100) < 80 {
				leftAt := time.Date(date.Year(), date.Month(), date.Day(), 16, 0, 0, 0, time.Local).
					Add(time.Duration(rand.Intn(120)) * time.Minute)
				leaving := &models.AttendanceEvent{
					UserID:          p.ID,
					UserName:        p.Name,
					DateString:      dateStr,
					RecordedAt:      leftAt,
					Kind:            models.KindLeaving,
					IPAddress:       "127.0.0.1",
					Method:          "seeded",
					NetworkVerified: true,
				}
				if ok, err := database.InsertBackdatedEvent(db, leaving); err == nil && ok {
					created++
				}
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "Test data generated",
		"created": created,
	})
}
