package settings

import (
	"sort"
	"time"

	"github.com/Deepak1064/PragatiPath-Academy/app/config"
	"github.com/Deepak1064/PragatiPath-Academy/app/database"
	"github.com/Deepak1064/PragatiPath-Academy/app/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetHolidaySettingsAPI(c *fiber.Ctx) error {
	settings, err := database.GetHolidaySettings(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load settings"})
	}
	return c.JSON(settings)
}

// SaveHolidaySettingsAPI replaces the holiday singleton: weekly offs, the
// custom holiday list (kept sorted, duplicate dates rejected) and the school
// timings the lateness computation reads.
func SaveHolidaySettingsAPI(c *fiber.Ctx) error {
	type SaveRequest struct {
		WeeklyOffs   []int            `json:"weeklyOffs" validate:"dive,min=0,max=6"`
		Holidays     []models.Holiday `json:"holidays" validate:"dive"`
		ArrivalTime  string           `json:"arrivalTime" validate:"required"`
		LeavingTime  string           `json:"leavingTime" validate:"required"`
		GraceMinutes int              `json:"graceMinutes" validate:"min=0,max=60"`
	}

	var req SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed: " + err.Error()})
	}

	for _, hhmm := range []string{req.ArrivalTime, req.LeavingTime} {
		if _, err := time.Parse("15:04", hhmm); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Times must use the HH:MM format"})
		}
	}

	seen := make(map[string]bool)
	for _, h := range req.Holidays {
		if _, err := time.Parse("2006-01-02", h.Date); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Holiday dates must use YYYY-MM-DD"})
		}
		if seen[h.Date] {
			return c.Status(400).JSON(fiber.Map{"error": "This date is already added"})
		}
		seen[h.Date] = true
	}
	sort.Slice(req.Holidays, func(i, j int) bool { return req.Holidays[i].Date < req.Holidays[j].Date })

	settings := &models.HolidaySettings{
		WeeklyOffs:   req.WeeklyOffs,
		Holidays:     req.Holidays,
		ArrivalTime:  req.ArrivalTime,
		LeavingTime:  req.LeavingTime,
		GraceMinutes: req.GraceMinutes,
		UpdatedAt:    time.Now().Format(time.RFC3339),
	}
	if settings.WeeklyOffs == nil {
		settings.WeeklyOffs = []int{}
	}
	if settings.Holidays == nil {
		settings.Holidays = []models.Holiday{}
	}

	if err := database.SaveHolidaySettings(config.GetDB(), settings); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save settings"})
	}

	hub.Broadcast("settings:updated", fiber.Map{"key": models.SettingHolidays})

	return c.JSON(fiber.Map{
		"message":  "Settings saved",
		"settings": settings,
	})
}

func GetNetworkConfigAPI(c *fiber.Ctx) error {
	cfg, err := database.GetNetworkConfig(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load network config"})
	}
	return c.JSON(cfg)
}

// SaveNetworkConfigAPI sets the whitelisted school IP. An empty value clears
// the gate.
func SaveNetworkConfigAPI(c *fiber.Ctx) error {
	type SaveRequest struct {
		SchoolIP string `json:"schoolIP" validate:"omitempty,ip"`
	}

	var req SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "schoolIP must be a valid IP address"})
	}

	cfg := &models.NetworkConfig{
		SchoolIP:  req.SchoolIP,
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	if err := database.SaveNetworkConfig(config.GetDB(), cfg); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save network config"})
	}

	hub.Broadcast("settings:updated", fiber.Map{"key": models.SettingNetworkConfig})

	return c.JSON(fiber.Map{
		"message": "Network config saved",
		"config":  cfg,
	})
}

// MyIPAPI echoes the address the attendance gate will compare, so the client
// banner and the gate can never disagree.
func MyIPAPI(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ip": resolver.CallerIP(c.Get("X-Forwarded-For"), c.IP())})
}

// PublicIPAPI reports the server-observed public address via the external
// lookup service.
func PublicIPAPI(c *fiber.Ctx) error {
	ip, err := resolver.PublicIP()
	if err != nil {
		return c.Status(502).JSON(fiber.Map{"error": "IP lookup failed"})
	}
	return c.JSON(fiber.Map{"ip": ip})
}
