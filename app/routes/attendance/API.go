package attendance

import (
	"errors"
	"log"
	"time"

	"github.com/Deepak1064/PragatiPath-Academy/app/config"
	"github.com/Deepak1064/PragatiPath-Academy/app/database"
	"github.com/Deepak1064/PragatiPath-Academy/app/models"
	"github.com/Deepak1064/PragatiPath-Academy/app/services"
	"github.com/gofiber/fiber/v2"
)

// ScanStatusAPI reports the scan preconditions: whether a daily code is
// active, whether the network gate passes, and which slots are already
// marked today. Clients keep the scan buttons disabled until this says go.
func ScanStatusAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	status, err := engine.Status(userID, callerIP(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load scan status"})
	}
	return c.JSON(status)
}

// MarkAttendanceAPI runs the verification algorithm for one scanned payload.
func MarkAttendanceAPI(c *fiber.Ctx) error {
	type MarkRequest struct {
		Kind    string `json:"kind"`
		Payload string `json:"payload"`
	}

	var req MarkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID := c.Locals("user_id").(string)
	userName := c.Locals("user_name").(string)

	event, err := engine.Mark(services.MarkRequest{
		UserID:         userID,
		UserName:       userName,
		Kind:           models.EventKind(req.Kind),
		ScannedPayload: req.Payload,
		CallerIP:       callerIP(c),
	})
	if err != nil {
		return markError(c, err)
	}

	hub.Broadcast("attendance:new", event)

	return c.Status(201).JSON(fiber.Map{
		"message": "Attendance marked",
		"event":   event,
	})
}

// markError maps each verification failure to its status and fixed message.
// Every failure leaves the client on an interactive retry path.
func markError(c *fiber.Ctx, err error) error {
	var netErr *services.NetworkMismatchError
	var codeErr *services.CodeMismatchError

	switch {
	case errors.Is(err, services.ErrNoActiveCode):
		return c.Status(409).JSON(fiber.Map{"error": "No attendance code has been generated for today"})
	case errors.As(err, &netErr):
		return c.Status(403).JSON(fiber.Map{
			"error":       "Wrong WiFi network. Connect to the school network and try again",
			"required_ip": netErr.Required,
			"current_ip":  netErr.Actual,
		})
	case errors.As(err, &codeErr):
		return c.Status(400).JSON(fiber.Map{
			"error":   "Invalid QR Code. Please try again",
			"scanned": codeErr.Scanned,
		})
	case errors.Is(err, services.ErrArrivalMissing):
		return c.Status(409).JSON(fiber.Map{"error": "Mark your arrival before marking leaving"})
	case errors.Is(err, services.ErrAlreadyMarked):
		return c.Status(409).JSON(fiber.Map{"error": "Attendance already marked for this slot today"})
	default:
		log.Printf("Attendance mark failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Database Error: Could not save attendance"})
	}
}

// TodayAPI returns the caller's arrival/leaving pair for the current date.
func TodayAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	today := services.DateString(time.Now())

	events, err := database.GetEventsForUserAndDate(config.GetDB(), userID, today)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	pair := &models.DayPair{Date: today}
	for _, ev := range events {
		switch ev.Kind {
		case models.KindArrival:
			if pair.Arrival == nil {
				pair.Arrival = ev
			}
		case models.KindLeaving:
			if pair.Leaving == nil {
				pair.Leaving = ev
			}
		}
	}
	return c.JSON(pair)
}

// HistoryAPI returns the caller's recent events grouped by month, newest
// first.
func HistoryAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}

	events, err := database.GetEventsForUser(config.GetDB(), userID, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch history"})
	}

	return c.JSON(fiber.Map{
		"months": services.GroupHistoryByMonth(events),
		"count":  len(events),
	})
}

// ResetAPI deletes the caller's events for today (self-service test mode).
func ResetAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	deleted, err := engine.Reset(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reset attendance"})
	}

	return c.JSON(fiber.Map{
		"message": "Attendance reset",
		"deleted": deleted,
	})
}

// AdminResetAPI deletes a chosen user's events for a chosen date.
func AdminResetAPI(c *fiber.Ctx) error {
	type ResetRequest struct {
		UserID string `json:"user_id"`
		Date   string `json:"date"`
	}

	var req ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "user_id is required"})
	}
	if req.Date == "" {
		req.Date = services.DateString(time.Now())
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	deleted, err := engine.ResetDate(req.UserID, req.Date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reset attendance"})
	}

	return c.JSON(fiber.Map{
		"message": "Attendance reset",
		"deleted": deleted,
	})
}

// ToggleLateAPI flips the late flag on an arrival record (emergency
// correction from the employee detail view).
func ToggleLateAPI(c *fiber.Ctx) error {
	type ToggleRequest struct {
		IsLate bool `json:"is_late"`
	}

	eventID := c.Params("id")
	var req ToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := database.SetEventLateFlag(config.GetDB(), eventID, req.IsLate); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Arrival record not found"})
	}

	return c.JSON(fiber.Map{"message": "Late status updated"})
}
