package dailycode

import (
	"github.com/Deepak1064/PragatiPath-Academy/app/services"
	"github.com/gofiber/fiber/v2"
)

// CodeStatusAPI tells any signed-in user whether today's code exists, so
// scan buttons can enable without exposing the code value.
func CodeStatusAPI(c *fiber.Ctx) error {
	code, err := codeService.Current()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check daily code"})
	}
	return c.JSON(fiber.Map{"active": code != nil})
}

// CurrentCodeAPI returns today's full code record for the admin QR screen,
// including the JSON payload to encode.
func CurrentCodeAPI(c *fiber.Ctx) error {
	code, err := codeService.Current()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load daily code"})
	}
	if code == nil {
		return c.Status(404).JSON(fiber.Map{"error": "No code generated for today"})
	}
	return c.JSON(fiber.Map{
		"code":       code,
		"qr_payload": fiber.Map{"type": services.QRPayloadType, "code": code.Code},
	})
}

// GenerateCodeAPI creates a fresh code for today, superseding any earlier
// one, and pushes it to connected clients.
func GenerateCodeAPI(c *fiber.Ctx) error {
	code, err := codeService.GenerateForToday()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate code"})
	}

	hub.Broadcast("daily_code:new", code)

	return c.Status(201).JSON(fiber.Map{
		"message":    "Daily code generated",
		"code":       code,
		"qr_payload": fiber.Map{"type": services.QRPayloadType, "code": code.Code},
	})
}
