package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Version is reported by the API index
const Version = "1.0.0"

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Health reports liveness only; upstream providers are not probed
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "meeting minutes service is running",
		"timestamp": time.Now().UTC().Format(timestampLayout),
	})
}

// Index lists the API endpoints
func Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Meeting Minutes API",
		"version": Version,
		"endpoints": fiber.Map{
			"transcribe": "POST /api/transcribe",
			"summarize":  "POST /api/summarize",
			"brief":      "POST /api/summarize/brief",
			"process":    "POST /api/process",
			"export":     "POST /api/export/:format",
			"record":     "GET /api/record (websocket)",
			"health":     "GET /api/health",
		},
	})
}
