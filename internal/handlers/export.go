package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/meeting-minutes/internal/export"
	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

// ExportHandler renders a meeting result as a download
type ExportHandler struct {
	exporter *export.Exporter
}

// NewExportHandler creates a new export handler
func NewExportHandler(exporter *export.Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Handle serves POST /api/export/:format
func (h *ExportHandler) Handle(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Params("format"))
	if err != nil {
		return err
	}

	var doc export.Document
	if err := c.BodyParser(&doc); err != nil {
		return types.ValidationError(msgBadJSON)
	}

	file, err := h.exporter.Render(c.UserContext(), format, &doc)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Send(file.Data)
}
