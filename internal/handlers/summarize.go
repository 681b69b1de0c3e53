package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/pipeline"
	"github.com/codebuildervaibhav/meeting-minutes/internal/summary"
	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

const msgBadJSON = "invalid JSON body"

type summarizeRequest struct {
	Text    string               `json:"text"`
	Options types.SummaryOptions `json:"options"`
}

type briefRequest struct {
	Text      string `json:"text"`
	MaxLength int    `json:"max_length"`
}

// SummaryHandler serves the text-only endpoints
type SummaryHandler struct {
	processor *pipeline.Processor
	logger    *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(processor *pipeline.Processor, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{processor: processor, logger: logger}
}

// Summarize handles POST /api/summarize
func (h *SummaryHandler) Summarize(c *fiber.Ctx) error {
	var req summarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return types.ValidationError(msgBadJSON)
	}

	result, err := h.processor.Summarize(providerContext(), req.Text, req.Options)
	if err != nil {
		return err
	}
	return ok(c, result)
}

// Brief handles POST /api/summarize/brief
func (h *SummaryHandler) Brief(c *fiber.Ctx) error {
	var req briefRequest
	if err := c.BodyParser(&req); err != nil {
		return types.ValidationError(msgBadJSON)
	}
	if req.MaxLength <= 0 {
		req.MaxLength = summary.DefaultBriefSize
	}

	text, err := h.processor.Brief(providerContext(), req.Text, req.MaxLength)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"summary": text})
}
