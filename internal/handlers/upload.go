package handlers

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/pipeline"
	"github.com/codebuildervaibhav/meeting-minutes/internal/storage"
	"github.com/codebuildervaibhav/meeting-minutes/internal/transcription"
	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

// UploadHandler handles audio uploads for transcription and processing
type UploadHandler struct {
	processor *pipeline.Processor
	scratch   *storage.ScratchStore
	maxSize   int64
	logger    *zap.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(processor *pipeline.Processor, scratch *storage.ScratchStore, maxSize int64, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		processor: processor,
		scratch:   scratch,
		maxSize:   maxSize,
		logger:    logger,
	}
}

// Transcribe handles POST /api/transcribe
func (h *UploadHandler) Transcribe(c *fiber.Ctx) error {
	audio, err := h.receive(c)
	if err != nil {
		return err
	}

	result, err := h.processor.Transcribe(providerContext(), audio, c.FormValue("language"))
	if err != nil {
		return err
	}
	return ok(c, result)
}

// Process handles POST /api/process
func (h *UploadHandler) Process(c *fiber.Ctx) error {
	audio, err := h.receive(c)
	if err != nil {
		return err
	}

	result, err := h.processor.Process(providerContext(), audio, c.FormValue("language"))
	if err != nil {
		return processFailure(c, result, err)
	}
	return ok(c, result)
}

// processFailure reports the failed step and, past transcription, the
// transcription that was obtained
func processFailure(c *fiber.Ctx, result *types.MeetingResult, err error) error {
	if result == nil || result.Transcription == nil {
		return err
	}
	appErr := types.AsError(err)
	return failure(c, appErr.Status(), publicMessage(appErr), appErr.Step, fiber.Map{
		"transcription": result.Transcription,
	})
}

// receive validates the multipart "audio" field and stores it in scratch.
// Rejected uploads are never written.
func (h *UploadHandler) receive(c *fiber.Ctx) (*types.UploadedAudio, error) {
	file, err := c.FormFile("audio")
	if err != nil {
		return nil, types.ValidationError(msgNoAudio)
	}

	if err := transcription.ValidateUpload(file.Filename, file.Size, h.maxSize); err != nil {
		h.logger.Info("upload rejected",
			zap.String("file", file.Filename),
			zap.Int64("size", file.Size),
			zap.Error(err),
		)
		return nil, err
	}

	return h.save(c, file)
}

func (h *UploadHandler) save(c *fiber.Ctx, file *multipart.FileHeader) (*types.UploadedAudio, error) {
	path := h.scratch.NewPath(file.Filename)
	if err := c.SaveFile(file, path); err != nil {
		h.scratch.Remove(path)
		return nil, types.InternalError("failed to save file", err)
	}

	h.logger.Debug("upload stored", zap.String("file", file.Filename), zap.String("path", path))
	return &types.UploadedAudio{
		Path:         path,
		OriginalName: file.Filename,
		Extension:    strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), "."),
		Size:         file.Size,
	}, nil
}
