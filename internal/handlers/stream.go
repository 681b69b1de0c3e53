package handlers

import (
	"bytes"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/pipeline"
	"github.com/codebuildervaibhav/meeting-minutes/internal/recorder"
	"github.com/codebuildervaibhav/meeting-minutes/internal/storage"
	"github.com/codebuildervaibhav/meeting-minutes/internal/transcription"
	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

// Control messages
const (
	cmdStart  = "START"
	cmdStop   = "STOP"
	cmdCancel = "CANCEL"
)

// StreamHandler records audio sent over a websocket. Text frames carry
// control messages, binary frames carry chunks.
type StreamHandler struct {
	processor *pipeline.Processor
	scratch   *storage.ScratchStore
	maxSize   int64
	logger    *zap.Logger
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(processor *pipeline.Processor, scratch *storage.ScratchStore, maxSize int64, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{
		processor: processor,
		scratch:   scratch,
		maxSize:   maxSize,
		logger:    logger,
	}
}

// UpgradeRequired rejects plain HTTP requests to the websocket route
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handle processes WebSocket connections
func (h *StreamHandler) Handle(c *websocket.Conn) {
	defer c.Close()

	s := h.newSession()
	defer s.recoverPanic()
	s.logger.Info("recorder connection established")

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if s.rec.State() == recorder.StateRecording {
				s.rec.Cancel()
				s.logger.Info("connection closed while recording, recording discarded")
			} else {
				s.logger.Debug("recorder connection closed", zap.Error(err))
			}
			return
		}

		reply := s.handle(messageType, message)
		if reply == nil {
			continue
		}
		if err := c.WriteJSON(reply); err != nil {
			s.logger.Warn("failed to write reply", zap.Error(err))
			s.rec.Cancel()
			return
		}
	}
}

type session struct {
	h        *StreamHandler
	rec      *recorder.Recorder
	language string
	logger   *zap.Logger
}

func (h *StreamHandler) newSession() *session {
	return &session{
		h:      h,
		rec:    recorder.New(h.maxSize),
		logger: h.logger.With(zap.String("conn", uuid.New().String())),
	}
}

// recoverPanic keeps a failing session from taking the process down. The
// connection goroutine is outside fiber's recover middleware.
func (s *session) recoverPanic() {
	if r := recover(); r != nil {
		if s.rec.State() == recorder.StateRecording {
			s.rec.Cancel()
		}
		s.logger.Error("recorder session panicked", zap.Any("panic", r), zap.Stack("stack"))
	}
}

// handle reacts to one frame; a nil reply means nothing to send
func (s *session) handle(messageType int, message []byte) fiber.Map {
	switch messageType {
	case websocket.BinaryMessage:
		if err := s.rec.Append(message); err != nil {
			return streamError(err)
		}
		return nil
	case websocket.TextMessage:
		return s.control(strings.TrimSpace(string(message)))
	}
	return nil
}

func (s *session) control(msg string) fiber.Map {
	fields := strings.Fields(msg)
	if len(fields) == 0 {
		return streamError(errors.New("empty control message"))
	}

	switch strings.ToUpper(fields[0]) {
	case cmdStart:
		language, mimeType := parseStartArgs(fields[1:])
		if err := s.rec.Start(mimeType); err != nil {
			return streamError(err)
		}
		s.language = language
		s.logger.Info("recording started", zap.String("language", language), zap.String("mime", mimeType))
		return fiber.Map{"success": true, "message": "recording"}

	case cmdCancel:
		if err := s.rec.Cancel(); err != nil {
			return streamError(err)
		}
		s.logger.Info("recording cancelled")
		return fiber.Map{"success": true, "message": "cancelled"}

	case cmdStop:
		rec, err := s.rec.Stop()
		if err != nil {
			return streamError(err)
		}
		s.logger.Info("recording stopped",
			zap.String("name", rec.Name),
			zap.Int("chunks", rec.Chunks),
			zap.Int("bytes", len(rec.Data)),
			zap.Duration("duration", rec.Duration()),
		)
		return s.process(rec)
	}

	return streamError(errors.New("unknown control message " + fields[0]))
}

// process runs the finished recording through the same path as an upload
func (s *session) process(rec *recorder.Recording) fiber.Map {
	if err := transcription.ValidateUpload(rec.Name, int64(len(rec.Data)), s.h.maxSize); err != nil {
		return errorMap(types.AsError(err), nil)
	}

	audio, err := s.h.scratch.Save(bytes.NewReader(rec.Data), rec.Name)
	if err != nil {
		return errorMap(types.InternalError("failed to save recording", err), nil)
	}

	result, err := s.h.processor.Process(providerContext(), audio, s.language)
	if err != nil {
		var transcript *types.TranscriptionResult
		if result != nil {
			transcript = result.Transcription
		}
		return errorMap(types.AsError(err), transcript)
	}
	return fiber.Map{"success": true, "data": result}
}

// parseStartArgs accepts "[language] [mime]" in any order; a MIME type
// always contains a slash
func parseStartArgs(args []string) (language, mimeType string) {
	for _, a := range args {
		if strings.Contains(a, "/") {
			mimeType = a
		} else if language == "" {
			language = a
		}
	}
	return language, mimeType
}

func streamError(err error) fiber.Map {
	return fiber.Map{"success": false, "error": err.Error()}
}

func errorMap(e *types.Error, transcript *types.TranscriptionResult) fiber.Map {
	m := fiber.Map{"success": false, "error": publicMessage(e)}
	if e.Step != "" {
		m["step"] = e.Step
	}
	if transcript != nil {
		m["transcription"] = transcript
	}
	return m
}
