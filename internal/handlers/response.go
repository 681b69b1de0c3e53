package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

const (
	msgNoAudio      = "please upload an audio file"
	msgFileTooLarge = "file too large"
	msgNotFound     = "endpoint not found"
	msgInternal     = "internal server error"
)

// ok writes {success:true, data}
func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// failure writes {success:false, error[, step]}; extra fields are merged in
func failure(c *fiber.Ctx, status int, msg, step string, extra fiber.Map) error {
	body := fiber.Map{
		"success": false,
		"error":   msg,
	}
	if step != "" {
		body["step"] = step
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// providerContext is detached from the request so that a client abort does
// not cancel an in-flight provider call. Callers bound it with the
// provider timeout.
func providerContext() context.Context {
	return context.Background()
}

// publicMessage is what the client sees for an application error
func publicMessage(e *types.Error) string {
	if e.Kind == types.KindInternal && e.Message == "" {
		return msgInternal
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// ErrorHandler converts every error reaching fiber into the JSON error shape
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusRequestEntityTooLarge:
				return failure(c, fiber.StatusBadRequest, msgFileTooLarge, "", nil)
			case fiber.StatusNotFound:
				return failure(c, fiber.StatusNotFound, msgNotFound, "", nil)
			}
			if fe.Code >= fiber.StatusInternalServerError {
				logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			}
			return failure(c, fe.Code, fe.Message, "", nil)
		}

		appErr := types.AsError(err)
		if appErr.Kind == types.KindValidation {
			logger.Debug("request rejected", zap.String("path", c.Path()), zap.String("reason", appErr.Message))
		} else {
			logger.Error("request failed",
				zap.String("path", c.Path()),
				zap.String("kind", appErr.Kind.String()),
				zap.String("step", appErr.Step),
				zap.Error(err),
			)
		}
		return failure(c, appErr.Status(), publicMessage(appErr), appErr.Step, nil)
	}
}

// asStatus is the status ErrorHandler will answer err with
func asStatus(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusRequestEntityTooLarge {
			return fiber.StatusBadRequest
		}
		return fe.Code
	}
	return types.AsError(err).Status()
}

// NotFound answers unmatched API routes
func NotFound(c *fiber.Ctx) error {
	return failure(c, fiber.StatusNotFound, msgNotFound, "", nil)
}
