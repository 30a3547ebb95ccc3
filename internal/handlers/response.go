package handlers

import (
	"errors"
	"log"

	"kvauth/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Envelope is the body of every API response.
type Envelope struct {
	Status  string      `json:"status"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Status:  statusSuccess,
		Message: message,
		Data:    data,
	})
}

// ErrorHandler renders any error returned by a handler or middleware into
// the error envelope. Domain errors keep their code and status; Fiber's own
// errors (unknown route, wrong method) keep their status; anything else is an
// internal error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(Envelope{
			Status:  statusError,
			Code:    httpErrorCode(fiberErr.Code),
			Message: fiberErr.Message,
		})
	}

	appErr := apperrors.From(err)
	if appErr.Status >= fiber.StatusInternalServerError {
		log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(appErr.Status).JSON(Envelope{
		Status:  statusError,
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

func httpErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	default:
		if status >= fiber.StatusInternalServerError {
			return apperrors.ErrInternal.Code
		}
		return "HTTP_ERROR"
	}
}
