package utils

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// DataResponse wraps data in the {success, data} envelope used by the admin API
func DataResponse(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// MessageResponse sends {success: true, message}
func MessageResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

// ErrorResponse sends the standard error body
func ErrorResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Success: false,
		Message: message,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// MessageResponseStruct defines the schema for message only success responses
type MessageResponseStruct struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
