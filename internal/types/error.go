package types

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// CustomError is an error with an HTTP status and a machine readable type
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// BadRequest returns a 400 CustomError
func BadRequest(message, errorType string) *CustomError {
	return &CustomError{Code: fiber.StatusBadRequest, Message: message, Type: errorType}
}

// Unauthorized returns a 401 CustomError
func Unauthorized(message, errorType string) *CustomError {
	return &CustomError{Code: fiber.StatusUnauthorized, Message: message, Type: errorType}
}

// NotFound returns a 404 CustomError
func NotFound(message, errorType string) *CustomError {
	return &CustomError{Code: fiber.StatusNotFound, Message: message, Type: errorType}
}
