package api

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler maps typed API errors to their JSON responses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	switch e := err.(type) {
	case Error:
		return c.Status(e.Code).JSON(e)
	case ValidationError:
		return c.Status(e.Status).JSON(e)
	case QueryError:
		return c.Status(e.Code).JSON(e)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(NewError(fiberErr.Code, fiberErr.Message))
	}

	apiErr := NewError(fiber.StatusInternalServerError, err.Error())
	slog.Error("request failed", "code", apiErr.Code, "error", apiErr.Message)
	return c.Status(apiErr.Code).JSON(apiErr)
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e Error) Error() string {
	return e.Message
}

func NewError(code int, err string) Error {
	return Error{
		Code:    code,
		Message: err,
	}
}

type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(errors map[string]string) ValidationError {
	return ValidationError{
		Status: fiber.StatusUnprocessableEntity,
		Errors: errors,
	}
}

// QueryError is the failure shape of the query endpoint: any internal error is
// wrapped into a 500 with a detail message.
type QueryError struct {
	Code   int    `json:"-"`
	Detail string `json:"detail"`
}

func (e QueryError) Error() string {
	return e.Detail
}

func ErrQueryFailed(err error) QueryError {
	return QueryError{
		Code:   fiber.StatusInternalServerError,
		Detail: fmt.Sprintf("Error querying document: %s", err),
	}
}

func ErrBadRequest() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid JSON request",
	}
}

func ErrInvalidID() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid id given",
	}
}

func ErrMissingTenantID() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "tenant_id is required",
	}
}

func ErrNotPDF() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "Only PDF files allowed",
	}
}
