// Package response implements the JSON envelope shared by every endpoint:
// {success, message, data?, error?}. List endpoints wrap their data in a
// pagination block.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response body.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Page is the payload shape for list endpoints.
type Page struct {
	Data                  interface{} `json:"data"`
	Total                 int64       `json:"total"`
	TotalPages            int         `json:"totalPages"`
	CurrentPage           int         `json:"currentPage"`
	Limit                 int         `json:"limit"`
	RecordsPerPageOptions []int       `json:"recordsPerPageOptions"`
}

// OK writes a 200 success envelope.
func OK(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope.
func Created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// BadRequest writes a 400 rejection with a human-readable reason.
func BadRequest(c echo.Context, reason string) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: reason, Error: reason})
}

// Unauthorized writes a 401 envelope.
func Unauthorized(c echo.Context, reason string) error {
	return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: reason, Error: reason})
}

// Forbidden writes a 403 envelope.
func Forbidden(c echo.Context, reason string) error {
	return c.JSON(http.StatusForbidden, Envelope{Success: false, Message: reason, Error: reason})
}

// NotFound writes a 404 envelope.
func NotFound(c echo.Context, reason string) error {
	return c.JSON(http.StatusNotFound, Envelope{Success: false, Message: reason, Error: reason})
}

// Internal writes a generic 500 envelope. Internal details are never leaked
// to the caller; they belong in the server-side log.
func Internal(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Message: "internal server error",
		Error:   "internal server error",
	})
}
