package utils

import "github.com/gofiber/fiber/v2"

// APIResponse defines the common structure returned by the API.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// JSONSuccess sends a successful JSON response with the provided status code, message and data.
func JSONSuccess(c *fiber.Ctx, statusCode int, message string, data interface{}) error {
	if statusCode == 0 {
		statusCode = fiber.StatusOK
	}

	response := APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}

	return c.Status(statusCode).JSON(response)
}

// JSONError sends an error JSON response with the provided status code, message and error details.
func JSONError(c *fiber.Ctx, statusCode int, message string, errDetail interface{}) error {
	if statusCode == 0 {
		statusCode = fiber.StatusInternalServerError
	}

	response := APIResponse{
		Status:  "error",
		Message: message,
		Errors:  errDetail,
	}

	return c.Status(statusCode).JSON(response)
}

func OK(c *fiber.Ctx, message string, data interface{}) error {
	return JSONSuccess(c, fiber.StatusOK, message, data)
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return JSONSuccess(c, fiber.StatusCreated, message, data)
}

func BadRequest(c *fiber.Ctx, message string, errDetail interface{}) error {
	return JSONError(c, fiber.StatusBadRequest, message, errDetail)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusUnauthorized, message, nil)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusForbidden, message, nil)
}

func NotFound(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusNotFound, message, nil)
}

func Conflict(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusConflict, message, nil)
}

func UnprocessableEntity(c *fiber.Ctx, message string, errDetail interface{}) error {
	return JSONError(c, fiber.StatusUnprocessableEntity, message, errDetail)
}

func BadGateway(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusBadGateway, message, nil)
}

func InternalServerError(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusInternalServerError, message, nil)
}
