package handlers

import (
	"errors"
	"fmt"
	"strconv"

	errprocess "taskflow_realtime/pkg/err"
	"taskflow_realtime/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ConnectCheck check api connect start
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("realtime service start!")
}

// DebugLogFlag toggle debug log flag
func DebugLogFlag(c *fiber.Ctx) error {
	service := c.Query("service")
	statusStr := c.Query("status")
	logger.Log.Info("debug", zap.String("service", service), zap.String("status", statusStr))

	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	logger.Log.SetDebugMode(status)
	return c.SendString(fmt.Sprintf("service[%s]: debug mode is : %t", service, status))
}

// errorResponse map use case error category to http status
func errorResponse(c *fiber.Ctx, action string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, errprocess.ErrMalformed):
		status = fiber.StatusBadRequest
	case errors.Is(err, errprocess.ErrUnauthorized):
		status = fiber.StatusForbidden
	case errors.Is(err, errprocess.ErrNotFound):
		status = fiber.StatusNotFound
	}

	if status == fiber.StatusInternalServerError {
		logger.Log.Error(action, zap.String("path", c.Path()), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"message": "Failed to " + action, "error": err.Error()})
	}
	return c.Status(status).JSON(fiber.Map{"message": err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request"})
}
