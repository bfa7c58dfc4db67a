package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todo-api/internal/config"
	"todo-api/pkg/logger"
)

// Admin handlers

// requireAdmin menulis respons 403 dan mengembalikan false jika caller
// bukan admin.
func requireAdmin(c *fiber.Ctx) bool {
	role := c.Locals("role").(string)
	if role != "admin" {
		logger.SecurityLogger.Warn("Forbidden admin access", zap.String("role", role))
		c.Status(403).JSON(fiber.Map{
			"message": "Forbidden",
			"success": false,
			"status":  403,
		})
		return false
	}
	return true
}

// GetStats mengembalikan statistik sederhana untuk dashboard admin.
func GetStats(c *fiber.Ctx) error {
	if !requireAdmin(c) {
		return nil
	}

	totalUsers, err := config.UserRepo.Count()
	if err != nil {
		logger.ErrorLogger.Error("Error counting users", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error counting users",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Admin stats fetched")
	return c.JSON(fiber.Map{
		"success": true,
		"status":  200,
		"data": fiber.Map{
			"totalUsers": totalUsers,
		},
	})
}

// GetAllUsers mengembalikan semua user, hanya untuk admin.
func GetAllUsers(c *fiber.Ctx) error {
	if !requireAdmin(c) {
		return nil
	}

	users, err := config.UserRepo.GetAll()
	if err != nil {
		logger.ErrorLogger.Error("Error fetching users", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching users",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Users fetched", zap.Int("count", len(users)))
	return c.JSON(fiber.Map{
		"success": true,
		"status":  200,
		"data":    users,
	})
}
