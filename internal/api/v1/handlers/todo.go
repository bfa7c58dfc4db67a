package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todo-api/internal/config"
	"todo-api/internal/models"
	"todo-api/internal/repository"
	"todo-api/pkg/logger"
)

// Todo handlers

// TodoRequest dipakai untuk create dan full update (PUT).
type TodoRequest struct {
	Text        string           `json:"text" validate:"required"`
	Description string           `json:"description"`
	Status      string           `json:"status" validate:"omitempty,oneof=todo backlog inprogress done cancelled"`
	StartAt     models.Timestamp `json:"startAt"`
	EndAt       models.Timestamp `json:"endAt"`
}

// listCacheKey mengembalikan key cache untuk scope list tertentu.
func listCacheKey(role string, userID int) string {
	if role == "admin" {
		return "todos:all"
	}
	return fmt.Sprintf("todos:user:%d", userID)
}

// invalidateTodoCache menghapus cache list milik owner dan cache admin.
// Dipanggil sebelum response mutasi dikirim supaya list berikutnya
// selalu membaca hasil mutasi (read-your-writes).
func invalidateTodoCache(ownerID int) error {
	return config.RedisClient.Del(config.Ctx,
		"todos:all", fmt.Sprintf("todos:user:%d", ownerID)).Err()
}

// CreateTodo membuat todo baru milik user yang sedang login.
func CreateTodo(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	var req TodoRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create todo", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	// Status boleh kosong, default ke "todo"
	if req.Status == "" {
		req.Status = models.StatusTodo
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create todo", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	// validasi status di luar validator, status hanya boleh berisi:
	// todo, backlog, inprogress, done, cancelled
	if !models.ValidStatus(req.Status) {
		logger.ErrorLogger.Error("Invalid status in create todo")
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid status",
			"success": false,
			"status":  400,
		})
	}

	todo, err := config.TodoRepo.Insert(&models.Todo{
		UserID:      userID,
		Text:        req.Text,
		Description: req.Description,
		Status:      req.Status,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
	})
	if err != nil {
		logger.ErrorLogger.Error("Error creating todo", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating todo",
			"success": false,
			"status":  500,
		})
	}

	if err := invalidateTodoCache(userID); err != nil {
		logger.ErrorLogger.Error("Error invalidating todo cache", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error invalidating todo cache",
			"success": false,
			"status":  500,
		})
	}

	// id yang di-assign server ikut dikembalikan supaya client bisa
	// merekonsiliasi pending state lokalnya
	logger.AuditLogger.Info("Todo created", zap.Int("todo_id", todo.ID))
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"status":  201,
		"data":    todo,
	})
}

// ListTodos mengembalikan seluruh todo sebagai array polos.
// Admin melihat semua, user hanya miliknya sendiri.
func ListTodos(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)
	role := c.Locals("role").(string)

	// Coba ambil dari cache Redis dulu
	cacheKey := listCacheKey(role, userID)
	if cached, err := config.RedisClient.Get(config.Ctx, cacheKey).Result(); err == nil {
		var todos []models.Todo
		if err := json.Unmarshal([]byte(cached), &todos); err == nil {
			logger.ContextLogger.Debug("Todos served from cache", zap.String("key", cacheKey))
			return c.JSON(todos)
		}
	}

	var todos []models.Todo
	var err error
	if role == "admin" {
		todos, err = config.TodoRepo.GetAll()
	} else {
		todos, err = config.TodoRepo.GetAllByUser(userID)
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching todos", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching todos",
			"success": false,
			"status":  500,
		})
	}

	// Simpan ke cache dengan waktu kadaluarsa 1 jam, best effort
	if jsonData, err := json.Marshal(todos); err == nil {
		config.RedisClient.SetEX(config.Ctx, cacheKey, jsonData, time.Hour)
	}

	logger.AuditLogger.Info("Todos fetched", zap.Int("count", len(todos)))
	return c.JSON(todos)
}

// loadOwnedTodo mengambil todo berdasarkan param :id dan memeriksa
// apakah caller boleh memutasinya. Mengembalikan nil jika respons error
// sudah ditulis.
func loadOwnedTodo(c *fiber.Ctx) *models.Todo {
	userID := c.Locals("userID").(int)
	role := c.Locals("role").(string)

	todoID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid todo ID", zap.Error(err))
		c.Status(400).JSON(fiber.Map{
			"message": "Invalid todo ID",
			"success": false,
			"status":  400,
		})
		return nil
	}

	todo, err := config.TodoRepo.GetByID(todoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.AuditLogger.Warn("Todo not found", zap.Int("todo_id", todoID))
			c.Status(404).JSON(fiber.Map{
				"message": "Todo not found",
				"success": false,
				"status":  404,
			})
			return nil
		}
		logger.ErrorLogger.Error("Error fetching todo", zap.Error(err))
		c.Status(500).JSON(fiber.Map{
			"message": "Error fetching todo",
			"success": false,
			"status":  500,
		})
		return nil
	}

	if role != "admin" && todo.UserID != userID {
		logger.SecurityLogger.Warn("Forbidden todo access",
			zap.Int("user_id", userID), zap.Int("todo_id", todoID))
		c.Status(403).JSON(fiber.Map{
			"message": "Forbidden",
			"success": false,
			"status":  403,
		})
		return nil
	}
	return todo
}

// ReplaceTodo menimpa seluruh field todo (PUT).
func ReplaceTodo(c *fiber.Ctx) error {
	todo := loadOwnedTodo(c)
	if todo == nil {
		return nil
	}

	var req TodoRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in replace todo", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if req.Status == "" {
		req.Status = models.StatusTodo
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in replace todo", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}
	if !models.ValidStatus(req.Status) {
		logger.ErrorLogger.Error("Invalid status in replace todo")
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid status",
			"success": false,
			"status":  400,
		})
	}

	updated, err := config.TodoRepo.Replace(todo.ID, &models.Todo{
		Text:        req.Text,
		Description: req.Description,
		Status:      req.Status,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
	})
	if err != nil {
		// Todo bisa saja terhapus di antara load dan update
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "Todo not found",
				"success": false,
				"status":  404,
			})
		}
		logger.ErrorLogger.Error("Error updating todo", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating todo",
			"success": false,
			"status":  500,
		})
	}

	if err := invalidateTodoCache(updated.UserID); err != nil {
		logger.ErrorLogger.Error("Error invalidating todo cache", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error invalidating todo cache",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Todo replaced", zap.Int("todo_id", updated.ID))
	return c.JSON(fiber.Map{
		"success": true,
		"status":  200,
		"data":    updated,
	})
}

// PatchTodo meng-update subset field (PATCH), dipakai drag-and-drop
// untuk memindahkan status antar kolom. Field yang tidak dikirim
// tidak tersentuh sama sekali.
func PatchTodo(c *fiber.Ctx) error {
	todo := loadOwnedTodo(c)
	if todo == nil {
		return nil
	}

	var patch models.TodoPatch
	if err := c.BodyParser(&patch); err != nil {
		logger.ErrorLogger.Error("Bad request in patch todo", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if patch.Empty() {
		return c.Status(400).JSON(fiber.Map{
			"message": "No fields to update",
			"success": false,
			"status":  400,
		})
	}
	if patch.Status != nil && !models.ValidStatus(*patch.Status) {
		logger.ErrorLogger.Error("Invalid status in patch todo")
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid status",
			"success": false,
			"status":  400,
		})
	}
	if patch.Text != nil && *patch.Text == "" {
		return c.Status(400).JSON(fiber.Map{
			"message": "Text cannot be empty",
			"success": false,
			"status":  400,
		})
	}

	updated, err := config.TodoRepo.Patch(todo.ID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "Todo not found",
				"success": false,
				"status":  404,
			})
		}
		logger.ErrorLogger.Error("Error patching todo", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error patching todo",
			"success": false,
			"status":  500,
		})
	}

	if err := invalidateTodoCache(updated.UserID); err != nil {
		logger.ErrorLogger.Error("Error invalidating todo cache", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error invalidating todo cache",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Todo patched", zap.Int("todo_id", updated.ID))
	return c.JSON(fiber.Map{
		"success": true,
		"status":  200,
		"data":    updated,
	})
}

// DeleteTodo menghapus todo secara permanen.
func DeleteTodo(c *fiber.Ctx) error {
	todo := loadOwnedTodo(c)
	if todo == nil {
		return nil
	}

	if err := config.TodoRepo.Delete(todo.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "Todo not found",
				"success": false,
				"status":  404,
			})
		}
		logger.ErrorLogger.Error("Error deleting todo", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting todo",
			"success": false,
			"status":  500,
		})
	}

	if err := invalidateTodoCache(todo.UserID); err != nil {
		logger.ErrorLogger.Error("Error invalidating todo cache", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error invalidating todo cache",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Todo deleted", zap.Int("todo_id", todo.ID))
	return c.JSON(fiber.Map{
		"success": true,
		"status":  200,
		"message": "Todo deleted",
	})
}
