package v1

import (
	"github.com/gofiber/fiber/v2"

	"todo-api/internal/api/v1/handlers"
	"todo-api/internal/middleware"
)

func RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth, terbuka tanpa session
	api.Post("/signup", handlers.Signup)
	api.Post("/login", handlers.Login)
	api.Post("/logout", handlers.Logout)
	api.Get("/session", middleware.RequireSession, handlers.Session)

	// Admin
	adminRoutes := api.Group("/admin", middleware.RequireSession)
	adminRoutes.Get("/stats", handlers.GetStats)
	adminRoutes.Get("/users", handlers.GetAllUsers)

	// Todo, seluruhnya di belakang session gate.
	// Route :id didaftarkan terakhir supaya tidak menangkap path di atas.
	api.Get("/", middleware.RequireSession, handlers.ListTodos)
	api.Post("/", middleware.RequireSession, handlers.CreateTodo)
	api.Put("/:id", middleware.RequireSession, handlers.ReplaceTodo)
	api.Patch("/:id", middleware.RequireSession, handlers.PatchTodo)
	api.Delete("/:id", middleware.RequireSession, handlers.DeleteTodo)
}
