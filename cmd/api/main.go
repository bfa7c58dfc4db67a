package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"

	"todo-api/configs"
	v1 "todo-api/internal/api/v1"
	"todo-api/internal/config"
	"todo-api/internal/middleware"
	"todo-api/internal/repository"
	"todo-api/pkg/database"
	"todo-api/pkg/logger"
)

func main() {
	// Inisialisasi logger
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	// Load config
	cfg := configs.LoadConfig()
	config.SecretKey = []byte(cfg.JWTSecret)
	config.CookieKey = cfg.CookieSecret

	// Inisialisasi database
	config.DB = database.ConnectDB(cfg)
	defer config.DB.Close()

	logger.SystemLogger.Info("Database Connected")

	// ----- Inisialisasi repository ----- //
	// Buat tabel jika belum ada:
	repository.CreateTableIfNotExists(config.DB)
	config.UserRepo = repository.NewUserRepo(config.DB)
	config.TodoRepo = repository.NewTodoRepo(config.DB)
	// Jika ingin membuat admin user:
	// repository.CreateAdminUser(config.DB)

	// Inisialisasi Redis
	config.RedisClient = database.ConnectRedis(cfg)
	defer config.RedisClient.Close()

	app := fiber.New()

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	// Daftarkan route API
	v1.RegisterRoutes(app)

	logger.SystemLogger.Info("Application ready", zap.String("port", cfg.AppPort))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
