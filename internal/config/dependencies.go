package config

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"

	"todo-api/internal/repository"
)

var (
	// Global dependency yang akan digunakan di seluruh aplikasi
	DB          *sql.DB
	SecretKey   = []byte("secret")
	CookieKey   = "MySecretCookieKey!"
	Validate    = validator.New()
	Ctx         = context.Background()
	RedisClient *redis.Client

	UserRepo *repository.UserRepo
	TodoRepo *repository.TodoRepo
)
