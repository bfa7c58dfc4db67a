package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"todo-api/internal/config"
	"todo-api/internal/middleware"
	"todo-api/internal/repository"
	"todo-api/pkg/crypto"
	"todo-api/pkg/logger"
)

// Auth handlers

func Signup(c *fiber.Ctx) error {
	// struct SignupRequest menerima inputan dari user
	type SignupRequest struct {
		Name     string `json:"name" validate:"omitempty,min=2"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in signup", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	// Validasi dengan validator
	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during signup", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Missing fields",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	// Hash password dengan bcrypt, password mentah tidak pernah disimpan
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error hashing password",
			"success": false,
			"status":  500,
		})
	}

	userID, err := config.UserRepo.Create(req.Name, strings.TrimSpace(req.Email), string(hashedPassword))
	if err != nil {
		// Email sudah terdaftar (case-insensitive); state tidak berubah
		if errors.Is(err, repository.ErrDuplicate) {
			logger.SecurityLogger.Warn("Duplicate email on signup", zap.String("email", req.Email))
			return c.Status(400).JSON(fiber.Map{
				"message": "User exists",
				"success": false,
				"status":  400,
			})
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating user",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("User signed up", zap.Int("userID", userID))
	return c.JSON(fiber.Map{
		"message": "Signup success",
		"success": true,
		"status":  200,
	})
}

// Login memverifikasi kredensial lalu memasang session cookie.
// User tidak ditemukan dan password salah harus menghasilkan respons
// yang identik, supaya tidak membocorkan email mana yang terdaftar.
func Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Missing fields",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	user, err := config.UserRepo.GetByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{
				"message": "Error fetching user",
				"success": false,
				"status":  500,
			})
		}
		logger.SecurityLogger.Warn("Login with unknown email", zap.String("email", req.Email))
		return invalidCredentials(c)
	}

	// user.Password -> hash yang ada di database
	// req.Password -> password yang dikirimkan oleh user
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.SecurityLogger.Warn("Invalid password", zap.String("email", req.Email))
		return invalidCredentials(c)
	}

	// JWT berisi user_id, role, dan exp satu jam dari sekarang
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 1).Unix(),
	})

	tokenString, err := token.SignedString(config.SecretKey)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error generating token",
			"success": false,
			"status":  500,
		})
	}

	// Segel token dengan cookie secret sebelum dikirim ke client
	sealed, err := crypto.Encrypt(tokenString, config.CookieKey)
	if err != nil {
		logger.ErrorLogger.Error("Error sealing session cookie", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error sealing session cookie",
			"success": false,
			"status":  500,
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sealed,
		Path:     "/",
		Expires:  time.Now().Add(time.Hour * 1),
		HTTPOnly: true,
		Secure:   false, // true di production
		SameSite: "Strict",
	})

	logger.AuditLogger.Info("Login success", zap.Int("user_id", user.ID), zap.String("role", user.Role))
	return c.Redirect("/", fiber.StatusFound)
}

func invalidCredentials(c *fiber.Ctx) error {
	return c.Status(401).JSON(fiber.Map{
		"message": "Invalid credentials",
		"success": false,
		"status":  401,
	})
}

// Logout menghapus session cookie. Idempotent: tanpa session aktif pun
// tetap 200.
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
	})

	logger.AuditLogger.Info("Logout")
	return c.JSON(fiber.Map{
		"message": "Logged out",
		"success": true,
		"status":  200,
	})
}

// Session mengembalikan user yang sedang login, dipakai UI untuk
// menentukan state auth setelah reload.
func Session(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	user, err := config.UserRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// User di token sudah tidak ada di database
			logger.SecurityLogger.Warn("Session for deleted user", zap.Int("user_id", userID))
			return c.Status(401).JSON(fiber.Map{
				"message": "Unauthorized",
				"success": false,
				"status":  401,
			})
		}
		logger.ErrorLogger.Error("Error fetching session user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching session user",
			"success": false,
			"status":  500,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"status":  200,
		"data": fiber.Map{
			"user": user,
		},
	})
}
