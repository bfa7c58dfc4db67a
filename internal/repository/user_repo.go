package repository

import (
	"database/sql"
	"strings"

	"github.com/lib/pq"

	"todo-api/internal/models"
)

// UserRepo adalah credential store: satu baris per user, password hanya
// disimpan dalam bentuk hash bcrypt.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create menyimpan user baru dan mengembalikan id yang di-assign database.
// Email dinormalisasi ke lowercase supaya uniqueness case-insensitive.
// Mengembalikan ErrDuplicate jika email sudah terdaftar.
func (r *UserRepo) Create(name, email, passwordHash string) (int, error) {
	var id int
	err := r.db.QueryRow(
		"INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, 'user') RETURNING id",
		name, strings.ToLower(email), passwordHash,
	).Scan(&id)
	if err != nil {
		// 23505 = unique violation
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r *UserRepo) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(
		"SELECT id, name, email, password, role, created_at, updated_at FROM users WHERE email = $1",
		strings.ToLower(email),
	).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetByID(id int) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(
		"SELECT id, name, email, password, role, created_at, updated_at FROM users WHERE id = $1",
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetAll() ([]models.User, error) {
	rows, err := r.db.Query("SELECT id, name, email, role, created_at, updated_at FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepo) Count() (int, error) {
	var total int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&total)
	return total, err
}
