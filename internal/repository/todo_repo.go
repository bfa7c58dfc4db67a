package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"todo-api/internal/models"
)

const todoColumns = "id, user_id, text, description, status, start_at, end_at, created_at, updated_at"

// TodoRepo adalah task store: murni persistence, aturan bisnis ada di handler.
type TodoRepo struct {
	db *sql.DB
}

func NewTodoRepo(db *sql.DB) *TodoRepo {
	return &TodoRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	var todo models.Todo
	err := row.Scan(&todo.ID, &todo.UserID, &todo.Text, &todo.Description, &todo.Status,
		&todo.StartAt, &todo.EndAt, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &todo, nil
}

// Insert menyimpan todo baru; id di-assign oleh database (SERIAL),
// caller tidak pernah menyuplai id sendiri.
func (r *TodoRepo) Insert(todo *models.Todo) (*models.Todo, error) {
	row := r.db.QueryRow(
		"INSERT INTO todos (user_id, text, description, status, start_at, end_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING "+todoColumns,
		todo.UserID, todo.Text, todo.Description, todo.Status, todo.StartAt, todo.EndAt,
	)
	return scanTodo(row)
}

func (r *TodoRepo) GetAll() ([]models.Todo, error) {
	return r.queryTodos("SELECT " + todoColumns + " FROM todos ORDER BY id")
}

func (r *TodoRepo) GetAllByUser(userID int) ([]models.Todo, error) {
	return r.queryTodos("SELECT "+todoColumns+" FROM todos WHERE user_id = $1 ORDER BY id", userID)
}

func (r *TodoRepo) queryTodos(query string, args ...interface{}) ([]models.Todo, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, rows.Err()
}

func (r *TodoRepo) GetByID(id int) (*models.Todo, error) {
	row := r.db.QueryRow("SELECT "+todoColumns+" FROM todos WHERE id = $1", id)
	return scanTodo(row)
}

// Replace menimpa seluruh field dalam satu statement UPDATE.
// ErrNotFound jika id tidak ada; tidak pernah silent no-op.
func (r *TodoRepo) Replace(id int, todo *models.Todo) (*models.Todo, error) {
	row := r.db.QueryRow(
		"UPDATE todos SET text = $1, description = $2, status = $3, start_at = $4, end_at = $5, updated_at = CURRENT_TIMESTAMP WHERE id = $6 RETURNING "+todoColumns,
		todo.Text, todo.Description, todo.Status, todo.StartAt, todo.EndAt, id,
	)
	return scanTodo(row)
}

// Patch meng-update hanya field yang tidak nil. SET clause dibangun dinamis
// dan dieksekusi sebagai satu statement, jadi patch yang berlomba dengan
// delete pada id yang sama tidak mungkin terapply sebagian.
func (r *TodoRepo) Patch(id int, patch models.TodoPatch) (*models.Todo, error) {
	set := []string{}
	args := []interface{}{}
	i := 1

	if patch.Text != nil {
		set = append(set, fmt.Sprintf("text = $%d", i))
		args = append(args, *patch.Text)
		i++
	}
	if patch.Description != nil {
		set = append(set, fmt.Sprintf("description = $%d", i))
		args = append(args, *patch.Description)
		i++
	}
	if patch.Status != nil {
		set = append(set, fmt.Sprintf("status = $%d", i))
		args = append(args, *patch.Status)
		i++
	}
	if patch.StartAt != nil {
		set = append(set, fmt.Sprintf("start_at = $%d", i))
		args = append(args, *patch.StartAt)
		i++
	}
	if patch.EndAt != nil {
		set = append(set, fmt.Sprintf("end_at = $%d", i))
		args = append(args, *patch.EndAt)
		i++
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf("UPDATE todos SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), i, todoColumns)
	args = append(args, id)

	row := r.db.QueryRow(query, args...)
	return scanTodo(row)
}

// Delete menghapus permanen, tanpa tombstone.
func (r *TodoRepo) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM todos WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
