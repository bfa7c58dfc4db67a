package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Todo struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Text        string    `json:"text"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	StartAt     Timestamp `json:"startAt"`
	EndAt       Timestamp `json:"endAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TodoPatch menampung subset field untuk partial update.
// Pointer (*) untuk membedakan field yang dikirim dan yang tidak
type TodoPatch struct {
	Text        *string    `json:"text"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	StartAt     *Timestamp `json:"startAt"`
	EndAt       *Timestamp `json:"endAt"`
}

// Empty melaporkan apakah tidak ada satupun field yang dikirim.
func (p TodoPatch) Empty() bool {
	return p.Text == nil && p.Description == nil && p.Status == nil &&
		p.StartAt == nil && p.EndAt == nil
}

// daftar status yang diperbolehkan; bebas berpindah antar status apapun,
// tidak ada aturan transisi selain keanggotaan enum
const (
	StatusTodo       = "todo"
	StatusBacklog    = "backlog"
	StatusInProgress = "inprogress"
	StatusDone       = "done"
	StatusCancelled  = "cancelled"
)

// ValidStatus mengembalikan true jika status termasuk enum yang diperbolehkan.
func ValidStatus(status string) bool {
	switch status {
	case StatusTodo, StatusBacklog, StatusInProgress, StatusDone, StatusCancelled:
		return true
	default:
		return false
	}
}

// Timestamp adalah time.Time dengan parsing JSON yang lebih longgar.
// Client mengirim waktu dari date picker tanpa detik ("2025-01-01T09:00"),
// kadang dengan detik, kadang RFC3339 penuh.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Scan mengimplementasikan sql.Scanner agar bisa di-scan langsung dari kolom TIMESTAMP.
func (t *Timestamp) Scan(v interface{}) error {
	switch val := v.(type) {
	case time.Time:
		t.Time = val
		return nil
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", v)
	}
}

// Value mengimplementasikan driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	return t.Time, nil
}
