package repository

import "errors"

// Sentinel error yang dipakai handler untuk translasi ke status HTTP.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
