package entities

import (
	"time"
)

// User represents a registered user
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
