package entity

import "time"

// User representa una cuenta registrada.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca se expone en respuestas
	CreatedAt    time.Time
}
