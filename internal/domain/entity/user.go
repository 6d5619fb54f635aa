package entity

import "time"

// User representa un usuario operador del sistema (actor de auditoría).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string // "admin" | "vendedor"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
