package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// User representa un usuario de la aplicación. PasswordHash es bcrypt.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string // admin, manager, user
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	CreatedBy    string
}
