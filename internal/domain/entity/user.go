package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleStorekeeper = "storekeeper"
	RoleViewer      = "viewer"
)

// Estados válidos para User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, storekeeper, viewer
	Status       string // active, inactive
	CreatedAt    time.Time
	CreatedBy    string
	UpdatedAt    time.Time
	UpdatedBy    string
	DeletedAt    *time.Time
	DeletedBy    *string
}

// IsDeleted indica si el usuario fue eliminado (soft delete).
func (u *User) IsDeleted() bool { return u.DeletedAt != nil }
