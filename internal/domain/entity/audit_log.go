package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en el audit log.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionLogin  = "login"
	AuditActionLogout = "logout"
)

// Tipos de entidad auditables.
const (
	AuditEntityRoll    = "roll"
	AuditEntityCatalog = "catalog"
	AuditEntityUser    = "user"
)

// AuditLogEntry es un registro inmutable de quién cambió qué y cuándo.
// Solo se inserta; nunca se actualiza ni se borra, salvo la poda por
// antigüedad configurada en retención.
type AuditLogEntry struct {
	ID         string
	EntityType string
	EntityID   string
	Action     string // create, update, delete, login, logout
	ActorID    string
	Changes    json.RawMessage // snapshot serializado de los campos cambiados
	CreatedAt  time.Time
}
