package repository

import (
	"time"

	"github.com/tejidosandina/rollos-api/internal/domain/entity"
)

// AuditFilter criterios de consulta del audit log.
type AuditFilter struct {
	EntityType string
	EntityID   string
	Action     string
	ActorID    string
}

// AuditLogRepository define el puerto del audit log. Append-only: no hay
// Update ni Delete individual, solo poda por antigüedad.
type AuditLogRepository interface {
	Create(entry *entity.AuditLogEntry) error
	List(f AuditFilter, limit, offset int) ([]*entity.AuditLogEntry, error)
	// DeleteOlderThan poda entradas anteriores al corte. Devuelve cuántas eliminó.
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
