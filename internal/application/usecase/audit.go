package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tejidosandina/rollos-api/internal/domain/entity"
)

// fieldChange registra el valor anterior y el nuevo de un campo mutado.
type fieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// newAuditEntry construye una entrada de audit log con los cambios
// serializados. changes puede ser nil (ej. login/logout/delete).
func newAuditEntry(entityType, entityID, action, actorID string, changes any) *entity.AuditLogEntry {
	var raw json.RawMessage
	if changes != nil {
		if b, err := json.Marshal(changes); err == nil {
			raw = b
		}
	}
	return &entity.AuditLogEntry{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ActorID:    actorID,
		Changes:    raw,
		CreatedAt:  time.Now(),
	}
}

// NewAuthAuditEntry entrada de audit para eventos de sesión
// (login/logout): el actor es el mismo usuario afectado.
func NewAuthAuditEntry(userID, action string) *entity.AuditLogEntry {
	return newAuditEntry(entity.AuditEntityUser, userID, action, userID, nil)
}
