package dto

import (
	"encoding/json"
	"time"
)

// ListAuditRequest filtros de consulta del audit log (solo admin).
type ListAuditRequest struct {
	EntityType string `query:"entity_type"`
	EntityID   string `query:"entity_id"`
	Action     string `query:"action"`
	ActorID    string `query:"actor_id"`
	PageRequest
}

// AuditEntryResponse salida de una entrada del audit log.
type AuditEntryResponse struct {
	ID         string          `json:"id"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Action     string          `json:"action"`
	ActorID    string          `json:"actor_id"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
