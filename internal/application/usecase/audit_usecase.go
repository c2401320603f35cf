package usecase

import (
	"time"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/domain/repository"
)

// AuditUseCase consulta y poda del audit log.
type AuditUseCase struct {
	audit repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(audit repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{audit: audit}
}

// List consulta entradas del audit log con filtros y paginación.
func (uc *AuditUseCase) List(in dto.ListAuditRequest) ([]dto.AuditEntryResponse, error) {
	in.DefaultPage()
	f := repository.AuditFilter{
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		Action:     in.Action,
		ActorID:    in.ActorID,
	}
	list, err := uc.audit.List(f, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.AuditEntryResponse{
			ID:         e.ID,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Action:     e.Action,
			ActorID:    e.ActorID,
			Changes:    e.Changes,
			CreatedAt:  e.CreatedAt,
		})
	}
	return items, nil
}

// PruneOlderThan poda entradas con más de retentionDays de antigüedad.
// retentionDays <= 0 desactiva la poda (se conserva todo).
func (uc *AuditUseCase) PruneOlderThan(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return uc.audit.DeleteOlderThan(cutoff)
}
