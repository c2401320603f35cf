package usecase

import (
	"context"

	"github.com/tejidosandina/rollos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que mutación y entrada de audit
// log se persistan atómicamente.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		rollRepo repository.RollRepository,
		catalogRepo repository.CatalogRepository,
		userRepo repository.UserRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
