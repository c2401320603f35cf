package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tejidosandina/rollos-api/internal/domain/entity"
	"github.com/tejidosandina/rollos-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación del puerto AuditLogRepository sobre
// PostgreSQL. Append-only: solo INSERT, consulta y poda por antigüedad.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador de persistencia del audit log.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta una entrada inmutable.
func (r *AuditLogRepo) Create(entry *entity.AuditLogEntry) error {
	query := `
		INSERT INTO audit_log (id, entity_type, entity_id, action, actor_id, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	var changes any
	if len(entry.Changes) > 0 {
		changes = []byte(entry.Changes)
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.EntityType, entry.EntityID, entry.Action, entry.ActorID,
		changes, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List consulta entradas aplicando los filtros presentes, más recientes primero.
func (r *AuditLogRepo) List(f repository.AuditFilter, limit, offset int) ([]*entity.AuditLogEntry, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, entity_type, entity_id, action, actor_id, changes, created_at
		FROM audit_log WHERE true`)
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.EntityType != "" {
		sb.WriteString(` AND entity_type = ` + arg(f.EntityType))
	}
	if f.EntityID != "" {
		sb.WriteString(` AND entity_id = ` + arg(f.EntityID))
	}
	if f.Action != "" {
		sb.WriteString(` AND action = ` + arg(f.Action))
	}
	if f.ActorID != "" {
		sb.WriteString(` AND actor_id = ` + arg(f.ActorID))
	}
	sb.WriteString(` ORDER BY created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset))

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.ActorID,
			&e.Changes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// DeleteOlderThan poda entradas anteriores al corte (retención).
// Única operación destructiva admitida sobre audit_log.
func (r *AuditLogRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM audit_log WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune audit log: %w", err)
	}
	return cmd.RowsAffected(), nil
}
