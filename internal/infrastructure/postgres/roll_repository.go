package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tejidosandina/rollos-api/internal/domain"
	"github.com/tejidosandina/rollos-api/internal/domain/entity"
	"github.com/tejidosandina/rollos-api/internal/domain/repository"
)

var _ repository.RollRepository = (*RollRepo)(nil)

const rollColumns = `id, barcode, catalog_id, color, degree, length_meters, status, location,
		created_at, created_by, updated_at, updated_by, deleted_at, deleted_by`

// RollRepo implementación del puerto RollRepository sobre PostgreSQL
// (usable con pool o tx).
type RollRepo struct {
	q Querier
}

// NewRollRepository construye el adaptador de persistencia para rollos.
// Pasar pool o tx (Querier).
func NewRollRepository(q Querier) *RollRepo {
	return &RollRepo{q: q}
}

// Create persiste un nuevo rollo. El índice único parcial
// (barcode activo no eliminado) mapea a CONFLICT.
func (r *RollRepo) Create(roll *entity.Roll) error {
	query := `
		INSERT INTO rolls (id, barcode, catalog_id, color, degree, length_meters, status, location,
			created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		roll.ID, roll.Barcode, roll.CatalogID, roll.Color, roll.Degree, roll.LengthMeters,
		roll.Status, roll.Location, roll.CreatedAt, roll.CreatedBy, roll.UpdatedAt, roll.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("el barcode ya está en uso por un rollo activo",
				map[string]any{"barcode": roll.Barcode})
		}
		return fmt.Errorf("insert roll: %w", err)
	}
	return nil
}

// GetByID obtiene un rollo no eliminado por ID.
func (r *RollRepo) GetByID(id string) (*entity.Roll, error) {
	query := `SELECT ` + rollColumns + ` FROM rolls WHERE id = $1 AND deleted_at IS NULL`
	row := r.q.QueryRow(context.Background(), query, id)
	roll, err := scanRoll(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get roll: %w", err)
	}
	return roll, nil
}

// List lista rollos no eliminados aplicando los filtros presentes.
func (r *RollRepo) List(f repository.RollFilter, limit, offset int) ([]*entity.Roll, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + rollColumns + ` FROM rolls WHERE deleted_at IS NULL`)
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.CatalogID != "" {
		sb.WriteString(` AND catalog_id = ` + arg(f.CatalogID))
	}
	if f.Status != "" {
		sb.WriteString(` AND status = ` + arg(f.Status))
	}
	if f.Degree != "" {
		sb.WriteString(` AND degree = ` + arg(f.Degree))
	}
	if f.Color != "" {
		sb.WriteString(` AND color ILIKE ` + arg(f.Color))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		sb.WriteString(` AND (barcode ILIKE ` + p + ` OR color ILIKE ` + p + ` OR location ILIKE ` + p + `)`)
	}
	sb.WriteString(` ORDER BY created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset))

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list rolls: %w", err)
	}
	defer rows.Close()
	var list []*entity.Roll
	for rows.Next() {
		roll, err := scanRoll(rows)
		if err != nil {
			return nil, fmt.Errorf("scan roll: %w", err)
		}
		list = append(list, roll)
	}
	return list, rows.Err()
}

// Update actualiza un rollo existente.
func (r *RollRepo) Update(roll *entity.Roll) error {
	query := `
		UPDATE rolls SET barcode = $2, catalog_id = $3, color = $4, degree = $5,
			length_meters = $6, status = $7, location = $8, updated_at = $9, updated_by = $10
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		roll.ID, roll.Barcode, roll.CatalogID, roll.Color, roll.Degree,
		roll.LengthMeters, roll.Status, roll.Location, roll.UpdatedAt, roll.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("el barcode ya está en uso por un rollo activo",
				map[string]any{"barcode": roll.Barcode})
		}
		return fmt.Errorf("update roll: %w", err)
	}
	return nil
}

// SoftDelete marca el rollo como eliminado. Nunca se borra físicamente.
func (r *RollRepo) SoftDelete(id, actorID string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE rolls SET deleted_at = $2, deleted_by = $3 WHERE id = $1 AND deleted_at IS NULL`,
		id, at, actorID,
	)
	if err != nil {
		return fmt.Errorf("soft delete roll: %w", err)
	}
	return nil
}

// CountActiveByBarcode cuenta rollos activos (in_stock/reserved, no
// eliminados) con ese barcode, excluyendo excludeID si no es vacío.
func (r *RollRepo) CountActiveByBarcode(barcode, excludeID string) (int64, error) {
	query := `
		SELECT count(*) FROM rolls
		WHERE barcode = $1 AND deleted_at IS NULL AND status IN ('in_stock', 'reserved')
			AND ($2 = '' OR id <> $2)`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, barcode, excludeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active by barcode: %w", err)
	}
	return n, nil
}

// CountByCatalog cuenta rollos no eliminados del catálogo, cualquier estado.
func (r *RollRepo) CountByCatalog(catalogID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM rolls WHERE catalog_id = $1 AND deleted_at IS NULL`,
		catalogID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count by catalog: %w", err)
	}
	return n, nil
}

// CountActiveByCatalog cuenta solo rollos activos del catálogo.
func (r *RollRepo) CountActiveByCatalog(catalogID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM rolls
		 WHERE catalog_id = $1 AND deleted_at IS NULL AND status IN ('in_stock', 'reserved')`,
		catalogID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active by catalog: %w", err)
	}
	return n, nil
}

func scanRoll(row pgx.Row) (*entity.Roll, error) {
	var r entity.Roll
	err := row.Scan(
		&r.ID, &r.Barcode, &r.CatalogID, &r.Color, &r.Degree, &r.LengthMeters, &r.Status,
		&r.Location, &r.CreatedAt, &r.CreatedBy, &r.UpdatedAt, &r.UpdatedBy, &r.DeletedAt, &r.DeletedBy,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
