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

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

const catalogColumns = `id, code, name, material, description, status,
		created_at, created_by, updated_at, updated_by, deleted_at, deleted_by`

// CatalogRepo implementación del puerto CatalogRepository sobre PostgreSQL.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador de persistencia para catálogos.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// Create persiste un nuevo catálogo. code único mapea a CONFLICT.
func (r *CatalogRepo) Create(catalog *entity.Catalog) error {
	query := `
		INSERT INTO catalogs (id, code, name, material, description, status,
			created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		catalog.ID, catalog.Code, catalog.Name, catalog.Material, catalog.Description,
		catalog.Status, catalog.CreatedAt, catalog.CreatedBy, catalog.UpdatedAt, catalog.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("el código de catálogo ya existe",
				map[string]any{"code": catalog.Code})
		}
		return fmt.Errorf("insert catalog: %w", err)
	}
	return nil
}

// GetByID obtiene un catálogo no eliminado por ID.
func (r *CatalogRepo) GetByID(id string) (*entity.Catalog, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalogs WHERE id = $1 AND deleted_at IS NULL`
	catalog, err := scanCatalog(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	return catalog, nil
}

// GetByCode obtiene un catálogo no eliminado por código.
func (r *CatalogRepo) GetByCode(code string) (*entity.Catalog, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalogs WHERE code = $1 AND deleted_at IS NULL`
	catalog, err := scanCatalog(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog by code: %w", err)
	}
	return catalog, nil
}

// List lista catálogos no eliminados aplicando los filtros presentes.
func (r *CatalogRepo) List(f repository.CatalogFilter, limit, offset int) ([]*entity.Catalog, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + catalogColumns + ` FROM catalogs WHERE deleted_at IS NULL`)
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.Status != "" {
		sb.WriteString(` AND status = ` + arg(f.Status))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		sb.WriteString(` AND (code ILIKE ` + p + ` OR name ILIKE ` + p + ` OR material ILIKE ` + p + `)`)
	}
	sb.WriteString(` ORDER BY created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset))

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Catalog
	for rows.Next() {
		catalog, err := scanCatalog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
		list = append(list, catalog)
	}
	return list, rows.Err()
}

// Update actualiza un catálogo existente. code nunca se toca aquí:
// la inmutabilidad se valida en el caso de uso y la columna no aparece
// en el SET.
func (r *CatalogRepo) Update(catalog *entity.Catalog) error {
	query := `
		UPDATE catalogs SET name = $2, material = $3, description = $4, status = $5,
			updated_at = $6, updated_by = $7
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		catalog.ID, catalog.Name, catalog.Material, catalog.Description, catalog.Status,
		catalog.UpdatedAt, catalog.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("update catalog: %w", err)
	}
	return nil
}

// SoftDelete marca el catálogo como eliminado.
func (r *CatalogRepo) SoftDelete(id, actorID string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE catalogs SET deleted_at = $2, deleted_by = $3 WHERE id = $1 AND deleted_at IS NULL`,
		id, at, actorID,
	)
	if err != nil {
		return fmt.Errorf("soft delete catalog: %w", err)
	}
	return nil
}

func scanCatalog(row pgx.Row) (*entity.Catalog, error) {
	var c entity.Catalog
	err := row.Scan(
		&c.ID, &c.Code, &c.Name, &c.Material, &c.Description, &c.Status,
		&c.CreatedAt, &c.CreatedBy, &c.UpdatedAt, &c.UpdatedBy, &c.DeletedAt, &c.DeletedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
