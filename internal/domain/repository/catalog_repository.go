package repository

import (
	"time"

	"github.com/tejidosandina/rollos-api/internal/domain/entity"
)

// CatalogFilter criterios de listado de catálogos.
type CatalogFilter struct {
	Status string
	Search string // coincide contra code, name y material
}

// CatalogRepository define el puerto de persistencia para Catalog.
type CatalogRepository interface {
	Create(catalog *entity.Catalog) error
	GetByID(id string) (*entity.Catalog, error)
	GetByCode(code string) (*entity.Catalog, error)
	List(f CatalogFilter, limit, offset int) ([]*entity.Catalog, error)
	Update(catalog *entity.Catalog) error
	SoftDelete(id, actorID string, at time.Time) error
}
