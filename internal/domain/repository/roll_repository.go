package repository

import (
	"time"

	"github.com/tejidosandina/rollos-api/internal/domain/entity"
)

// RollFilter criterios de listado de rollos. Campos vacíos no filtran.
type RollFilter struct {
	CatalogID string
	Status    string
	Degree    string
	Color     string
	Search    string // coincide contra barcode, color y location
}

// RollRepository define el puerto de persistencia para Roll (DIP).
// Todas las lecturas excluyen registros con soft delete salvo que se
// indique lo contrario.
type RollRepository interface {
	Create(roll *entity.Roll) error
	GetByID(id string) (*entity.Roll, error)
	List(f RollFilter, limit, offset int) ([]*entity.Roll, error)
	Update(roll *entity.Roll) error
	SoftDelete(id, actorID string, at time.Time) error
	// CountActiveByBarcode cuenta rollos activos (in_stock/reserved, no
	// eliminados) con ese barcode, excluyendo excludeID si no es vacío.
	CountActiveByBarcode(barcode, excludeID string) (int64, error)
	// CountByCatalog cuenta rollos no eliminados del catálogo, cualquier estado.
	CountByCatalog(catalogID string) (int64, error)
	// CountActiveByCatalog cuenta solo rollos activos del catálogo.
	CountActiveByCatalog(catalogID string) (int64, error)
}
