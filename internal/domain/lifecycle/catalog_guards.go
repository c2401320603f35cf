package lifecycle

import (
	"regexp"

	"github.com/tejidosandina/rollos-api/internal/domain"
	"github.com/tejidosandina/rollos-api/internal/domain/entity"
)

// Límites de campos de Catalog.
const (
	CatalogCodeMinLen = 3
	CatalogCodeMaxLen = 50
	CatalogNameMaxLen = 100
)

var catalogCodePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// ValidateCatalogFields valida código y nombre en la creación.
func ValidateCatalogFields(code, name string) error {
	fields := map[string]string{}
	switch {
	case len(code) < CatalogCodeMinLen || len(code) > CatalogCodeMaxLen:
		fields["code"] = "longitud debe estar entre 3 y 50"
	case !catalogCodePattern.MatchString(code):
		fields["code"] = "solo alfanumérico y guiones"
	}
	if name == "" {
		fields["name"] = "requerido"
	} else if len(name) > CatalogNameMaxLen {
		fields["name"] = "máximo 100 caracteres"
	}
	if len(fields) > 0 {
		return domain.NewValidation("campos de catálogo inválidos", map[string]any{"fields": fields})
	}
	return nil
}

// ValidCatalogStatus indica si el estado de catálogo es válido.
func ValidCatalogStatus(status string) bool {
	switch status {
	case entity.CatalogStatusActive, entity.CatalogStatusArchived, entity.CatalogStatusDraft:
		return true
	}
	return false
}

// ValidateCatalogCodeImmutable rechaza cualquier payload de actualización
// que incluya el campo code, incluso con el mismo valor actual.
func ValidateCatalogCodeImmutable(catalogID string, codePresent bool) error {
	if !codePresent {
		return nil
	}
	return domain.NewBusinessRule(
		domain.CodeImmutableField,
		"el código del catálogo es inmutable",
		map[string]any{"entity_id": catalogID, "field": "code"},
	)
}

// ValidateCatalogArchive impide archivar un catálogo mientras tenga rollos
// activos (in_stock/reserved no eliminados) referenciándolo.
func ValidateCatalogArchive(catalogID, requestedStatus string, activeRolls int64) error {
	if requestedStatus != entity.CatalogStatusArchived {
		return nil
	}
	if activeRolls == 0 {
		return nil
	}
	return domain.NewBusinessRule(
		domain.CodeCannotArchive,
		"no se puede archivar un catálogo con rollos activos",
		map[string]any{"entity_id": catalogID, "active_rolls": activeRolls},
	)
}

// ValidateCatalogDelete impide eliminar un catálogo mientras cualquier
// rollo no eliminado lo referencie, sin importar su estado. Guarda más
// estricta que la de archivado: un rollo sold también bloquea.
func ValidateCatalogDelete(catalogID string, rollCount int64) error {
	if rollCount == 0 {
		return nil
	}
	return domain.NewBusinessRule(
		domain.CodeCatalogHasRolls,
		"no se puede eliminar un catálogo con rollos asociados",
		map[string]any{"entity_id": catalogID, "roll_count": rollCount},
	)
}
