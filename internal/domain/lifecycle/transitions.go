// Package lifecycle contiene los validadores puros del ciclo de vida del
// inventario: la máquina de estados de Roll, las reglas de campos y las
// guardas de archivado/eliminación de Catalog. Ninguna función persiste
// nada; los casos de uso las invocan antes de cada mutación.
package lifecycle

import (
	"github.com/tejidosandina/rollos-api/internal/domain"
	"github.com/tejidosandina/rollos-api/internal/domain/entity"
)

// allowedTransitions define las transiciones salientes válidas por estado.
// sold es terminal: no tiene salidas.
var allowedTransitions = map[string][]string{
	entity.RollStatusInStock:  {entity.RollStatusReserved, entity.RollStatusSold},
	entity.RollStatusReserved: {entity.RollStatusInStock, entity.RollStatusSold},
	entity.RollStatusSold:     {},
}

// AllowedFrom devuelve las transiciones salientes válidas desde un estado.
// Para estados desconocidos devuelve nil.
func AllowedFrom(status string) []string {
	return allowedTransitions[status]
}

// ValidateTransition valida una transición de estado de un rollo.
// current == requested es no-op y siempre es válido. Cualquier otra
// transición fuera de la tabla falla con INVALID_STATUS_TRANSITION,
// incluyendo el id, los estados y el conjunto permitido.
func ValidateTransition(rollID, current, requested string) error {
	if current == requested {
		return nil
	}
	for _, s := range allowedTransitions[current] {
		if s == requested {
			return nil
		}
	}
	return domain.NewBusinessRule(
		domain.CodeInvalidTransition,
		"transición de estado no permitida",
		map[string]any{
			"entity_id": rollID,
			"current":   current,
			"requested": requested,
			"allowed":   allowedTransitions[current],
		},
	)
}
