package lifecycle

import (
	"regexp"

	"github.com/shopspring/decimal"
	"github.com/tejidosandina/rollos-api/internal/domain"
	"github.com/tejidosandina/rollos-api/internal/domain/entity"
)

// Límites de campos de Roll.
const (
	BarcodeMinLen  = 3
	BarcodeMaxLen  = 50
	ColorMaxLen    = 50
	LocationMaxLen = 100
)

// MaxLengthMeters longitud máxima admitida para un rollo.
var MaxLengthMeters = decimal.NewFromInt(10000)

// barcodePattern: alfanumérico más guiones.
var barcodePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// RollFields son los campos validables de un rollo en creación o
// actualización parcial. Los punteros nil significan "campo no presente".
type RollFields struct {
	Barcode      *string
	Color        *string
	Degree       *string
	LengthMeters *decimal.Decimal
	Location     *string
	Status       *string
}

// ValidateRollFields valida formato y rangos de los campos presentes.
// Acumula todos los problemas en Details["fields"] para que el cliente
// pueda marcar cada campo, y retorna un único VALIDATION_ERROR.
func ValidateRollFields(f RollFields) error {
	fields := map[string]string{}

	if f.Barcode != nil {
		switch {
		case len(*f.Barcode) < BarcodeMinLen || len(*f.Barcode) > BarcodeMaxLen:
			fields["barcode"] = "longitud debe estar entre 3 y 50"
		case !barcodePattern.MatchString(*f.Barcode):
			fields["barcode"] = "solo alfanumérico y guiones"
		}
	}
	if f.Color != nil {
		if *f.Color == "" {
			fields["color"] = "requerido"
		} else if len(*f.Color) > ColorMaxLen {
			fields["color"] = "máximo 50 caracteres"
		}
	}
	if f.Degree != nil && !ValidDegree(*f.Degree) {
		fields["degree"] = "debe ser A, B o C"
	}
	if f.LengthMeters != nil {
		if !f.LengthMeters.IsPositive() {
			fields["length_meters"] = "debe ser mayor que 0"
		} else if f.LengthMeters.GreaterThan(MaxLengthMeters) {
			fields["length_meters"] = "máximo 10000"
		}
	}
	if f.Location != nil && len(*f.Location) > LocationMaxLen {
		fields["location"] = "máximo 100 caracteres"
	}
	if f.Status != nil && !ValidRollStatus(*f.Status) {
		fields["status"] = "debe ser in_stock, reserved o sold"
	}

	if len(fields) > 0 {
		return domain.NewValidation("campos de rollo inválidos", map[string]any{"fields": fields})
	}
	return nil
}

// ValidDegree indica si el grado de calidad es válido.
func ValidDegree(degree string) bool {
	return degree == entity.DegreeA || degree == entity.DegreeB || degree == entity.DegreeC
}

// ValidRollStatus indica si el estado de rollo es válido.
func ValidRollStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}
