package lifecycle_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejidosandina/rollos-api/internal/domain"
	"github.com/tejidosandina/rollos-api/internal/domain/lifecycle"
)

func strPtr(s string) *string { return &s }

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

// fieldsOf extrae Details["fields"] de un VALIDATION_ERROR.
func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	de, ok := domain.AsError(err)
	require.True(t, ok, "el error debe ser *domain.Error")
	require.Equal(t, domain.CodeValidation, de.Code)
	require.Equal(t, 400, de.StatusCode)
	fields, ok := de.Details["fields"].(map[string]string)
	require.True(t, ok, "Details[fields] debe ser map[string]string")
	return fields
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de campos de Roll
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateRollFields_CamposValidos(t *testing.T) {
	err := lifecycle.ValidateRollFields(lifecycle.RollFields{
		Barcode:      strPtr("RC-100"),
		Color:        strPtr("azul índigo"),
		Degree:       strPtr("A"),
		LengthMeters: decPtr(decimal.NewFromFloat(45.5)),
		Location:     strPtr("bodega-2 estante 4"),
		Status:       strPtr("in_stock"),
	})
	assert.NoError(t, err)
}

// Punteros nil significan "campo no enviado": nada que validar.
func TestValidateRollFields_SinCamposEsValido(t *testing.T) {
	assert.NoError(t, lifecycle.ValidateRollFields(lifecycle.RollFields{}))
}

func TestValidateRollFields_BarcodeFueraDeRango(t *testing.T) {
	fields := fieldsOf(t, lifecycle.ValidateRollFields(lifecycle.RollFields{
		Barcode: strPtr("ab"),
	}))
	assert.Contains(t, fields, "barcode")

	fields = fieldsOf(t, lifecycle.ValidateRollFields(lifecycle.RollFields{
		Barcode: strPtr(strings.Repeat("X", 51)),
	}))
	assert.Contains(t, fields, "barcode")
}

func TestValidateRollFields_BarcodeConCaracteresInvalidos(t *testing.T) {
	for _, bc := range []string{"RC 100", "RC_100", "RC#100", "ñandú-1"} {
		fields := fieldsOf(t, lifecycle.ValidateRollFields(lifecycle.RollFields{
			Barcode: strPtr(bc),
		}))
		assert.Contains(t, fields, "barcode", "barcode %q debe rechazarse", bc)
	}
}

func TestValidateRollFields_LongitudDebeSerPositiva(t *testing.T) {
	fields := fieldsOf(t, lifecycle.ValidateRollFields(lifecycle.RollFields{
		LengthMeters: decPtr(decimal.Zero),
	}))
	assert.Contains(t, fields, "length_meters")

	fields = fieldsOf(t, lifecycle.ValidateRollFields(lifecycle.RollFields{
		LengthMeters: decPtr(decimal.NewFromInt(-3)),
	}))
	assert.Contains(t, fields, "length_meters")

	fields = fieldsOf(t, lifecycle.ValidateRollFields(lifecycle.RollFields{
		LengthMeters: decPtr(decimal.NewFromInt(10001)),
	}))
	assert.Contains(t, fields, "length_meters")
}

func TestValidateRollFields_GradoYEstadoInvalidos(t *testing.T) {
	fields := fieldsOf(t, lifecycle.ValidateRollFields(lifecycle.RollFields{
		Degree: strPtr("D"),
		Status: strPtr("vendido"),
	}))
	assert.Contains(t, fields, "degree")
	assert.Contains(t, fields, "status")
}

// Todos los problemas se acumulan en una sola respuesta.
func TestValidateRollFields_AcumulaTodosLosErrores(t *testing.T) {
	fields := fieldsOf(t, lifecycle.ValidateRollFields(lifecycle.RollFields{
		Barcode:      strPtr("!"),
		Color:        strPtr(""),
		Degree:       strPtr("Z"),
		LengthMeters: decPtr(decimal.Zero),
		Location:     strPtr(strings.Repeat("x", 101)),
		Status:       strPtr("nope"),
	}))
	assert.Len(t, fields, 6, "cada campo inválido debe aparecer en fields")
}

func TestValidDegree(t *testing.T) {
	assert.True(t, lifecycle.ValidDegree("A"))
	assert.True(t, lifecycle.ValidDegree("B"))
	assert.True(t, lifecycle.ValidDegree("C"))
	assert.False(t, lifecycle.ValidDegree("a"))
	assert.False(t, lifecycle.ValidDegree("D"))
}
