package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Roll. Sold es terminal.
const (
	RollStatusInStock  = "in_stock"
	RollStatusReserved = "reserved"
	RollStatusSold     = "sold"
)

// Grados de calidad válidos.
const (
	DegreeA = "A"
	DegreeB = "B"
	DegreeC = "C"
)

// Roll representa un rollo de tela físico en bodega.
// El barcode NO es globalmente único: puede reutilizarse una vez que el
// rollo que lo portaba pasa a sold o se elimina. A lo sumo un rollo
// activo (in_stock/reserved, no eliminado) porta un barcode dado.
type Roll struct {
	ID           string
	Barcode      string
	CatalogID    string
	Color        string
	Degree       string          // A, B, C
	LengthMeters decimal.Decimal // metros, > 0
	Status       string          // in_stock, reserved, sold
	Location     string          // ubicación en bodega, opcional
	CreatedAt    time.Time
	CreatedBy    string
	UpdatedAt    time.Time
	UpdatedBy    string
	DeletedAt    *time.Time // soft delete: nunca se borra físicamente
	DeletedBy    *string
}

// IsDeleted indica si el rollo fue eliminado (soft delete).
func (r *Roll) IsDeleted() bool { return r.DeletedAt != nil }

// IsActive indica si el rollo cuenta para la regla de reutilización de
// barcode: no eliminado y con estado in_stock o reserved.
func (r *Roll) IsActive() bool {
	if r.IsDeleted() {
		return false
	}
	return r.Status == RollStatusInStock || r.Status == RollStatusReserved
}
