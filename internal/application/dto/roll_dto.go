package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRollRequest entrada para crear un rollo. Status es opcional y
// por defecto in_stock.
type CreateRollRequest struct {
	Barcode      string          `json:"barcode" validate:"required,min=3,max=50"`
	CatalogID    string          `json:"catalog_id" validate:"required,uuid"`
	Color        string          `json:"color" validate:"required,max=50"`
	Degree       string          `json:"degree" validate:"required,oneof=A B C"`
	LengthMeters decimal.Decimal `json:"length_meters" validate:"required"`
	Location     string          `json:"location" validate:"omitempty,max=100"`
	Status       string          `json:"status" validate:"omitempty,oneof=in_stock reserved sold"`
}

// UpdateRollRequest entrada para actualización parcial. Punteros nil
// significan "campo no enviado".
type UpdateRollRequest struct {
	Barcode      *string          `json:"barcode" validate:"omitempty,min=3,max=50"`
	CatalogID    *string          `json:"catalog_id" validate:"omitempty,uuid"`
	Color        *string          `json:"color" validate:"omitempty,max=50"`
	Degree       *string          `json:"degree" validate:"omitempty,oneof=A B C"`
	LengthMeters *decimal.Decimal `json:"length_meters" validate:"omitempty"`
	Location     *string          `json:"location" validate:"omitempty,max=100"`
	Status       *string          `json:"status" validate:"omitempty,oneof=in_stock reserved sold"`
}

// ListRollsRequest filtros de listado (query params).
type ListRollsRequest struct {
	CatalogID string `query:"catalog"`
	Status    string `query:"status"`
	Degree    string `query:"degree"`
	Color     string `query:"color"`
	Search    string `query:"search"`
	PageRequest
}

// RollResponse salida de un rollo.
type RollResponse struct {
	ID           string          `json:"id"`
	Barcode      string          `json:"barcode"`
	CatalogID    string          `json:"catalog_id"`
	Color        string          `json:"color"`
	Degree       string          `json:"degree"`
	LengthMeters decimal.Decimal `json:"length_meters"`
	Status       string          `json:"status"`
	Location     string          `json:"location,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	CreatedBy    string          `json:"created_by"`
	UpdatedAt    time.Time       `json:"updated_at"`
	UpdatedBy    string          `json:"updated_by"`
}
